package analysis

import (
	"sort"
	"strings"

	"mixdown/internal/timeline"
)

// themeEntry binds a theme label to its keyword list and the ambient asset
// that suits it. Table order is the tie-break for equal scores, so entries
// must not be reordered casually.
type themeEntry struct {
	Label    string
	Ambient  string
	Keywords []string
}

var themeTable = []themeEntry{
	{
		Label:   "cafe",
		Ambient: "Cafe Ambience",
		Keywords: []string{
			"coffee", "café", "cafe", "kaffee", "espresso", "latte", "cappuccino",
			"restaurant", "bistro", "bar", "drink", "beverage", "barista", "brew",
			"conversation", "chat", "meeting", "casual", "relaxed",
		},
	},
	{
		Label:   "office",
		Ambient: "Office Ambience",
		Keywords: []string{
			"office", "work", "business", "corporate", "meeting", "conference",
			"project", "team", "colleague", "manager", "desk", "computer",
			"büro", "arbeit", "firma", "unternehmen", "professional", "workplace",
		},
	},
	{
		Label:   "nature",
		Ambient: "Nature Sounds",
		Keywords: []string{
			"nature", "forest", "mountain", "hiking", "outdoor", "wilderness",
			"bird", "animal", "tree", "river", "lake", "ocean", "beach",
			"natur", "wald", "berg", "wandern", "see", "fluss", "vögel", "tiere",
		},
	},
	{
		Label:   "city",
		Ambient: "City Traffic",
		Keywords: []string{
			"city", "urban", "street", "traffic", "metro", "subway", "bus",
			"downtown", "building", "crowd", "public", "transport",
			"stadt", "straße", "verkehr", "auto", "bustling", "metropolitan",
		},
	},
	{
		Label:   "studio",
		Ambient: "",
		Keywords: []string{
			"podcast", "show", "broadcast", "interview", "recording", "studio",
			"microphone", "mic", "audio", "episode", "host", "guest",
			"sendung", "aufnahme", "production", "content", "media",
		},
	},
	{
		Label:   "tech",
		Ambient: "Tech Lab Hum",
		Keywords: []string{
			"technology", "software", "hardware", "computer", "app", "digital",
			"code", "programming", "developer", "ai", "artificial intelligence",
			"data", "algorithm", "cyber", "technologie", "innovation",
		},
	},
	{
		Label:   "business",
		Ambient: "Office Ambience",
		Keywords: []string{
			"business", "market", "finance", "economy", "investment", "sales",
			"revenue", "profit", "strategy", "growth", "customer", "client",
			"geschäft", "markt", "finanzen", "wirtschaft", "deal", "trade",
		},
	},
	{
		Label:   "education",
		Ambient: "",
		Keywords: []string{
			"education", "learning", "teaching", "school", "university", "college",
			"student", "professor", "lecture", "course", "study", "knowledge",
			"bildung", "lernen", "schule", "universität", "lesson", "academic",
		},
	},
	{
		Label:   "entertainment",
		Ambient: "",
		Keywords: []string{
			"entertainment", "movie", "film", "music", "game", "fun", "comedy",
			"drama", "actor", "artist", "performer", "show", "concert",
			"unterhaltung", "spaß", "performance", "creative", "art",
		},
	},
}

// ThemeScore is one detected theme with its keyword-hit count.
type ThemeScore struct {
	Label    string
	Score    int
	Ambient  string
	Keywords []string
}

// DetectThemes scores every theme against the combined text and returns the
// themes with at least one hit, sorted by descending score. Ties keep table
// order (stable sort), so re-running on identical input yields an identical
// ranking.
func DetectThemes(texts []string) []ThemeScore {
	tokens := tokenize(strings.Join(texts, " "))
	if len(tokens) == 0 {
		return nil
	}

	var results []ThemeScore
	for _, entry := range themeTable {
		score, matched := scoreKeywords(tokens, entry.Keywords)
		if score == 0 {
			continue
		}
		results = append(results, ThemeScore{
			Label:    entry.Label,
			Score:    score,
			Ambient:  entry.Ambient,
			Keywords: matched,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// DominantTheme returns the top-ranked theme, if any.
func DominantTheme(texts []string) (ThemeScore, bool) {
	themes := DetectThemes(texts)
	if len(themes) == 0 {
		return ThemeScore{}, false
	}
	return themes[0], true
}

// CollectTexts gathers all non-empty segment text across all tracks.
func CollectTexts(tl timeline.Timeline) []string {
	var texts []string
	for _, track := range tl.Tracks {
		for _, seg := range track.Segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			texts = append(texts, seg.Text)
		}
	}
	return texts
}
