package analysis

// Sentiment is the emotional category assigned to a piece of segment text.
type Sentiment string

const (
	SentimentExcited  Sentiment = "excited"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentAngry    Sentiment = "angry"
	SentimentSad      Sentiment = "sad"
	SentimentNeutral  Sentiment = "neutral"
)

type sentimentEntry struct {
	Label    Sentiment
	Keywords []string
	Speed    float64
	Pitch    int
}

// sentimentTable order is the tie-break: the first category reaching the
// maximum hit count wins.
var sentimentTable = []sentimentEntry{
	{
		Label: SentimentExcited,
		Keywords: []string{
			"wow", "amazing", "incredible", "fantastic", "awesome", "brilliant", "outstanding",
			"toll", "super", "genial", "fantastisch", "unglaublich", "aufregend", "spannend",
			"extraordinary", "phenomenal", "spectacular", "thrilling", "exciting", "sensational",
		},
		Speed: 1.15,
		Pitch: 2,
	},
	{
		Label: SentimentPositive,
		Keywords: []string{
			"good", "great", "nice", "happy", "wonderful", "excellent", "perfect", "beautiful",
			"gut", "schön", "freude", "glücklich", "positiv", "erfolg", "gewonnen", "victory",
			"success", "joy", "pleased", "satisfied", "delighted", "content",
		},
		Speed: 1.05,
		Pitch: 1,
	},
	{
		Label: SentimentNegative,
		Keywords: []string{
			"bad", "poor", "terrible", "awful", "horrible", "disappointing", "unfortunate",
			"schlecht", "traurig", "problem", "fehler", "schwierig", "leider", "schade", "verloren",
			"fail", "failure", "difficult", "trouble", "issue", "concern",
		},
		Speed: 0.95,
		Pitch: -1,
	},
	{
		Label: SentimentAngry,
		Keywords: []string{
			"angry", "mad", "furious", "outraged", "irritated", "annoyed", "frustrated",
			"wütend", "ärgerlich", "sauer", "genervt", "frustriert", "rage", "hate",
			"disgusted", "upset", "enraged", "infuriated",
		},
		Speed: 1.1,
		Pitch: 0,
	},
	{
		Label: SentimentSad,
		Keywords: []string{
			"sad", "depressed", "hopeless", "miserable", "gloomy", "melancholy", "sorrowful",
			"traurig", "deprimiert", "hoffnungslos", "niedergeschlagen", "melancholisch",
			"grief", "mourning", "heartbroken", "dejected",
		},
		Speed: 0.9,
		Pitch: -2,
	},
}

// SentimentResult carries the classification plus the keywords that drove it.
type SentimentResult struct {
	Sentiment Sentiment
	Score     int
	Keywords  []string
}

// ClassifySentiment picks the category with the highest keyword-hit count,
// defaulting to neutral when nothing matches. Ties resolve to the first
// category in table order.
func ClassifySentiment(text string) SentimentResult {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return SentimentResult{Sentiment: SentimentNeutral}
	}

	best := SentimentResult{Sentiment: SentimentNeutral}
	for _, entry := range sentimentTable {
		score, matched := scoreKeywords(tokens, entry.Keywords)
		if score > best.Score {
			best = SentimentResult{Sentiment: entry.Label, Score: score, Keywords: matched}
		}
	}
	return best
}
