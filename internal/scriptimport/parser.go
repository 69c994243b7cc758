package scriptimport

import (
	"regexp"
	"strings"

	"mixdown/internal/services"
)

// Line is one speaker turn extracted from the script.
type Line struct {
	Speaker   string
	VoiceType string
	Text      string
}

var speakerTag = regexp.MustCompile(`(?s)<SPEAKER\s+name="([^"]*)"\s+voice_type="([^"]*)"\s*>(.*?)</SPEAKER>`)

// Parse extracts all speaker turns in document order. A script without a
// single speaker tag is malformed and rejected outright; nothing is mutated.
func Parse(script string) ([]Line, error) {
	matches := speakerTag.FindAllStringSubmatch(script, -1)
	if len(matches) == 0 {
		return nil, services.Wrap(services.ErrValidation, "import", "parse script", "no speaker tags found", nil)
	}
	lines := make([]Line, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, Line{
			Speaker:   strings.TrimSpace(m[1]),
			VoiceType: strings.TrimSpace(m[2]),
			Text:      strings.TrimSpace(m[3]),
		})
	}
	return lines, nil
}

// Speakers returns the distinct speaker names in first-seen order.
func Speakers(lines []Line) []string {
	seen := make(map[string]struct{}, len(lines))
	var order []string
	for _, line := range lines {
		if _, ok := seen[line.Speaker]; ok {
			continue
		}
		seen[line.Speaker] = struct{}{}
		order = append(order, line.Speaker)
	}
	return order
}
