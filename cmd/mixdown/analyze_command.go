package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mixdown/internal/analysis"
	"mixdown/internal/timeline"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <project-file>",
		Short: "Detect themes and per-segment sentiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			tl := store.Timeline()
			themes := analysis.DetectThemes(analysis.CollectTexts(tl))

			type segmentReport struct {
				Track     string             `json:"track"`
				Start     float64            `json:"start"`
				Text      string             `json:"text"`
				Sentiment analysis.Sentiment `json:"sentiment"`
				Score     int                `json:"score"`
			}
			var segments []segmentReport
			for _, track := range tl.Tracks {
				if track.Role != timeline.RoleSpeech {
					continue
				}
				for _, seg := range track.Segments {
					if strings.TrimSpace(seg.Text) == "" {
						continue
					}
					result := analysis.ClassifySentiment(seg.Text)
					segments = append(segments, segmentReport{
						Track:     track.Name,
						Start:     seg.Start,
						Text:      seg.Text,
						Sentiment: result.Sentiment,
						Score:     result.Score,
					})
				}
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"themes":   themes,
					"segments": segments,
				})
			}

			out := cmd.OutOrStdout()
			titler := cases.Title(language.English)

			if len(themes) == 0 {
				fmt.Fprintln(out, "No themes detected.")
			} else {
				rows := make([][]string, 0, len(themes))
				for _, theme := range themes {
					rows = append(rows, []string{
						titler.String(theme.Label),
						strconv.Itoa(theme.Score),
						theme.Ambient,
						strings.Join(theme.Keywords, ", "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{{Title: "Theme"}, {Title: "Score", Numeric: true}, {Title: "Ambient"}, {Title: "Matched Keywords"}},
					rows,
				))
			}

			if len(segments) > 0 {
				rows := make([][]string, 0, len(segments))
				for _, seg := range segments {
					rows = append(rows, []string{
						seg.Track,
						fmt.Sprintf("%.1fs", seg.Start),
						string(seg.Sentiment),
						truncate(seg.Text, 48),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{{Title: "Track"}, {Title: "Start", Numeric: true}, {Title: "Sentiment"}, {Title: "Text"}},
					rows,
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
