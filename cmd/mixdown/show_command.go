package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mixdown/internal/timeline"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project-file>",
		Short: "Display the tracks and segments of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			tl := store.Timeline()

			if asJSON {
				return writeJSON(cmd, tl)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d tracks, %.1fs at %d Hz / %d bit\n",
				args[0], len(tl.Tracks), tl.Duration, tl.SampleRate, tl.BitDepth)

			if len(tl.Tracks) == 0 {
				return nil
			}

			trackRows := make([][]string, 0, len(tl.Tracks))
			for _, track := range tl.Tracks {
				trackRows = append(trackRows, []string{
					strconv.Itoa(track.Number),
					track.Name,
					string(track.Role),
					strconv.Itoa(len(track.Segments)),
					fmt.Sprintf("%.2f", track.Volume),
					yesNo(track.Muted),
					strconv.Itoa(len(track.Automation.Points())),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{
					{Title: "#", Numeric: true},
					{Title: "Track"},
					{Title: "Role"},
					{Title: "Segments", Numeric: true},
					{Title: "Volume", Numeric: true},
					{Title: "Muted"},
					{Title: "Automation", Numeric: true},
				},
				trackRows,
			))

			var segRows [][]string
			for _, track := range tl.Tracks {
				for _, seg := range track.Segments {
					segRows = append(segRows, []string{
						track.Name,
						string(seg.Type),
						fmt.Sprintf("%.1fs", seg.Start),
						fmt.Sprintf("%.1fs", seg.Duration),
						fmt.Sprintf("%.2f", seg.Volume),
						segmentLabel(seg),
					})
				}
			}
			if len(segRows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]column{
						{Title: "Track"},
						{Title: "Type"},
						{Title: "Start", Numeric: true},
						{Title: "Duration", Numeric: true},
						{Title: "Volume", Numeric: true},
						{Title: "Content"},
					},
					segRows,
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full timeline as JSON")
	return cmd
}

func segmentLabel(seg timeline.Segment) string {
	if seg.Text != "" {
		return truncate(seg.Text, 40)
	}
	if seg.Source != "" {
		return seg.Source
	}
	return string(seg.Type)
}
