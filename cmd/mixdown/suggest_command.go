package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mixdown/internal/suggest"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var (
		applyID  string
		applyAll bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <project-file>",
		Short: "Analyze the timeline and surface production suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			library, err := ctx.library()
			if err != nil {
				return err
			}

			engine := suggest.NewEngine(cfg, store, library, ctx.ensureLogger())
			list := engine.Analyze()

			out := cmd.OutOrStdout()
			if applyAll || applyID != "" {
				applied := 0
				for _, s := range list {
					if !applyAll && !strings.HasPrefix(s.ID, applyID) {
						continue
					}
					if err := engine.Apply(s.ID); err != nil {
						return err
					}
					fmt.Fprintf(out, "Applied: %s %s\n", s.Icon, s.Title)
					applied++
				}
				if applied == 0 && applyID != "" {
					return fmt.Errorf("no suggestion with id %s", applyID)
				}
				if applied > 0 {
					if err := saveProject(store, args[0]); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "Applied %d suggestion(s), %d remaining\n", applied, len(engine.Active()))
				return nil
			}

			if asJSON {
				type suggestionReport struct {
					ID          string           `json:"id"`
					Category    suggest.Category `json:"category"`
					Priority    suggest.Priority `json:"priority"`
					Title       string           `json:"title"`
					Description string           `json:"description"`
				}
				reports := make([]suggestionReport, 0, len(list))
				for _, s := range list {
					reports = append(reports, suggestionReport{
						ID:          s.ID,
						Category:    s.Category,
						Priority:    s.Priority,
						Title:       s.Title,
						Description: s.Description,
					})
				}
				return writeJSON(cmd, reports)
			}

			if len(list) == 0 {
				fmt.Fprintln(out, "No suggestions. The timeline looks well produced.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, s := range list {
				rows = append(rows, []string{
					shortID(s.ID),
					string(s.Priority),
					string(s.Category),
					s.Icon + " " + s.Title,
					s.Description,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{Title: "ID"}, {Title: "Priority"}, {Title: "Category"}, {Title: "Suggestion"}, {Title: "Details"}},
				rows,
			))
			fmt.Fprintf(out, "%d suggestion(s). Apply one with --apply <id> or all with --apply-all.\n", len(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&applyID, "apply", "", "Apply the suggestion with this ID and save the project")
	cmd.Flags().BoolVar(&applyAll, "apply-all", false, "Apply every suggestion and save the project")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

// shortID trims a UUID to its first block for table display. Apply matches
// by prefix, so the short form works on the command line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
