package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mixdown/internal/notifications"
	"mixdown/internal/produce"
)

func newProduceCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "produce <project-file>",
		Short: "Run the full auto-production pipeline over a project",
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

			if title == "" {
				title = args[0]
			}

			producer := produce.New(cfg, store, library, notifications.NewService(cfg), ctx.ensureLogger())

			out := cmd.OutOrStdout()
			interactive := isatty.IsTerminal(os.Stdout.Fd())
			producer.OnProgress(func(p produce.Progress) {
				if interactive {
					fmt.Fprintf(out, "\r[%d/%d] %-40s", p.Step, p.Total, p.Name)
				} else {
					fmt.Fprintf(out, "[%d/%d] %s\n", p.Step, p.Total, p.Name)
				}
			})

			if err := producer.Run(cmd.Context(), title); err != nil {
				if interactive {
					fmt.Fprintln(out)
				}
				return err
			}
			if interactive {
				fmt.Fprintln(out)
			}

			if err := saveProject(store, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Produced %s: %d tracks, %.1fs total\n",
				title, len(store.Timeline().Tracks), store.Duration())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Episode title used in notifications")
	return cmd
}
