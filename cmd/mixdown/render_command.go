package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mixdown/internal/render"
	"mixdown/internal/services/tts"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		provider string
		voice    string
	)

	cmd := &cobra.Command{
		Use:   "render <project-file>",
		Short: "Render pending speech segments through the TTS service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Services.TTSURL) == "" {
				return fmt.Errorf("no tts_url configured; set one in the [services] section")
			}
			store, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}

			client := tts.NewClient(cfg.Services.TTSURL,
				tts.WithTimeout(time.Duration(cfg.Services.RequestTimeout)*time.Second))
			renderer := render.New(client, store, ctx.ensureLogger())
			rendered, renderErr := renderer.RenderPending(cmd.Context(), render.Options{
				Provider: provider,
				Voice:    voice,
			})
			// Partial progress is still real rendered audio; keep it even
			// when a later segment failed.
			if rendered > 0 {
				if err := saveProject(store, args[0]); err != nil {
					return err
				}
			}
			if renderErr != nil {
				return renderErr
			}
			if rendered == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to render; all speech segments are completed.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d segment(s), %.1fs total\n", rendered, store.Duration())
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "TTS provider passed to the service")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice override (defaults to each segment's character)")
	return cmd
}
