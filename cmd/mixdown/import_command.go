package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mixdown/internal/config"
	"mixdown/internal/scriptimport"
	"mixdown/internal/services/scriptgen"
)

const generatePollInterval = time.Second

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		layoutName string
		prompt     string
		speakers   int
		style      string
	)

	cmd := &cobra.Command{
		Use:   "import [script-file]",
		Short: "Import a speaker-tagged script into a new timeline project",
		Long: `Import builds a new project from a speaker-tagged script. The script
comes from a file argument, or is generated by the configured script
generation service when --prompt is given instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := parseLayout(layoutName)
			if err != nil {
				return err
			}

			var script string
			switch {
			case prompt != "" && len(args) > 0:
				return fmt.Errorf("give either a script file or --prompt, not both")
			case prompt != "":
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				script, err = generateScript(cmd.Context(), cfg, prompt, speakers, style)
				if err != nil {
					return err
				}
			case len(args) > 0:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read script %s: %w", args[0], err)
				}
				script = string(data)
			default:
				return fmt.Errorf("a script file or --prompt is required")
			}

			store, err := ctx.newProject()
			if err != nil {
				return err
			}
			tracks, err := scriptimport.Import(store, script, layout)
			if err != nil {
				return err
			}

			if err := saveProject(store, outputPath); err != nil {
				return err
			}

			logger := ctx.ensureLogger()
			logger.Info("script imported",
				"component", "import",
				"speakers", len(tracks),
				"duration", store.Duration(),
				"project", outputPath)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d speakers into %s (%.1fs)\n", len(tracks), outputPath, store.Duration())
			for _, track := range tracks {
				fmt.Fprintf(out, "  %s: %d segments\n", track.Name, len(track.Segments))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "project.json", "Destination project file")
	cmd.Flags().StringVar(&layoutName, "layout", "sequential", "Turn layout policy (sequential|interleaved)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Generate the script from this prompt instead of reading a file")
	cmd.Flags().IntVar(&speakers, "speakers", 2, "Speaker count for generated scripts")
	cmd.Flags().StringVar(&style, "style", "casual", "Style hint for generated scripts")
	return cmd
}

// generateScript asks the script generation service for a script and
// resolves whichever result shape it answers with: inline text, a file the
// service wrote, or an asynchronous job to wait on.
func generateScript(ctx context.Context, cfg *config.Config, prompt string, speakers int, style string) (string, error) {
	if strings.TrimSpace(cfg.Services.ScriptGenURL) == "" {
		return "", fmt.Errorf("no scriptgen_url configured; set one in the [services] section")
	}
	client := scriptgen.NewClient(cfg.Services.ScriptGenURL,
		scriptgen.WithTimeout(time.Duration(cfg.Services.RequestTimeout)*time.Second))

	result, err := client.Generate(ctx, scriptgen.Request{
		Prompt:        prompt,
		Mode:          "dialog",
		SpeakersCount: speakers,
		Style:         style,
	})
	if err != nil {
		return "", err
	}
	if result.JobID != "" {
		if result, err = client.Await(ctx, result.JobID, generatePollInterval); err != nil {
			return "", err
		}
	}
	if result.FilePath != "" {
		data, err := os.ReadFile(result.FilePath)
		if err != nil {
			return "", fmt.Errorf("read generated script %s: %w", result.FilePath, err)
		}
		return string(data), nil
	}
	return result.Script, nil
}

func parseLayout(name string) (scriptimport.Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequential":
		return scriptimport.LayoutSequential, nil
	case "interleaved":
		return scriptimport.LayoutInterleaved, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (expected sequential or interleaved)", name)
	}
}
