package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mixdown/internal/exportjob"
	"mixdown/internal/notifications"
	"mixdown/internal/services/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Manage export jobs for finished timelines",
	}

	cmd.AddCommand(newExportSubmitCommand(ctx))
	cmd.AddCommand(newExportStatusCommand(ctx))
	cmd.AddCommand(newExportListCommand(ctx))
	cmd.AddCommand(newExportHealthCommand(ctx))
	return cmd
}

func (c *commandContext) openJobStore() (*exportjob.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return exportjob.Open(cfg)
}

func newExportSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		title  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "submit <project-file>",
		Short: "Queue a project for export",
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
			jobs, err := ctx.openJobStore()
			if err != nil {
				return err
			}
			defer jobs.Close()

			if title == "" {
				title = args[0]
			}
			svc := export.NewService(jobs, notifications.NewService(cfg), ctx.ensureLogger())
			job, err := svc.Submit(cmd.Context(), store.Timeline(), title, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued export job %d (%s, %s)\n", job.ID, job.Title, job.Format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Export title (defaults to the project path)")
	cmd.Flags().StringVarP(&format, "format", "f", "wav", "Output format")
	return cmd
}

func newExportStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show one export job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			jobs, err := ctx.openJobStore()
			if err != nil {
				return err
			}
			defer jobs.Close()

			job, err := jobs.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			printJobTable(cmd, []*exportjob.Job{job})
			return nil
		},
	}
}

func newExportListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := ctx.openJobStore()
			if err != nil {
				return err
			}
			defer jobs.Close()

			var statuses []exportjob.Status
			if statusFilter != "" {
				status, ok := exportjob.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				statuses = append(statuses, status)
			}
			list, err := jobs.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No export jobs.")
				return nil
			}
			printJobTable(cmd, list)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only list jobs with this status")
	return cmd
}

func newExportHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Summarize the export queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := ctx.openJobStore()
			if err != nil {
				return err
			}
			defer jobs.Close()

			reset, err := jobs.ResetStuck(cmd.Context())
			if err != nil {
				return err
			}
			health, err := jobs.Health(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Queue: %s\n", jobs.Path())
			fmt.Fprintf(out, "Jobs: %d total", health.Total)
			for _, status := range []exportjob.Status{exportjob.StatusPending, exportjob.StatusExporting, exportjob.StatusCompleted, exportjob.StatusFailed} {
				if n := health.ByStatus[status]; n > 0 {
					fmt.Fprintf(out, ", %d %s", n, status)
				}
			}
			fmt.Fprintln(out)
			if reset > 0 {
				fmt.Fprintf(out, "Reset %d stuck job(s) back to pending\n", reset)
			}
			if health.LastError != "" {
				fmt.Fprintf(out, "Last failure: %s\n", health.LastError)
			}
			return nil
		},
	}
}

func printJobTable(cmd *cobra.Command, list []*exportjob.Job) {
	rows := make([][]string, 0, len(list))
	for _, job := range list {
		detail := job.ArtifactPath
		if job.Status == exportjob.StatusFailed {
			detail = job.ErrorMessage
		}
		rows = append(rows, []string{
			strconv.FormatInt(job.ID, 10),
			job.Title,
			job.Format,
			string(job.Status),
			job.UpdatedAt.Format("2006-01-02 15:04:05"),
			detail,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]column{
			{Title: "ID", Numeric: true},
			{Title: "Title"},
			{Title: "Format"},
			{Title: "Status"},
			{Title: "Updated"},
			{Title: "Detail"},
		},
		rows,
	))
}
