package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	dump "github.com/codecity-go/heapdump"
	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/report"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var specPath, outDir, reportPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a dump against the demo heap and write the declared files",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.NewString()
			slog.Info("dump starting", "run_id", runID, "spec", specPath, "out", outDir)

			data, err := os.ReadFile(specPath)
			if err != nil {
				return err
			}
			spec, err := config.LoadSpec(data)
			if err != nil {
				slog.Error("config spec rejected", "run_id", runID, "error", err)
				return err
			}

			opener := newDirOpener(outDir)
			ip := demoInterpreter()
			runErr := dump.Dump(ip, spec, opener)

			run := &report.Run{RunID: runID, Files: opener.stats, Err: runErr}
			if reportPath != "" {
				if err := writeReport(reportPath, run); err != nil {
					slog.Warn("failed to write report", "run_id", runID, "error", err)
				}
			}

			if runErr != nil {
				slog.Error("dump failed", "run_id", runID, "error", runErr)
				return runErr
			}
			slog.Info("dump completed", "run_id", runID, "files", len(opener.stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to the config spec YAML file")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the declared files into")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write an HTML diagnostics report")
	cmd.MarkFlagRequired("spec")
	return cmd
}

func writeReport(path string, run *report.Run) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.Render(f, run)
}
