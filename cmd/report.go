package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportUser string
	reportID   string
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a persisted analysis to PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		doc, filename, err := env.Service.Report(ctx, reportUser, reportID)
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = filename
		}
		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", out)
		}

		zap.L().Info("report written", zap.String("path", out), zap.Int("bytes", len(doc)))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportUser, "user", "cli", "owner id the analysis was recorded under")
	reportCmd.Flags().StringVar(&reportID, "id", "", "analysis UUID (required)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output path (default surveillance-report-<id>.pdf)")
	_ = reportCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(reportCmd)
}
