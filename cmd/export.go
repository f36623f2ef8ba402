package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/export"
	"github.com/sells-group/episcope/internal/store"
)

var (
	exportUser  string
	exportOut   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored analyses to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		analyses, err := env.Store.ListAnalyses(ctx, store.AnalysisFilter{
			OwnerID: exportUser,
			Limit:   exportLimit,
		})
		if err != nil {
			return err
		}

		if err := export.WriteAnalyses(exportOut, analyses); err != nil {
			return err
		}

		zap.L().Info("export written",
			zap.String("path", exportOut),
			zap.Int("analyses", len(analyses)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "filter by owner id (default all)")
	exportCmd.Flags().StringVar(&exportOut, "out", "analyses.xlsx", "output path")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum analyses to export (default 100)")
	rootCmd.AddCommand(exportCmd)
}
