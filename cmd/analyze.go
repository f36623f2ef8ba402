package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/episcope/internal/augment"
	"github.com/sells-group/episcope/internal/pipeline"
	"github.com/sells-group/episcope/internal/region"
)

var (
	analyzeUser         string
	analyzeComplaint    string
	analyzeDifferential []string
	analyzeZip          string
	analyzeState        string
	analyzeShowContext  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one surveillance analysis from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		analysis, warnings, err := env.Service.Analyze(ctx, analyzeUser, pipeline.AnalyzeRequest{
			ChiefComplaint: analyzeComplaint,
			Differential:   analyzeDifferential,
			Location: region.Location{
				ZipCode: analyzeZip,
				State:   analyzeState,
			},
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			return err
		}

		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}

		if analyzeShowContext {
			fmt.Println()
			fmt.Println(augment.BuildSurveillanceContext(analysis, analyzeDifferential))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeUser, "user", "cli", "owner id to record on the analysis")
	analyzeCmd.Flags().StringVar(&analyzeComplaint, "complaint", "", "chief complaint narrative (required)")
	analyzeCmd.Flags().StringSliceVar(&analyzeDifferential, "differential", nil, "candidate conditions, comma separated")
	analyzeCmd.Flags().StringVar(&analyzeZip, "zip", "", "5-digit zip code")
	analyzeCmd.Flags().StringVar(&analyzeState, "state", "", "state name or abbreviation")
	analyzeCmd.Flags().BoolVar(&analyzeShowContext, "context", false, "also print the prompt context block")
	_ = analyzeCmd.MarkFlagRequired("complaint")
	rootCmd.AddCommand(analyzeCmd)
}
