package cmd

import (
	"os"

	"github.com/signalnine/perfbench/internal/config"
	"github.com/signalnine/perfbench/internal/report"
	"github.com/signalnine/perfbench/internal/result"
	"github.com/spf13/cobra"
)

var flagFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stored benchmark results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store := result.Load(cfg.ResultsPath)
			return report.Generate(store.Records(), flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
