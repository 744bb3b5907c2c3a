package cmd

import (
	"fmt"

	"github.com/signalnine/perfbench/internal/config"
	"github.com/signalnine/perfbench/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	flagCSV string
	flagOut string
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Convert a CSV task export into catalog YAML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			outDir := flagOut
			if outDir == "" {
				outDir = cfg.TasksDir
			}
			n, err := ingest.Convert(flagCSV, outDir)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d task file(s) to %s\n", n, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCSV, "csv", "", "path to the CSV export")
	cmd.Flags().StringVar(&flagOut, "out", "", "output directory (defaults to tasks_dir)")
	cmd.MarkFlagRequired("csv")
	return cmd
}
