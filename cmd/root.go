package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "perfbench",
		Short: "Benchmark harness comparing base, human, and LLM patch variants",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "perfbench.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newIngestCmd())
	return root
}
