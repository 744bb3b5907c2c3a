package cmd

import (
	"fmt"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog tasks and their variant availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			tasks, err := catalog.Load(cfg.TasksDir)
			if err != nil {
				return err
			}
			fmt.Printf("Tasks (%d):\n", len(tasks))
			for _, t := range tasks {
				llm := "llm ready"
				if !t.Docker.LLMAvailable() {
					llm = "llm pending"
				}
				fmt.Printf("  - %s [human: %s, %s]\n", t.ID, t.Status["human"], llm)
			}
			return nil
		},
	}
}
