package cmd

import (
	"fmt"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check task definitions for problems before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			tasks, err := catalog.Load(cfg.TasksDir)
			if err != nil {
				return err
			}
			issues := catalog.Lint(tasks)
			if len(issues) == 0 {
				fmt.Printf("%d tasks OK\n", len(tasks))
				return nil
			}
			for _, issue := range issues {
				fmt.Println(issue)
			}
			return fmt.Errorf("%d issue(s) across %d tasks", len(issues), len(tasks))
		},
	}
}
