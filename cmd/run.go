package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/config"
	"github.com/signalnine/perfbench/internal/docker"
	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/result"
	"github.com/signalnine/perfbench/internal/runner"
	"github.com/spf13/cobra"
)

var (
	flagOnly     []string
	flagMode     string
	flagParallel int
	flagTimeout  int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the benchmark across the task catalog",
		RunE:  runBenchmark,
	}
	cmd.Flags().StringSliceVar(&flagOnly, "only", nil, "run only these task ids")
	cmd.Flags().StringVar(&flagMode, "mode", "resume", "run mode (fresh, resume)")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent tasks")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "per-variant timeout in minutes (overrides config)")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagTimeout > 0 {
		cfg.TimeoutMinutes = flagTimeout
	}

	tasks, err := catalog.Load(cfg.TasksDir)
	if err != nil {
		return err
	}

	var store *result.Store
	switch flagMode {
	case "fresh":
		store = result.Empty(cfg.ResultsPath)
	case "resume":
		store = result.Load(cfg.ResultsPath)
	default:
		return fmt.Errorf("unknown mode %q (want fresh or resume)", flagMode)
	}

	orch := &runner.Orchestrator{
		Tasks:     tasks,
		Env:       docker.Engine{},
		Store:     store,
		Extractor: extract.Default(),
		Timeout:   time.Duration(cfg.TimeoutMinutes) * time.Minute,
		Parallel:  flagParallel,
	}
	return orch.Run(context.Background(), flagOnly)
}
