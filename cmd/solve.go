package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carrental/app"
	"github.com/kilianp07/carrental/config"
	"github.com/kilianp07/carrental/infra/logger"
)

var solveFlags struct {
	modified  bool
	gamma     float64
	epsilon   float64
	color     bool
	exportDir string
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run policy iteration and print the policies and final values",
	RunE:  runSolve,
}

func init() {
	addSolveFlags(solveCmd)
	rootCmd.AddCommand(solveCmd)
}

func addSolveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&solveFlags.modified, "modified", true, "free shuttle and storage fee rewards")
	f.Float64Var(&solveFlags.gamma, "gamma", 0.9, "discount factor")
	f.Float64Var(&solveFlags.epsilon, "epsilon", 0.1, "policy evaluation threshold")
	f.BoolVar(&solveFlags.color, "color", false, "colour policy grids")
	f.StringVar(&solveFlags.exportDir, "export-dir", "", "directory for exported result files")
}

// applySolveFlags overrides cfg with the flags set on the command line.
func applySolveFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("modified") {
		cfg.Solver.Modified = solveFlags.modified
	}
	if f.Changed("gamma") {
		cfg.Solver.Gamma = solveFlags.gamma
	}
	if f.Changed("epsilon") {
		cfg.Solver.Epsilon = solveFlags.epsilon
	}
	if f.Changed("export-dir") {
		cfg.Export.Dir = solveFlags.exportDir
	}
	return cfg.Validate()
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applySolveFlags(cmd, cfg); err != nil {
		return err
	}
	svc, err := app.New(cfg, cmd.OutOrStdout(), solveFlags.color)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	_, err = svc.Run(ctx)
	return err
}
