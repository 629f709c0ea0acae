// Package scheduler implements the scheduler command, which runs harvests
// on a cron schedule until interrupted.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/cmd/common"
	"github.com/jonesrussell/goharvest/internal/output"
)

const signalChannelBufferSize = 1

// Command returns the scheduler command.
func Command() *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run harvests on a cron schedule",
		Long: `Runs a harvest on the configured cron schedule, rewriting the output
file after every run, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return run(cmd.Context(), deps, runOnStart)
		},
	}

	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false,
		"run one harvest immediately before waiting for the schedule")

	return cmd
}

// run schedules harvests and blocks until interrupted.
func run(ctx context.Context, deps *common.CommandDeps, runOnStart bool) error {
	schedule := deps.Config.Scheduler.Schedule

	if runOnStart {
		harvestOnce(ctx, deps)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		harvestOnce(ctx, deps)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	deps.Logger.Info("Scheduler started", "schedule", schedule)
	c.Start()

	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		deps.Logger.Info("Context cancelled")
	}

	// Stop accepting new runs and wait for an in-flight run to finish.
	<-c.Stop().Done()
	deps.Logger.Info("Scheduler stopped")

	return nil
}

// harvestOnce runs one full harvest and writes the output file. Failures
// are logged, not fatal; the next scheduled run gets a fresh attempt.
func harvestOnce(ctx context.Context, deps *common.CommandDeps) {
	results, summary, err := deps.NewHarvester().Run(ctx)
	if err != nil {
		deps.Logger.WithError(err).Error("Scheduled harvest failed")
		return
	}

	writer := output.NewWriter(deps.Logger)
	if writeErr := writer.Write(results, deps.Config.Output.File); writeErr != nil {
		deps.Logger.WithError(writeErr).Error("Failed to write scheduled harvest results")
		return
	}

	deps.Logger.Info("Scheduled harvest complete",
		"run_id", summary.RunID,
		"harvested", summary.Harvested,
		"skipped", summary.Skipped,
	)
}
