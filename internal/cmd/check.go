package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pthm/uniformcheck/internal/analyzer"
	"github.com/pthm/uniformcheck/internal/config"
	"github.com/pthm/uniformcheck/internal/fit"
	"github.com/pthm/uniformcheck/internal/metrics"
	"github.com/pthm/uniformcheck/internal/reporter"
	"github.com/pthm/uniformcheck/internal/tally"
	"github.com/pthm/uniformcheck/internal/ui"
	"github.com/pthm/uniformcheck/internal/version"
	"github.com/pthm/uniformcheck/pkg/logger"
)

// stdinName is the input argument that selects standard input
const stdinName = "-"

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	input := stdinName
	if len(args) > 0 {
		input = args[0]
	}

	// Stage 1: configuration and logging
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if verbose && cfg.LogLevel != "debug" {
		_ = logger.SetLevelString("info")
	}

	runID := uuid.NewString()
	log := logger.Named("uniformcheck").With(logger.String("run_id", runID))

	backend, err := fit.BackendByName(cfg.Backend)
	if err != nil {
		return err
	}

	u := ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format)
	rep, err := reporter.New(cfg.Format, cmd.OutOrStdout(), u, reporter.Meta{
		RunID:   runID,
		Version: version.Short(),
		Input:   input,
	})
	if err != nil {
		return err
	}

	in, closeInput, err := openInput(cmd, input)
	if err != nil {
		return err
	}
	defer closeInput()

	// Stage 2: analysis
	a := analyzer.New(backend, log)
	a.SmallExpected = cfg.SmallExpected

	progress := u.StartProgress()
	if progress != nil {
		a.Progress = progress
	}

	result, runErr := a.Run(ctx, in)
	progress.Done(runErr)

	noResponses := errors.Is(runErr, tally.ErrNoResponses)
	if runErr != nil && !noResponses {
		return runErr
	}

	// Stage 3: report
	if err := rep.Report(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(result)
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Info(ctx, "metrics written", logger.String("path", cfg.MetricsFile))
	}

	if noResponses {
		return runErr
	}
	return nil
}

// applyFlags lets explicitly set flags win over file and env configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == stdinName {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
