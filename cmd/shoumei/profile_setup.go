package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shoumei/internal/prof"
)

// setupProfiling starts the profiles requested on the command line.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// beginRun sets up tracing and profiling for one command. The returned
// function tears both down in reverse order.
func beginRun(cmd *cobra.Command) (func(), error) {
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return nil, err
	}
	return func() {
		stopProf()
		stopTrace()
	}, nil
}
