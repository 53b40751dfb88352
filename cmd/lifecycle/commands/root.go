// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Lifecycle - report generator for the skill-lifecycle pipeline.
It turns the metrics and skip/error state of one pipeline run into a markdown status report.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra command tree for the lifecycle CLI.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bartekus/lifecycle/cmd/lifecycle/internal/clierr"
)

// app is the state shared by every command of one invocation.
type app struct {
	logger  *zap.Logger
	verbose bool
	now     func() time.Time
}

type option func(*app)

// withLogger skips logger construction; tests pass zap.NewNop().
func withLogger(l *zap.Logger) option { return func(a *app) { a.logger = l } }

func withClock(now func() time.Time) option { return func(a *app) { a.now = now } }

// NewRootCmd constructs the lifecycle root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}

func newRootCmd(opts ...option) *cobra.Command {
	a := &app{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	version := os.Getenv("LIFECYCLE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "lifecycle",
		Short:         "Lifecycle - reporting for the skill-lifecycle pipeline",
		Long:          "Lifecycle renders markdown status reports for skill-lifecycle pipeline runs (audit, optimize, publish, catalog).",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return clierr.Failure("initialize logger", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Usage(c.CommandPath(), err)
	})

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose (debug) logging on stderr")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Lifecycle",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lifecycle version %s\n", version)
		},
	})

	cmd.AddCommand(newReportCmd(a))
	cmd.AddCommand(newPhasesCmd())

	return cmd
}
