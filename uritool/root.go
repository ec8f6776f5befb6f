// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/basekit/urikit/domainrule"
	"github.com/basekit/urikit/internal/config"
	"github.com/basekit/urikit/registry"
)

// app is the state shared by all commands.
type app struct {
	flags struct {
		config  string
		rules   string
		private bool
		verbose bool
	}

	cfg     config.Config
	logger  *slog.Logger
	table   *domainrule.Table
	source  string // where the rules came from
	matcher *registry.Matcher
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "uritool",
		Short:         "Parse and resolve URI references and find registrable domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags.config)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("rules") {
				cfg.RulesFile = a.flags.rules
			}
			if fs.Changed("private") {
				cfg.IncludePrivate = a.flags.private
			}
			return a.load(cfg, cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&a.flags.rules, "rules", "", "public suffix list file (default: built-in list)")
	pf.BoolVar(&a.flags.private, "private", false, "apply rules from the private domains section")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		a.parseCmd(),
		a.resolveCmd(),
		a.domainCmd(),
		a.sameCmd(),
		a.rulesCmd(),
		a.batchCmd(),
		a.consoleCmd(),
	)
	return root
}

// load applies cfg and builds the matcher. Logs go to logOut.
func (a *app) load(cfg config.Config, logOut io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	rules, source, err := loadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	t, err := domainrule.NewTable(rules)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	a.table, a.source = t, source
	a.matcher = registry.New(t, registry.WithLogger(a.logger))
	a.logger.Debug("loaded rules", "source", source, "rules", t.Len())
	return nil
}

func (a *app) private() registry.PrivateRegistryFilter {
	if a.cfg.IncludePrivate {
		return registry.IncludePrivateRegistries
	}
	return registry.ExcludePrivateRegistries
}

func unknownFilter(include bool) registry.UnknownRegistryFilter {
	if include {
		return registry.IncludeUnknownRegistries
	}
	return registry.ExcludeUnknownRegistries
}
