// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/basekit/urikit/uri"
)

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Classify one URI per line from FILE or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			lines, err := readLines(in)
			if err != nil {
				return err
			}
			results, err := a.classify(cmd.Context(), lines)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(w, r)
			}
			return nil
		},
	}
}

// readLines returns the non-blank lines of r with surrounding space removed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// classify evaluates lines with up to cfg.Workers goroutines. Results are in
// input order.
func (a *app) classify(ctx context.Context, lines []string) ([]string, error) {
	results := make([]string, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.classifyLine(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("batch done", "lines", len(lines), "workers", a.cfg.Workers)
	return results, nil
}

func (a *app) classifyLine(line string) string {
	u, err := uri.Parse(line)
	if err != nil {
		return fmt.Sprintf("%s\terror=%q", line, err)
	}
	host := u.HostOrEmpty()
	if host == "" {
		return fmt.Sprintf("%s\thost=-", line)
	}
	d := a.matcher.DomainAndRegistry(strings.ToLower(host), a.private())
	return fmt.Sprintf("%s\thost=%q\tdomain=%q", line, host, d)
}
