// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/basekit/urikit/domainrule"
	"github.com/basekit/urikit/registry"
	"github.com/basekit/urikit/uri"
)

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse URI...",
		Short: "Print the components of URI references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, s := range args {
				u, err := uri.Parse(s)
				if err != nil {
					var se *uri.Error
					if errors.As(err, &se) {
						fmt.Fprintf(w, "%q: syntax error at offset %d\n", s, se.Offset)
					}
					failed++
					continue
				}
				printURI(w, u)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d references did not parse", failed, len(args))
			}
			return nil
		},
	}
}

// printURI writes one line per component. Absent components print as "-",
// present but empty ones as "".
func printURI(w io.Writer, u *uri.URI) {
	field := func(name, v string, ok bool) {
		if ok {
			fmt.Fprintf(w, "  %-9s %q\n", name, v)
		} else {
			fmt.Fprintf(w, "  %-9s -\n", name)
		}
	}
	fmt.Fprintf(w, "%s\n", u)
	field("scheme", u.Scheme(), u.HasScheme())
	if auth := u.Authority(); auth != nil {
		field("userinfo", auth.UserInfo(), auth.HasUserInfo())
		field("host", auth.Host(), true)
		field("port", auth.Port(), auth.HasPort())
	} else {
		field("authority", "", false)
	}
	field("path", u.Path(), true)
	field("query", u.Query(), u.HasQuery())
	field("fragment", u.Fragment(), u.HasFragment())
}

func (a *app) resolveCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "resolve BASE REF...",
		Short: "Resolve references against a base URI",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				strict = a.cfg.StrictMerge
			}
			base, err := uri.Parse(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range args[1:] {
				ref, err := uri.Parse(s)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, ref.Merge(base, strict))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "keep a reference scheme equal to the base scheme")
	return cmd
}

// hostOf returns the host named by arg: the host of a URI if arg contains
// "://", otherwise arg itself in canonical form.
func hostOf(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		u, err := uri.Parse(arg)
		if err != nil {
			return "", err
		}
		return u.HostOrEmpty(), nil
	}
	return registry.CanonicalHost(arg)
}

// describeHost formats the registry information for host on one line.
func (a *app) describeHost(host string, unknown registry.UnknownRegistryFilter) string {
	n := a.matcher.RegistryLength(host, unknown, a.private())
	reg := ""
	if n > 0 {
		reg = host[len(host)-n:]
	}
	d := a.matcher.DomainAndRegistry(host, a.private())
	return fmt.Sprintf("%s\tlength=%d\tregistry=%q\tdomain=%q", host, n, reg, d)
}

func (a *app) domainCmd() *cobra.Command {
	var unknown bool
	cmd := &cobra.Command{
		Use:   "domain HOST_OR_URI...",
		Short: "Print the registry and registrable domain of hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("unknown") {
				unknown = a.cfg.IncludeUnknown
			}
			w := cmd.OutOrStdout()
			for _, arg := range args {
				host, err := hostOf(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, a.describeHost(host, unknownFilter(unknown)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unknown, "unknown", false, "treat the last label of unmatched hosts as a registry")
	return cmd
}

func (a *app) sameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "same A B",
		Short: "Report whether two URIs share a registrable domain or host",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			same, err := a.same(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), same)
			return nil
		},
	}
}

func (a *app) same(s1, s2 string) (bool, error) {
	u1, err := uri.Parse(s1)
	if err != nil {
		return false, err
	}
	u2, err := uri.Parse(s2)
	if err != nil {
		return false, err
	}
	return a.matcher.SameDomainOrHost(u1, u2, a.private()), nil
}

func (a *app) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the loaded rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "// %s: %d rules\n", a.source, a.table.Len())
			for _, r := range sortedRules(a.table.Rules()) {
				if r.Private {
					fmt.Fprintf(w, "%s\tprivate\n", r)
				} else {
					fmt.Fprintf(w, "%s\n", r)
				}
			}
			return nil
		},
	}
}

// sortedRules orders rules by name for people to read.
func sortedRules(rules []domainrule.Rule) []domainrule.Rule {
	c := collate.New(language.Und)
	slices.SortStableFunc(rules, func(x, y domainrule.Rule) int {
		return c.CompareString(x.Name, y.Name)
	})
	return rules
}
