// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/basekit/urikit/uri"
)

const prompt = "uri> "

type command func(*console, []string) error

var commands = map[string]command{
	"parse":   (*console).cmdParse,
	"base":    (*console).cmdBase,
	"resolve": (*console).cmdResolve,
	"domain":  (*console).cmdDomain,
	"same":    (*console).cmdSame,
	"quit":    (*console).cmdQuit,
}

// console is the interactive console's state.
type console struct {
	app  *app
	term *term.Terminal

	base *uri.URI // nil until set
}

func (a *app) consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start an interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return errors.New("console: standard input is not a terminal")
			}
			oldState, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer term.Restore(fd, oldState)

			var screen = struct {
				io.Reader
				io.Writer
			}{os.Stdin, os.Stdout}
			return a.newConsole(screen).run()
		},
	}
}

func (a *app) newConsole(rw io.ReadWriter) *console {
	c := &console{app: a, term: term.NewTerminal(rw, prompt)}
	c.term.AutoCompleteCallback = func(line string, pos int, key rune) (newLine string, newPos int, ok bool) {
		if key != '\t' {
			return
		}
		name, _, ok := lookupCommand(line)
		if !ok {
			return
		}
		return name, len(name), true
	}
	return c
}

func (c *console) logf(format string, args ...any) {
	fmt.Fprintf(c.term, format+"\n", args...)
}

// run reads commands until quit or end of input.
func (c *console) run() error {
	for {
		line, err := c.term.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("terminal.ReadLine: %v", err)
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		cmd, args := f[0], f[1:]
		if _, fn, ok := lookupCommand(cmd); ok {
			err = fn(c, args)
		} else {
			c.logf("Unknown command %q", line)
		}
		if err == errExitApp {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// lookupCommand finds the command named by prefix, which may be any
// unambiguous prefix of its name.
func lookupCommand(prefix string) (name string, c command, ok bool) {
	prefix = strings.ToLower(prefix)
	if c, ok = commands[prefix]; ok {
		return prefix, c, ok
	}

	for full, candidate := range commands {
		if strings.HasPrefix(full, prefix) {
			if c != nil {
				return "", nil, false // ambiguous
			}
			c = candidate
			name = full
		}
	}
	return name, c, c != nil
}

var errExitApp = errors.New("internal sentinel error value to quit the console reading loop")

func (c *console) cmdQuit(args []string) error {
	if len(args) > 0 {
		c.logf("the QUIT command takes no argument")
		return nil
	}
	return errExitApp
}

func (c *console) cmdParse(args []string) error {
	if len(args) != 1 {
		c.logf("usage: parse URI")
		return nil // nil means don't end the program
	}
	u, err := uri.Parse(args[0])
	if err != nil {
		c.logf("%v", err)
		return nil
	}
	printURI(c.term, u)
	return nil
}

func (c *console) cmdBase(args []string) error {
	switch len(args) {
	case 0:
		if c.base == nil {
			c.logf("no base URI")
		} else {
			c.logf("base %s", c.base)
		}
		return nil
	case 1:
	default:
		c.logf("usage: base [URI]")
		return nil
	}
	u, err := uri.Parse(args[0])
	if err != nil {
		c.logf("%v", err)
		return nil
	}
	if !u.HasScheme() {
		c.logf("base URI %q has no scheme", args[0])
		return nil
	}
	c.base = u
	return nil
}

func (c *console) cmdResolve(args []string) error {
	if len(args) != 1 {
		c.logf("usage: resolve REF")
		return nil
	}
	if c.base == nil {
		c.logf("set a base URI first")
		return nil
	}
	ref, err := uri.Parse(args[0])
	if err != nil {
		c.logf("%v", err)
		return nil
	}
	c.logf("%s", ref.Merge(c.base, c.app.cfg.StrictMerge))
	return nil
}

func (c *console) cmdDomain(args []string) error {
	if len(args) != 1 {
		c.logf("usage: domain HOST_OR_URI")
		return nil
	}
	host, err := hostOf(args[0])
	if err != nil {
		c.logf("%v", err)
		return nil
	}
	c.logf("%s", c.app.describeHost(host, unknownFilter(c.app.cfg.IncludeUnknown)))
	return nil
}

func (c *console) cmdSame(args []string) error {
	if len(args) != 2 {
		c.logf("usage: same A B")
		return nil
	}
	same, err := c.app.same(args[0], args[1])
	if err != nil {
		c.logf("%v", err)
		return nil
	}
	c.logf("%v", same)
	return nil
}
