// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/basekit/urikit/domainrule"
)

// defaultRules is a small excerpt of the public suffix list, used when no
// rules file is configured.
//
//go:embed default_rules.dat
var defaultRules string

const builtinSource = "built-in"

// loadRules parses the rules file at path, or the built-in rules if path is
// empty. It also returns a name for the source.
func loadRules(path string) ([]domainrule.Rule, string, error) {
	if path == "" {
		rules, err := domainrule.Parse(strings.NewReader(defaultRules))
		return rules, builtinSource, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	rules, err := domainrule.Parse(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return rules, path, nil
}
