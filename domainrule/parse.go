// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domainrule

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	beginPrivate = "===BEGIN PRIVATE DOMAINS==="
	endPrivate   = "===END PRIVATE DOMAINS==="
)

// ParseError reports a rule line that could not be used.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("domainrule: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Parse reads rules in the text format of the public suffix list: one rule
// per line, "//" comments, "*." and "!" prefixes for wildcard and exception
// rules, and the private domains section delimited by its BEGIN and END
// comment markers.
//
// Names are lower-cased and must already be in ASCII (A-label) form. A
// normal rule and a wildcard rule for the same name merge into the wildcard,
// which also covers the name itself.
func Parse(r io.Reader) ([]Rule, error) {
	var (
		rules   []Rule
		index   = make(map[string]int)
		private bool
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.Contains(line, beginPrivate):
			private = true
			continue
		case strings.Contains(line, endPrivate):
			private = false
			continue
		case line == "", strings.HasPrefix(line, "//"):
			continue
		}
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			line = line[:i]
		}

		rule := Rule{Name: line, Private: private}
		switch {
		case strings.HasPrefix(line, "*."):
			rule.Type, rule.Name = Wildcard, line[2:]
		case strings.HasPrefix(line, "!"):
			rule.Type, rule.Name = Exception, line[1:]
		}
		if reason := checkName(rule.Name); reason != "" {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: reason}
		}
		if rule.Type == Exception && !strings.Contains(rule.Name, ".") {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "exception rule needs a parent wildcard"}
		}
		rule.Name = strings.ToLower(rule.Name)

		i, ok := index[rule.Name]
		if !ok {
			index[rule.Name] = len(rules)
			rules = append(rules, rule)
			continue
		}
		merged, ok := mergeRules(rules[i], rule)
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "conflicts with " + rules[i].String()}
		}
		rules[i] = merged
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("domainrule: reading rules: %w", err)
	}
	return rules, nil
}

func checkName(name string) string {
	switch {
	case name == "":
		return "empty rule"
	case strings.ContainsAny(name, "*!"):
		return "wildcard or exception marker inside a name"
	case name[0] == '.' || name[len(name)-1] == '.' || strings.Contains(name, ".."):
		return "empty label"
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return "non-ASCII name, convert it to A-labels first"
		}
	}
	return ""
}

func mergeRules(a, b Rule) (Rule, bool) {
	if a.Type == Exception || b.Type == Exception {
		if a.Type != b.Type {
			return Rule{}, false
		}
	}
	if b.Type == Wildcard {
		a.Type = Wildcard
	}
	a.Private = a.Private && b.Private
	return a, true
}
