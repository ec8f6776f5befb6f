// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domainrule describes public suffix rules and the lookup tables
// that serve them to the registry matcher.
package domainrule

// Type is the kind of a rule.
type Type uint8

const (
	// Normal is a plain suffix such as "com" or "co.uk".
	Normal Type = iota
	// Wildcard makes every label directly under Name a suffix. The list
	// entry "*.bar.jp" is stored with Name "bar.jp".
	Wildcard
	// Exception cancels a wildcard for one name. The list entry
	// "!pref.bar.jp" is stored with Name "pref.bar.jp".
	Exception
)

func (t Type) String() string {
	switch t {
	case Normal:
		return "normal"
	case Wildcard:
		return "wildcard"
	case Exception:
		return "exception"
	}
	return "unknown"
}

// Rule is one entry of a public suffix list.
type Rule struct {
	Name    string
	Type    Type
	Private bool // from the private domains section of the list
}

// String returns the rule in list syntax, for example "*.bar.jp".
func (r Rule) String() string {
	switch r.Type {
	case Wildcard:
		return "*." + r.Name
	case Exception:
		return "!" + r.Name
	}
	return r.Name
}

// Lookup finds the rule for a candidate suffix.
//
// Find may return a rule whose Name differs from candidate: implementations
// backed by a perfect hash are only collision-free over their own keys.
// Callers compare the returned Name with candidate, ignoring ASCII case.
type Lookup interface {
	Find(candidate string) *Rule
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(candidate string) *Rule

func (f LookupFunc) Find(candidate string) *Rule { return f(candidate) }
