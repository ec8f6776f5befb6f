// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charclass holds the byte classification table shared by the URI
// grammar. The table is built once per process and is read-only afterwards.
package charclass

import "sync"

// A Class is a set of byte classes. Compound classes are unions of the
// primitive ones, so Table.Is reports membership in any of the bits given.
type Class uint16

const (
	Alpha Class = 1 << iota
	Digit
	Hex
	Unreserved // ALPHA / DIGIT / "-" / "." / "_" / "~"
	SubDelims  // "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
	Scheme     // ALPHA / DIGIT / "+" / "-" / "."
	UserInfo   // unreserved / sub-delims / ":"
	RegName    // unreserved / sub-delims
	HostLabel  // ALPHA / DIGIT / "-"
	PChar      // unreserved / sub-delims / ":" / "@"
	Query      // pchar / "/" / "?"; fragments use the same set
	Segment    // segment-nz-nc: unreserved / sub-delims / "@"

	Fragment = Query
)

// Table maps every byte value to the classes it belongs to.
type Table [256]Class

// Is reports whether c belongs to any class in cls.
func (t *Table) Is(c byte, cls Class) bool {
	return t[c]&cls != 0
}

var get = sync.OnceValue(build)

// Get returns the process-wide table, building it on first use.
func Get() *Table {
	return get()
}

func build() *Table {
	t := new(Table)
	set := func(cls Class, chars string) {
		for i := 0; i < len(chars); i++ {
			t[chars[i]] |= cls
		}
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= Alpha
		t[c-'a'+'A'] |= Alpha
	}
	for c := '0'; c <= '9'; c++ {
		t[c] |= Digit | Hex
	}
	set(Hex, "abcdefABCDEF")

	for c := 0; c < len(t); c++ {
		cls := t[c]
		if cls&(Alpha|Digit) == 0 {
			continue
		}
		t[c] |= Unreserved | Scheme | HostLabel
	}
	set(Unreserved, "-._~")
	set(SubDelims, "!$&'()*+,;=")
	set(Scheme, "+-.")
	set(HostLabel, "-")

	for c := 0; c < len(t); c++ {
		if t[c]&(Unreserved|SubDelims) != 0 {
			t[c] |= UserInfo | RegName | PChar | Query | Segment
		}
	}
	set(UserInfo, ":")
	set(PChar|Query, ":@")
	set(Segment, "@")
	set(Query, "/?")
	return t
}
