// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domainrule

import (
	"errors"
	"fmt"
	"testing"
)

func TestTableFindsEveryRule(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 64, 1000, 9000} {
		rules := make([]Rule, n)
		for i := range rules {
			rules[i] = Rule{Name: fmt.Sprintf("l%d.example%d", i, i%13), Type: Type(i % 3), Private: i%5 == 0}
		}
		tab, err := NewTable(rules)
		if err != nil {
			t.Fatalf("NewTable(%d rules): %v", n, err)
		}
		if tab.Len() != n {
			t.Fatalf("Len() = %d, want %d", tab.Len(), n)
		}
		for _, want := range rules {
			got := tab.Find(want.Name)
			if got == nil || *got != want {
				t.Fatalf("%d rules: Find(%q) = %v, want %v", n, want.Name, got, want)
			}
		}
	}
}

func TestTableCaseInsensitive(t *testing.T) {
	tab := MustNewTable([]Rule{{Name: "co.uk"}, {Name: "bar.jp", Type: Wildcard}})
	for _, name := range []string{"CO.UK", "Co.Uk", "co.uk"} {
		r, ok := tab.Get(name)
		if !ok || r.Name != "co.uk" {
			t.Errorf("Get(%q) = %v, %v", name, r, ok)
		}
	}
	if r, ok := tab.Get("BAR.jp"); !ok || r.Type != Wildcard {
		t.Errorf("Get(%q) = %v, %v", "BAR.jp", r, ok)
	}
}

func TestTableMisses(t *testing.T) {
	tab := MustNewTable([]Rule{{Name: "com"}, {Name: "net"}, {Name: "org"}})
	for _, name := range []string{"", "example.com", "co", "xn--p1ai", "comm"} {
		if r, ok := tab.Get(name); ok {
			t.Errorf("Get(%q) = %v, want no rule", name, r)
		}
		// Find may hand back a colliding rule, but never one with that name.
		if r := tab.Find(name); r != nil && r.Name == name {
			t.Errorf("Find(%q) returned a rule with that name", name)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	tab, err := NewTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	if r := tab.Find("com"); r != nil {
		t.Fatalf("Find on an empty table = %v", r)
	}
}

func TestTableDuplicate(t *testing.T) {
	_, err := NewTable([]Rule{{Name: "com"}, {Name: "COM", Type: Wildcard}})
	if !errors.Is(err, ErrDuplicateRule) {
		t.Fatalf("NewTable error = %v, want ErrDuplicateRule", err)
	}
}

func TestTableCopiesInput(t *testing.T) {
	rules := []Rule{{Name: "com"}}
	tab := MustNewTable(rules)
	rules[0].Name = "net"
	if _, ok := tab.Get("com"); !ok {
		t.Fatal("table changed with its input slice")
	}
	out := tab.Rules()
	out[0].Name = "org"
	if _, ok := tab.Get("com"); !ok {
		t.Fatal("table changed through Rules()")
	}
}

func TestLookupFunc(t *testing.T) {
	want := &Rule{Name: "jp"}
	var l Lookup = LookupFunc(func(s string) *Rule {
		if s == "jp" {
			return want
		}
		return nil
	})
	if got := l.Find("jp"); got != want {
		t.Fatalf("Find(jp) = %v", got)
	}
	if got := l.Find("com"); got != nil {
		t.Fatalf("Find(com) = %v", got)
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		r    Rule
		want string
	}{
		{Rule{Name: "jp"}, "jp"},
		{Rule{Name: "bar.jp", Type: Wildcard}, "*.bar.jp"},
		{Rule{Name: "pref.bar.jp", Type: Exception}, "!pref.bar.jp"},
	}
	for _, tc := range tests {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func BenchmarkTableFind(b *testing.B) {
	rules := make([]Rule, 8000)
	for i := range rules {
		rules[i] = Rule{Name: fmt.Sprintf("suffix%d.example", i)}
	}
	tab := MustNewTable(rules)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab.Find(rules[i%len(rules)].Name)
	}
}
