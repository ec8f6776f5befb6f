// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uri

import "testing"

func TestSetters(t *testing.T) {
	var u URI
	if got := u.String(); got != "" {
		t.Fatalf("zero URI String() = %q, want empty", got)
	}
	u.SetScheme("https")
	a := u.MutableAuthority()
	a.SetHost("example.com")
	a.SetPort("0443")
	a.SetUserInfo("me")
	u.SetPath("/x")
	u.SetQuery("")
	u.SetFragment("top")
	if got, want := u.String(), "https://me@example.com:0443/x?#top"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	a.ClearUserInfo()
	a.ClearPort()
	u.ClearQuery()
	u.ClearFragment()
	if got, want := u.String(), "https://example.com/x"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	u.ClearAuthority()
	u.ClearScheme()
	if got, want := u.String(), "/x"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	u.SetAuthority(Authority{host: "h"})
	if !u.HasAuthority() || u.Host() != "h" {
		t.Fatalf("SetAuthority: host %q", u.HostOrEmpty())
	}
}

func TestClearAndSwap(t *testing.T) {
	var u, v URI
	if !u.Parse("http://a/b?c#d") || !v.Parse("rel") {
		t.Fatal("Parse failed")
	}
	u.Swap(&v)
	if u.String() != "rel" || v.String() != "http://a/b?c#d" {
		t.Fatalf("after Swap: u=%q v=%q", u.String(), v.String())
	}
	v.Clear()
	if v.String() != "" || v.HasScheme() || v.HasAuthority() || v.HasQuery() || v.HasFragment() {
		t.Fatalf("after Clear: %q", v.String())
	}
}

func TestClone(t *testing.T) {
	u, err := Parse("http://u@h:1/p")
	if err != nil {
		t.Fatal(err)
	}
	c := u.Clone()
	c.MutableAuthority().SetHost("other")
	if u.Host() != "h" {
		t.Fatalf("Clone shares the authority: host %q", u.Host())
	}
	if c.String() != "http://u@other:1/p" {
		t.Fatalf("clone String() = %q", c.String())
	}
}

func TestIsAbsolute(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://a/b", true},
		{"http://a/b#f", false},
		{"urn:x", true},
		{"//a/b", false},
		{"b", false},
	}
	for _, tc := range tests {
		u, err := Parse(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := u.IsAbsolute(); got != tc.want {
			t.Errorf("IsAbsolute(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAuthorityAccessorPanics(t *testing.T) {
	for name, f := range map[string]func(*URI) string{
		"UserInfo": (*URI).UserInfo,
		"Host":     (*URI).Host,
		"Port":     (*URI).Port,
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on a URI without authority did not panic", name)
				}
			}()
			u, _ := Parse("mailto:x@y")
			f(u)
		}()
	}
	u, _ := Parse("mailto:x@y")
	if got := u.HostOrEmpty(); got != "" {
		t.Errorf("HostOrEmpty() = %q, want empty", got)
	}
}
