// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uri

import "testing"

const rfcBase = "http://a/b/c/d;p?q"

// Examples from RFC 3986 sections 5.4.1 and 5.4.2.
var resolveTests = []struct {
	ref  string
	want string
}{
	{"g:h", "g:h"},
	{"g", "http://a/b/c/g"},
	{"./g", "http://a/b/c/g"},
	{"g/", "http://a/b/c/g/"},
	{"/g", "http://a/g"},
	{"//g", "http://g"},
	{"?y", "http://a/b/c/d;p?y"},
	{"g?y", "http://a/b/c/g?y"},
	{"#s", "http://a/b/c/d;p?q#s"},
	{"g#s", "http://a/b/c/g#s"},
	{"g?y#s", "http://a/b/c/g?y#s"},
	{";x", "http://a/b/c/;x"},
	{"g;x", "http://a/b/c/g;x"},
	{"g;x?y#s", "http://a/b/c/g;x?y#s"},
	{"", "http://a/b/c/d;p?q"},
	{".", "http://a/b/c/"},
	{"./", "http://a/b/c/"},
	{"..", "http://a/b/"},
	{"../", "http://a/b/"},
	{"../g", "http://a/b/g"},
	{"../..", "http://a/"},
	{"../../", "http://a/"},
	{"../../g", "http://a/g"},

	{"../../../g", "http://a/g"},
	{"../../../../g", "http://a/g"},
	{"/./g", "http://a/g"},
	{"/../g", "http://a/g"},
	{"g.", "http://a/b/c/g."},
	{".g", "http://a/b/c/.g"},
	{"g..", "http://a/b/c/g.."},
	{"..g", "http://a/b/c/..g"},
	{"./../g", "http://a/b/g"},
	{"./g/.", "http://a/b/c/g/"},
	{"g/./h", "http://a/b/c/g/h"},
	{"g/../h", "http://a/b/c/h"},
	{"g;x=1/./y", "http://a/b/c/g;x=1/y"},
	{"g;x=1/../y", "http://a/b/c/y"},
	{"g?y/./x", "http://a/b/c/g?y/./x"},
	{"g?y/../x", "http://a/b/c/g?y/../x"},
	{"g#s/./x", "http://a/b/c/g#s/./x"},
	{"g#s/../x", "http://a/b/c/g#s/../x"},
}

func TestMerge(t *testing.T) {
	var base URI
	if !base.Parse(rfcBase) {
		t.Fatalf("Parse(%q) failed", rfcBase)
	}
	for _, tc := range resolveTests {
		var ref URI
		if !ref.Parse(tc.ref) {
			t.Errorf("Parse(%q) failed", tc.ref)
			continue
		}
		if got := ref.Merge(&base, true).String(); got != tc.want {
			t.Errorf("Merge(%q, %q) = %q, want %q", rfcBase, tc.ref, got, tc.want)
		}
	}
	if got := base.String(); got != rfcBase {
		t.Fatalf("Merge modified the base: %q", got)
	}
}

func TestMergeSameScheme(t *testing.T) {
	tests := []struct {
		ref    string
		strict bool
		want   string
	}{
		{"http:g", true, "http:g"},
		{"http:g", false, "http://a/b/c/g"},
		{"HTTP:g", false, "http://a/b/c/g"},
		{"ftp:g", false, "ftp:g"},
		{"http://x/./y/../z", false, "http://x/z"},
	}
	for _, tc := range tests {
		got, err := ResolveReference(rfcBase, tc.ref, tc.strict)
		if err != nil {
			t.Fatalf("ResolveReference(%q, strict=%v): %v", tc.ref, tc.strict, err)
		}
		if got != tc.want {
			t.Errorf("ResolveReference(%q, strict=%v) = %q, want %q", tc.ref, tc.strict, got, tc.want)
		}
	}
}

func TestMergeEdgeCases(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		// The base fragment is never inherited.
		{"http://a/b#f", "c", "http://a/c"},
		{"http://a/b?q#f", "", "http://a/b?q"},
		// An authority with an empty path merges under "/".
		{"http://a", "g", "http://a/g"},
		{"http://a?q", "?", "http://a?"},
		// Without authority or "/" the reference path is used as is.
		{"foo:", "g", "foo:g"},
		{"foo:bar", "g/../h", "foo:/h"},
		{"http://a/b/c", "//u@h:81/p/../q?r#s", "http://u@h:81/q?r#s"},
	}
	for _, tc := range tests {
		got, err := ResolveReference(tc.base, tc.ref, true)
		if err != nil {
			t.Fatalf("ResolveReference(%q, %q): %v", tc.base, tc.ref, err)
		}
		if got != tc.want {
			t.Errorf("ResolveReference(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}

func TestResolveReferenceError(t *testing.T) {
	if _, err := ResolveReference("http://a_b/", "g", true); err == nil {
		t.Error("ResolveReference with a bad base succeeded")
	}
	if _, err := ResolveReference(rfcBase, "g h", true); err == nil {
		t.Error("ResolveReference with a bad reference succeeded")
	}
}

func TestRemoveDotSegments(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{".", ""},
		{"..", ""},
		{"/.", "/"},
		{"/..", "/"},
		{"/a/b/c/./../../g", "/a/g"},
		{"mid/content=5/../6", "mid/6"},
		{"a/./b", "a/b"},
		{"../a", "a"},
		{"./a", "a"},
		{"/a/..", "/"},
		{"a/..", "/"},
		{"/a/b/", "/a/b/"},
		{"a/../..//b", "//b"},
		{"/a/.b/..c/", "/a/.b/..c/"},
		{"no/dots/here", "no/dots/here"},
	}
	for _, tc := range tests {
		got := RemoveDotSegments(tc.in)
		if got != tc.want {
			t.Errorf("RemoveDotSegments(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if again := RemoveDotSegments(got); again != got {
			t.Errorf("RemoveDotSegments is not idempotent on %q: %q then %q", tc.in, got, again)
		}
	}
}
