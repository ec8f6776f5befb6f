// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uri

import (
	"strings"
)

// Merge resolves u as a reference against base, following RFC 3986
// section 5.2.2, and returns the target URI. Neither u nor base is modified.
//
// In non-strict mode a reference whose scheme equals the base scheme is
// treated as if it had no scheme, which is the backwards-compatible
// behavior allowed by section 5.2.2.
func (u *URI) Merge(base *URI, strict bool) *URI {
	t := new(URI)
	hasScheme := u.hasScheme && u.scheme != ""
	if hasScheme && !strict && base.hasScheme && strings.EqualFold(u.scheme, base.scheme) {
		hasScheme = false
	}

	switch {
	case hasScheme:
		t.SetScheme(u.scheme)
		t.authority = cloneAuthority(u.authority)
		t.path = RemoveDotSegments(u.path)
		t.query, t.hasQuery = u.query, u.hasQuery
	case u.authority != nil:
		t.authority = cloneAuthority(u.authority)
		t.path = RemoveDotSegments(u.path)
		t.query, t.hasQuery = u.query, u.hasQuery
	default:
		switch {
		case u.path == "":
			t.path = base.path
			if u.hasQuery {
				t.query, t.hasQuery = u.query, true
			} else {
				t.query, t.hasQuery = base.query, base.hasQuery
			}
		case u.path[0] == '/':
			t.path = RemoveDotSegments(u.path)
			t.query, t.hasQuery = u.query, u.hasQuery
		default:
			t.path = RemoveDotSegments(mergePaths(base, u.path))
			t.query, t.hasQuery = u.query, u.hasQuery
		}
		t.authority = cloneAuthority(base.authority)
	}
	if !hasScheme {
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
	}
	t.fragment, t.hasFragment = u.fragment, u.hasFragment
	return t
}

// ResolveReference parses base and ref and returns ref resolved against base.
func ResolveReference(base, ref string, strict bool) (string, error) {
	b, err := Parse(base)
	if err != nil {
		return "", err
	}
	r, err := Parse(ref)
	if err != nil {
		return "", err
	}
	return r.Merge(b, strict).String(), nil
}

// mergePaths implements the "merge" routine of RFC 3986 section 5.2.3.
func mergePaths(base *URI, ref string) string {
	if base.authority != nil && base.path == "" {
		return "/" + ref
	}
	i := strings.LastIndexByte(base.path, '/')
	if i < 0 {
		return ref
	}
	return base.path[:i+1] + ref
}

func cloneAuthority(a *Authority) *Authority {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// RemoveDotSegments removes the "." and ".." segments of path as described
// in RFC 3986 section 5.2.4.
func RemoveDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}
	in := path
	out := make([]byte, 0, len(path))
	for in != "" {
		switch {
		// A: leading "../" or "./"
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]

		// B: "/./" or a final "/."
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"

		// C: "/../" or a final "/..", dropping the last output segment
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			out = popSegment(out)
		case in == "/..":
			in = "/"
			out = popSegment(out)

		// D: a lone "." or ".."
		case in == "." || in == "..":
			in = ""

		// E: move the first segment, with its leading "/", to the output
		default:
			i := 0
			if in[0] == '/' {
				i = 1
			}
			if j := strings.IndexByte(in[i:], '/'); j >= 0 {
				i += j
			} else {
				i = len(in)
			}
			out = append(out, in[:i]...)
			in = in[i:]
		}
	}
	return string(out)
}

func popSegment(out []byte) []byte {
	i := len(out) - 1
	for i >= 0 && out[i] != '/' {
		i--
	}
	if i < 0 {
		return out[:0]
	}
	return out[:i]
}
