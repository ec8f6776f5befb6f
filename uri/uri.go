// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uri parses and resolves URI references as defined by RFC 3986.
//
// Parsing does not normalize: for any input s that parses completely,
// String returns s unchanged. Every optional component carries its own
// presence flag, so "http://a?" (empty query) and "http://a" (no query) are
// different values.
//
// Two deliberate departures from RFC 3986 apply to the host: IP literals
// ("[::1]") are never matched, and registered names are restricted to
// hostnames, that is dot-separated labels of letters, digits and hyphens.
package uri

import "strings"

// Authority is the authority component of a URI:
//
//	authority = [ userinfo "@" ] host [ ":" port ]
//
// The port is kept as text so leading zeros survive a round trip.
type Authority struct {
	userInfo    string
	hasUserInfo bool
	host        string
	port        string
	hasPort     bool
}

func (a *Authority) UserInfo() string  { return a.userInfo }
func (a *Authority) HasUserInfo() bool { return a.hasUserInfo }
func (a *Authority) Host() string      { return a.host }
func (a *Authority) Port() string      { return a.port }
func (a *Authority) HasPort() bool     { return a.hasPort }

func (a *Authority) SetUserInfo(s string) { a.userInfo, a.hasUserInfo = s, true }
func (a *Authority) ClearUserInfo()       { a.userInfo, a.hasUserInfo = "", false }
func (a *Authority) SetHost(s string)     { a.host = s }
func (a *Authority) SetPort(s string)     { a.port, a.hasPort = s, true }
func (a *Authority) ClearPort()           { a.port, a.hasPort = "", false }

// String returns the authority in its textual form, without the leading "//".
func (a *Authority) String() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

func (a *Authority) writeTo(b *strings.Builder) {
	if a.hasUserInfo {
		b.WriteString(a.userInfo)
		b.WriteByte('@')
	}
	b.WriteString(a.host)
	if a.hasPort {
		b.WriteByte(':')
		b.WriteString(a.port)
	}
}

// A URI is a parsed URI reference. The zero value is an empty relative
// reference and is ready to use.
type URI struct {
	scheme      string
	hasScheme   bool
	authority   *Authority
	path        string
	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
}

func (u *URI) Scheme() string     { return u.scheme }
func (u *URI) HasScheme() bool    { return u.hasScheme }
func (u *URI) HasAuthority() bool { return u.authority != nil }
func (u *URI) Path() string       { return u.path }
func (u *URI) Query() string      { return u.query }
func (u *URI) HasQuery() bool     { return u.hasQuery }
func (u *URI) Fragment() string   { return u.fragment }
func (u *URI) HasFragment() bool  { return u.hasFragment }

// Authority returns the authority component, or nil if u has none. The
// returned value is owned by u.
func (u *URI) Authority() *Authority { return u.authority }

// UserInfo returns the user information of the authority.
// It panics if u has no authority.
func (u *URI) UserInfo() string { return u.mustAuthority().userInfo }

// Host returns the host of the authority.
// It panics if u has no authority; see HostOrEmpty.
func (u *URI) Host() string { return u.mustAuthority().host }

// Port returns the port of the authority.
// It panics if u has no authority.
func (u *URI) Port() string { return u.mustAuthority().port }

// HostOrEmpty returns the host, or "" if u has no authority.
func (u *URI) HostOrEmpty() string {
	if u.authority == nil {
		return ""
	}
	return u.authority.host
}

func (u *URI) mustAuthority() *Authority {
	if u.authority == nil {
		panic("uri: authority accessed on a URI without authority")
	}
	return u.authority
}

func (u *URI) SetScheme(s string) { u.scheme, u.hasScheme = s, true }
func (u *URI) ClearScheme()       { u.scheme, u.hasScheme = "", false }

// SetAuthority replaces the authority with a copy of a.
func (u *URI) SetAuthority(a Authority) { u.authority = &a }
func (u *URI) ClearAuthority()          { u.authority = nil }

// MutableAuthority returns the authority, creating an empty one first if u
// has none.
func (u *URI) MutableAuthority() *Authority {
	if u.authority == nil {
		u.authority = new(Authority)
	}
	return u.authority
}

func (u *URI) SetPath(s string)     { u.path = s }
func (u *URI) SetQuery(s string)    { u.query, u.hasQuery = s, true }
func (u *URI) ClearQuery()          { u.query, u.hasQuery = "", false }
func (u *URI) SetFragment(s string) { u.fragment, u.hasFragment = s, true }
func (u *URI) ClearFragment()       { u.fragment, u.hasFragment = "", false }

// Clear resets u to the empty reference.
func (u *URI) Clear() { *u = URI{} }

// Swap exchanges the contents of u and v.
func (u *URI) Swap(v *URI) { *u, *v = *v, *u }

// Clone returns a deep copy of u.
func (u *URI) Clone() *URI {
	c := *u
	if u.authority != nil {
		a := *u.authority
		c.authority = &a
	}
	return &c
}

// IsAbsolute reports whether u is an absolute URI in the RFC 3986 sense:
// it has a scheme and no fragment.
func (u *URI) IsAbsolute() bool {
	return u.hasScheme && !u.hasFragment
}

// String reassembles the URI from its components, adding the delimiters of
// the present components only.
func (u *URI) String() string {
	var b strings.Builder
	if u.hasScheme {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}
	if u.authority != nil {
		b.WriteString("//")
		u.authority.writeTo(&b)
	}
	b.WriteString(u.path)
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}
