// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uri

import (
	"errors"
	"fmt"

	"github.com/basekit/urikit/internal/charclass"
)

// ErrSyntax is wrapped by the errors returned from Parse.
var ErrSyntax = errors.New("invalid URI syntax")

// Error reports where a URI reference stopped matching the grammar.
type Error struct {
	Input  string
	Offset int // bytes consumed before the mismatch
}

func (e *Error) Error() string {
	return fmt.Sprintf("uri: invalid syntax at offset %d in %q", e.Offset, e.Input)
}

func (e *Error) Unwrap() error { return ErrSyntax }

// Parse parses s as a URI reference. Unlike (*URI).Parse it allocates the
// result and reports failures as *Error.
func Parse(s string) (*URI, error) {
	u := new(URI)
	if n := u.parse(s); n != len(s) {
		return nil, &Error{Input: s, Offset: n}
	}
	return u, nil
}

// Parse replaces u with the URI reference in s. It reports false, leaving u
// unchanged, unless the whole of s matches the grammar.
func (u *URI) Parse(s string) bool {
	var v URI
	if v.parse(s) != len(s) {
		return false
	}
	*u = v
	return true
}

// ParseBuffer replaces u with the longest URI reference that prefixes b and
// returns its length in bytes. A result shorter than len(b) means b has a
// trailing part that is not valid URI syntax.
func (u *URI) ParseBuffer(b []byte) int {
	return u.parse(string(b))
}

func (u *URI) parse(s string) int {
	p := parser{tab: charclass.Get()}
	c, rest := p.consumeURIReference(s)
	*u = URI{
		scheme:      c.scheme,
		hasScheme:   c.hasScheme,
		authority:   c.authority,
		path:        c.path,
		query:       c.query,
		hasQuery:    c.hasQuery,
		fragment:    c.fragment,
		hasFragment: c.hasFragment,
	}
	return len(s) - len(rest)
}

// components collects what a successful production matched.
type components struct {
	scheme      string
	hasScheme   bool
	authority   *Authority
	path        string
	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
}

// parser implements the RFC 3986 Appendix A grammar as ordered choice. Each
// consume method takes the remaining input and returns what it matched and
// the input left after it; a production that does not match returns its
// input unchanged, so alternatives can be tried from the same position.
type parser struct {
	tab *charclass.Table
}

// URI-reference = URI / relative-ref
func (p parser) consumeURIReference(s string) (c components, rest string) {
	if c, rest, ok := p.consumeURI(s); ok {
		return c, rest
	}
	return p.consumeRelativeRef(s)
}

// URI = scheme ":" hier-part [ "?" query ] [ "#" fragment ]
func (p parser) consumeURI(s string) (c components, rest string, ok bool) {
	c.scheme, rest, ok = p.consumeScheme(s)
	if !ok || rest == "" || rest[0] != ':' {
		return components{}, s, false
	}
	c.hasScheme = true
	c.authority, c.path, rest = p.consumeHierPart(rest[1:])
	rest = p.consumeQueryAndFragment(&c, rest)
	return c, rest, true
}

// relative-ref = relative-part [ "?" query ] [ "#" fragment ]
func (p parser) consumeRelativeRef(s string) (c components, rest string) {
	c.authority, c.path, rest = p.consumeRelativePart(s)
	rest = p.consumeQueryAndFragment(&c, rest)
	return c, rest
}

func (p parser) consumeQueryAndFragment(c *components, s string) (rest string) {
	rest = s
	if rest != "" && rest[0] == '?' {
		n := p.span(rest[1:], charclass.Query)
		c.query, c.hasQuery = rest[1:1+n], true
		rest = rest[1+n:]
	}
	if rest != "" && rest[0] == '#' {
		n := p.span(rest[1:], charclass.Fragment)
		c.fragment, c.hasFragment = rest[1:1+n], true
		rest = rest[1+n:]
	}
	return rest
}

// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func (p parser) consumeScheme(s string) (scheme, rest string, ok bool) {
	if s == "" || !p.tab.Is(s[0], charclass.Alpha) {
		return "", s, false
	}
	i := 1
	for i < len(s) && p.tab.Is(s[i], charclass.Scheme) {
		i++
	}
	return s[:i], s[i:], true
}

// hier-part = "//" authority path-abempty
//
//	/ path-absolute
//	/ path-rootless
//	/ path-empty
func (p parser) consumeHierPart(s string) (auth *Authority, path, rest string) {
	if auth, path, rest, ok := p.consumeNetworkPath(s); ok {
		return auth, path, rest
	}
	if path, rest, ok := p.consumePathAbsolute(s); ok {
		return nil, path, rest
	}
	if path, rest, ok := p.consumePathRootless(s); ok {
		return nil, path, rest
	}
	return nil, "", s
}

// relative-part = "//" authority path-abempty
//
//	/ path-absolute
//	/ path-noscheme
//	/ path-empty
func (p parser) consumeRelativePart(s string) (auth *Authority, path, rest string) {
	if auth, path, rest, ok := p.consumeNetworkPath(s); ok {
		return auth, path, rest
	}
	if path, rest, ok := p.consumePathAbsolute(s); ok {
		return nil, path, rest
	}
	if path, rest, ok := p.consumePathNoScheme(s); ok {
		return nil, path, rest
	}
	return nil, "", s
}

// "//" authority path-abempty
func (p parser) consumeNetworkPath(s string) (auth *Authority, path, rest string, ok bool) {
	if len(s) < 2 || s[0] != '/' || s[1] != '/' {
		return nil, "", s, false
	}
	a, rest, ok := p.consumeAuthority(s[2:])
	if !ok {
		return nil, "", s, false
	}
	path, rest = p.consumePathAbempty(rest)
	return &a, path, rest, true
}

// authority = [ userinfo "@" ] host [ ":" port ]
func (p parser) consumeAuthority(s string) (a Authority, rest string, ok bool) {
	rest = s
	if n := p.span(rest, charclass.UserInfo); n < len(rest) && rest[n] == '@' {
		a.userInfo, a.hasUserInfo = rest[:n], true
		rest = rest[n+1:]
	}
	a.host, rest, ok = p.consumeHost(rest)
	if !ok {
		return Authority{}, s, false
	}
	if rest != "" && rest[0] == ':' {
		n := 1
		for n < len(rest) && p.tab.Is(rest[n], charclass.Digit) {
			n++
		}
		a.port, a.hasPort = rest[1:n], true
		rest = rest[n:]
	}
	return a, rest, true
}

// host = IP-literal / IPv4address / reg-name
//
// IP literals are not supported and never match. reg-name is narrowed to
// hostname syntax, which may be empty.
func (p parser) consumeHost(s string) (host, rest string, ok bool) {
	if n, ok := p.ipv4Len(s); ok {
		// An address followed by more label characters ("1.2.3.4.example",
		// "1.2.3.4a") is the prefix of a hostname, not an address.
		if n == len(s) || (!p.tab.Is(s[n], charclass.HostLabel) && s[n] != '.') {
			return s[:n], s[n:], true
		}
	}
	n := p.hostnameLen(s)
	return s[:n], s[n:], true
}

// IPv4address = dec-octet "." dec-octet "." dec-octet "." dec-octet
func (p parser) ipv4Len(s string) (int, bool) {
	i := 0
	for octet := 0; octet < 4; octet++ {
		if octet > 0 {
			if i >= len(s) || s[i] != '.' {
				return 0, false
			}
			i++
		}
		n, ok := p.decOctetLen(s[i:])
		if !ok {
			return 0, false
		}
		i += n
	}
	return i, true
}

// dec-octet = DIGIT / %x31-39 DIGIT / "1" 2DIGIT / "2" %x30-34 DIGIT / "25" %x30-35
func (p parser) decOctetLen(s string) (int, bool) {
	n, v := 0, 0
	for n < len(s) && n < 3 && p.tab.Is(s[n], charclass.Digit) {
		v = v*10 + int(s[n]-'0')
		n++
	}
	switch {
	case n == 0:
		return 0, false
	case n > 1 && s[0] == '0':
		return 0, false
	case v > 255:
		return 0, false
	}
	return n, true
}

// hostname = *( label "." ) [ label [ "." ] ]
func (p parser) hostnameLen(s string) int {
	i := 0
	for {
		n := p.labelLen(s[i:])
		if n == 0 {
			return i
		}
		i += n
		if i == len(s) || s[i] != '.' {
			return i
		}
		i++
	}
}

// label = alphanum [ *( alphanum / "-" ) alphanum ]
func (p parser) labelLen(s string) int {
	if s == "" || s[0] == '-' {
		return 0
	}
	n := 0
	for n < len(s) && p.tab.Is(s[n], charclass.HostLabel) {
		n++
	}
	for n > 0 && s[n-1] == '-' {
		n--
	}
	return n
}

// path-abempty = *( "/" segment )
func (p parser) consumePathAbempty(s string) (path, rest string) {
	i := 0
	for i < len(s) && s[i] == '/' {
		i++
		i += p.span(s[i:], charclass.PChar)
	}
	return s[:i], s[i:]
}

// path-absolute = "/" [ segment-nz *( "/" segment ) ]
func (p parser) consumePathAbsolute(s string) (path, rest string, ok bool) {
	if s == "" || s[0] != '/' {
		return "", s, false
	}
	n := p.span(s[1:], charclass.PChar)
	if n == 0 {
		return s[:1], s[1:], true
	}
	_, rest = p.consumePathAbempty(s[1+n:])
	return s[:len(s)-len(rest)], rest, true
}

// path-rootless = segment-nz *( "/" segment )
func (p parser) consumePathRootless(s string) (path, rest string, ok bool) {
	return p.consumeSegmentsFrom(s, charclass.PChar)
}

// path-noscheme = segment-nz-nc *( "/" segment )
func (p parser) consumePathNoScheme(s string) (path, rest string, ok bool) {
	return p.consumeSegmentsFrom(s, charclass.Segment)
}

func (p parser) consumeSegmentsFrom(s string, first charclass.Class) (path, rest string, ok bool) {
	n := p.span(s, first)
	if n == 0 {
		return "", s, false
	}
	_, rest = p.consumePathAbempty(s[n:])
	return s[:len(s)-len(rest)], rest, true
}

// span returns the length of the longest prefix of s made of bytes in cls
// and percent-encoded octets.
func (p parser) span(s string, cls charclass.Class) int {
	i := 0
	for i < len(s) {
		if p.tab.Is(s[i], cls) {
			i++
			continue
		}
		if s[i] == '%' {
			if n := p.pctEncodedLen(s[i:]); n > 0 {
				i += n
				continue
			}
		}
		break
	}
	return i
}

// pct-encoded = "%" HEXDIG HEXDIG / "%u" 4HEXDIG
func (p parser) pctEncodedLen(s string) int {
	if len(s) >= 6 && s[1] == 'u' && p.hexRun(s[2:6]) {
		return 6
	}
	if len(s) >= 3 && p.hexRun(s[1:3]) {
		return 3
	}
	return 0
}

func (p parser) hexRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if !p.tab.Is(s[i], charclass.Hex) {
			return false
		}
	}
	return true
}
