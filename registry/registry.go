// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry finds the registry-controlled part of host names: the
// registry ("co.uk", "com") that nobody below can claim, and the
// registrable domain one label further left ("example.co.uk").
//
// Rules come from a domainrule.Lookup given to New. A Matcher walks the host
// from its most specific suffix to its least specific one and applies the
// first rule found:
//
//   - an exception rule "!pref.bar.jp" makes the registry the suffix after
//     the rule's first label ("bar.jp");
//   - a wildcard rule "*.bar.jp" found after at least one more specific
//     label makes the registry that label plus the rule ("x.bar.jp");
//   - any other rule, including a wildcard matching the whole host, makes
//     the rule itself the registry.
//
// A host that is itself a registry has registry length 0, the same as a
// host with no registry at all.
package registry

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/basekit/urikit/domainrule"
	"github.com/basekit/urikit/uri"
)

// NoHost is the registry length reported for a missing or empty host.
const NoHost = -1

// ErrInvalidRule reports rule data the matching algorithm cannot use, such
// as an exception rule without a dot.
var ErrInvalidRule = errors.New("registry: invalid rule data")

// UnknownRegistryFilter selects the result for hosts no rule matches.
type UnknownRegistryFilter int

const (
	// ExcludeUnknownRegistries reports no registry for such hosts.
	ExcludeUnknownRegistries UnknownRegistryFilter = iota
	// IncludeUnknownRegistries treats their last label as the registry.
	IncludeUnknownRegistries
)

// PrivateRegistryFilter selects whether rules from the private domains
// section of the list apply.
type PrivateRegistryFilter int

const (
	ExcludePrivateRegistries PrivateRegistryFilter = iota
	IncludePrivateRegistries
)

// Matcher computes registries from an injected rule lookup. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct {
	rules  domainrule.Lookup
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger that receives reports of invalid rule data.
func WithLogger(l *slog.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// New returns a Matcher that consults rules.
func New(rules domainrule.Lookup, opts ...Option) *Matcher {
	m := &Matcher{rules: rules}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// RegistryLength returns the length in bytes of the registry at the end of
// host. It returns NoHost for an empty host and 0 for IP addresses, for
// hosts that are themselves registries, and for hosts without a registry.
func (m *Matcher) RegistryLength(host string, unknown UnknownRegistryFilter, private PrivateRegistryFilter) int {
	n, err := m.Registry(host, unknown, private)
	if err != nil {
		m.logger.Warn("registry: ignoring rule", "host", host, "err", err)
	}
	return n
}

// RegistryLengthOfURI is RegistryLength for the host of u.
func (m *Matcher) RegistryLengthOfURI(u *uri.URI, unknown UnknownRegistryFilter, private PrivateRegistryFilter) int {
	return m.RegistryLength(u.HostOrEmpty(), unknown, private)
}

// Registry is RegistryLength with invalid rule data reported as an error
// wrapping ErrInvalidRule, in which case the length is 0.
func (m *Matcher) Registry(host string, unknown UnknownRegistryFilter, private PrivateRegistryFilter) (int, error) {
	if host == "" {
		return NoHost, nil
	}
	if IsIPAddress(host) {
		return 0, nil
	}
	return m.registryLength(host, unknown, private)
}

func (m *Matcher) registryLength(host string, unknown UnknownRegistryFilter, private PrivateRegistryFilter) (int, error) {
	begin := 0
	for begin < len(host) && host[begin] == '.' {
		begin++
	}
	if begin == len(host) {
		return 0, nil
	}

	// A single trailing dot is kept in the returned length but plays no
	// part in matching; more than one makes the host unusable.
	end := len(host)
	if host[end-1] == '.' {
		end--
		if host[end-1] == '.' {
			return 0, nil
		}
	}

	prev := -1
	curr := begin
	next := indexByteFrom(host, '.', curr)
	if next < 0 || next >= end {
		return 0, nil
	}
	for {
		candidate := host[curr:end]
		if r := m.match(candidate, private); r != nil {
			switch {
			case r.Type == domainrule.Wildcard && prev >= 0:
				if prev == begin {
					return 0, nil
				}
				return len(host) - prev, nil
			case r.Type == domainrule.Exception:
				if next < 0 || next >= end {
					return 0, fmt.Errorf("%w: exception rule %q has no parent", ErrInvalidRule, r.String())
				}
				return len(host) - next - 1, nil
			}
			if curr == begin {
				return 0, nil
			}
			return len(host) - curr, nil
		}
		if next < 0 || next >= end {
			break
		}
		prev = curr
		curr = next + 1
		next = indexByteFrom(host, '.', curr)
	}

	// curr is at the last label now.
	if unknown == IncludeUnknownRegistries {
		return len(host) - curr, nil
	}
	return 0, nil
}

// match returns the rule for candidate, if the lookup has one that applies.
func (m *Matcher) match(candidate string, private PrivateRegistryFilter) *domainrule.Rule {
	r := m.rules.Find(candidate)
	if r == nil || !strings.EqualFold(r.Name, candidate) {
		return nil
	}
	if r.Private && private != IncludePrivateRegistries {
		return nil
	}
	return r
}

// DomainAndRegistry returns the registrable domain of host: its registry
// plus the label before it. It returns "" if host has no registry or is a
// registry itself. Unknown registries are included.
func (m *Matcher) DomainAndRegistry(host string, private PrivateRegistryFilter) string {
	n := m.RegistryLength(host, IncludeUnknownRegistries, private)
	if n == NoHost || n == 0 {
		return ""
	}
	// One byte for the dot and at least one for the label before it.
	if n > len(host)-2 {
		return ""
	}
	if i := strings.LastIndexByte(host[:len(host)-n-1], '.'); i >= 0 {
		return host[i+1:]
	}
	return host
}

// DomainAndRegistryOfURI is DomainAndRegistry for the host of u.
func (m *Matcher) DomainAndRegistryOfURI(u *uri.URI, private PrivateRegistryFilter) string {
	return m.DomainAndRegistry(u.HostOrEmpty(), private)
}

// SameDomainOrHost reports whether a and b share a registrable domain, or,
// when neither has one, whether their hosts are identical. URIs without a
// host are never the same site.
func (m *Matcher) SameDomainOrHost(a, b *uri.URI, private PrivateRegistryFilter) bool {
	ha, hb := a.HostOrEmpty(), b.HostOrEmpty()
	if ha == "" || hb == "" {
		return false
	}
	da := m.DomainAndRegistry(ha, private)
	db := m.DomainAndRegistry(hb, private)
	if da != "" || db != "" {
		return da == db
	}
	return ha == hb
}

// HostHasRegistryControlledDomain reports whether host has a registrable
// domain under the given filters.
func (m *Matcher) HostHasRegistryControlledDomain(host string, unknown UnknownRegistryFilter, private PrivateRegistryFilter) bool {
	n := m.RegistryLength(host, unknown, private)
	return n != NoHost && n != 0
}

func indexByteFrom(s string, c byte, from int) int {
	if i := strings.IndexByte(s[from:], c); i >= 0 {
		return from + i
	}
	return -1
}
