// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publicsuffix provides a public suffix list backed by a
// registry.Matcher, for use with net/http/cookiejar. A public suffix is one
// under which Internet users can directly register names.
package publicsuffix

import (
	"fmt"
	"net/http/cookiejar"
	"strings"

	"github.com/basekit/urikit/registry"
)

// List implements cookiejar.PublicSuffixList.
type List struct {
	m       *registry.Matcher
	private registry.PrivateRegistryFilter
	version string
}

var _ cookiejar.PublicSuffixList = (*List)(nil)

// New returns a List answering from m. The version string is returned by
// String and should identify the rule data m was built from.
func New(m *registry.Matcher, private registry.PrivateRegistryFilter, version string) *List {
	return &List{m: m, private: private, version: version}
}

func (l *List) String() string {
	return l.version
}

// PublicSuffix returns the public suffix of domain. If no rule matches, the
// prevailing rule is "*" and the last label is returned. A domain that is
// itself a public suffix, or has a single label, is returned unchanged.
func (l *List) PublicSuffix(domain string) string {
	n := l.m.RegistryLength(domain, registry.IncludeUnknownRegistries, l.private)
	if n <= 0 {
		return domain
	}
	return domain[len(domain)-n:]
}

// EffectiveTLDPlusOne returns the effective top level domain plus one more
// label. For example, the eTLD+1 for "foo.bar.golang.org" is "golang.org".
func (l *List) EffectiveTLDPlusOne(domain string) (string, error) {
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return "", fmt.Errorf("publicsuffix: empty label in domain %q", domain)
	}
	d := l.m.DomainAndRegistry(domain, l.private)
	if d == "" {
		return "", fmt.Errorf("publicsuffix: cannot derive eTLD+1 for domain %q", domain)
	}
	return d, nil
}
