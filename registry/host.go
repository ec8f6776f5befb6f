// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// IsIPAddress reports whether host looks like a dotted-quad IPv4 address:
// exactly three dots and digits everywhere else. IPv6 is not recognized.
func IsIPAddress(host string) bool {
	dots := 0
	for i := 0; i < len(host); i++ {
		switch c := host[i]; {
		case c == '.':
			dots++
		case c < '0' || c > '9':
			return false
		}
	}
	return dots == 3
}

// CanonicalHost lower-cases host and converts any internationalized labels
// to their ASCII form, which is the form rule names use. Registry lengths
// are measured on the string passed to the Matcher, so callers holding user
// input canonicalize first.
func CanonicalHost(host string) (string, error) {
	if isASCII(host) {
		return strings.ToLower(host), nil
	}
	a, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("registry: host %q: %w", host, err)
	}
	return strings.ToLower(a), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
