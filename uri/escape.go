// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uri

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrBadEscape is returned by Unescape for a "%" that does not start a
// valid escape.
var ErrBadEscape = errors.New("uri: malformed percent escape")

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Unescape decodes the percent escapes in s. "%XX" yields the byte 0xXX.
// "%uXXXX" yields the UTF-16 code unit 0xXXXX encoded as UTF-8; adjacent
// units forming a surrogate pair decode to a single rune, and unpaired
// surrogates decode to U+FFFD.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}
	out := make([]byte, 0, len(s))
	var units []byte
	flush := func() error {
		if len(units) == 0 {
			return nil
		}
		dec, err := utf16BE.NewDecoder().Bytes(units)
		if err != nil {
			return err
		}
		out = append(out, dec...)
		units = units[:0]
		return nil
	}

	for i := 0; i < len(s); {
		if s[i] == '%' && i+6 <= len(s) && s[i+1] == 'u' {
			if hi, ok := unhex2(s[i+2:]); ok {
				if lo, ok := unhex2(s[i+4:]); ok {
					units = append(units, hi, lo)
					i += 6
					continue
				}
			}
		}
		if err := flush(); err != nil {
			return "", err
		}
		if s[i] != '%' {
			out = append(out, s[i])
			i++
			continue
		}
		if i+3 <= len(s) {
			if v, ok := unhex2(s[i+1:]); ok {
				out = append(out, v)
				i += 3
				continue
			}
		}
		return "", fmt.Errorf("%w at offset %d", ErrBadEscape, i)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return string(out), nil
}

func unhex2(s string) (byte, bool) {
	if len(s) < 2 {
		return 0, false
	}
	h, ok1 := unhex(s[0])
	l, ok2 := unhex(s[1])
	return h<<4 | l, ok1 && ok2
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
