// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charclass

import (
	"sync"
	"testing"
)

func TestClasses(t *testing.T) {
	tests := []struct {
		name string
		cls  Class
		in   string
		out  string
	}{
		{"alpha", Alpha, "azAZ", "09-_%@"},
		{"digit", Digit, "0189", "aZ-."},
		{"hex", Hex, "09afAF", "gG-"},
		{"unreserved", Unreserved, "aZ09-._~", "!%@:/?#[] "},
		{"sub-delims", SubDelims, "!$&'()*+,;=", "aZ09-._~%:/"},
		{"scheme", Scheme, "aZ09+-.", "_~:/%"},
		{"userinfo", UserInfo, "aZ09-._~!$&'()*+,;=:", "@/?#[]% "},
		{"reg-name", RegName, "aZ09-._~!$;=", ":@/%[]"},
		{"host label", HostLabel, "aZ09-", "._~!:"},
		{"pchar", PChar, "aZ09-._~!$&'()*+,;=:@", "/?#[]% "},
		{"query", Query, "aZ09:@/?!=", "#[]% \x00\x7f"},
		{"segment-nz-nc", Segment, "aZ09@!=", ":/?#%"},
	}
	tab := Get()
	for _, tc := range tests {
		for i := 0; i < len(tc.in); i++ {
			if !tab.Is(tc.in[i], tc.cls) {
				t.Errorf("test %q: %q should be in class", tc.name, tc.in[i])
			}
		}
		for i := 0; i < len(tc.out); i++ {
			if tab.Is(tc.out[i], tc.cls) {
				t.Errorf("test %q: %q should not be in class", tc.name, tc.out[i])
			}
		}
	}
}

func TestNonASCII(t *testing.T) {
	tab := Get()
	for c := 0x80; c < 0x100; c++ {
		if tab[c] != 0 {
			t.Fatalf("byte %#x has classes %b, want none", c, tab[c])
		}
	}
}

func TestGetOnce(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Table, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Get()
		}()
	}
	wg.Wait()
	for i, tab := range got {
		if tab != got[0] {
			t.Fatalf("Get() #%d returned a different table", i)
		}
	}
}
