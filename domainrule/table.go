// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domainrule

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrDuplicateRule is returned by NewTable when two rules share a name.
var ErrDuplicateRule = errors.New("domainrule: duplicate rule")

// maxDisplacement bounds the search for a bucket displacement. Tables of
// any realistic size settle within a few hundred tries.
const maxDisplacement = 1 << 20

// Table is a read-only rule set indexed by a minimal perfect hash built with
// the hash-and-displace scheme: keys are spread over buckets by their hash,
// and every bucket gets a displacement that sends its keys to free slots.
// A lookup costs one hash and two array reads.
//
// Keys are compared without regard to ASCII case. A Table is safe for
// concurrent use.
type Table struct {
	rules []Rule
	disp  []uint32 // displacement per bucket
	slots []int32  // slot -> index into rules, -1 when empty
}

// NewTable builds a table over rules. The slice is copied.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{rules: slices.Clone(rules)}
	n := len(t.rules)
	if n == 0 {
		return t, nil
	}

	hashes := make([]uint64, n)
	seen := make(map[string]struct{}, n)
	for i, r := range t.rules {
		key := lowerASCII(r.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, r.Name)
		}
		seen[key] = struct{}{}
		hashes[i] = xxhash.Sum64String(key)
	}

	nb := uint64((n + 3) / 4)
	m := uint64(n + n/4 + 1)
	buckets := make([][]int, nb)
	for i, h := range hashes {
		b := h % nb
		buckets[b] = append(buckets[b], i)
	}
	order := make([]int, nb)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(buckets[b]) - len(buckets[a])
	})

	t.disp = make([]uint32, nb)
	t.slots = make([]int32, m)
	for i := range t.slots {
		t.slots[i] = -1
	}
	var pending []uint64
next:
	for _, b := range order {
		keys := buckets[b]
		if len(keys) == 0 {
			break
		}
	search:
		for d := uint32(0); d < maxDisplacement; d++ {
			pending = pending[:0]
			for _, k := range keys {
				s := slot(hashes[k], d, m)
				if t.slots[s] >= 0 || slices.Contains(pending, s) {
					continue search
				}
				pending = append(pending, s)
			}
			for j, k := range keys {
				t.slots[pending[j]] = int32(k)
			}
			t.disp[b] = d
			continue next
		}
		return nil, fmt.Errorf("domainrule: cannot place %d rules sharing a hash bucket", len(keys))
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on error. It is meant for
// tables initialized from literals.
func MustNewTable(rules []Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Find returns the rule stored in the slot candidate hashes to, or nil if
// the slot is empty. The rule's Name is not checked against candidate.
func (t *Table) Find(candidate string) *Rule {
	if len(t.rules) == 0 {
		return nil
	}
	h := xxhash.Sum64String(lowerASCII(candidate))
	d := t.disp[h%uint64(len(t.disp))]
	i := t.slots[slot(h, d, uint64(len(t.slots)))]
	if i < 0 {
		return nil
	}
	return &t.rules[i]
}

// Get returns the rule named name.
func (t *Table) Get(name string) (Rule, bool) {
	r := t.Find(name)
	if r == nil || !strings.EqualFold(r.Name, name) {
		return Rule{}, false
	}
	return *r, true
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Rules returns a copy of the rules in insertion order.
func (t *Table) Rules() []Rule { return slices.Clone(t.rules) }

func slot(h uint64, d uint32, m uint64) uint64 {
	x := h ^ uint64(d)*0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x % m
}

func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
