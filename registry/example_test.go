// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"fmt"
	"strings"

	"github.com/basekit/urikit/domainrule"
	"github.com/basekit/urikit/registry"
)

func ExampleMatcher_DomainAndRegistry() {
	rules, err := domainrule.Parse(strings.NewReader("uk\nco.uk\n"))
	if err != nil {
		panic(err)
	}
	m := registry.New(domainrule.MustNewTable(rules))
	for _, host := range []string{"www.example.co.uk", "co.uk", "www.example.org"} {
		fmt.Printf("%q\n", m.DomainAndRegistry(host, registry.ExcludePrivateRegistries))
	}
	// Output:
	// "example.co.uk"
	// ""
	// "example.org"
}
