// Copyright 2026 The Urikit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The uritool command parses and resolves URI references and reports the
registry-controlled domains of their hosts.

Usage:

	$ uritool [--config FILE] [--rules FILE] [--private] [-v] <command> [args]

Commands:

	parse URI...            print the components of each reference
	resolve BASE REF...     resolve references against BASE
	domain HOST_OR_URI...   print registry and registrable domain
	same A B                report whether two URIs share a site
	rules                   list the loaded rules
	batch [FILE]            classify one URI per line
	console                 interactive console

Interactive commands in the console:

	parse URI
	base [URI]
	resolve REF
	domain HOST_OR_URI
	same A B
	quit
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "uritool: %v\n", err)
		os.Exit(1)
	}
}
