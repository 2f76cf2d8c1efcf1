// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command mmbdebug runs the verification engine against a small
// in-memory fixture and prints the resulting response as JSON. A real
// deployment wires debugger.Verify1 to an RPC transport backed by a
// genuine MMB file and MM1 environment; both are out of scope here
// (spec.md §1), so this fixture exists only to give the pipeline a
// concrete, runnable entry point.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/luxfi/log"

	"github.com/luxfi/mmbdebug/debugger"
	"github.com/luxfi/mmbdebug/mmbiface"
)

func main() {
	decl := flag.String("decl", "wnew", "declaration to verify")
	level := flag.Int("level", 1, "pretty-printer elaboration level (0, 1, or 2)")
	bracketLevel := flag.Int("bracket-level", 1, "suppress (0) or keep (1) added parentheses at level 2")
	table := flag.Bool("table", true, "accumulate an HTML step table")
	target := flag.Int("target", 0, "proof step to center the JSON snapshot window on")
	flag.Parse()

	logger := log.NewNoOpLogger()

	file := fixtureFile{}
	stmt := mmbiface.Stmt{Kind: mmbiface.StmtTermDef, TermID: 0}
	params := debugger.Params{
		Decl:         *decl,
		Level:        *level,
		BracketLevel: *bracketLevel,
		Table:        *table,
		Target:       target,
	}

	resp, err := debugger.Verify1WithLogger(logger, file, fixtureNotation{}, stmt, newFixtureProof(), params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmbdebug:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintln(os.Stderr, "mmbdebug: encoding response:", err)
		os.Exit(1)
	}
}
