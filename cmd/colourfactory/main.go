// colourfactory - deterministic unreserved colour generator
//
// colourfactory generates distinct colours that avoid a reserved province
// list and writes them as a text list and a BMP palette image.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/colourfactory/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
