// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/cerca/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
