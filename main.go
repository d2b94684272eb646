// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors
//
// mecom - MeCom TEC controller tool
//
// A CLI tool for identifying, configuring and monitoring Meerstetter
// TEC controllers over serial or WebSocket connections.

package main

import (
	"fmt"
	"os"

	"github.com/houlihaj/mecom-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
