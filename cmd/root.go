// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device addressing flags
	deviceAddress int
	deviceChannel uint8
)

var rootCmd = &cobra.Command{
	Use:   "mecom",
	Short: "MeCom TEC controller tool",
	Long: `mecom - A CLI tool for Meerstetter TEC controllers speaking the MeCom protocol.

Provides commands for identifying devices, reading and setting the
temperature regulation, downloading and running temperature lookup
tables, and live monitoring.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 57600]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the MECOM_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 57600, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Device addressing flags
	rootCmd.PersistentFlags().IntVarP(&deviceAddress, "address", "a", 1, "Device address (1-254, 255 broadcasts)")
	rootCmd.PersistentFlags().Uint8Var(&deviceChannel, "channel", 1, "Regulation channel instance")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
