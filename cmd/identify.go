// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify the connected device",
	Long: `Queries the device for its identification string and composes the
model, serial number, hardware and firmware versions from the device
parameters.`,
	RunE: runIdentify,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the connected device",
	Long: `Sends a reset request. The device drops off the bus for a moment
while it restarts.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(resetCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	dev, desc, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	fmt.Printf("Connected via %s\n", desc)

	ident, err := dev.Ident()
	if err != nil {
		return err
	}
	fmt.Printf("Firmware identification: %s\n", ident)

	id, err := dev.ID()
	if err != nil {
		return err
	}
	fmt.Printf("Device: %s\n", id)

	status, err := dev.Status()
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", status)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	dev, desc, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	fmt.Printf("Connected via %s\n", desc)

	if err := dev.Reset(); err != nil {
		return err
	}
	fmt.Println("Reset request sent")
	return nil
}
