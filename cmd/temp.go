// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	tempWait    bool
	tempTimeout time.Duration
	tempRamp    float64
)

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Read and set the temperature regulation",
}

var tempGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read object and sink temperatures",
	RunE:  runTempGet,
}

var tempSetCmd = &cobra.Command{
	Use:   "set <celsius>",
	Short: "Set the target temperature",
	Args:  cobra.ExactArgs(1),
	RunE:  runTempSet,
}

var tempStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show regulation status, output current and voltage",
	RunE:  runTempStatus,
}

func init() {
	tempSetCmd.Flags().BoolVarP(&tempWait, "wait", "w", false, "Block until the temperature is stable")
	tempSetCmd.Flags().DurationVar(&tempTimeout, "timeout", 5*time.Minute, "Stability wait timeout")
	tempSetCmd.Flags().Float64Var(&tempRamp, "ramp", 0, "Coarse ramp rate in degC/s (0 leaves it unchanged)")

	tempCmd.AddCommand(tempGetCmd)
	tempCmd.AddCommand(tempSetCmd)
	tempCmd.AddCommand(tempStatusCmd)
	rootCmd.AddCommand(tempCmd)
}

func runTempGet(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	object, err := dev.Temperature()
	if err != nil {
		return err
	}
	sink, err := dev.SinkTemperature()
	if err != nil {
		return err
	}
	target, err := dev.TargetTemperature()
	if err != nil {
		return err
	}

	fmt.Printf("Object: %8.3f degC\n", object)
	fmt.Printf("Sink:   %8.3f degC\n", sink)
	fmt.Printf("Target: %8.3f degC\n", target)
	return nil
}

func runTempSet(cmd *cobra.Command, args []string) error {
	celsius, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("invalid temperature %q: %v", args[0], err)
	}

	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	if tempRamp > 0 {
		if err := dev.SetCoarseRampRate(float32(tempRamp)); err != nil {
			return err
		}
	}
	if err := dev.SetTemperature(float32(celsius)); err != nil {
		return err
	}
	fmt.Printf("Target set to %.3f degC\n", celsius)

	if !tempWait {
		return nil
	}
	fmt.Println("Waiting for stable temperature...")
	if err := dev.WaitForStableTemperature(tempTimeout); err != nil {
		return err
	}
	object, err := dev.Temperature()
	if err != nil {
		return err
	}
	fmt.Printf("Stable at %.3f degC\n", object)
	return nil
}

func runTempStatus(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	status, err := dev.Status()
	if err != nil {
		return err
	}
	stability, err := dev.TemperatureStability()
	if err != nil {
		return err
	}
	current, err := dev.Current()
	if err != nil {
		return err
	}
	voltage, err := dev.Voltage()
	if err != nil {
		return err
	}

	fmt.Printf("Device:    %s\n", status)
	fmt.Printf("Stability: %s\n", stability)
	fmt.Printf("Output:    %.3f A @ %.3f V\n", current, voltage)
	return nil
}
