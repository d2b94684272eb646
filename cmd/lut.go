// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/houlihaj/mecom-go/pkg/mecom/lut"
)

var (
	lutTableID     int32
	lutRepetitions int32
	lutRunTimeout  time.Duration
)

var lutCmd = &cobra.Command{
	Use:   "lut",
	Short: "Download and run temperature lookup tables",
	Long: `Lookup tables are authored as semicolon separated CSV files with an
Instruction;Field 1;Field 2 header. Download validates the table,
transfers it page by page and waits for the device to analyze it.`,
}

var lutDownloadCmd = &cobra.Command{
	Use:   "download <table.csv>",
	Short: "Download a table file to the device",
	Args:  cobra.ExactArgs(1),
	RunE:  runLutDownload,
}

var lutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start executing the stored table",
	RunE:  runLutStart,
}

var lutStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running table",
	RunE:  runLutStop,
}

var lutStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the table engine state",
	RunE:  runLutStatus,
}

var lutRunCmd = &cobra.Command{
	Use:   "run <table.csv>",
	Short: "Download a table and execute it to completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runLutRun,
}

func init() {
	lutStartCmd.Flags().Int32Var(&lutTableID, "table-id", 0, "Sub table to execute")
	lutStartCmd.Flags().Int32Var(&lutRepetitions, "repetitions", 0, "Repeat count for the repeat-marked section")
	lutRunCmd.Flags().Int32Var(&lutTableID, "table-id", 0, "Sub table to execute")
	lutRunCmd.Flags().Int32Var(&lutRepetitions, "repetitions", 0, "Repeat count for the repeat-marked section")
	lutRunCmd.Flags().DurationVar(&lutRunTimeout, "timeout", 30*time.Minute, "Execution timeout")

	lutCmd.AddCommand(lutDownloadCmd)
	lutCmd.AddCommand(lutStartCmd)
	lutCmd.AddCommand(lutStopCmd)
	lutCmd.AddCommand(lutStatusCmd)
	lutCmd.AddCommand(lutRunCmd)
	rootCmd.AddCommand(lutCmd)
}

func loadTable(path string) ([]lut.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return lut.ParseCSV(f)
}

func runLutDownload(cmd *cobra.Command, args []string) error {
	records, err := loadTable(args[0])
	if err != nil {
		return err
	}

	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	fmt.Printf("Downloading %d records...\n", len(records))
	if err := dev.DownloadLookupTable(records); err != nil {
		return err
	}
	fmt.Println("Table downloaded and analyzed")
	return nil
}

func runLutStart(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	if err := prepareTableRun(dev.LookupTable(), dev.Address(), dev.Channel()); err != nil {
		return err
	}
	if err := dev.StartLookupTable(); err != nil {
		return err
	}
	fmt.Println("Table started")
	return nil
}

func runLutStop(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	if err := dev.StopLookupTable(); err != nil {
		return err
	}
	fmt.Println("Table stopped")
	return nil
}

func runLutStatus(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	status, err := dev.LookupTableStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Table engine: %s\n", status)

	if status == lut.StatusExecuting {
		line, err := dev.LookupTable().CurrentLine(dev.Address(), dev.Channel())
		if err != nil {
			return err
		}
		fmt.Printf("Current line: %d\n", line)
	}
	return nil
}

func runLutRun(cmd *cobra.Command, args []string) error {
	records, err := loadTable(args[0])
	if err != nil {
		return err
	}

	dev, _, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Connection().Close()

	fmt.Printf("Downloading %d records...\n", len(records))
	if err := dev.DownloadLookupTable(records); err != nil {
		return err
	}
	if err := prepareTableRun(dev.LookupTable(), dev.Address(), dev.Channel()); err != nil {
		return err
	}

	fmt.Println("Executing...")
	if err := dev.ExecuteLookupTable(lutRunTimeout); err != nil {
		return err
	}
	fmt.Println("Table finished")
	return nil
}

func prepareTableRun(c *lut.Cmd, address int, channel uint8) error {
	if lutTableID > 0 {
		if err := c.SetTableID(address, channel, lutTableID); err != nil {
			return err
		}
	}
	if lutRepetitions > 0 {
		if err := c.SetRepetitions(address, channel, lutRepetitions); err != nil {
			return err
		}
	}
	return nil
}
