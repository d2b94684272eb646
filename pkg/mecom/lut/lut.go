// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import (
	"fmt"
	"time"

	"github.com/houlihaj/mecom-go/pkg/mecom"
)

// Page transfer geometry. A page holds 32 records; its hex payload is
// padded to a fixed length so every page frame has the same size.
const (
	PageSize       = 32
	pagePayloadLen = 524
)

// Busy polling defaults while the device writes a page to flash or
// analyzes the table.
const (
	defaultBusyRetries  = 50
	defaultBusyInterval = 10 * time.Millisecond
)

// ?LT sub-commands.
const (
	ltStatusQuery = 0
	ltProgram     = 1
	ltDoAnalyze   = 2
)

// Lookup table parameters.
const (
	paramStart       = 52000
	paramStop        = 52001
	paramStatus      = 52002
	paramCurrentLine = 52003
	paramTableID     = 52010
	paramRepetitions = 52012
)

// maxRepetitions bounds the repetitions parameter.
const maxRepetitions = 100000

// DeviceBusyError reports that the device stayed busy through all
// polling attempts.
type DeviceBusyError struct {
	Op string
}

func (e *DeviceBusyError) Error() string {
	return fmt.Sprintf("lut: device busy while %s", e.Op)
}

// Cmd drives the lookup table engine of a single device over an open
// connection.
type Cmd struct {
	conn         *mecom.Connection
	busyRetries  int
	busyInterval time.Duration
}

// CmdOption configures a Cmd.
type CmdOption func(*Cmd)

// WithBusyRetry overrides how often and how long the Cmd polls a busy
// device.
func WithBusyRetry(retries int, interval time.Duration) CmdOption {
	return func(c *Cmd) {
		c.busyRetries = retries
		c.busyInterval = interval
	}
}

// NewCmd wraps a connection.
func NewCmd(conn *mecom.Connection, opts ...CmdOption) *Cmd {
	c := &Cmd{
		conn:         conn,
		busyRetries:  defaultBusyRetries,
		busyInterval: defaultBusyInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Paginate splits records into pages of at most pageSize entries.
func Paginate(records []Record, pageSize int) [][]Record {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	var pages [][]Record
	for len(records) > pageSize {
		pages = append(pages, records[:pageSize])
		records = records[pageSize:]
	}
	if len(records) > 0 {
		pages = append(pages, records)
	}
	return pages
}

// Download writes a complete table to the device and waits for the
// analysis to finish. The end-of-table record carrying the table
// checksum is appended automatically.
func (c *Cmd) Download(address int, records []Record) error {
	table := make([]Record, 0, len(records)+1)
	table = append(table, records...)
	eof := Record{Instruction: InstrEOF}
	eof.Field2 = TableCRC(records)
	table = append(table, eof)

	for i, page := range Paginate(table, PageSize) {
		if err := c.downloadPage(address, uint32(i), page); err != nil {
			return err
		}
	}
	return c.analyzeAndWait(address)
}

func (c *Cmd) downloadPage(address int, offset uint32, page []Record) error {
	payload := mecom.AppendUint4("?LT", ltProgram)
	payload = mecom.AppendUint32(payload, offset)
	for i := range page {
		b := page[i].Bytes()
		payload = mecom.AppendBytes(payload, b[:])
	}
	for len(payload) < pagePayloadLen {
		payload = mecom.AppendUint4(payload, 0)
	}

	for attempt := 0; attempt < c.busyRetries; attempt++ {
		tx := mecom.NewFrame(address)
		tx.Payload = payload
		rx, err := c.conn.Set(tx)
		if err != nil {
			return fmt.Errorf("lut: page at offset %d: %w", offset, err)
		}
		status, err := flashStatus(rx)
		if err != nil {
			return fmt.Errorf("lut: page at offset %d: %w", offset, err)
		}
		if status == FlashDataAccepted {
			return nil
		}
		time.Sleep(c.busyInterval)
	}
	return &DeviceBusyError{Op: "sending lookup table"}
}

// StartAnalyze asks the device to validate the downloaded table. It
// reports whether the flash loader is already idle again.
func (c *Cmd) StartAnalyze(address int) (bool, error) {
	tx := mecom.NewFrame(address)
	tx.Payload = mecom.AppendUint4("?LT", ltDoAnalyze)
	rx, err := c.conn.Query(tx)
	if err != nil {
		return false, fmt.Errorf("lut: start analyze: %w", err)
	}
	status, err := flashStatus(rx)
	if err != nil {
		return false, fmt.Errorf("lut: start analyze: %w", err)
	}
	return status == FlashIdle, nil
}

func (c *Cmd) analyzeAndWait(address int) error {
	for attempt := 0; attempt < c.busyRetries; attempt++ {
		idle, err := c.StartAnalyze(address)
		if err != nil {
			return err
		}
		if idle {
			return nil
		}
		time.Sleep(c.busyInterval)
	}
	return &DeviceBusyError{Op: "analyzing lookup table"}
}

// FlashStatusQuery reads the flash loader state.
func (c *Cmd) FlashStatusQuery(address int) (FlashStatus, error) {
	tx := mecom.NewFrame(address)
	tx.Payload = mecom.AppendUint4("?LT", ltStatusQuery)
	rx, err := c.conn.Set(tx)
	if err != nil {
		return 0, fmt.Errorf("lut: flash status: %w", err)
	}
	return flashStatus(rx)
}

func flashStatus(rx mecom.Frame) (FlashStatus, error) {
	if len(rx.Payload) < 1 {
		return 0, fmt.Errorf("empty status answer")
	}
	nibble, err := mecom.ReadUint4(rx.Payload[:1])
	if err != nil {
		return 0, err
	}
	return FlashStatus(nibble), nil
}

// GetStatus reads the table engine state.
func (c *Cmd) GetStatus(address int, instance uint8) (Status, error) {
	v, err := c.conn.ReadInt32Value(address, paramStatus, instance)
	if err != nil {
		return 0, err
	}
	return Status(v), nil
}

// Start begins executing the stored table.
func (c *Cmd) Start(address int, instance uint8) error {
	return c.conn.WriteInt32Value(address, paramStart, instance, 1)
}

// Stop aborts a running table.
func (c *Cmd) Stop(address int, instance uint8) error {
	return c.conn.WriteInt32Value(address, paramStop, instance, 1)
}

// CurrentLine reads the record the sequencer is executing.
func (c *Cmd) CurrentLine(address int, instance uint8) (int32, error) {
	return c.conn.ReadInt32Value(address, paramCurrentLine, instance)
}

// SetTableID selects which stored sub table to execute.
func (c *Cmd) SetTableID(address int, instance uint8, id int32) error {
	return c.conn.WriteInt32Value(address, paramTableID, instance, id)
}

// SetRepetitions sets how many times the table repeats the section
// between repeat marks.
func (c *Cmd) SetRepetitions(address int, instance uint8, n int32) error {
	if n < 0 || n > maxRepetitions {
		return fmt.Errorf("lut: repetitions %d out of range 0..%d", n, maxRepetitions)
	}
	return c.conn.WriteInt32Value(address, paramRepetitions, instance, n)
}
