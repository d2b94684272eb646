// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

// Package lut builds, validates and downloads temperature lookup
// tables. A table is a sequence of 8-byte instruction records that the
// device's sequencer executes to ramp, hold and step the object
// temperature.
package lut

import "math"

// Instruction identifies what a record tells the sequencer to do.
type Instruction uint8

const (
	InstrTableInfo      Instruction = 0
	InstrSinRampTo      Instruction = 1
	InstrRepeatMark     Instruction = 2
	InstrLinRampTime    Instruction = 3
	InstrStatus         Instruction = 4
	InstrWait           Instruction = 5
	InstrSetFloat       Instruction = 6
	InstrSetInt         Instruction = 7
	InstrTillTempStable Instruction = 8
	InstrSetTargetInst  Instruction = 9

	// InstrEOF terminates a table. The download appends it
	// automatically with the table checksum in field 2.
	InstrEOF Instruction = 254
)

// Field 1 selectors per instruction.
const (
	TableInfoStart = 0
	TableInfoEnd   = 1

	RampFromActual  = 0
	RampFromNominal = 1

	RepeatStart = 0
	RepeatEnd   = 1

	StatusDisable = 0
	StatusEnable  = 2

	WaitForever = 0
	WaitTime    = 1
)

// Field 1 occupies 24 bits of the first instruction word.
const (
	field1Max = 0xFFFFFF

	linRampTimeMin = 10
	linRampTimeMax = field1Max
)

// Record is a single 8-byte table entry. Field 2 holds either an int32
// or a float32 depending on the instruction; use the typed accessors.
type Record struct {
	Instruction Instruction
	Field1      uint32
	Field2      uint32
}

// SetField2Int stores an integer in field 2.
func (r *Record) SetField2Int(v int32) { r.Field2 = uint32(v) }

// SetField2Float stores a float in field 2.
func (r *Record) SetField2Float(v float32) { r.Field2 = math.Float32bits(v) }

// Field2Int returns field 2 as an integer.
func (r *Record) Field2Int() int32 { return int32(r.Field2) }

// Field2Float returns field 2 as a float.
func (r *Record) Field2Float() float32 { return math.Float32frombits(r.Field2) }

// Words packs the record into the two 32-bit words the device stores:
// the instruction in the low byte with field 1 above it, and field 2.
func (r *Record) Words() (uint32, uint32) {
	return uint32(r.Instruction) | (r.Field1&field1Max)<<8, r.Field2
}

// Bytes packs the record little-endian for the page payload.
func (r *Record) Bytes() [8]byte {
	w0, w1 := r.Words()
	return [8]byte{
		byte(w0), byte(w0 >> 8), byte(w0 >> 16), byte(w0 >> 24),
		byte(w1), byte(w1 >> 8), byte(w1 >> 16), byte(w1 >> 24),
	}
}
