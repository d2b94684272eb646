// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import "testing"

func TestRecordWords(t *testing.T) {
	r := Record{Instruction: InstrSinRampTo, Field1: RampFromNominal}
	r.SetField2Float(10.0)

	w0, w1 := r.Words()
	if w0 != 0x00000101 {
		t.Errorf("w0 = 0x%08X, want 0x00000101", w0)
	}
	if w1 != 0x41200000 {
		t.Errorf("w1 = 0x%08X, want 0x41200000", w1)
	}
}

func TestRecordWordsMasksField1(t *testing.T) {
	r := Record{Instruction: InstrSetInt, Field1: 0xFF000001}
	w0, _ := r.Words()
	if w0 != uint32(InstrSetInt)|0x01<<8 {
		t.Errorf("w0 = 0x%08X, field 1 not masked to 24 bits", w0)
	}
}

func TestRecordBytes(t *testing.T) {
	r := Record{Instruction: InstrSinRampTo, Field1: RampFromNominal}
	r.SetField2Float(10.0)

	want := [8]byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x20, 0x41}
	if got := r.Bytes(); got != want {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

func TestRecordField2Accessors(t *testing.T) {
	var r Record
	r.SetField2Int(-42)
	if r.Field2Int() != -42 {
		t.Errorf("Field2Int = %d", r.Field2Int())
	}
	r.SetField2Float(25.375)
	if r.Field2Float() != 25.375 {
		t.Errorf("Field2Float = %v", r.Field2Float())
	}
}
