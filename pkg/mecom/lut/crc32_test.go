// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import "testing"

func sampleTable() []Record {
	start := Record{Instruction: InstrTableInfo, Field1: TableInfoStart}
	start.SetField2Int(100)
	ramp := Record{Instruction: InstrSinRampTo, Field1: RampFromNominal}
	ramp.SetField2Float(25.5)
	wait := Record{Instruction: InstrWait, Field1: WaitTime}
	wait.SetField2Int(10)
	return []Record{start, ramp, wait}
}

func TestTableCRCGolden(t *testing.T) {
	if got := TableCRC(sampleTable()); got != 0x003E1C73 {
		t.Errorf("TableCRC = 0x%08X, want 0x003E1C73", got)
	}

	start := Record{Instruction: InstrTableInfo, Field1: TableInfoStart}
	ramp := Record{Instruction: InstrSinRampTo, Field1: RampFromActual}
	ramp.SetField2Float(25.0)
	end := Record{Instruction: InstrTableInfo, Field1: TableInfoEnd}
	if got := TableCRC([]Record{start, ramp, end}); got != 0xA5EA309A {
		t.Errorf("TableCRC = 0x%08X, want 0xA5EA309A", got)
	}
}

func TestTableCRCIgnoresEOF(t *testing.T) {
	records := sampleTable()
	withEOF := append(append([]Record(nil), records...), Record{Instruction: InstrEOF, Field2: 0xDEADBEEF})

	if TableCRC(records) != TableCRC(withEOF) {
		t.Error("end-of-table record changed the checksum")
	}
}

func TestTableCRCEmpty(t *testing.T) {
	if got := TableCRC(nil); got != 0xFFFFFFFF {
		t.Errorf("TableCRC(nil) = 0x%08X, want initial value", got)
	}
}

func TestTableCRCDetectsChanges(t *testing.T) {
	records := sampleTable()
	orig := TableCRC(records)

	modified := append([]Record(nil), records...)
	modified[1].SetField2Float(25.6)
	if TableCRC(modified) == orig {
		t.Error("field 2 change not reflected in checksum")
	}

	modified = append([]Record(nil), records...)
	modified[2].Field1 = WaitForever
	if TableCRC(modified) == orig {
		t.Error("field 1 change not reflected in checksum")
	}
}

func TestTableCRCOrderMatters(t *testing.T) {
	records := sampleTable()
	reversed := []Record{records[2], records[1], records[0]}
	if TableCRC(records) == TableCRC(reversed) {
		t.Error("record order not reflected in checksum")
	}
}
