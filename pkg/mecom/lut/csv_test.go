// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `Instruction;Field 1;Field 2
TABLE_INFO;START;100
SIN_RAMP_TO;FROM_NOM;25.5
LIN_RAMP_TIME;60;30.0
WAIT;TIME;10
EOF;;
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	if records[0].Instruction != InstrTableInfo || records[0].Field1 != TableInfoStart || records[0].Field2Int() != 100 {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Instruction != InstrSinRampTo || records[1].Field1 != RampFromNominal || records[1].Field2Float() != 25.5 {
		t.Errorf("record 1 = %+v", records[1])
	}
	if records[2].Instruction != InstrLinRampTime || records[2].Field1 != 60 || records[2].Field2Float() != 30.0 {
		t.Errorf("record 2 = %+v", records[2])
	}
	if records[3].Instruction != InstrWait || records[3].Field1 != WaitTime || records[3].Field2Int() != 10 {
		t.Errorf("record 3 = %+v", records[3])
	}
}

func TestParseCSVRampProgram(t *testing.T) {
	input := `Instruction;Field 1;Field 2
TABLE_INFO;START;0
SIN_RAMP_TO;FROM_ACT;25.0
TABLE_INFO;END;0
EOF;0;0
`
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Instruction != InstrTableInfo || records[0].Field1 != TableInfoStart {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Instruction != InstrSinRampTo || records[1].Field1 != RampFromActual || records[1].Field2 != 0x41C80000 {
		t.Errorf("record 1 = %+v", records[1])
	}
	if records[2].Instruction != InstrTableInfo || records[2].Field1 != TableInfoEnd {
		t.Errorf("record 2 = %+v", records[2])
	}
}

func TestParseCSVStopsAtEOF(t *testing.T) {
	input := "Instruction;Field 1;Field 2\nSTATUS;ENABLE;\nEOF;;\nSTATUS;DISABLE;\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1 (rows after EOF ignored)", len(records))
	}
}

func TestParseCSVSkipsBlankRows(t *testing.T) {
	input := "Instruction;Field 1;Field 2\n;;\nTILL_TEMP_STABLE;;\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 1 || records[0].Instruction != InstrTillTempStable {
		t.Errorf("records = %+v", records)
	}
}

func TestParseCSVBadHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Name;A;B\nSTATUS;2;\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("got %v, want FormatError", err)
	}
}

func TestParseCSVFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"unknown instruction", "FROBNICATE;START;2"},
		{"table info bad token", "TABLE_INFO;MIDDLE;0"},
		{"table info numeric token", "TABLE_INFO;0;0"},
		{"ramp bad token", "SIN_RAMP_TO;FROM_PEAK;25.0"},
		{"ramp bad float", "SIN_RAMP_TO;FROM_NOM;warm"},
		{"ramp time too short", "LIN_RAMP_TIME;5;25.0"},
		{"ramp time too long", "LIN_RAMP_TIME;16777216;25.0"},
		{"status bad token", "STATUS;ON;"},
		{"wait negative time", "WAIT;TIME;-5"},
		{"wait bad token", "WAIT;UNTIL;"},
		{"set float id out of range", "SET_FLOAT;16777216;1.0"},
		{"set int not a number", "SET_INT;100;abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Instruction;Field 1;Field 2\n" + tt.row + "\n"
			_, err := ParseCSV(strings.NewReader(input))
			var ife *InstructionFieldError
			if !errors.As(err, &ife) {
				t.Errorf("got %v, want InstructionFieldError", err)
			}
			if ife != nil && ife.Line != 2 {
				t.Errorf("Line = %d, want 2", ife.Line)
			}
		})
	}
}

func TestParseCSVWaitForeverIgnoresField2(t *testing.T) {
	input := "Instruction;Field 1;Field 2\nWAIT;FOREVER;\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if records[0].Field1 != WaitForever || records[0].Field2 != 0 {
		t.Errorf("record = %+v", records[0])
	}
}
