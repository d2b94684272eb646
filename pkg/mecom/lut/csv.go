// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tables are authored as semicolon separated CSV with an instruction
// name and up to two fields per row, matching the format of the vendor
// tool's export.
var csvHeader = []string{"Instruction", "Field 1", "Field 2"}

// FormatError reports a structural problem in a table file.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("lut: line %d: %s", e.Line, e.Msg)
}

// InstructionFieldError reports a row whose instruction or field value
// is invalid.
type InstructionFieldError struct {
	Line        int
	Instruction string
	Field       string
	Value       string
}

func (e *InstructionFieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("lut: line %d: unknown instruction %q", e.Line, e.Instruction)
	}
	return fmt.Sprintf("lut: line %d: %s: invalid %s %q", e.Line, e.Instruction, e.Field, e.Value)
}

// ParseCSV reads a table file. Parsing stops at the first EOF row; a
// table without one simply ends at the last row.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, &FormatError{Line: 1, Msg: "missing header"}
	}
	for i, want := range csvHeader {
		if i >= len(header) || !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, &FormatError{Line: 1, Msg: fmt.Sprintf("bad header, want %q", strings.Join(csvHeader, ";"))}
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Line: line, Msg: err.Error()}
		}
		name := strings.TrimSpace(field(row, 0))
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "EOF") {
			break
		}
		rec, err := parseRow(line, name, field(row, 1), field(row, 2))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseSelector maps a Field 1 token like START or FROM_NOM onto its
// encoded value.
func parseSelector(line int, instr, value string, tokens map[string]uint32) (uint32, error) {
	if sel, ok := tokens[strings.ToUpper(value)]; ok {
		return sel, nil
	}
	return 0, &InstructionFieldError{Line: line, Instruction: instr, Field: "field 1", Value: value}
}

func parseRow(line int, name, f1, f2 string) (Record, error) {
	var rec Record
	switch strings.ToUpper(name) {
	case "TABLE_INFO":
		rec.Instruction = InstrTableInfo
		sel, err := parseSelector(line, name, f1, map[string]uint32{
			"START": TableInfoStart,
			"END":   TableInfoEnd,
		})
		if err != nil {
			return rec, err
		}
		rec.Field1 = sel
		v, err := parseInt(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Int(v)

	case "SIN_RAMP_TO":
		rec.Instruction = InstrSinRampTo
		sel, err := parseSelector(line, name, f1, map[string]uint32{
			"FROM_ACT": RampFromActual,
			"FROM_NOM": RampFromNominal,
		})
		if err != nil {
			return rec, err
		}
		rec.Field1 = sel
		v, err := parseFloat(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Float(v)

	case "REPEAT_MARK":
		rec.Instruction = InstrRepeatMark
		sel, err := parseSelector(line, name, f1, map[string]uint32{
			"START": RepeatStart,
			"END":   RepeatEnd,
		})
		if err != nil {
			return rec, err
		}
		rec.Field1 = sel

	case "LIN_RAMP_TIME":
		rec.Instruction = InstrLinRampTime
		secs, err := parseInt(line, name, "field 1", f1)
		if err != nil {
			return rec, err
		}
		if secs < linRampTimeMin || secs > linRampTimeMax {
			return rec, &InstructionFieldError{Line: line, Instruction: name, Field: "field 1", Value: f1}
		}
		rec.Field1 = uint32(secs)
		v, err := parseFloat(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Float(v)

	case "STATUS":
		rec.Instruction = InstrStatus
		sel, err := parseSelector(line, name, f1, map[string]uint32{
			"DISABLE": StatusDisable,
			"ENABLE":  StatusEnable,
		})
		if err != nil {
			return rec, err
		}
		rec.Field1 = sel

	case "WAIT":
		rec.Instruction = InstrWait
		sel, err := parseSelector(line, name, f1, map[string]uint32{
			"FOREVER": WaitForever,
			"TIME":    WaitTime,
		})
		if err != nil {
			return rec, err
		}
		rec.Field1 = sel
		if sel == WaitTime {
			v, err := parseInt(line, name, "field 2", f2)
			if err != nil {
				return rec, err
			}
			if v < 0 {
				return rec, &InstructionFieldError{Line: line, Instruction: name, Field: "field 2", Value: f2}
			}
			rec.SetField2Int(v)
		}

	case "SET_FLOAT":
		rec.Instruction = InstrSetFloat
		id, err := parseInt(line, name, "field 1", f1)
		if err != nil {
			return rec, err
		}
		if id < 0 || id > field1Max {
			return rec, &InstructionFieldError{Line: line, Instruction: name, Field: "field 1", Value: f1}
		}
		rec.Field1 = uint32(id)
		v, err := parseFloat(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Float(v)

	case "SET_INT":
		rec.Instruction = InstrSetInt
		id, err := parseInt(line, name, "field 1", f1)
		if err != nil {
			return rec, err
		}
		if id < 0 || id > field1Max {
			return rec, &InstructionFieldError{Line: line, Instruction: name, Field: "field 1", Value: f1}
		}
		rec.Field1 = uint32(id)
		v, err := parseInt(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Int(v)

	case "TILL_TEMP_STABLE":
		rec.Instruction = InstrTillTempStable

	case "SET_TARGET_INST":
		rec.Instruction = InstrSetTargetInst
		v, err := parseInt(line, name, "field 2", f2)
		if err != nil {
			return rec, err
		}
		rec.SetField2Int(v)

	default:
		return rec, &InstructionFieldError{Line: line, Instruction: name}
	}
	return rec, nil
}

func parseInt(line int, instr, field, value string) (int32, error) {
	v, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, &InstructionFieldError{Line: line, Instruction: instr, Field: field, Value: value}
	}
	return int32(v), nil
}

func parseFloat(line int, instr, field, value string) (float32, error) {
	v, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, &InstructionFieldError{Line: line, Instruction: instr, Field: field, Value: value}
	}
	return float32(v), nil
}
