// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"errors"
	"testing"
)

func TestAppendValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"uint4", AppendUint4("", 0xA), "A"},
		{"uint4 masks high bits", AppendUint4("", 0x1A), "A"},
		{"uint8", AppendUint8("", 0x0F), "0F"},
		{"uint16", AppendUint16("", 0x03E8), "03E8"},
		{"uint32", AppendUint32("", 0xDEADBEEF), "DEADBEEF"},
		{"uint64 pads to 16", AppendUint64("", 0x1), "0000000000000001"},
		{"int32 negative", AppendInt32("", -1), "FFFFFFFF"},
		{"float 1.5", AppendFloat32("", 1.5), "3FC00000"},
		{"float -2.0", AppendFloat32("", -2.0), "C0000000"},
		{"bytes", AppendBytes("", []byte{0x01, 0xFF}), "01FF"},
		{"appends to prefix", AppendUint8("?IF", 1), "?IF01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestReadValues(t *testing.T) {
	if v, err := ReadUint4("A"); err != nil || v != 0xA {
		t.Errorf("ReadUint4 = %v, %v", v, err)
	}
	if v, err := ReadUint16("03E8"); err != nil || v != 1000 {
		t.Errorf("ReadUint16 = %v, %v", v, err)
	}
	if v, err := ReadInt32("FFFFFFFF"); err != nil || v != -1 {
		t.Errorf("ReadInt32 = %v, %v", v, err)
	}
	if v, err := ReadFloat32("3FC00000"); err != nil || v != 1.5 {
		t.Errorf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := ReadInt64("FFFFFFFFFFFFFFFE"); err != nil || v != -2 {
		t.Errorf("ReadInt64 = %v, %v", v, err)
	}
}

func TestReadValuesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		read  func(string) error
	}{
		{"too short", "3E8", func(s string) error { _, err := ReadUint16(s); return err }},
		{"too long", "003E8", func(s string) error { _, err := ReadUint16(s); return err }},
		{"not hex", "XYZW", func(s string) error { _, err := ReadUint16(s); return err }},
		{"empty", "", func(s string) error { _, err := ReadUint8(s); return err }},
		{"float not hex", "GGGGGGGG", func(s string) error { _, err := ReadFloat32(s); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.input)
			var mfe *MalformedFieldError
			if !errors.As(err, &mfe) {
				t.Errorf("got %v, want MalformedFieldError", err)
			}
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1.5, -2.0, 25.375, 1e-8, -273.15} {
		got, err := ReadFloat32(AppendFloat32("", v))
		if err != nil {
			t.Fatalf("round trip %v: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %v = %v", v, got)
		}
	}
}
