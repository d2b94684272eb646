// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import "testing"

func TestCalculateCRC(t *testing.T) {
	tests := []struct {
		name string
		data string
		want uint16
	}{
		{"empty", "", 0x0000},
		{"single byte", "A", 0x58E5},
		{"check value", "123456789", 0x31C3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCRC([]byte(tt.data))
			if got != tt.want {
				t.Errorf("CalculateCRC(%q) = 0x%04X, want 0x%04X", tt.data, got, tt.want)
			}
		})
	}
}

func TestCalculateCRCDetectsCorruption(t *testing.T) {
	data := []byte("#0012AB?VR03E801")
	orig := CalculateCRC(data)

	for i := range data {
		corrupted := append([]byte(nil), data...)
		corrupted[i] ^= 0x01
		if CalculateCRC(corrupted) == orig {
			t.Errorf("single bit flip at byte %d not detected", i)
		}
	}
}
