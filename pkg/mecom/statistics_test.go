// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"strings"
	"testing"
)

func TestStatisticsString(t *testing.T) {
	s := NewStatistics()
	s.FramesSent = 10
	s.FramesReceived = 9
	s.Timeouts = 1

	out := s.String()
	for _, want := range []string{"=== Statistics ===", "Frames sent:     10", "Timeouts:        1"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	// Zero counters stay out of the report.
	if strings.Contains(out, "CRC errors") {
		t.Errorf("report shows zero CRC errors:\n%s", out)
	}
}

func TestStatisticsReset(t *testing.T) {
	s := NewStatistics()
	s.FramesSent = 5
	s.CRCErrors = 2
	s.Reset()
	if s.FramesSent != 0 || s.CRCErrors != 0 {
		t.Errorf("Reset left counters: %+v", s)
	}
}
