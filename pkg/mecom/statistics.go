// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"fmt"
	"strings"
	"time"
)

// Statistics tracks transaction health over the lifetime of a
// connection.
type Statistics struct {
	StartTime      time.Time
	FramesSent     uint64
	FramesReceived uint64
	Retries        uint64
	Timeouts       uint64
	CRCErrors      uint64
	ServerErrors   uint64

	// Derived by CalculateRates
	FrameRate float64 // frames received per second
	ErrorRate float64 // timeouts + CRC errors per second
}

// NewStatistics returns zeroed statistics with the clock started.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// CalculateRates updates FrameRate and ErrorRate from the elapsed time.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed <= 0 {
		return
	}
	s.FrameRate = float64(s.FramesReceived) / elapsed
	s.ErrorRate = float64(s.Timeouts+s.CRCErrors) / elapsed
}

// String renders a human readable report.
func (s *Statistics) String() string {
	s.CalculateRates()
	var b strings.Builder
	b.WriteString("=== Statistics ===\n")
	fmt.Fprintf(&b, "Uptime:          %s\n", time.Since(s.StartTime).Round(time.Second))
	fmt.Fprintf(&b, "Frames sent:     %d\n", s.FramesSent)
	fmt.Fprintf(&b, "Frames received: %d (%.1f/s)\n", s.FramesReceived, s.FrameRate)
	if s.Retries > 0 {
		fmt.Fprintf(&b, "Retries:         %d\n", s.Retries)
	}
	if s.Timeouts > 0 {
		fmt.Fprintf(&b, "Timeouts:        %d\n", s.Timeouts)
	}
	if s.CRCErrors > 0 {
		fmt.Fprintf(&b, "CRC errors:      %d\n", s.CRCErrors)
	}
	if s.ServerErrors > 0 {
		fmt.Fprintf(&b, "Server errors:   %d\n", s.ServerErrors)
	}
	return b.String()
}

// Reset zeroes all counters and restarts the clock.
func (s *Statistics) Reset() {
	*s = Statistics{StartTime: time.Now()}
}
