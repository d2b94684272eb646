// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

import "fmt"

// Status is the lookup table state the device reports through the
// table status parameter.
type Status int32

const (
	StatusNoInit Status = iota
	StatusNotValid
	StatusAnalyzing
	StatusReady
	StatusExecuting
	StatusMaxNumberExceeded
	StatusSubTableNotFound
)

func (s Status) String() string {
	switch s {
	case StatusNoInit:
		return "not initialized"
	case StatusNotValid:
		return "table data not valid"
	case StatusAnalyzing:
		return "analyzing"
	case StatusReady:
		return "ready"
	case StatusExecuting:
		return "executing"
	case StatusMaxNumberExceeded:
		return "maximum number of tables exceeded"
	case StatusSubTableNotFound:
		return "sub table not found"
	default:
		return fmt.Sprintf("unknown status %d", int32(s))
	}
}

// FlashStatus is the page transfer state returned by the ?LT command.
type FlashStatus uint8

const (
	FlashIdle FlashStatus = iota
	FlashBusy
	FlashDataAccepted
	FlashError
)

func (s FlashStatus) String() string {
	switch s {
	case FlashIdle:
		return "idle"
	case FlashBusy:
		return "busy"
	case FlashDataAccepted:
		return "data accepted"
	case FlashError:
		return "error"
	default:
		return fmt.Sprintf("unknown flash status %d", uint8(s))
	}
}
