// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the frame codec and the transports.
var (
	// ErrTimeout is returned when no frame arrives within the
	// transport's read timeout.
	ErrTimeout = errors.New("mecom: receive timeout")

	// ErrChecksumMismatch is returned when a data frame's checksum does
	// not match the frame contents.
	ErrChecksumMismatch = errors.New("mecom: checksum mismatch")

	// ErrNotConnected is returned when a transaction is attempted on a
	// closed connection.
	ErrNotConnected = errors.New("mecom: not connected")
)

// MalformedFieldError reports a payload field that could not be decoded.
type MalformedFieldError struct {
	Want int    // expected number of hex characters
	Got  string // offending input
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("mecom: malformed field %q (want %d hex chars)", e.Got, e.Want)
}

// CommunicationError reports a failed transaction. The interface is
// marked not ready when one occurs.
type CommunicationError struct {
	Op  string // "query" or "set"
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("mecom: %s failed: %v", e.Op, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// ServerError reports an error code returned by the device. Answer
// payloads starting with '+' carry the code as two hex characters.
type ServerError struct {
	Code int // -1 when the code could not be decoded
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("mecom: device returned error code %d", e.Code)
}
