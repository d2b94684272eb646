// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

// Transport moves raw frames to and from a device. Implementations
// exist for serial ports and WebSocket bridges.
type Transport interface {
	// Send writes a complete serialized frame, including the trailing
	// carriage return.
	Send(frame []byte) error

	// ReceiveLine reads the next frame up to but not including the
	// carriage return. It returns ErrTimeout when no frame arrives
	// within the transport's read timeout.
	ReceiveLine() ([]byte, error)

	// Close releases the underlying resource.
	Close() error
}
