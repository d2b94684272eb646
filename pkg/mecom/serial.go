// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Serial defaults matching the factory configuration of the devices.
const (
	DefaultBaudRate    = 57600
	DefaultReadTimeout = time.Second
)

// SerialTransport talks to a device over a serial port or a USB CDC
// interface.
type SerialTransport struct {
	port serial.Port
}

// OpenSerial opens the named port with 8N1 framing. A readTimeout of
// zero uses DefaultReadTimeout.
func OpenSerial(portName string, baudRate int, readTimeout time.Duration) (*SerialTransport, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}
	return &SerialTransport{port: port}, nil
}

// Send discards stale input and writes the frame.
func (t *SerialTransport) Send(frame []byte) error {
	if err := t.port.ResetInputBuffer(); err != nil {
		return err
	}
	_, err := t.port.Write(frame)
	return err
}

// ReceiveLine reads until a carriage return. A read returning zero
// bytes means the port timed out.
func (t *SerialTransport) ReceiveLine() ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrTimeout
		}
		if buf[0] == '\r' {
			return line, nil
		}
		line = append(line, buf[0])
	}
}

// Close closes the port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}
