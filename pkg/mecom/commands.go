// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import "fmt"

// Ident asks the device on the given channel for its identification
// string.
func (c *Connection) Ident(address int, channel uint8) (string, error) {
	tx := NewFrame(address)
	tx.Payload = AppendUint8("?IF", channel)
	rx, err := c.Query(tx)
	if err != nil {
		return "", fmt.Errorf("identify failed: %w", err)
	}
	return rx.Payload, nil
}

// Reset restarts the device. The device drops off the bus for a moment,
// so the caller should wait before talking to it again.
func (c *Connection) Reset(address int) error {
	tx := NewFrame(address)
	tx.Payload = "RS"
	if _, err := c.Set(tx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	return nil
}

func (c *Connection) queryParameter(address int, parameter uint16, instance uint8) (Frame, error) {
	tx := NewFrame(address)
	tx.Payload = AppendUint8(AppendUint16("?VR", parameter), instance)
	return c.Query(tx)
}

// ReadInt32Value reads a parameter of type INT32.
func (c *Connection) ReadInt32Value(address int, parameter uint16, instance uint8) (int32, error) {
	rx, err := c.queryParameter(address, parameter, instance)
	if err != nil {
		return 0, fmt.Errorf("get INT32 value failed (parameter %d): %w", parameter, err)
	}
	value, err := ReadInt32(rx.Payload)
	if err != nil {
		return 0, fmt.Errorf("get INT32 value failed (parameter %d): %w", parameter, err)
	}
	return value, nil
}

// ReadFloat32Value reads a parameter of type FLOAT32.
func (c *Connection) ReadFloat32Value(address int, parameter uint16, instance uint8) (float32, error) {
	rx, err := c.queryParameter(address, parameter, instance)
	if err != nil {
		return 0, fmt.Errorf("get FLOAT32 value failed (parameter %d): %w", parameter, err)
	}
	value, err := ReadFloat32(rx.Payload)
	if err != nil {
		return 0, fmt.Errorf("get FLOAT32 value failed (parameter %d): %w", parameter, err)
	}
	return value, nil
}

// ReadInt64Value reads a parameter of type INT64.
func (c *Connection) ReadInt64Value(address int, parameter uint16, instance uint8) (int64, error) {
	rx, err := c.queryParameter(address, parameter, instance)
	if err != nil {
		return 0, fmt.Errorf("get INT64 value failed (parameter %d): %w", parameter, err)
	}
	value, err := ReadInt64(rx.Payload)
	if err != nil {
		return 0, fmt.Errorf("get INT64 value failed (parameter %d): %w", parameter, err)
	}
	return value, nil
}

func (c *Connection) writeParameter(address int, parameter uint16, instance uint8, value string) error {
	tx := NewFrame(address)
	tx.Payload = AppendString(AppendUint8(AppendUint16("VS", parameter), instance), value)
	_, err := c.Set(tx)
	return err
}

// WriteInt32Value writes a parameter of type INT32.
func (c *Connection) WriteInt32Value(address int, parameter uint16, instance uint8, value int32) error {
	if err := c.writeParameter(address, parameter, instance, AppendInt32("", value)); err != nil {
		return fmt.Errorf("set INT32 value failed (parameter %d): %w", parameter, err)
	}
	return nil
}

// WriteFloat32Value writes a parameter of type FLOAT32.
func (c *Connection) WriteFloat32Value(address int, parameter uint16, instance uint8, value float32) error {
	if err := c.writeParameter(address, parameter, instance, AppendFloat32("", value)); err != nil {
		return fmt.Errorf("set FLOAT32 value failed (parameter %d): %w", parameter, err)
	}
	return nil
}

// WriteInt64Value writes a parameter of type INT64.
func (c *Connection) WriteInt64Value(address int, parameter uint16, instance uint8, value int64) error {
	if err := c.writeParameter(address, parameter, instance, AppendInt64("", value)); err != nil {
		return fmt.Errorf("set INT64 value failed (parameter %d): %w", parameter, err)
	}
	return nil
}
