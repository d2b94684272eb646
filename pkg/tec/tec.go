// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

// Package tec is a high level facade for Meerstetter TEC family
// controllers. It maps the device's parameter numbers onto typed
// getters and setters and adds the blocking helpers (stability waits,
// lookup table runs) an instrument driver needs.
package tec

import (
	"fmt"
	"time"

	"github.com/houlihaj/mecom-go/pkg/mecom"
	"github.com/houlihaj/mecom-go/pkg/mecom/lut"
)

// Device parameters. The numbers come from the vendor's communication
// protocol document and are shared across the TEC-1089..1123 family.
const (
	paramDeviceType      = 100
	paramHardwareVersion = 101
	paramSerialNumber    = 102
	paramFirmwareVersion = 103
	paramDeviceStatus    = 104

	paramObjectTemp  = 1000
	paramSinkTemp    = 1001
	paramTargetTemp  = 1010
	paramRampNominal = 1011
	paramCurrent     = 1020
	paramVoltage     = 1021

	paramTempStability = 1200

	paramCurrentLimit = 2030
	paramVoltageLimit = 2031

	paramSetTarget      = 3000
	paramCoarseRampRate = 3003
	paramPIDKp          = 3010
	paramPIDTi          = 3011
	paramPIDTd          = 3012
)

// DeviceStatus is the controller's top level state.
type DeviceStatus int32

const (
	StatusInit DeviceStatus = iota
	StatusReady
	StatusRun
	StatusError
	StatusBootloader
	StatusResetPending
)

func (s DeviceStatus) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusReady:
		return "ready"
	case StatusRun:
		return "run"
	case StatusError:
		return "error"
	case StatusBootloader:
		return "bootloader"
	case StatusResetPending:
		return "device will reset within 200ms"
	default:
		return fmt.Sprintf("unknown status %d", int32(s))
	}
}

// Stability is the temperature regulation state.
type Stability int32

const (
	StabilityNotActive Stability = iota
	StabilityNotStable
	StabilityStable
)

func (s Stability) String() string {
	switch s {
	case StabilityNotActive:
		return "regulation not active"
	case StabilityNotStable:
		return "not stable"
	case StabilityStable:
		return "stable"
	default:
		return fmt.Sprintf("unknown stability %d", int32(s))
	}
}

// stablePollInterval is how often the blocking waiters sample the
// device.
const stablePollInterval = 100 * time.Millisecond

// PIDGains holds the temperature regulation loop parameters.
type PIDGains struct {
	Kp float32 // proportional gain
	Ti float32 // integration time, seconds
	Td float32 // differentiation time, seconds
}

// Device is one controller on the bus.
type Device struct {
	conn    *mecom.Connection
	lut     *lut.Cmd
	address int
	channel uint8
}

// Option configures a Device.
type Option func(*Device)

// WithAddress selects the device address (1..254).
func WithAddress(address int) Option {
	return func(d *Device) { d.address = address }
}

// WithChannel selects the regulation channel instance on multi channel
// controllers.
func WithChannel(channel uint8) Option {
	return func(d *Device) { d.channel = channel }
}

// New wraps an open connection. The default is device address 1,
// channel 1.
func New(conn *mecom.Connection, opts ...Option) *Device {
	d := &Device{conn: conn, address: 1, channel: 1}
	for _, opt := range opts {
		opt(d)
	}
	d.lut = lut.NewCmd(conn)
	return d
}

// Connection exposes the underlying connection, for raw parameter
// access.
func (d *Device) Connection() *mecom.Connection { return d.conn }

// Address returns the device address.
func (d *Device) Address() int { return d.address }

// Channel returns the regulation channel.
func (d *Device) Channel() uint8 { return d.channel }

// Ident reads the device's identification string.
func (d *Device) Ident() (string, error) {
	return d.conn.Ident(d.address, d.channel)
}

// ID composes a SCPI style identification from the device parameters:
// "Meerstetter,TEC<model>,<serial>,<hardware>,<firmware>".
func (d *Device) ID() (string, error) {
	model, err := d.DeviceType()
	if err != nil {
		return "", err
	}
	hw, err := d.HardwareVersion()
	if err != nil {
		return "", err
	}
	serial, err := d.SerialNumber()
	if err != nil {
		return "", err
	}
	fw, err := d.FirmwareVersion()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Meerstetter,TEC%d,%d,%d,%d", model, serial, hw, fw), nil
}

// DeviceType reads the model number, e.g. 1091.
func (d *Device) DeviceType() (int32, error) {
	return d.conn.ReadInt32Value(d.address, paramDeviceType, d.channel)
}

// HardwareVersion reads the hardware revision.
func (d *Device) HardwareVersion() (int32, error) {
	return d.conn.ReadInt32Value(d.address, paramHardwareVersion, d.channel)
}

// SerialNumber reads the serial number.
func (d *Device) SerialNumber() (int32, error) {
	return d.conn.ReadInt32Value(d.address, paramSerialNumber, d.channel)
}

// FirmwareVersion reads the firmware version.
func (d *Device) FirmwareVersion() (int32, error) {
	return d.conn.ReadInt32Value(d.address, paramFirmwareVersion, d.channel)
}

// Status reads the controller state.
func (d *Device) Status() (DeviceStatus, error) {
	v, err := d.conn.ReadInt32Value(d.address, paramDeviceStatus, d.channel)
	return DeviceStatus(v), err
}

// Temperature reads the object temperature in degrees Celsius.
func (d *Device) Temperature() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramObjectTemp, d.channel)
}

// SinkTemperature reads the heat sink temperature in degrees Celsius.
func (d *Device) SinkTemperature() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramSinkTemp, d.channel)
}

// TargetTemperature reads the effective target temperature.
func (d *Device) TargetTemperature() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramTargetTemp, d.channel)
}

// RampNominalTemperature reads the instantaneous setpoint while a ramp
// is in progress.
func (d *Device) RampNominalTemperature() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramRampNominal, d.channel)
}

// Current reads the TEC output current in amperes.
func (d *Device) Current() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramCurrent, d.channel)
}

// Voltage reads the TEC output voltage in volts.
func (d *Device) Voltage() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramVoltage, d.channel)
}

// SetTemperature writes the target temperature in degrees Celsius.
func (d *Device) SetTemperature(celsius float32) error {
	return d.conn.WriteFloat32Value(d.address, paramSetTarget, d.channel, celsius)
}

// SetCoarseRampRate writes the coarse temperature ramp in degrees
// Celsius per second.
func (d *Device) SetCoarseRampRate(degPerSec float32) error {
	return d.conn.WriteFloat32Value(d.address, paramCoarseRampRate, d.channel, degPerSec)
}

// PID reads the regulation loop gains.
func (d *Device) PID() (PIDGains, error) {
	var g PIDGains
	var err error
	if g.Kp, err = d.conn.ReadFloat32Value(d.address, paramPIDKp, d.channel); err != nil {
		return g, err
	}
	if g.Ti, err = d.conn.ReadFloat32Value(d.address, paramPIDTi, d.channel); err != nil {
		return g, err
	}
	if g.Td, err = d.conn.ReadFloat32Value(d.address, paramPIDTd, d.channel); err != nil {
		return g, err
	}
	return g, nil
}

// SetPID writes the regulation loop gains.
func (d *Device) SetPID(g PIDGains) error {
	if err := d.conn.WriteFloat32Value(d.address, paramPIDKp, d.channel, g.Kp); err != nil {
		return err
	}
	if err := d.conn.WriteFloat32Value(d.address, paramPIDTi, d.channel, g.Ti); err != nil {
		return err
	}
	return d.conn.WriteFloat32Value(d.address, paramPIDTd, d.channel, g.Td)
}

// CurrentLimit reads the output current limit in amperes.
func (d *Device) CurrentLimit() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramCurrentLimit, d.channel)
}

// SetCurrentLimit writes the output current limit in amperes.
func (d *Device) SetCurrentLimit(amps float32) error {
	return d.conn.WriteFloat32Value(d.address, paramCurrentLimit, d.channel, amps)
}

// VoltageLimit reads the output voltage limit in volts.
func (d *Device) VoltageLimit() (float32, error) {
	return d.conn.ReadFloat32Value(d.address, paramVoltageLimit, d.channel)
}

// SetVoltageLimit writes the output voltage limit in volts.
func (d *Device) SetVoltageLimit(volts float32) error {
	return d.conn.WriteFloat32Value(d.address, paramVoltageLimit, d.channel, volts)
}

// TemperatureStability reads the regulation stability state.
func (d *Device) TemperatureStability() (Stability, error) {
	v, err := d.conn.ReadInt32Value(d.address, paramTempStability, d.channel)
	return Stability(v), err
}

// IsTemperatureStable reports whether the object temperature is within
// the stability window.
func (d *Device) IsTemperatureStable() (bool, error) {
	s, err := d.TemperatureStability()
	if err != nil {
		return false, err
	}
	return s == StabilityStable, nil
}

// WaitForStableTemperature polls until the temperature is stable or
// the timeout expires.
func (d *Device) WaitForStableTemperature(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		stable, err := d.IsTemperatureStable()
		if err != nil {
			return err
		}
		if stable {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("tec: temperature not stable after %s", timeout)
		}
		time.Sleep(stablePollInterval)
	}
}

// Reset restarts the controller.
func (d *Device) Reset() error {
	return d.conn.Reset(d.address)
}

// DownloadLookupTable writes a table to the device and waits until the
// analysis reports a final state.
func (d *Device) DownloadLookupTable(records []lut.Record) error {
	if err := d.lut.Download(d.address, records); err != nil {
		return err
	}
	// The analyze can report through the status parameter a little
	// after the flash loader goes idle.
	for attempt := 0; attempt < 50; attempt++ {
		status, err := d.lut.GetStatus(d.address, d.channel)
		if err != nil {
			return err
		}
		switch status {
		case lut.StatusNoInit, lut.StatusAnalyzing:
			time.Sleep(10 * time.Millisecond)
			continue
		case lut.StatusReady:
			return nil
		default:
			return fmt.Errorf("tec: lookup table rejected: %s", status)
		}
	}
	return fmt.Errorf("tec: lookup table analysis did not finish")
}

// ExecuteLookupTable runs the stored table to completion or until the
// timeout expires. The table is stopped if it was already running, and
// force stopped on any failure.
func (d *Device) ExecuteLookupTable(timeout time.Duration) (err error) {
	status, err := d.LookupTableStatus()
	if err != nil {
		return err
	}
	if status == lut.StatusExecuting {
		if err := d.StopLookupTable(); err != nil {
			return err
		}
	}

	if err := d.StartLookupTable(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			// Best effort cleanup so the device is not left running.
			_ = d.StopLookupTable()
		}
	}()

	status, err = d.LookupTableStatus()
	if err != nil {
		return err
	}
	if status != lut.StatusExecuting {
		return fmt.Errorf("tec: lookup table did not start: %s", status)
	}

	deadline := time.Now().Add(timeout)
	for {
		time.Sleep(stablePollInterval)
		status, err = d.LookupTableStatus()
		if err != nil {
			return err
		}
		if status != lut.StatusExecuting {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("tec: lookup table still executing after %s", timeout)
		}
	}
}

// StartLookupTable begins executing the stored table.
func (d *Device) StartLookupTable() error {
	return d.lut.Start(d.address, d.channel)
}

// StopLookupTable aborts a running table.
func (d *Device) StopLookupTable() error {
	return d.lut.Stop(d.address, d.channel)
}

// LookupTableStatus reads the table engine state.
func (d *Device) LookupTableStatus() (lut.Status, error) {
	return d.lut.GetStatus(d.address, d.channel)
}

// LookupTable exposes the low level table commands.
func (d *Device) LookupTable() *lut.Cmd { return d.lut }
