// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

// Package mecom implements the Meerstetter Engineering communication
// protocol (MeCom) spoken by TEC controllers and laser diode drivers.
//
// Frames are ASCII hex encoded and terminated with a carriage return:
//
//	<control> <address:2> <sequence:4> <payload...> <crc:4> CR
//
// The package provides the frame codec, the transaction layer with
// automatic resends, transports for serial ports and WebSocket bridges,
// and typed parameter commands.
package mecom

// Frame control bytes. The values were chosen so a receiver can
// synchronize on the start of a frame.
const (
	ControlHost   = '#' // host to device
	ControlDevice = '!' // device to host
)

// Device addressing.
const (
	// AddressDefault marks a frame without an explicit destination. The
	// transaction layer substitutes the connection's default address.
	AddressDefault = -1

	// AddressBroadcast reaches every device on the bus. Devices do not
	// answer broadcast frames.
	AddressBroadcast = 255
)

// CRC-16-CCITT configuration (XModem parameterization)
const (
	crcPolynomial = 0x1021
	crcInitial    = 0x0000
)

// ackFrameLength is the length of an acknowledge frame: control byte,
// address, sequence number and the CRC of the request being echoed.
const ackFrameLength = 11

// RcvType identifies the kind of frame received from a device.
type RcvType int

const (
	// RcvEmpty means no frame has been received.
	RcvEmpty RcvType = iota
	// RcvACK means the device acknowledged the request.
	RcvACK
	// RcvData means the device answered with data or a server error.
	RcvData
)

func (t RcvType) String() string {
	switch t {
	case RcvACK:
		return "ACK"
	case RcvData:
		return "DATA"
	default:
		return "EMPTY"
	}
}
