// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import "fmt"

// Frame is a single MeCom frame, either a request built by the host or
// an answer parsed from the device.
type Frame struct {
	Control  byte
	Address  int
	Sequence uint16
	Payload  string
	Rcv      RcvType
}

// NewFrame returns a host frame addressed to the given device.
func NewFrame(address int) Frame {
	return Frame{Control: ControlHost, Address: address}
}

// Serialize encodes the frame into its wire representation: the header
// and payload as ASCII hex, the CRC over all of it, and a trailing
// carriage return.
func Serialize(f Frame) []byte {
	data, _ := serialize(f)
	return data
}

func serialize(f Frame) ([]byte, uint16) {
	stream := string(f.Control)
	stream = AppendUint8(stream, uint8(f.Address))
	stream = AppendUint16(stream, f.Sequence)
	stream = AppendString(stream, f.Payload)
	crc := CalculateCRC([]byte(stream))
	stream = AppendUint16(stream, crc)
	return append([]byte(stream), '\r'), crc
}

// FrameCodec serializes frames onto a transport and parses the lines
// coming back. It remembers the CRC of the last frame sent so that
// acknowledge frames can be matched to their request.
type FrameCodec struct {
	transport Transport
	stats     *Statistics
	lastCRC   uint16
}

// NewFrameCodec wraps a transport. A nil stats allocates a fresh one.
func NewFrameCodec(t Transport, stats *Statistics) *FrameCodec {
	if stats == nil {
		stats = NewStatistics()
	}
	return &FrameCodec{transport: t, stats: stats}
}

// Send serializes the frame and writes it to the transport.
func (c *FrameCodec) Send(f Frame) error {
	data, crc := serialize(f)
	if err := c.transport.Send(data); err != nil {
		return err
	}
	c.lastCRC = crc
	c.stats.FramesSent++
	return nil
}

// Receive reads and parses the next frame from the transport.
func (c *FrameCodec) Receive() (Frame, error) {
	line, err := c.transport.ReceiveLine()
	if err != nil {
		return Frame{}, err
	}
	return c.Parse(line)
}

// Parse decodes a received line. An 11 character line whose trailing
// four characters echo the CRC of the last request is an acknowledge;
// an 11 character line with a stale CRC is ignored and left empty.
// Anything longer is a data frame and has its own CRC verified.
func (c *FrameCodec) Parse(line []byte) (Frame, error) {
	rx := Frame{Address: AddressDefault}
	stream := string(line)

	if len(stream) == ackFrameLength {
		echo, err := ReadUint16(stream[7:11])
		if err != nil {
			return rx, err
		}
		if echo != c.lastCRC {
			return rx, nil
		}
		address, err := ReadUint8(stream[1:3])
		if err != nil {
			return rx, err
		}
		sequence, err := ReadUint16(stream[3:7])
		if err != nil {
			return rx, err
		}
		rx.Control = stream[0]
		rx.Address = int(address)
		rx.Sequence = sequence
		rx.Rcv = RcvACK
		c.stats.FramesReceived++
		return rx, nil
	}
	if len(stream) < ackFrameLength {
		return rx, fmt.Errorf("mecom: short frame %q", stream)
	}

	crc, err := ReadUint16(stream[len(stream)-4:])
	if err != nil {
		return rx, err
	}
	if crc != CalculateCRC([]byte(stream[:len(stream)-4])) {
		c.stats.CRCErrors++
		return rx, ErrChecksumMismatch
	}

	rx.Control = stream[0]
	address, err := ReadUint8(stream[1:3])
	if err != nil {
		return rx, err
	}
	rx.Address = int(address)
	rx.Sequence, err = ReadUint16(stream[3:7])
	if err != nil {
		return rx, err
	}
	rx.Payload = stream[7 : len(stream)-4]
	rx.Rcv = RcvData
	c.stats.FramesReceived++
	return rx, nil
}
