// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"fmt"
	"math"
	"strconv"
)

// Payload fields are fixed-width uppercase hex. The Append functions
// write a value onto a payload string; the Read functions decode a field
// of exactly the expected width and fail with a MalformedFieldError
// otherwise.

// AppendString writes a raw string to the stream.
func AppendString(stream, value string) string {
	return stream + value
}

// AppendUint4 writes a single hex char (values 0-15) to the stream.
func AppendUint4(stream string, value uint8) string {
	return stream + fmt.Sprintf("%01X", value&0x0F)
}

// AppendUint8 writes a UINT8 to the stream.
func AppendUint8(stream string, value uint8) string {
	return stream + fmt.Sprintf("%02X", value)
}

// AppendUint16 writes a UINT16 to the stream.
func AppendUint16(stream string, value uint16) string {
	return stream + fmt.Sprintf("%04X", value)
}

// AppendUint32 writes a UINT32 to the stream.
func AppendUint32(stream string, value uint32) string {
	return stream + fmt.Sprintf("%08X", value)
}

// AppendUint64 writes a UINT64 to the stream.
func AppendUint64(stream string, value uint64) string {
	return stream + fmt.Sprintf("%016X", value)
}

// AppendInt32 writes an INT32 to the stream.
func AppendInt32(stream string, value int32) string {
	return AppendUint32(stream, uint32(value))
}

// AppendInt64 writes an INT64 to the stream.
func AppendInt64(stream string, value int64) string {
	return AppendUint64(stream, uint64(value))
}

// AppendFloat32 writes the IEEE-754 bit pattern of value as eight hex
// chars.
func AppendFloat32(stream string, value float32) string {
	return AppendUint32(stream, math.Float32bits(value))
}

// AppendBytes writes each byte as two hex chars.
func AppendBytes(stream string, value []byte) string {
	for _, b := range value {
		stream = AppendUint8(stream, b)
	}
	return stream
}

func parseHex(stream string, width int) (uint64, error) {
	if len(stream) != width {
		return 0, &MalformedFieldError{Want: width, Got: stream}
	}
	v, err := strconv.ParseUint(stream, 16, 64)
	if err != nil {
		return 0, &MalformedFieldError{Want: width, Got: stream}
	}
	return v, nil
}

// ReadUint4 reads a single hex char (values 0-15) from the stream.
func ReadUint4(stream string) (uint8, error) {
	v, err := parseHex(stream, 1)
	return uint8(v), err
}

// ReadUint8 reads a UINT8 from the stream.
func ReadUint8(stream string) (uint8, error) {
	v, err := parseHex(stream, 2)
	return uint8(v), err
}

// ReadUint16 reads a UINT16 from the stream.
func ReadUint16(stream string) (uint16, error) {
	v, err := parseHex(stream, 4)
	return uint16(v), err
}

// ReadUint32 reads a UINT32 from the stream.
func ReadUint32(stream string) (uint32, error) {
	v, err := parseHex(stream, 8)
	return uint32(v), err
}

// ReadUint64 reads a UINT64 from the stream.
func ReadUint64(stream string) (uint64, error) {
	return parseHex(stream, 16)
}

// ReadInt16 reads an INT16 from the stream.
func ReadInt16(stream string) (int16, error) {
	v, err := ReadUint16(stream)
	return int16(v), err
}

// ReadInt32 reads an INT32 from the stream.
func ReadInt32(stream string) (int32, error) {
	v, err := ReadUint32(stream)
	return int32(v), err
}

// ReadInt64 reads an INT64 from the stream.
func ReadInt64(stream string) (int64, error) {
	v, err := ReadUint64(stream)
	return int64(v), err
}

// ReadFloat32 decodes eight hex chars as an IEEE-754 bit pattern.
func ReadFloat32(stream string) (float32, error) {
	v, err := ReadUint32(stream)
	return math.Float32frombits(v), err
}
