// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package lut

// tablePolynomial is the CRC-32 polynomial the device's flash loader
// uses to verify a table. The checksum runs MSB-first over whole words
// with no reflection and no final xor, matching the STM32 hardware CRC
// unit.
const tablePolynomial = 0x04C11DB7

// TableCRC computes the checksum of a table. End-of-table records are
// excluded; the checksum itself travels in the EOF record's field 2.
func TableCRC(records []Record) uint32 {
	crc := uint32(0xFFFFFFFF)
	for i := range records {
		if records[i].Instruction == InstrEOF {
			continue
		}
		w0, w1 := records[i].Words()
		crc = crc32Word(crc, w0)
		crc = crc32Word(crc, w1)
	}
	return crc
}

func crc32Word(crc, data uint32) uint32 {
	crc ^= data
	for i := 0; i < 32; i++ {
		if crc&0x80000000 != 0 {
			crc = (crc << 1) ^ tablePolynomial
		} else {
			crc <<= 1
		}
	}
	return crc
}
