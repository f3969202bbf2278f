// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ebfile

import (
	"encoding/binary"
)

// PageSize is the size of a block in every book file.
const PageSize = 2048

// Position returns the absolute byte position of offset off within the
// 1-based block.
func Position(block uint32, off uint16) int64 {
	return (int64(block)-1)*PageSize + int64(off)
}

// Block returns the 1-based block containing pos.
func Block(pos int64) uint32 {
	//nolint:gosec // block numbers are 32 bits on disk.
	return uint32(pos/PageSize + 1)
}

// Offset returns the offset of pos within its block.
func Offset(pos int64) uint16 {
	//nolint:gosec // always less than PageSize.
	return uint16(pos % PageSize)
}

// BinaryPosition decodes a 6-byte position stored as a big-endian 4-byte
// block followed by a big-endian 2-byte offset. Index records use this
// encoding.
func BinaryPosition(b []byte) int64 {
	return Position(binary.BigEndian.Uint32(b), binary.BigEndian.Uint16(b[4:]))
}

// PutBinaryPosition encodes pos into b using the BinaryPosition layout.
func PutBinaryPosition(b []byte, pos int64) {
	binary.BigEndian.PutUint32(b, Block(pos))
	binary.BigEndian.PutUint16(b[4:], Offset(pos))
}

// BCDPosition decodes a 6-byte position stored as a 4-byte BCD block
// followed by a 2-byte BCD offset. References embedded in text use this
// encoding.
func BCDPosition(b []byte) int64 {
	//nolint:gosec // BCD values are at most 8 decimal digits.
	return Position(uint32(BCD4(b)), uint16(BCD2(b[4:])))
}

// BCD2 decodes a 2-byte binary coded decimal value.
func BCD2(b []byte) int {
	return bcd(b[:2])
}

// BCD4 decodes a 4-byte binary coded decimal value.
func BCD4(b []byte) int {
	return bcd(b[:4])
}

func bcd(b []byte) int {
	var n int
	for _, c := range b {
		n = n*100 + int(c>>4&0x0f)*10 + int(c&0x0f)
	}
	return n
}

// Uint24 decodes a big-endian 3-byte unsigned integer.
func Uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// uintN decodes a big-endian unsigned integer of len(b) bytes.
func uintN(b []byte) int64 {
	var n int64
	for _, c := range b {
		n = n<<8 | int64(c)
	}
	return n
}
