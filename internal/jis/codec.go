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

// Package jis implements the character set conversions used by EB books.
// Book text is stored as 7-bit JIS X 0208 code pairs, as GB 2312 code pairs
// or as ISO 8859-1 bytes.
package jis

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const ideographicSpace = '　'

// DecodeJISX0208 decodes JIS X 0208 code pairs up to the first NUL byte.
// Leading and trailing whitespace is removed.
func DecodeJISX0208(b []byte) string {
	return strings.TrimSpace(JISX0208Text(untilNUL(b)))
}

// JISX0208Text decodes a run of JIS X 0208 code pairs from book text.
// Invalid pairs are replaced with U+FFFD.
func JISX0208Text(b []byte) string {
	s, err := japanese.EUCJP.NewDecoder().Bytes(highBit(b))
	if err != nil {
		return ""
	}
	return string(s)
}

// GB2312Text decodes a run of GB 2312 code pairs from book text.
func GB2312Text(b []byte) string {
	s, err := simplifiedchinese.GBK.NewDecoder().Bytes(highBit(b))
	if err != nil {
		return ""
	}
	return string(s)
}

func untilNUL(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// highBit returns the EUC form of 7-bit code pairs.
func highBit(b []byte) []byte {
	euc := make([]byte, len(b))
	for i, c := range b {
		euc[i] = c | 0x80
	}
	return euc
}

// DecodeLatin1 decodes ISO 8859-1 bytes up to the first NUL byte. Leading and
// trailing whitespace is removed.
func DecodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(untilNUL(b))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(s))
}

// EncodeLatin1 encodes s as ISO 8859-1. It returns nil if s contains
// characters that cannot be encoded.
func EncodeLatin1(s string) []byte {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\t", " "))
	if s == "" {
		return nil
	}
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return b
}

// EncodeJISX0208 encodes s as JIS X 0208 code pairs. ASCII characters and
// half-width katakana are mapped to their full-width equivalents. Leading
// and trailing spaces, including ideographic spaces, are removed. It returns
// nil if s is empty or contains characters outside JIS X 0208.
func EncodeJISX0208(s string) []byte {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.TrimFunc(s, func(r rune) bool {
		return r <= ' ' || r == ideographicSpace
	})
	if s == "" {
		return nil
	}

	euc, err := japanese.EUCJP.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}

	out := make([]byte, 0, len(euc)*2)
	for i := 0; i < len(euc); i++ {
		c := euc[i]
		switch {
		case c >= 0x20 && c <= 0x7e:
			code := asciiToJISX0208[c-0x20]
			out = append(out, byte(code>>8), byte(code))
		case c >= 0xa1 && c <= 0xfe:
			if i+1 >= len(euc) || euc[i+1] < 0xa1 || euc[i+1] == 0xff {
				return nil
			}
			out = append(out, c&0x7f, euc[i+1]&0x7f)
			i++
		case c == 0x8e:
			if i+1 >= len(euc) || euc[i+1] < 0xa1 || euc[i+1] > 0xdf {
				return nil
			}
			code := jisx0201ToJISX0208[euc[i+1]-0xa0]
			out = append(out, byte(code>>8), byte(code))
			i++
		default:
			return nil
		}
	}
	return out
}

// ASCIIToJISX0208 returns the full-width JIS X 0208 code for the printable
// ASCII character c, or 0 if c is not printable.
func ASCIIToJISX0208(c byte) uint16 {
	if c < 0x20 || c > 0x7e {
		return 0
	}
	return asciiToJISX0208[c-0x20]
}
