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

package jis_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eb/internal/jis"
)

func TestWordTransforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func([]byte)
		word []byte

		expected []byte
	}{
		{
			name:     "katakana to hiragana",
			fn:       jis.KatakanaToHiragana,
			word:     []byte{0x25, 0x22, 0x30, 0x21},
			expected: []byte{0x24, 0x22, 0x30, 0x21},
		},
		{
			name:     "odd byte cleared",
			fn:       jis.KatakanaToHiragana,
			word:     []byte{0x25, 0x22, 0x25},
			expected: []byte{0x24, 0x22, 0x00},
		},
		{
			name:     "stops at NUL",
			fn:       jis.KatakanaToHiragana,
			word:     []byte{0x25, 0x22, 0x00, 0x00, 0x25, 0x22},
			expected: []byte{0x24, 0x22, 0x00, 0x00, 0x25, 0x22},
		},
		{
			name:     "hiragana to katakana",
			fn:       jis.HiraganaToKatakana,
			word:     []byte{0x24, 0x22},
			expected: []byte{0x25, 0x22},
		},
		{
			name:     "lower to upper",
			fn:       jis.LowerToUpper,
			word:     []byte{0x23, 0x61, 0x23, 0x41},
			expected: []byte{0x23, 0x41, 0x23, 0x41},
		},
		{
			name:     "long vowel converted",
			fn:       jis.ConvertLongVowel,
			word:     []byte{0x25, 0x2b, 0x21, 0x3c},
			expected: []byte{0x25, 0x2b, 0x25, 0x22},
		},
		{
			name:     "long vowel after kanji kept",
			fn:       jis.ConvertLongVowel,
			word:     []byte{0x30, 0x21, 0x21, 0x3c},
			expected: []byte{0x30, 0x21, 0x21, 0x3c},
		},
		{
			name:     "long vowel deleted",
			fn:       jis.DeleteLongVowel,
			word:     []byte{0x25, 0x2b, 0x21, 0x3c, 0x25, 0x22},
			expected: []byte{0x25, 0x2b, 0x25, 0x22, 0x00, 0x00},
		},
		{
			name:     "double consonant",
			fn:       jis.ConvertDoubleConsonant,
			word:     []byte{0x24, 0x43},
			expected: []byte{0x24, 0x44},
		},
		{
			name:     "contracted sound",
			fn:       jis.ConvertContractedSound,
			word:     []byte{0x24, 0x63, 0x25, 0x75},
			expected: []byte{0x24, 0x64, 0x25, 0x2b},
		},
		{
			name:     "voiced consonant",
			fn:       jis.ConvertVoicedConsonant,
			word:     []byte{0x24, 0x2c},
			expected: []byte{0x24, 0x2b},
		},
		{
			name:     "small vowel",
			fn:       jis.ConvertSmallVowel,
			word:     []byte{0x24, 0x21},
			expected: []byte{0x24, 0x22},
		},
		{
			name:     "p sound",
			fn:       jis.ConvertPSound,
			word:     []byte{0x24, 0x51},
			expected: []byte{0x24, 0x4f},
		},
		{
			name:     "mark deleted",
			fn:       jis.DeleteMark,
			word:     []byte{0x21, 0x26, 0x23, 0x41},
			expected: []byte{0x23, 0x41, 0x00, 0x00},
		},
		{
			name:     "space deleted",
			fn:       jis.DeleteSpace,
			word:     []byte{0x23, 0x41, 0x21, 0x21, 0x23, 0x42},
			expected: []byte{0x23, 0x41, 0x23, 0x42, 0x00, 0x00},
		},
		{
			name:     "reverse word",
			fn:       jis.ReverseWord,
			word:     []byte{0x23, 0x41, 0x23, 0x42, 0x00, 0x00},
			expected: []byte{0x23, 0x42, 0x23, 0x41, 0x00, 0x00},
		},
		{
			name:     "lower to upper latin",
			fn:       jis.LowerToUpperLatin,
			word:     []byte("ab\xe9"),
			expected: []byte("AB\xc9"),
		},
		{
			name:     "space deleted latin",
			fn:       jis.DeleteSpaceLatin,
			word:     []byte("a b"),
			expected: []byte("ab\x00"),
		},
		{
			name:     "reverse word latin",
			fn:       jis.ReverseWordLatin,
			word:     []byte("abc\x00"),
			expected: []byte("cba\x00"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := append([]byte{}, test.word...)
			test.fn(got)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("transform (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeJISX0208(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string

		expected []byte
	}{
		{
			name:     "hiragana",
			s:        "あ",
			expected: []byte{0x24, 0x22},
		},
		{
			name:     "ascii widened",
			s:        " A ",
			expected: []byte{0x23, 0x41},
		},
		{
			name:     "half-width katakana",
			s:        "ｱ",
			expected: []byte{0x25, 0x22},
		},
		{
			name:     "ideographic spaces trimmed",
			s:        "　あ　",
			expected: []byte{0x24, 0x22},
		},
		{
			name:     "empty",
			s:        "",
			expected: nil,
		},
		{
			name:     "unencodable",
			s:        "😀",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, jis.EncodeJISX0208(test.s)); diff != "" {
				t.Errorf("EncodeJISX0208 (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff("あア", jis.DecodeJISX0208([]byte{0x24, 0x22, 0x25, 0x22, 0x00, 0x00})); diff != "" {
		t.Errorf("DecodeJISX0208 (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("café", jis.DecodeLatin1([]byte("caf\xe9 \x00xyz"))); diff != "" {
		t.Errorf("DecodeLatin1 (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte("caf\xe9"), jis.EncodeLatin1(" café\t")); diff != "" {
		t.Errorf("EncodeLatin1 (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(uint16(0x2341), jis.ASCIIToJISX0208('A')); diff != "" {
		t.Errorf("ASCIIToJISX0208 (-want, +got):\n%s", diff)
	}
}
