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

package compare_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-eb/compare"
)

var (
	hiraganaA = []byte{0x24, 0x22}
	katakanaA = []byte{0x25, 0x22}
	katakanaI = []byte{0x25, 0x24}
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fn      compare.Func
		key     string
		pattern string
		flag    bool

		expected int
	}{
		{
			name:     "byte prefix",
			fn:       compare.Byte,
			key:      "A",
			pattern:  "AA",
			expected: 0,
		},
		{
			name:     "byte after",
			fn:       compare.Byte,
			key:      "AB",
			pattern:  "AA",
			expected: 1,
		},
		{
			name:     "byte before",
			fn:       compare.Byte,
			key:      "A",
			pattern:  "B",
			expected: -1,
		},
		{
			name:     "byte key longer",
			fn:       compare.Byte,
			key:      "AAA",
			pattern:  "AA",
			expected: 'A',
		},
		{
			name:     "byte key longer prefix",
			fn:       compare.Byte,
			key:      "AAA",
			pattern:  "AA",
			flag:     true,
			expected: 0,
		},
		{
			name:     "byte NUL terminated key",
			fn:       compare.Byte,
			key:      "A\x00B",
			pattern:  "AC",
			expected: 0,
		},
		{
			name:     "jisx0208 padded",
			fn:       compare.JISX0208,
			key:      "AB",
			pattern:  "AB\x00\x00",
			expected: 0,
		},
		{
			name:     "jisx0208 key shorter",
			fn:       compare.JISX0208,
			key:      "A",
			pattern:  "AB",
			expected: -1,
		},
		{
			name:     "jisx0208 after",
			fn:       compare.JISX0208,
			key:      "AC",
			pattern:  "AB",
			expected: 1,
		},
		{
			name:     "jisx0208 prefix",
			fn:       compare.JISX0208,
			key:      "ABC",
			pattern:  "AB",
			flag:     true,
			expected: 0,
		},
		{
			name:     "latin space padding",
			fn:       compare.Latin,
			key:      "ab",
			pattern:  "ab  ",
			expected: 0,
		},
		{
			name:     "latin key shorter",
			fn:       compare.Latin,
			key:      "ab",
			pattern:  "abc",
			expected: -1,
		},
		{
			name:     "latin no case folding",
			fn:       compare.Latin,
			key:      "Ab",
			pattern:  "ab",
			expected: 'A' - 'a',
		},
		{
			name:     "kana single hiragana katakana",
			fn:       compare.KanaSingle,
			key:      string(hiraganaA),
			pattern:  string(katakanaA),
			expected: 0,
		},
		{
			name:     "kana single different kana",
			fn:       compare.KanaSingle,
			key:      string(hiraganaA),
			pattern:  string(katakanaI),
			expected: 0x22 - 0x24,
		},
		{
			name:     "kana group different kana",
			fn:       compare.KanaGroup,
			key:      string(hiraganaA),
			pattern:  string(katakanaI),
			expected: 0x2422 - 0x2524,
		},
		{
			name:     "kana prefix",
			fn:       compare.KanaSingle,
			key:      string(hiraganaA),
			pattern:  string(katakanaA) + string(katakanaI),
			expected: 0,
		},
		{
			name:     "kana exact",
			fn:       compare.KanaSingle,
			key:      string(hiraganaA),
			pattern:  string(katakanaA) + string(katakanaI),
			flag:     true,
			expected: -0x25,
		},
		{
			name:     "kana key longer",
			fn:       compare.KanaGroup,
			key:      string(katakanaA) + string(katakanaI),
			pattern:  string(hiraganaA),
			expected: 0x25,
		},
		{
			name:     "kana kanji",
			fn:       compare.KanaSingle,
			key:      "\x30\x21",
			pattern:  "\x30\x22",
			expected: -1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := test.fn([]byte(test.key), []byte(test.pattern), test.flag)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("compare (-want, +got):\n%s", diff)
			}
		})
	}
}
