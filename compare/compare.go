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

// Package compare implements the comparisons between a search word and the
// keys stored in an index.
//
// Every comparison takes the search word as key and the stored entry key as
// pattern. The result is negative if the key sorts before the pattern, zero
// on a match and positive otherwise. A NUL byte in the key terminates it.
package compare

// Func compares the search word key with the stored entry key pattern. The
// meaning of flag depends on the function. For Byte, Latin and JISX0208 it
// selects prefix matching, used while descending the index. For the kana
// comparisons it selects exact matching.
type Func func(key, pattern []byte, flag bool) int

// Byte compares key and pattern byte by byte. A key that is a prefix of the
// pattern matches. If prefix is set, a pattern that is a prefix of the key
// also matches.
func Byte(key, pattern []byte, prefix bool) int {
	for i := range key {
		if i >= len(pattern) {
			if prefix {
				return 0
			}
			return int(key[i])
		}
		if key[i] == 0 {
			return 0
		}
		if key[i] != pattern[i] {
			return int(key[i]) - int(pattern[i])
		}
	}
	return 0
}

// JISX0208 compares key and pattern byte by byte. Unlike Byte, a key that
// ends before the pattern only matches if the rest of the pattern is NUL
// padding.
func JISX0208(key, pattern []byte, prefix bool) int {
	return padded(key, pattern, prefix, func(c byte) bool {
		return c == 0
	})
}

// Latin compares ISO 8859-1 key and pattern. It behaves like JISX0208 but
// also accepts spaces as padding. No case folding is done.
func Latin(key, pattern []byte, prefix bool) int {
	return padded(key, pattern, prefix, func(c byte) bool {
		return c == 0 || c == ' '
	})
}

func padded(key, pattern []byte, prefix bool, isPad func(byte) bool) int {
	for i := range key {
		if i >= len(pattern) {
			if prefix {
				return 0
			}
			return int(key[i])
		}
		if key[i] == 0 {
			return padEnd(pattern, i, isPad)
		}
		if key[i] != pattern[i] {
			return int(key[i]) - int(pattern[i])
		}
	}
	if len(key) < len(pattern) {
		return padEnd(pattern, len(key), isPad)
	}
	return 0
}

// padEnd returns zero if pattern[i:] is all padding and the negated length
// of the rest otherwise.
func padEnd(pattern []byte, i int, isPad func(byte) bool) int {
	for i < len(pattern) && isPad(pattern[i]) {
		i++
	}
	return i - len(pattern)
}

// KanaSingle compares JIS X 0208 key and pattern treating hiragana and
// katakana as equal. It is used for entries outside of groups. If exact is
// set the key must not be shorter than the pattern.
func KanaSingle(key, pattern []byte, exact bool) int {
	return kana(key, pattern, exact, true)
}

// KanaGroup is like KanaSingle but is used for group entries. It differs only
// in the magnitude of the result.
func KanaGroup(key, pattern []byte, exact bool) int {
	return kana(key, pattern, exact, false)
}

func kana(key, pattern []byte, exact, single bool) int {
	for i := 0; i < len(key); i += 2 {
		if i >= len(pattern) {
			return int(key[i])
		}
		if key[i] == 0 {
			if exact {
				return -int(pattern[i])
			}
			return 0
		}
		if i+1 >= len(key) || i+1 >= len(pattern) {
			return int(key[i]) - int(pattern[i])
		}

		kc0, kc1 := int(key[i]), int(key[i+1])
		pc0, pc1 := int(pattern[i]), int(pattern[i+1])
		if isKanaRow(kc0) && isKanaRow(pc0) {
			if kc1 != pc1 {
				if single {
					return kc1 - pc1
				}
				return (kc0<<8 + kc1) - (pc0<<8 + pc1)
			}
		} else if kc0 != pc0 || kc1 != pc1 {
			return (kc0<<8 + kc1) - (pc0<<8 + pc1)
		}
	}
	if len(key) < len(pattern) && exact {
		return -int(pattern[len(key)])
	}
	return 0
}

func isKanaRow(c int) bool {
	return c == 0x24 || c == 0x25
}
