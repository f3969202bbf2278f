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

package jis

// The functions below rewrite search words in place. JIS X 0208 words are
// processed in code pairs up to the first NUL. A trailing odd byte is
// cleared. Deleting functions shift the rest of the word left and pad the
// end with NUL bytes so the length of the word never changes.

const (
	rowSymbol   = 0x21
	rowAlphabet = 0x23
	rowHiragana = 0x24
	rowKatakana = 0x25
)

func isKana(high byte) bool {
	return high == rowHiragana || high == rowKatakana
}

// pairs clears a trailing odd byte and returns the even length of b.
func pairs(b []byte) int {
	n := len(b)
	if n&1 == 1 {
		b[n-1] = 0
		n--
	}
	return n
}

// mapPairs calls fn for each code pair of b before the first NUL.
func mapPairs(b []byte, fn func(high, low *byte)) {
	n := pairs(b)
	for i := 0; i < n; i += 2 {
		if b[i] == 0 || b[i+1] == 0 {
			break
		}
		fn(&b[i], &b[i+1])
	}
}

// deletePairs removes the code pairs for which del returns true.
func deletePairs(b []byte, del func(high, low byte) bool) {
	n := pairs(b)
	count := 0
	for i := 0; i < n; i += 2 {
		high, low := b[i], b[i+1]
		if high == 0 || low == 0 {
			count += n - i
			break
		}
		if del(high, low) {
			count += 2
			continue
		}
		b[i-count] = high
		b[i-count+1] = low
	}
	if count > 0 {
		clear(b[n-count:])
	}
}

// KatakanaToHiragana converts katakana to hiragana.
func KatakanaToHiragana(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if *high == rowKatakana && *low >= 0x21 && *low <= 0x76 {
			*high = rowHiragana
		}
	})
}

// HiraganaToKatakana converts hiragana to katakana.
func HiraganaToKatakana(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if *high == rowHiragana && *low >= 0x21 && *low <= 0x76 {
			*high = rowKatakana
		}
	})
}

// LowerToUpper converts full-width lower case letters to upper case.
func LowerToUpper(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if *high == rowAlphabet && *low >= 0x61 && *low <= 0x7a {
			*low -= 0x20
		}
	})
}

// ConvertLongVowel replaces the long vowel mark after a kana with the vowel
// it lengthens.
func ConvertLongVowel(b []byte) {
	var prevHigh, prevLow byte
	mapPairs(b, func(high, low *byte) {
		h, l := *high, *low
		if h == rowSymbol && l == 0x3c && isKana(prevHigh) && prevLow >= 0x21 && prevLow <= 0x76 {
			*high = prevHigh
			*low = longVowel[prevLow-0x21]
		}
		prevHigh, prevLow = h, l
	})
}

// DeleteLongVowel removes long vowel marks.
func DeleteLongVowel(b []byte) {
	deletePairs(b, func(high, low byte) bool {
		return high == rowSymbol && low == 0x3c
	})
}

// ConvertDoubleConsonant replaces the small tsu with a full size one.
func ConvertDoubleConsonant(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if isKana(*high) && *low == 0x43 {
			*low = 0x44
		}
	})
}

// ConvertContractedSound replaces small ya, yu, yo, wa, ka and ke with their
// full size forms.
func ConvertContractedSound(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if !isKana(*high) {
			return
		}
		switch *low {
		case 0x63, 0x65, 0x67, 0x6e:
			*low++
		case 0x75:
			*low = 0x2b
		case 0x76:
			*low = 0x31
		}
	})
}

// ConvertVoicedConsonant replaces voiced kana with their unvoiced forms.
func ConvertVoicedConsonant(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if isKana(*high) && *low >= 0x21 && *low <= 0x76 {
			*low = voicedConsonant[*low-0x21]
		}
	})
}

// ConvertSmallVowel replaces small vowels with their full size forms.
func ConvertSmallVowel(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if !isKana(*high) {
			return
		}
		switch *low {
		case 0x21, 0x23, 0x25, 0x27, 0x29:
			*low++
		}
	})
}

// ConvertPSound replaces semi-voiced kana with their unvoiced forms.
func ConvertPSound(b []byte) {
	mapPairs(b, func(high, low *byte) {
		if !isKana(*high) {
			return
		}
		switch *low {
		case 0x51, 0x54, 0x57, 0x5a, 0x5d:
			*low -= 2
		}
	})
}

// DeleteMark removes the punctuation marks that index keys omit.
func DeleteMark(b []byte) {
	deletePairs(b, func(high, low byte) bool {
		return high == rowSymbol && (low == 0x26 || low == 0x3e || low == 0x47 || low == 0x5d)
	})
}

// DeleteSpace removes ideographic spaces.
func DeleteSpace(b []byte) {
	deletePairs(b, func(high, low byte) bool {
		return high == rowSymbol && low == 0x21
	})
}

// ReverseWord reverses the order of the code pairs before the trailing NUL
// padding.
func ReverseWord(b []byte) {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	if n&1 == 1 {
		b[n-1] = 0
		n--
	}
	for i, j := 0, n-2; i < j; i, j = i+2, j-2 {
		b[i], b[j] = b[j], b[i]
		b[i+1], b[j+1] = b[j+1], b[i+1]
	}
}

// LowerToUpperLatin converts ISO 8859-1 lower case letters to upper case.
func LowerToUpperLatin(b []byte) {
	for i, c := range b {
		if c == 0 {
			break
		}
		if (c >= 0x61 && c <= 0x7a) || (c >= 0xe0 && c <= 0xf6) || (c >= 0xf8 && c <= 0xfe) {
			b[i] = c - 0x20
		}
	}
}

// DeleteSpaceLatin removes ASCII spaces.
func DeleteSpaceLatin(b []byte) {
	count := 0
	for i, c := range b {
		if c == 0 {
			count += len(b) - i
			break
		}
		if c == ' ' {
			count++
			continue
		}
		b[i-count] = c
	}
	if count > 0 {
		clear(b[len(b)-count:])
	}
}

// ReverseWordLatin reverses the bytes before the trailing NUL padding.
func ReverseWordLatin(b []byte) {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
