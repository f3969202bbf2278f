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

package index

import (
	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/internal/jis"
)

// Rule is how a class of characters is canonicalized before searching.
type Rule int

const (
	// Convert folds the characters to their canonical form.
	Convert Rule = 0

	// AsIs keeps the characters unchanged.
	AsIs Rule = 1

	// Reverse applies the inverse conversion. It is only meaningful for
	// katakana.
	Reverse Rule = 2

	// Delete removes the characters. It shares its value with Reverse.
	Delete Rule = 2
)

// Index kinds with special meaning to the searcher.
const (
	// KindEndwordKana is the kana endword index. Words are compared without
	// canonicalization.
	KindEndwordKana byte = 0x70

	// KindWordKana is the kana word index. Words are compared without
	// canonicalization.
	KindWordKana byte = 0x90

	// KindMultiCandidate is a multi-search entry index with a candidate
	// list.
	KindMultiCandidate byte = 0xa1
)

// Style describes one index tree of a sub-book and how words are folded
// before searching it.
type Style struct {
	// ID is the index kind.
	ID byte

	// StartPage and EndPage are the blocks of the first and last page of
	// the index.
	StartPage uint32
	EndPage   uint32

	// CandidatePage is the block of the candidate list of a multi-search
	// entry. It is 0 if the entry has none.
	CandidatePage uint32

	// Label is the title of a multi-search or multi-search entry.
	Label string

	Space           Rule
	Katakana        Rule
	Lower           Rule
	Mark            Rule
	LongVowel       Rule
	DoubleConsonant Rule
	ContractedSound Rule
	VoicedConsonant Rule
	SmallVowel      Rule
	PSound          Rule
}

// NewStyle returns a style for the index kind id with the default rules.
// Spaces and marks are deleted and everything else is converted.
func NewStyle(id byte) Style {
	return Style{
		ID:    id,
		Space: Delete,
		Mark:  Delete,
	}
}

// plainStyle returns a style that keeps every character unchanged.
func plainStyle() Style {
	return Style{
		Space:           AsIs,
		Katakana:        AsIs,
		Lower:           AsIs,
		Mark:            AsIs,
		LongVowel:       AsIs,
		DoubleConsonant: AsIs,
		ContractedSound: AsIs,
		VoicedConsonant: AsIs,
		SmallVowel:      AsIs,
		PSound:          AsIs,
	}
}

// Canonicalize returns a copy of word folded according to the style. The
// result has the same length as word. Multi-search entries with a candidate
// list are never folded.
func (s *Style) Canonicalize(word []byte, cs catalog.CharCode) []byte {
	b := make([]byte, len(word))
	copy(b, word)
	if s.ID == KindMultiCandidate && s.CandidatePage != 0 {
		return b
	}

	if cs == catalog.ISO8859_1 {
		if s.Space == Delete {
			jis.DeleteSpaceLatin(b)
		}
		if s.Lower == Convert {
			jis.LowerToUpperLatin(b)
		}
		return b
	}

	if s.Space == Delete {
		jis.DeleteSpace(b)
	}
	switch s.Katakana {
	case Convert:
		jis.KatakanaToHiragana(b)
	case Reverse:
		jis.HiraganaToKatakana(b)
	}
	if s.Lower == Convert {
		jis.LowerToUpper(b)
	}
	if s.Mark == Delete {
		jis.DeleteMark(b)
	}
	switch s.LongVowel {
	case Convert:
		jis.ConvertLongVowel(b)
	case Delete:
		jis.DeleteLongVowel(b)
	}
	if s.DoubleConsonant == Convert {
		jis.ConvertDoubleConsonant(b)
	}
	if s.ContractedSound == Convert {
		jis.ConvertContractedSound(b)
	}
	if s.SmallVowel == Convert {
		jis.ConvertSmallVowel(b)
	}
	if s.VoicedConsonant == Convert {
		jis.ConvertVoicedConsonant(b)
	}
	if s.PSound == Convert {
		jis.ConvertPSound(b)
	}
	return b
}

// Available reports whether the index exists.
func (s *Style) Available() bool {
	return s != nil && s.StartPage != 0
}
