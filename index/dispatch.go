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
	"fmt"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/compare"
)

// SearchType is the kind of search.
type SearchType int

const (
	// SearchWord finds keys starting with the word.
	SearchWord SearchType = iota

	// SearchEndword finds keys ending with the word.
	SearchEndword

	// SearchExactword finds keys equal to the word.
	SearchExactword

	// SearchKeyword finds entries by keyword.
	SearchKeyword

	// SearchCross finds entries by cross reference.
	SearchCross

	// SearchMulti finds entries of a multi-search entry.
	SearchMulti
)

// String implements fmt.Stringer.
func (t SearchType) String() string {
	switch t {
	case SearchWord:
		return "word"
	case SearchEndword:
		return "endword"
	case SearchExactword:
		return "exactword"
	case SearchKeyword:
		return "keyword"
	case SearchCross:
		return "cross"
	case SearchMulti:
		return "multi"
	default:
		return fmt.Sprintf("SearchType(%d)", int(t))
	}
}

// Phase is the point of the search at which a comparison is made.
type Phase int

const (
	// PreSearch compares against the keys of upper layer pages.
	PreSearch Phase = iota

	// Single compares against leaf entries and group headers.
	Single

	// Group compares against the members of a group.
	Group
)

// Comparator returns the comparison used by a search of type t in a book
// with character set cs, together with the flag to pass to it. kanaIndex is
// set when the searched index is the kana word index of the sub-book, or its
// kana endword index for endword searches. hasCandidate is set when a multi-
// search entry has a candidate list.
func Comparator(t SearchType, cs catalog.CharCode, phase Phase, kanaIndex, hasCandidate bool) (compare.Func, bool) {
	latin := cs == catalog.ISO8859_1
	jisOrLatin := compare.JISX0208
	if latin {
		jisOrLatin = compare.Latin
	}

	switch phase {
	case PreSearch:
		switch {
		case t == SearchExactword:
			return jisOrLatin, true
		case t == SearchMulti && hasCandidate:
			return jisOrLatin, true
		default:
			return compare.Byte, true
		}

	case Single:
		switch t {
		case SearchExactword:
			switch {
			case latin:
				return compare.Latin, false
			case kanaIndex:
				return compare.KanaSingle, true
			default:
				return compare.JISX0208, false
			}
		case SearchKeyword, SearchCross:
			return compare.Byte, false
		case SearchMulti:
			if hasCandidate {
				return jisOrLatin, false
			}
			return compare.Byte, false
		default:
			if !latin && kanaIndex {
				return compare.KanaSingle, false
			}
			return compare.Byte, false
		}

	default:
		switch {
		case t == SearchExactword:
			if latin {
				return compare.Latin, false
			}
			return compare.KanaGroup, true
		case t == SearchMulti && hasCandidate:
			if latin {
				return compare.Latin, false
			}
			return compare.KanaGroup, true
		case latin:
			return compare.Byte, false
		default:
			return compare.KanaGroup, false
		}
	}
}
