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
	"encoding/binary"
	"fmt"

	"golang.org/x/text/width"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/internal/jis"
)

// WordType is the kind of characters a search word is made of. Word and
// endword indexes exist once per word type.
type WordType int

const (
	// Kana is a word of hiragana and katakana only.
	Kana WordType = iota

	// Kanji is any other word.
	Kanji

	// Alphabet is a word of full-width latin letters only.
	Alphabet
)

// String implements fmt.Stringer.
func (t WordType) String() string {
	switch t {
	case Kana:
		return "kana"
	case Kanji:
		return "kanji"
	case Alphabet:
		return "alphabet"
	default:
		return fmt.Sprintf("WordType(%d)", int(t))
	}
}

// TypeOf returns the word type of the JIS X 0208 word b.
func TypeOf(b []byte) WordType {
	var alphabet, kana bool
	for i := 0; i+1 < len(b); i += 2 {
		switch b[i] {
		case 0x23:
			alphabet = true
		case 0x24, 0x25:
			kana = true
		case 0x21:
		default:
			return Kanji
		}
	}
	switch {
	case alphabet && !kana:
		return Alphabet
	case kana && !alphabet:
		return Kana
	default:
		return Kanji
	}
}

const (
	recordSize     = 16
	maxIndexCount  = ebfile.PageSize/recordSize - 1
	fontSizeCount  = 4
	multiLabelSize = 30
	multiTitleSize = 32

	titleRecordSize = 70
	firstTitleOff   = 350
	firstMultiTitle = 4
)

// Styles are the indexes of one sub-book, read from the index header page.
type Styles struct {
	Text      *Style
	Menu      *Style
	Copyright *Style
	ImageMenu *Style
	Sound     *Style
	Keyword   *Style
	Cross     *Style

	// Word and Endword are indexed by WordType.
	Word    [3]*Style
	Endword [3]*Style

	// Multi are the multi-search indexes in header order.
	Multi []*Multi

	// TitlePage is the block of the EPWING multi-search title page.
	TitlePage uint32

	// WideFontPages and NarrowFontPages are the blocks of the fonts stored
	// in the text file of EB books, by font size. A zero block means none.
	WideFontPages   [fontSizeCount]uint32
	NarrowFontPages [fontSizeCount]uint32
}

// Multi is one multi-search: a set of entries, each with its own index.
type Multi struct {
	Style

	// Entries are the entry indexes of the search.
	Entries []Style
}

// ParseStyles decodes the index header page of a sub-book. path names the
// file for error reporting.
func ParseStyles(path string, page []byte, cs catalog.CharCode, bt catalog.BookType) (*Styles, error) {
	if len(page) < ebfile.PageSize {
		return nil, ebfile.UnexpectedFormat(path, "short index header")
	}

	count := int(page[1])
	if count >= maxIndexCount {
		return nil, ebfile.UnexpectedFormat(path, "index count %d", count)
	}
	avail := page[4]
	if avail > 0x02 {
		avail = 0
	}

	s := &Styles{}
	for i := range count {
		off := recordSize * (i + 1)
		st := parseRecord(page[off:off+recordSize], avail, cs)
		s.assign(&st, bt)
	}
	log.Debugf("%s: %d indexes, %d multi searches", path, count, len(s.Multi))

	return s, nil
}

func parseRecord(b []byte, avail byte, cs catalog.CharCode) Style {
	id := b[0]
	st := NewStyle(id)
	st.StartPage = binary.BigEndian.Uint32(b[2:])
	st.EndPage = st.StartPage + binary.BigEndian.Uint32(b[6:]) - 1
	if cs == catalog.ISO8859_1 || id == 0x72 || id == 0x92 {
		st.Space = AsIs
	}

	switch {
	case (avail == 0x00 && b[10] == 0x02) || avail == 0x02:
		flag := ebfile.Uint24(b[11:])
		st.Katakana = Rule(flag & 0xc00000 >> 22)
		st.Lower = Rule(flag & 0x300000 >> 20)
		if flag&0x0c0000>>18 == 0 {
			st.Mark = Delete
		} else {
			st.Mark = AsIs
		}
		st.LongVowel = Rule(flag & 0x030000 >> 16)
		st.DoubleConsonant = Rule(flag & 0x00c000 >> 14)
		st.ContractedSound = Rule(flag & 0x003000 >> 12)
		st.SmallVowel = Rule(flag & 0x000c00 >> 10)
		st.VoicedConsonant = Rule(flag & 0x000300 >> 8)
		st.PSound = Rule(flag & 0x0000c0 >> 6)
	case id == KindEndwordKana || id == KindWordKana:
		// Full conversion is the default.
	default:
		st.Katakana = AsIs
		st.Mark = AsIs
		st.LongVowel = AsIs
		st.DoubleConsonant = AsIs
		st.ContractedSound = AsIs
		st.SmallVowel = AsIs
		st.VoicedConsonant = AsIs
		st.PSound = AsIs
	}
	return st
}

func (s *Styles) assign(st *Style, bt catalog.BookType) {
	switch id := st.ID; {
	case id == 0x00:
		s.Text = st
	case id == 0x01:
		s.Menu = st
	case id == 0x02:
		s.Copyright = st
	case id == 0x10:
		s.ImageMenu = st
	case id == 0x16:
		if bt == catalog.EPWING {
			s.TitlePage = st.StartPage
		}
	case id >= 0x70 && id <= 0x72:
		s.Endword[id-0x70] = st
	case id == 0x80:
		s.Keyword = st
	case id == 0x81:
		s.Cross = st
	case id >= 0x90 && id <= 0x92:
		s.Word[id-0x90] = st
	case id == 0xd8:
		s.Sound = st
	case id >= 0xf1 && id <= 0xf8:
		if bt != catalog.EB {
			return
		}
		size := (id - 0xf1) / 2
		if (id-0xf1)%2 == 0 {
			s.WideFontPages[size] = st.StartPage
		} else {
			s.NarrowFontPages[size] = st.StartPage
		}
	case id == 0xff:
		s.Multi = append(s.Multi, &Multi{Style: *st})
	default:
		log.Debugf("ignoring index 0x%02x", id)
	}
}

// ParseMulti decodes the entry table page of the multi-search m.
func ParseMulti(path string, page []byte, m *Multi) error {
	if len(page) < ebfile.PageSize {
		return ebfile.UnexpectedFormat(path, "short multi-search table")
	}
	count := int(int16(binary.BigEndian.Uint16(page)))
	if count <= 0 {
		return ebfile.UnexpectedFormat(path, "multi-search entry count %d", count)
	}

	m.Entries = m.Entries[:0]
	off := recordSize
	for range count {
		if off+2+multiLabelSize > len(page) {
			return ebfile.UnexpectedFormat(path, "multi-search table overflow")
		}
		e := plainStyle()
		n := int(page[off])
		e.Label = jis.DecodeJISX0208(page[off+2 : off+2+multiLabelSize])
		off += 2 + multiLabelSize

		for range n {
			if off+recordSize > len(page) {
				return ebfile.UnexpectedFormat(path, "multi-search table overflow")
			}
			id := page[off]
			block := binary.BigEndian.Uint32(page[off+2:])
			switch id {
			case 0x71, 0x91, KindMultiCandidate:
				if e.StartPage != 0 && e.ID != 0x71 {
					break
				}
				e.ID = id
				e.StartPage = block
				e.EndPage = block + binary.BigEndian.Uint32(page[off+6:]) - 1
			case 0x01:
				e.ID = id
				e.CandidatePage = block
			}
			off += recordSize
		}
		m.Entries = append(m.Entries, e)
	}
	return nil
}

// DefaultMultiTitles sets the titles of the multi-searches to numbered
// defaults.
func DefaultMultiTitles(multi []*Multi, cs catalog.CharCode) {
	for i, m := range multi {
		n := fmt.Sprint(i + 1)
		if cs == catalog.ISO8859_1 {
			m.Label = "Multi search " + n
		} else {
			m.Label = "複合検索" + width.Widen.String(n)
		}
	}
}

// ParseMultiTitles sets the titles of the multi-searches from the EPWING
// title page.
func ParseMultiTitles(page []byte, multi []*Multi) {
	if len(page) < ebfile.PageSize {
		return
	}
	count := int(binary.BigEndian.Uint16(page))
	if count > len(multi)+firstMultiTitle {
		count = len(multi) + firstMultiTitle
	}

	off := firstTitleOff
	for i := firstMultiTitle; i < count; i++ {
		if off+titleRecordSize > len(page) {
			return
		}
		if binary.BigEndian.Uint16(page[off:]) == 0x02 {
			t := jis.DecodeJISX0208(page[off+18 : off+18+multiTitleSize])
			multi[i-firstMultiTitle].Label = t
		}
		off += titleRecordSize
	}
}
