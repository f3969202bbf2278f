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

package eb

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/index"
	"github.com/ianlewis/go-eb/internal/folding"
	"github.com/ianlewis/go-eb/internal/jis"
)

// maxEscapeDigits is the maximum number of hex digits of an external
// character escape.
const maxEscapeDigits = 4

// SearchWord returns the entries whose headword starts with word.
func (sb *SubBook) SearchWord(word string) (index.Iterator, error) {
	return sb.SearchBytes(index.SearchWord, sb.EncodeQuery(word))
}

// SearchEndword returns the entries whose headword ends with word.
func (sb *SubBook) SearchEndword(word string) (index.Iterator, error) {
	return sb.SearchBytes(index.SearchEndword, sb.EncodeQuery(word))
}

// SearchExactword returns the entries whose headword is word.
func (sb *SubBook) SearchExactword(word string) (index.Iterator, error) {
	return sb.SearchBytes(index.SearchExactword, sb.EncodeQuery(word))
}

// SearchKeyword returns the entries that have all of the keywords.
func (sb *SubBook) SearchKeyword(words []string) (index.Iterator, error) {
	return sb.searchAll(index.SearchKeyword, sb.styles.Keyword, words)
}

// SearchCross returns the entries found by all of the words in the cross
// index.
func (sb *SubBook) SearchCross(words []string) (index.Iterator, error) {
	return sb.searchAll(index.SearchCross, sb.styles.Cross, words)
}

// SearchMulti runs the i-th multi-search. words are the values of its
// entries in order. Empty words are ignored.
func (sb *SubBook) SearchMulti(i int, words []string) (index.Iterator, error) {
	m, err := sb.multi(i)
	if err != nil {
		return nil, err
	}
	if len(words) > len(m.Entries) {
		return nil, fmt.Errorf("%w: %d words for %d entries of multi-search %d", ErrInvalidArgument, len(words), len(m.Entries), i)
	}

	var its []index.Iterator
	for j, w := range words {
		enc := sb.EncodeQuery(w)
		if len(enc) == 0 || !m.Entries[j].Available() {
			continue
		}
		s, err := sb.newSearcher(index.SearchMulti, &m.Entries[j], enc)
		if err != nil {
			return nil, err
		}
		its = append(its, s)
	}
	return index.Intersect(its...), nil
}

// SearchBytes searches for a word that is already encoded in the character
// set of the book. Multi-searches must use SearchMulti.
func (sb *SubBook) SearchBytes(t index.SearchType, word []byte) (index.Iterator, error) {
	if len(word) == 0 {
		return index.Empty, nil
	}

	var st *index.Style
	switch t {
	case index.SearchWord, index.SearchExactword:
		st = sb.wordStyle(sb.styles.Word, word)
	case index.SearchEndword:
		st = sb.wordStyle(sb.styles.Endword, word)
	case index.SearchKeyword:
		st = sb.styles.Keyword
	case index.SearchCross:
		st = sb.styles.Cross
	default:
		return nil, fmt.Errorf("%w: search type %v", ErrInvalidArgument, t)
	}
	if !st.Available() {
		return index.Empty, nil
	}

	s, err := sb.newSearcher(t, st, word)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// wordStyle selects the index by the kind of the first character of word.
// JIS X 0208 words fall back to the kanji index.
func (sb *SubBook) wordStyle(styles [3]*index.Style, word []byte) *index.Style {
	if sb.book.CharCode() == catalog.ISO8859_1 {
		return styles[index.Alphabet]
	}
	if st := styles[index.TypeOf(word)]; st != nil {
		return st
	}
	return styles[index.Kanji]
}

func (sb *SubBook) searchAll(t index.SearchType, st *index.Style, words []string) (index.Iterator, error) {
	if !st.Available() {
		return index.Empty, nil
	}

	var its []index.Iterator
	for _, w := range words {
		enc := sb.EncodeQuery(w)
		if len(enc) == 0 {
			continue
		}
		s, err := sb.newSearcher(t, st, enc)
		if err != nil {
			return nil, err
		}
		its = append(its, s)
	}
	return index.Intersect(its...), nil
}

func (sb *SubBook) newSearcher(t index.SearchType, st *index.Style, word []byte) (*index.Searcher, error) {
	if sb.textFile == nil {
		return nil, fmt.Errorf("%w: index of %q", ErrUnavailable, sb.Name())
	}

	kana := sb.styles.Word[index.Kana]
	if t == index.SearchEndword {
		kana = sb.styles.Endword[index.Kana]
	}
	var kanaPage uint32
	if kana != nil {
		kanaPage = kana.StartPage
	}

	s := index.NewSearcher(sb.textFile.NewReader(), index.Config{
		Style:         st,
		Type:          t,
		CharCode:      sb.book.CharCode(),
		KanaStartPage: kanaPage,
		Headings:      sb.text,
		Path:          sb.textFile.Path(),
	})
	if err := s.Begin(word); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeQuery encodes a query in the character set of the book. A backslash
// followed by up to four hex digits is the code of an external character.
// Other backslashes are kept. It returns nil if nothing is left of the
// query or if any part of it cannot be encoded.
func (sb *SubBook) EncodeQuery(q string) []byte {
	latin := sb.book.CharCode() == catalog.ISO8859_1

	var out []byte
	for i, seg := range strings.Split(strings.TrimSpace(q), `\`) {
		if i > 0 {
			if code, n := hexPrefix(seg); n > 0 {
				out = append(out, byte(code>>8), byte(code))
				seg = seg[n:]
			} else {
				out = append(out, '\\')
			}
		}
		if seg == "" {
			continue
		}

		folded, _, err := transform.String(folding.Query(latin), seg)
		if err != nil {
			log.Debugf("query %q: %v", seg, err)
			folded = seg
		}
		var enc []byte
		if latin {
			enc = jis.EncodeLatin1(folded)
		} else {
			enc = jis.EncodeJISX0208(folded)
		}
		if enc == nil && strings.TrimSpace(folded) != "" {
			log.Debugf("query %q: cannot encode %q", q, seg)
			return nil
		}
		out = append(out, enc...)
	}
	return out
}

// hexPrefix parses the hex digits at the start of s.
func hexPrefix(s string) (uint16, int) {
	n := 0
	for n < len(s) && n < maxEscapeDigits && isHexDigit(s[n]) {
		n++
	}
	if n == 0 {
		return 0, 0
	}
	code, err := strconv.ParseUint(s[:n], 16, 16)
	if err != nil {
		return 0, 0
	}
	return uint16(code), n
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
