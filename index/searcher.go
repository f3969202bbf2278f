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

	"github.com/op/go-logging"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/compare"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/internal/jis"
)

var log = logging.MustGetLogger("eb/index")

// MaxIndexDepth is the maximum number of upper layers above the leaf layer.
const MaxIndexDepth = 6

// PageReader reads whole index pages. *ebfile.Reader implements it.
type PageReader interface {
	// ReadPage reads the 1-based block into p, which is ebfile.PageSize
	// bytes long.
	ReadPage(block uint32, p []byte) error
}

// HeadingStepper finds the heading that follows the one at pos. Keyword and
// cross indexes store only the first heading of a group; the headings of the
// following members are found by stepping.
type HeadingStepper interface {
	NextHeadingPosition(pos int64) (int64, error)
}

// Config parametrizes a Searcher.
type Config struct {
	// Style is the index to search.
	Style *Style

	// Type is the kind of search.
	Type SearchType

	// CharCode is the character set of the book.
	CharCode catalog.CharCode

	// KanaStartPage is the start page of the kana word index of the
	// sub-book, or of its kana endword index for endword searches. It is 0
	// if there is none.
	KanaStartPage uint32

	// Headings steps the headings of keyword and cross groups. If nil every
	// member of a group gets the heading of the group.
	Headings HeadingStepper

	// Path names the index file in errors.
	Path string
}

// Result is the location of a matching entry.
type Result struct {
	// Heading is the position of the heading.
	Heading int64

	// Text is the position of the text.
	Text int64
}

func trailer(b []byte) *Result {
	return &Result{
		Text:    ebfile.BinaryPosition(b),
		Heading: ebfile.BinaryPosition(b[6:]),
	}
}

type comparison struct {
	fn   compare.Func
	flag bool
}

func (c comparison) cmp(key, pattern []byte) int {
	return c.fn(key, pattern, c.flag)
}

// cursor is the whole mutable state of a search.
type cursor struct {
	// word is compared against leaf keys and canonical against upper layer
	// keys and group keys.
	word      []byte
	canonical []byte

	page      uint32
	cachePage uint32
	cache     []byte
	hdr       Page
	off       int
	entry     int

	// comparison is the result of the last key comparison. A negative value
	// ends the search.
	comparison int
	inGroup    bool
	heading    int64

	done bool
}

// Searcher finds the entries of one index matching a single word. A
// Searcher is not safe for concurrent use.
type Searcher struct {
	r   PageReader
	cfg Config

	pre    comparison
	single comparison
	group  comparison

	cur cursor
}

// NewSearcher returns a Searcher reading index pages from r.
func NewSearcher(r PageReader, cfg Config) *Searcher {
	var kana, candidate bool
	if cfg.Style != nil {
		kana = cfg.KanaStartPage != 0 && cfg.KanaStartPage == cfg.Style.StartPage
		candidate = cfg.Style.CandidatePage != 0
	}

	s := &Searcher{
		r:   r,
		cfg: cfg,
	}
	s.pre.fn, s.pre.flag = Comparator(cfg.Type, cfg.CharCode, PreSearch, kana, candidate)
	s.single.fn, s.single.flag = Comparator(cfg.Type, cfg.CharCode, Single, kana, candidate)
	s.group.fn, s.group.flag = Comparator(cfg.Type, cfg.CharCode, Group, kana, candidate)
	s.cur.done = true
	return s
}

// Begin starts a search for word and descends to the first leaf page that
// may hold it. A word that sorts after every key leaves the Searcher with no
// results.
func (s *Searcher) Begin(word []byte) error {
	s.cur = cursor{
		cache: s.cur.cache,
	}
	if s.cur.cache == nil {
		s.cur.cache = make([]byte, ebfile.PageSize)
	}
	s.setWord(word)

	if !s.cfg.Style.Available() {
		s.cur.done = true
		return nil
	}

	page := s.cfg.Style.StartPage
	depth := 0
	for ; depth < MaxIndexDepth; depth++ {
		if err := s.load(page); err != nil {
			return s.fail(err)
		}
		if s.cur.hdr.ID.Has(Leaf) {
			break
		}

		next, ok, err := s.descend()
		if err != nil {
			return s.fail(err)
		}
		if !ok || next == page {
			log.Debugf("%s: no %v index entry for the word at page %d", s.cfg.Path, s.cfg.Type, page)
			s.cur.done = true
			return nil
		}
		page = next
	}
	if depth == MaxIndexDepth {
		return s.fail(s.corrupt("index deeper than %d layers", MaxIndexDepth))
	}

	s.cur.entry = 0
	s.cur.comparison = 1
	s.cur.inGroup = false
	return nil
}

func (s *Searcher) setWord(word []byte) {
	c := &s.cur
	st := s.cfg.Style
	if st == nil {
		st = &Style{}
	}
	c.canonical = st.Canonicalize(word, s.cfg.CharCode)
	if st.ID == KindEndwordKana || st.ID == KindWordKana {
		c.word = make([]byte, len(word))
		copy(c.word, word)
	} else {
		c.word = make([]byte, len(c.canonical))
		copy(c.word, c.canonical)
	}

	if s.cfg.Type == SearchEndword {
		reverse := jis.ReverseWord
		if s.cfg.CharCode == catalog.ISO8859_1 {
			reverse = jis.ReverseWordLatin
		}
		reverse(c.word)
		reverse(c.canonical)
	}
}

// load reads page into the cache and decodes its header.
func (s *Searcher) load(page uint32) error {
	c := &s.cur
	if err := s.r.ReadPage(page, c.cache); err != nil {
		return err
	}
	c.page = page
	c.cachePage = page
	c.hdr = ParsePage(c.cache)
	c.off = headerSize
	return nil
}

// descend returns the page below the first upper layer entry whose key does
// not sort before the word.
func (s *Searcher) descend() (uint32, bool, error) {
	c := &s.cur
	n := c.hdr.EntryLength
	for i := range c.hdr.EntryCount {
		if c.off+n+4 > ebfile.PageSize {
			return 0, false, s.corrupt("entry %d of page %d overflows", i, c.page)
		}
		key := c.cache[c.off : c.off+n]
		c.off += n
		if s.pre.cmp(c.canonical, key) <= 0 {
			return binary.BigEndian.Uint32(c.cache[c.off:]), true, nil
		}
		c.off += 4
	}
	return 0, false, nil
}

// Next returns the next matching entry. It returns nil when there are no
// more. After an error the Searcher has no more results.
func (s *Searcher) Next() (*Result, error) {
	c := &s.cur
	if c.done {
		return nil, nil
	}

	for {
		if err := s.refresh(); err != nil {
			return nil, s.fail(err)
		}
		if !c.hdr.ID.Has(Leaf) {
			return nil, s.fail(s.corrupt("page %d is not a leaf page", c.page))
		}

		read := s.readEntry
		if c.hdr.ID.Has(GroupEntries) {
			read = s.readGroupEntry
		}
		for c.entry < c.hdr.EntryCount {
			res, err := read()
			if err != nil {
				return nil, s.fail(err)
			}
			if res != nil {
				return res, nil
			}
			if c.comparison < 0 {
				c.done = true
				return nil, nil
			}
		}

		if c.hdr.ID.Has(LayerEnd) {
			c.done = true
			return nil, nil
		}
		c.page++
		c.entry = 0
	}
}

// refresh loads the current page if it is not cached. The header is only
// decoded when starting a page.
func (s *Searcher) refresh() error {
	c := &s.cur
	if c.cachePage == c.page {
		return nil
	}
	if err := s.r.ReadPage(c.page, c.cache); err != nil {
		return err
	}
	c.cachePage = c.page
	if c.entry == 0 {
		c.hdr = ParsePage(c.cache)
		c.off = headerSize
	}
	return nil
}

// readEntry reads a leaf entry of a page without groups.
func (s *Searcher) readEntry() (*Result, error) {
	c := &s.cur
	n := c.hdr.EntryLength
	if n == 0 {
		if c.off+1 > ebfile.PageSize {
			return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
		}
		n = int(c.cache[c.off])
		c.off++
	}
	if c.off+n+trailerSize > ebfile.PageSize {
		return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
	}

	key := c.cache[c.off : c.off+n]
	c.off += n
	c.comparison = s.single.cmp(c.word, key)

	var res *Result
	if c.comparison == 0 {
		res = trailer(c.cache[c.off:])
	}
	c.entry++
	c.off += trailerSize
	return res, nil
}

// readGroupEntry reads a leaf entry of a page with groups.
func (s *Searcher) readGroupEntry() (*Result, error) {
	c := &s.cur
	if c.off+2 > ebfile.PageSize {
		return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
	}

	var res *Result
	keyed := s.cfg.Type == SearchKeyword || s.cfg.Type == SearchCross
	switch kind := c.cache[c.off]; kind {
	case groupSingle:
		n := int(c.cache[c.off+1])
		if c.off+n+2+trailerSize > ebfile.PageSize {
			return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
		}
		key := c.cache[c.off+2 : c.off+2+n]
		c.off += n + 2
		c.comparison = s.single.cmp(c.canonical, key)
		if c.comparison == 0 {
			res = trailer(c.cache[c.off:])
		}
		c.off += trailerSize
		c.inGroup = false

	case groupStart:
		n := int(c.cache[c.off+1])
		switch {
		case keyed:
			if c.off+n+12 > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			key := c.cache[c.off+6 : c.off+6+n]
			c.off += n + 6
			c.comparison = s.single.cmp(c.word, key)
			c.heading = ebfile.BinaryPosition(c.cache[c.off:])
			c.off += 6
		case s.cfg.Type == SearchMulti:
			if c.off+n+6 > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			key := c.cache[c.off+6 : c.off+6+n]
			c.comparison = s.single.cmp(c.word, key)
			c.off += n + 6
		default:
			if c.off+n+4 > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			key := c.cache[c.off+4 : c.off+4+n]
			c.comparison = s.single.cmp(c.canonical, key)
			c.off += n + 4
		}
		c.inGroup = true

	case groupMember:
		match := c.comparison == 0 && c.inGroup
		switch {
		case keyed:
			if c.off+7 > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			if match {
				res = &Result{
					Heading: c.heading,
					Text:    ebfile.BinaryPosition(c.cache[c.off+1:]),
				}
				if s.cfg.Headings != nil {
					next, err := s.cfg.Headings.NextHeadingPosition(c.heading)
					if err != nil {
						return nil, err
					}
					c.heading = next
				}
			}
			c.off += 7
		case s.cfg.Type == SearchMulti:
			if c.off+13 > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			if match {
				res = trailer(c.cache[c.off+1:])
			}
			c.off += 13
		default:
			n := int(c.cache[c.off+1])
			if c.off+n+2+trailerSize > ebfile.PageSize {
				return nil, s.corrupt("entry %d of page %d overflows", c.entry, c.page)
			}
			key := c.cache[c.off+2 : c.off+2+n]
			c.off += n + 2
			if match && s.group.cmp(c.word, key) == 0 {
				res = trailer(c.cache[c.off:])
			}
			c.off += trailerSize
		}

	default:
		return nil, s.corrupt("unknown group entry 0x%02x on page %d", kind, c.page)
	}

	c.entry++
	return res, nil
}

func (s *Searcher) corrupt(format string, args ...any) error {
	return ebfile.UnexpectedFormat(s.cfg.Path, format, args...)
}

// fail ends the search.
func (s *Searcher) fail(err error) error {
	s.cur.done = true
	log.Debugf("%v search failed: %v", s.cfg.Type, err)
	return fmt.Errorf("%v search: %w", s.cfg.Type, err)
}
