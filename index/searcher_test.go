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

package index_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/index"
	"github.com/ianlewis/go-eb/internal/testutil"
)

var (
	kanji       = []byte{0x34, 0x41, 0x3b, 0x7a}
	kanjiLonger = []byte{0x34, 0x41, 0x3b, 0x7a, 0x33, 0x58}
)

// stepper steps headings by one byte.
type stepper struct{}

func (stepper) NextHeadingPosition(pos int64) (int64, error) {
	return pos + 1, nil
}

// store returns a reader over a file holding pages at their blocks.
func store(t *testing.T, pages map[uint32][]byte) *ebfile.Reader {
	t.Helper()
	var bl testutil.Blocks
	for block, p := range pages {
		bl.PutPage(block, p)
	}
	b := bl.Bytes()
	f, err := ebfile.NewFile("start", ebfile.FormatPlain, ebfile.Segment{
		R:    bytes.NewReader(b),
		Size: int64(len(b)),
	})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f.NewReader()
}

func style(id byte) *index.Style {
	st := index.NewStyle(id)
	st.StartPage = 1
	return &st
}

func entries(keys ...string) []testutil.Entry {
	var es []testutil.Entry
	for i, k := range keys {
		es = append(es, testutil.Entry{
			Key:     []byte(k),
			Text:    int64(100 * (i + 1)),
			Heading: int64(100*(i+1) + 1),
		})
	}
	return es
}

// twoLevel is an upper page over two leaf pages holding AA, AB and BA.
func twoLevel(t *testing.T) map[uint32][]byte {
	t.Helper()
	return map[uint32][]byte{
		1: testutil.UpperPage(t, testutil.LayerStart|testutil.LayerEnd, 2, []testutil.Child{
			{Key: []byte("AB"), Page: 2},
			{Key: []byte("BA"), Page: 3},
		}),
		2: testutil.LeafPage(t, testutil.Leaf|testutil.LayerStart, 2, []testutil.Entry{
			{Key: []byte("AA"), Text: 100, Heading: 200},
			{Key: []byte("AB"), Text: 300, Heading: 400},
		}),
		3: testutil.LeafPage(t, testutil.Leaf|testutil.LayerEnd, 2, []testutil.Entry{
			{Key: []byte("BA"), Text: 500, Heading: 600},
		}),
	}
}

// corruptPage is a leaf page whose eighth entry runs past the end of the
// page.
func corruptPage() []byte {
	const n = 250
	page := make([]byte, ebfile.PageSize)
	page[0] = testutil.SingleLeaf
	page[1] = n
	binary.BigEndian.PutUint16(page[2:], 8)
	for i := range 7 {
		off := 4 + (n+12)*i
		copy(page[off:], "AA")
		ebfile.PutBinaryPosition(page[off+n:], int64(1000*(i+1)))
		ebfile.PutBinaryPosition(page[off+n+6:], int64(1000*(i+1)+1))
	}
	return page
}

func TestSearcher(t *testing.T) {
	t.Parallel()

	chain := map[uint32][]byte{}
	for i := uint32(1); i <= index.MaxIndexDepth+1; i++ {
		chain[i] = testutil.UpperPage(t, testutil.LayerStart|testutil.LayerEnd, 2, []testutil.Child{
			{Key: []byte("ZZ"), Page: i + 1},
		})
	}

	var corrupt []*index.Result
	for i := range 7 {
		corrupt = append(corrupt, &index.Result{
			Text:    int64(1000 * (i + 1)),
			Heading: int64(1000*(i+1) + 1),
		})
	}

	tests := []struct {
		name  string
		pages map[uint32][]byte
		cfg   index.Config
		word  []byte

		expected []*index.Result
		err      error
	}{
		{
			name:  "two level prefix",
			pages: twoLevel(t),
			cfg:   index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:  []byte("A"),
			expected: []*index.Result{
				{Heading: 200, Text: 100},
				{Heading: 400, Text: 300},
			},
		},
		{
			name:  "two level second leaf",
			pages: twoLevel(t),
			cfg:   index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:  []byte("B"),
			expected: []*index.Result{
				{Heading: 600, Text: 500},
			},
		},
		{
			name:  "two level not found",
			pages: twoLevel(t),
			cfg:   index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:  []byte("C"),
		},
		{
			name:  "two level canonicalized",
			pages: twoLevel(t),
			cfg:   index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:  []byte("ab"),
			expected: []*index.Result{
				{Heading: 400, Text: 300},
			},
		},
		{
			name: "self loop",
			pages: map[uint32][]byte{
				1: testutil.UpperPage(t, testutil.LayerStart|testutil.LayerEnd, 2, []testutil.Child{
					{Key: []byte("ZZ"), Page: 1},
				}),
			},
			cfg:  index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word: []byte("A"),
		},
		{
			name:  "too deep",
			pages: chain,
			cfg:   index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:  []byte("A"),
			err:   ebfile.ErrUnexpectedFormat,
		},
		{
			name:     "corrupt leaf",
			pages:    map[uint32][]byte{1: corruptPage()},
			cfg:      index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word:     []byte("A"),
			expected: corrupt,
			err:      ebfile.ErrUnexpectedFormat,
		},
		{
			name: "upper page in leaf layer",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.Leaf|testutil.LayerStart, 0, entries("AA")),
				2: testutil.UpperPage(t, testutil.LayerEnd, 2, []testutil.Child{
					{Key: []byte("ZZ"), Page: 3},
				}),
			},
			cfg:  index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word: []byte("A"),
			expected: []*index.Result{
				{Heading: 101, Text: 100},
			},
			err: ebfile.ErrUnexpectedFormat,
		},
		{
			name: "missing style",
			cfg:  index.Config{Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word: []byte("A"),
		},
		{
			name: "kana index",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 0, []testutil.Entry{
					{Key: []byte{0x25, 0x22, 0x25, 0x24}, Text: 10, Heading: 11},
					{Key: []byte{0x25, 0x2b}, Text: 20, Heading: 21},
				}),
			},
			cfg: index.Config{
				Style:         style(index.KindWordKana),
				Type:          index.SearchWord,
				CharCode:      catalog.JISX0208,
				KanaStartPage: 1,
			},
			word: []byte{0x24, 0x22},
			expected: []*index.Result{
				{Heading: 11, Text: 10},
			},
		},
		{
			name: "kana word in other index",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 0, []testutil.Entry{
					{Key: []byte{0x25, 0x22, 0x25, 0x24}, Text: 10, Heading: 11},
				}),
			},
			cfg:  index.Config{Style: style(0x91), Type: index.SearchWord, CharCode: catalog.JISX0208},
			word: []byte{0x24, 0x22},
		},
		{
			name: "endword",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 0, entries("GOD", "TAC", "TAH")),
			},
			cfg:  index.Config{Style: style(0x72), Type: index.SearchEndword, CharCode: catalog.ISO8859_1},
			word: []byte("at"),
			expected: []*index.Result{
				{Heading: 201, Text: 200},
				{Heading: 301, Text: 300},
			},
		},
		{
			name: "word over reversed keys",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 0, entries("GOD", "TAC", "TAH")),
			},
			cfg:  index.Config{Style: style(0x72), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word: []byte("ta"),
			expected: []*index.Result{
				{Heading: 201, Text: 200},
				{Heading: 301, Text: 300},
			},
		},
		{
			name: "exactword",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 6, []testutil.Entry{
					{Key: kanji, Text: 10, Heading: 11},
					{Key: kanjiLonger, Text: 20, Heading: 21},
				}),
			},
			cfg:  index.Config{Style: style(0x91), Type: index.SearchExactword, CharCode: catalog.JISX0208},
			word: kanji,
			expected: []*index.Result{
				{Heading: 11, Text: 10},
			},
		},
		{
			name: "word matches longer keys",
			pages: map[uint32][]byte{
				1: testutil.LeafPage(t, testutil.SingleLeaf, 6, []testutil.Entry{
					{Key: kanji, Text: 10, Heading: 11},
					{Key: kanjiLonger, Text: 20, Heading: 21},
				}),
			},
			cfg:  index.Config{Style: style(0x91), Type: index.SearchWord, CharCode: catalog.JISX0208},
			word: kanji,
			expected: []*index.Result{
				{Heading: 11, Text: 10},
				{Heading: 21, Text: 20},
			},
		},
		{
			name: "keyword group headings",
			pages: map[uint32][]byte{
				1: testutil.GroupPage(t, testutil.SingleLeaf, testutil.GroupKeyed, []testutil.GroupEntry{
					{Kind: testutil.GroupStart, Key: []byte("KEY"), Heading: 5000},
					{Kind: testutil.GroupMember, Text: 100},
					{Kind: testutil.GroupMember, Text: 200},
					{Kind: testutil.GroupMember, Text: 300},
					{Kind: testutil.GroupStart, Key: []byte("KEZ"), Heading: 6000},
					{Kind: testutil.GroupMember, Text: 400},
				}),
			},
			cfg: index.Config{
				Style:    style(0x80),
				Type:     index.SearchKeyword,
				CharCode: catalog.ISO8859_1,
				Headings: stepper{},
			},
			word: []byte("key"),
			expected: []*index.Result{
				{Heading: 5000, Text: 100},
				{Heading: 5001, Text: 200},
				{Heading: 5002, Text: 300},
			},
		},
		{
			name: "cross group without stepper",
			pages: map[uint32][]byte{
				1: testutil.GroupPage(t, testutil.SingleLeaf, testutil.GroupKeyed, []testutil.GroupEntry{
					{Kind: testutil.GroupStart, Key: []byte("KEY"), Heading: 5000},
					{Kind: testutil.GroupMember, Text: 100},
					{Kind: testutil.GroupMember, Text: 200},
				}),
			},
			cfg:  index.Config{Style: style(0x81), Type: index.SearchCross, CharCode: catalog.ISO8859_1},
			word: []byte("KEY"),
			expected: []*index.Result{
				{Heading: 5000, Text: 100},
				{Heading: 5000, Text: 200},
			},
		},
		{
			name: "multi group",
			pages: map[uint32][]byte{
				1: testutil.GroupPage(t, testutil.SingleLeaf, testutil.GroupMulti, []testutil.GroupEntry{
					{Kind: testutil.GroupSingle, Key: []byte("AB"), Text: 10, Heading: 11},
					{Kind: testutil.GroupStart, Key: []byte("AC")},
					{Kind: testutil.GroupMember, Text: 20, Heading: 21},
					{Kind: testutil.GroupMember, Text: 30, Heading: 31},
					{Kind: testutil.GroupStart, Key: []byte("AD")},
					{Kind: testutil.GroupMember, Text: 40, Heading: 41},
				}),
			},
			cfg:  index.Config{Style: style(0x91), Type: index.SearchMulti, CharCode: catalog.ISO8859_1},
			word: []byte("AC"),
			expected: []*index.Result{
				{Heading: 21, Text: 20},
				{Heading: 31, Text: 30},
			},
		},
		{
			name: "unknown group entry",
			pages: map[uint32][]byte{
				1: testutil.GroupPage(t, testutil.SingleLeaf, testutil.GroupPlain, []testutil.GroupEntry{
					{Kind: 0x40},
				}),
			},
			cfg:  index.Config{Style: style(0x92), Type: index.SearchWord, CharCode: catalog.ISO8859_1},
			word: []byte("A"),
			err:  ebfile.ErrUnexpectedFormat,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var r index.PageReader = store(t, map[uint32][]byte{1: make([]byte, ebfile.PageSize)})
			if test.pages != nil {
				r = store(t, test.pages)
			}
			test.cfg.Path = "start"

			s := index.NewSearcher(r, test.cfg)
			var got []*index.Result
			err := s.Begin(test.word)
			if err == nil {
				got, err = index.All(s)
			}
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("search error (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("search (-want, +got):\n%s", diff)
			}

			// The searcher stays exhausted.
			res, err := s.Next()
			if err != nil || res != nil {
				t.Fatalf("Next after end: %v, %v", res, err)
			}
		})
	}
}

// TestSearcher_Deterministic checks that a searcher can be reused and gives
// the same results every time.
func TestSearcher_Deterministic(t *testing.T) {
	t.Parallel()

	s := index.NewSearcher(store(t, twoLevel(t)), index.Config{
		Style:    style(0x92),
		Type:     index.SearchWord,
		CharCode: catalog.ISO8859_1,
	})

	var first []*index.Result
	for i := range 3 {
		if err := s.Begin([]byte("A")); err != nil {
			t.Fatalf("Begin: %v", err)
		}
		got, err := index.All(s)
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		if i == 0 {
			first = got
			continue
		}
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("search %d (-want, +got):\n%s", i, diff)
		}
	}
}

func TestSearcher_GroupEquivalence(t *testing.T) {
	t.Parallel()

	plain := map[uint32][]byte{
		1: testutil.LeafPage(t, testutil.SingleLeaf, 0, []testutil.Entry{
			{Key: []byte("AA"), Text: 10, Heading: 11},
			{Key: []byte("AB"), Text: 20, Heading: 21},
			{Key: []byte("AB"), Text: 30, Heading: 31},
			{Key: []byte("B"), Text: 40, Heading: 41},
		}),
	}
	grouped := map[uint32][]byte{
		1: testutil.GroupPage(t, testutil.SingleLeaf, testutil.GroupPlain, []testutil.GroupEntry{
			{Kind: testutil.GroupSingle, Key: []byte("AA"), Text: 10, Heading: 11},
			{Kind: testutil.GroupStart, Key: []byte("AB")},
			{Kind: testutil.GroupMember, Key: []byte("AB"), Text: 20, Heading: 21},
			{Kind: testutil.GroupMember, Key: []byte("AB"), Text: 30, Heading: 31},
			{Kind: testutil.GroupSingle, Key: []byte("B"), Text: 40, Heading: 41},
		}),
	}

	tests := []struct {
		word     string
		expected []*index.Result
	}{
		{
			word: "A",
			expected: []*index.Result{
				{Heading: 11, Text: 10},
				{Heading: 21, Text: 20},
				{Heading: 31, Text: 30},
			},
		},
		{
			word: "AA",
			expected: []*index.Result{
				{Heading: 11, Text: 10},
			},
		},
		{
			word: "AB",
			expected: []*index.Result{
				{Heading: 21, Text: 20},
				{Heading: 31, Text: 30},
			},
		},
		{
			word: "B",
			expected: []*index.Result{
				{Heading: 41, Text: 40},
			},
		},
		{
			word: "C",
		},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			for name, pages := range map[string]map[uint32][]byte{"plain": plain, "grouped": grouped} {
				s := index.NewSearcher(store(t, pages), index.Config{
					Style:    style(0x92),
					Type:     index.SearchWord,
					CharCode: catalog.ISO8859_1,
				})
				if err := s.Begin([]byte(test.word)); err != nil {
					t.Fatalf("%s: Begin: %v", name, err)
				}
				got, err := index.All(s)
				if err != nil {
					t.Fatalf("%s: All: %v", name, err)
				}
				if diff := cmp.Diff(test.expected, got); diff != "" {
					t.Errorf("%s: search (-want, +got):\n%s", name, diff)
				}
			}
		})
	}
}
