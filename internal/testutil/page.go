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

package testutil

import (
	"encoding/binary"
	"testing"

	"github.com/ianlewis/go-eb/ebfile"
)

// Page ID flags.
const (
	Leaf         = 0x80
	LayerStart   = 0x40
	LayerEnd     = 0x20
	GroupEntries = 0x10

	// SingleLeaf is the ID of a leaf page that is the whole leaf layer.
	SingleLeaf = Leaf | LayerStart | LayerEnd
)

// Entry is a leaf index entry.
type Entry struct {
	Key     []byte
	Text    int64
	Heading int64
}

// Child is an upper layer index entry.
type Child struct {
	Key  []byte
	Page uint32
}

// GroupLayout selects the record layout of group entries, which depends on
// the search type of the index.
type GroupLayout int

const (
	// GroupPlain is used by word, endword and exactword indexes.
	GroupPlain GroupLayout = iota

	// GroupKeyed is used by keyword and cross indexes.
	GroupKeyed

	// GroupMulti is used by multi-search indexes.
	GroupMulti
)

// Group entry kinds.
const (
	GroupSingle = 0x00
	GroupStart  = 0x80
	GroupMember = 0xc0
)

// GroupEntry is an entry of a leaf page with groups. Heading is the shared
// heading of a keyed group start.
type GroupEntry struct {
	Kind    byte
	Key     []byte
	Text    int64
	Heading int64
}

// pageWriter appends records to an index page.
type pageWriter struct {
	t    testing.TB
	page []byte
	off  int
}

func newPageWriter(t testing.TB, id byte, entryLength, count int) *pageWriter {
	t.Helper()
	w := &pageWriter{
		t:    t,
		page: make([]byte, ebfile.PageSize),
		off:  4,
	}
	w.page[0] = id
	w.page[1] = byte(entryLength)
	//nolint:gosec // test pages hold few entries.
	binary.BigEndian.PutUint16(w.page[2:], uint16(count))
	return w
}

func (w *pageWriter) write(b ...byte) {
	w.t.Helper()
	if w.off+len(b) > len(w.page) {
		w.t.Fatalf("index page overflows at %d", w.off)
	}
	copy(w.page[w.off:], b)
	w.off += len(b)
}

func (w *pageWriter) pad(key []byte, n int) {
	w.t.Helper()
	if len(key) > n {
		w.t.Fatalf("key %q is longer than %d", key, n)
	}
	b := make([]byte, n)
	copy(b, key)
	w.write(b...)
}

func (w *pageWriter) position(pos int64) {
	w.t.Helper()
	b := make([]byte, 6)
	ebfile.PutBinaryPosition(b, pos)
	w.write(b...)
}

func (w *pageWriter) trailer(text, heading int64) {
	w.t.Helper()
	w.position(text)
	w.position(heading)
}

// UpperPage builds an upper layer index page with keys of keyLength bytes.
func UpperPage(t testing.TB, id byte, keyLength int, children []Child) []byte {
	t.Helper()
	w := newPageWriter(t, id, keyLength, len(children))
	for _, c := range children {
		w.pad(c.Key, keyLength)
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, c.Page)
		w.write(b...)
	}
	return w.page
}

// LeafPage builds a leaf page without groups. An entryLength of 0 makes the
// entries variable length.
func LeafPage(t testing.TB, id byte, entryLength int, entries []Entry) []byte {
	t.Helper()
	w := newPageWriter(t, id, entryLength, len(entries))
	for _, e := range entries {
		if entryLength == 0 {
			w.write(byte(len(e.Key)))
			w.write(e.Key...)
		} else {
			w.pad(e.Key, entryLength)
		}
		w.trailer(e.Text, e.Heading)
	}
	return w.page
}

// GroupPage builds a leaf page with group entries.
func GroupPage(t testing.TB, id byte, layout GroupLayout, entries []GroupEntry) []byte {
	t.Helper()
	w := newPageWriter(t, id|GroupEntries, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case GroupSingle:
			w.write(GroupSingle, byte(len(e.Key)))
			w.write(e.Key...)
			w.trailer(e.Text, e.Heading)

		case GroupStart:
			w.write(GroupStart, byte(len(e.Key)))
			switch layout {
			case GroupKeyed:
				w.write(0, 0, 0, 0)
				w.write(e.Key...)
				w.position(e.Heading)
			case GroupMulti:
				w.write(0, 0, 0, 0)
				w.write(e.Key...)
			default:
				w.write(0, 0)
				w.write(e.Key...)
			}

		case GroupMember:
			switch layout {
			case GroupKeyed:
				w.write(GroupMember)
				w.position(e.Text)
			case GroupMulti:
				w.write(GroupMember)
				w.trailer(e.Text, e.Heading)
			default:
				w.write(GroupMember, byte(len(e.Key)))
				w.write(e.Key...)
				w.trailer(e.Text, e.Heading)
			}

		default:
			w.write(e.Kind, 0)
		}
	}
	return w.page
}

// IndexRecord is a record of the index header page of a sub-book.
type IndexRecord struct {
	ID        byte
	StartPage uint32
	PageCount uint32
}

// IndexHeaderPage builds the index header page of a sub-book.
func IndexHeaderPage(t testing.TB, records []IndexRecord) []byte {
	t.Helper()
	page := make([]byte, ebfile.PageSize)
	page[1] = byte(len(records))
	for i, r := range records {
		off := 16 * (i + 1)
		if off+16 > len(page) {
			t.Fatalf("too many index records: %d", len(records))
		}
		page[off] = r.ID
		binary.BigEndian.PutUint32(page[off+2:], r.StartPage)
		binary.BigEndian.PutUint32(page[off+6:], r.PageCount)
	}
	return page
}

// MultiEntry is an entry of a multi-search table. Label is JIS X 0208.
type MultiEntry struct {
	Label   []byte
	Indexes []IndexRecord
}

// MultiPage builds the entry table page of a multi-search.
func MultiPage(t testing.TB, entries []MultiEntry) []byte {
	t.Helper()
	page := make([]byte, ebfile.PageSize)
	//nolint:gosec // test tables hold few entries.
	binary.BigEndian.PutUint16(page, uint16(len(entries)))
	off := 16
	for _, e := range entries {
		if off+32+16*len(e.Indexes) > len(page) {
			t.Fatalf("multi-search table overflows")
		}
		page[off] = byte(len(e.Indexes))
		copy(page[off+2:off+32], e.Label)
		off += 32
		for _, r := range e.Indexes {
			page[off] = r.ID
			binary.BigEndian.PutUint32(page[off+2:], r.StartPage)
			binary.BigEndian.PutUint32(page[off+6:], r.PageCount)
			off += 16
		}
	}
	return page
}

// MultiTitlePage builds the EPWING title page of multi-searches. titles are
// JIS X 0208.
func MultiTitlePage(t testing.TB, titles [][]byte) []byte {
	t.Helper()
	page := make([]byte, ebfile.PageSize)
	//nolint:gosec // test pages hold few titles.
	binary.BigEndian.PutUint16(page, uint16(len(titles)+4))
	off := 350
	for _, title := range titles {
		if off+70 > len(page) {
			t.Fatalf("multi-search title page overflows")
		}
		binary.BigEndian.PutUint16(page[off:], 0x02)
		copy(page[off+18:off+18+32], title)
		off += 70
	}
	return page
}
