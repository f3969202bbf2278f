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

import "encoding/binary"

// PageID holds the flags in the first byte of an index page.
type PageID byte

const (
	// Leaf is set on pages of the lowest layer.
	Leaf PageID = 0x80

	// LayerStart is set on the first page of a layer.
	LayerStart PageID = 0x40

	// LayerEnd is set on the last page of a layer.
	LayerEnd PageID = 0x20

	// GroupEntries is set on leaf pages holding group entries.
	GroupEntries PageID = 0x10
)

// Has reports whether all flags in f are set.
func (id PageID) Has(f PageID) bool {
	return id&f == f
}

// headerSize is the size of the page header. Entries follow it.
const headerSize = 4

// Page is the decoded header of an index page.
type Page struct {
	ID PageID

	// EntryLength is the length of the keys. Zero means each key is
	// prefixed by its length.
	EntryLength int

	// EntryCount is the number of entries on the page.
	EntryCount int
}

// ParsePage decodes the header of the index page b.
func ParsePage(b []byte) Page {
	return Page{
		ID:          PageID(b[0]),
		EntryLength: int(b[1]),
		EntryCount:  int(binary.BigEndian.Uint16(b[2:])),
	}
}

// Group entry kinds.
const (
	groupSingle byte = 0x00
	groupStart  byte = 0x80
	groupMember byte = 0xc0
)

// trailerSize is the size of the text and heading positions that end a leaf
// entry.
const trailerSize = 12
