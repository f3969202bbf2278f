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

// Package testutil builds synthetic books for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/ianlewis/go-eb/ebfile"
)

// Blocks is the content of a file addressed in 1-based blocks.
type Blocks struct {
	b []byte
}

// Put writes data at the offset off of the 1-based block.
func (bl *Blocks) Put(block uint32, off int, data []byte) {
	pos := int(ebfile.Position(block, 0)) + off
	if end := pos + len(data); end > len(bl.b) {
		size := (end + ebfile.PageSize - 1) / ebfile.PageSize * ebfile.PageSize
		bl.b = append(bl.b, make([]byte, size-len(bl.b))...)
	}
	copy(bl.b[pos:], data)
}

// PutPage writes a whole page at the 1-based block.
func (bl *Blocks) PutPage(block uint32, page []byte) {
	bl.Put(block, 0, page)
}

// Bytes returns the content padded to whole blocks.
func (bl *Blocks) Bytes() []byte {
	return bl.b
}

// WriteFile writes data to path creating missing directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

// CatalogEntry describes a sub-book in a catalog. Title is encoded in the
// character set of the book.
type CatalogEntry struct {
	Title     []byte
	Directory string

	// The rest is only used by EPWING catalogs.
	IndexPage   uint16
	WideFonts   [4]string
	NarrowFonts [4]string

	// TextFile, if set, is written to the extension record of catalogs
	// with a version other than 1.
	TextFile string
}

func field(b []byte, s string) {
	for i := range b {
		b[i] = 0
	}
	copy(b, s)
}

// EBCatalog builds an EB catalog file.
func EBCatalog(t testing.TB, entries []CatalogEntry) []byte {
	t.Helper()
	b := make([]byte, 16+40*len(entries))
	//nolint:gosec // test catalogs hold few entries.
	binary.BigEndian.PutUint16(b, uint16(len(entries)))
	for i, e := range entries {
		r := b[16+40*i : 16+40*(i+1)]
		if len(e.Title) > 30 {
			t.Fatalf("title %q is too long", e.Title)
		}
		copy(r[2:32], e.Title)
		field(r[32:40], e.Directory)
	}
	return b
}

// EPWINGCatalog builds an EPWING catalogs file of the given version.
func EPWINGCatalog(t testing.TB, version int, entries []CatalogEntry) []byte {
	t.Helper()
	n := len(entries)
	records := n
	if version != 1 {
		records = 2 * n
	}
	b := make([]byte, 16+164*records)
	//nolint:gosec // test catalogs hold few entries.
	binary.BigEndian.PutUint16(b, uint16(n))
	//nolint:gosec // versions are small.
	binary.BigEndian.PutUint16(b[2:], uint16(version))
	for i, e := range entries {
		r := b[16+164*i : 16+164*(i+1)]
		if len(e.Title) > 80 {
			t.Fatalf("title %q is too long", e.Title)
		}
		copy(r[2:82], e.Title)
		field(r[82:90], e.Directory)
		binary.BigEndian.PutUint16(r[94:], e.IndexPage)
		for j := range 4 {
			field(r[100+8*j:108+8*j], e.WideFonts[j])
			field(r[132+8*j:140+8*j], e.NarrowFonts[j])
		}

		if version != 1 && e.TextFile != "" {
			x := b[16+164*(n+i) : 16+164*(n+i+1)]
			field(x[4:12], e.TextFile)
		}
	}
	return b
}

// EBZip compresses data into an ebzip file of the given level.
func EBZip(t testing.TB, data []byte, level int) []byte {
	t.Helper()
	sliceSize := ebfile.PageSize << level
	slices := (len(data) + sliceSize - 1) / sliceSize

	indexSize := 5
	switch size := len(data); {
	case size < 1<<16:
		indexSize = 2
	case size < 1<<24:
		indexSize = 3
	case size < 1<<32:
		indexSize = 4
	}

	var body bytes.Buffer
	starts := make([]int, 0, slices+1)
	start := ebfile.ZipHeaderSize + indexSize*(slices+1)
	for i := range slices {
		slice := make([]byte, sliceSize)
		copy(slice, data[i*sliceSize:])

		var z bytes.Buffer
		zw, err := zlib.NewWriterLevel(&z, zlib.BestCompression)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := zw.Write(slice); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		if z.Len() >= sliceSize {
			z.Reset()
			z.Write(slice)
		}

		starts = append(starts, start+body.Len())
		body.Write(z.Bytes())
	}
	starts = append(starts, start+body.Len())

	hdr := make([]byte, ebfile.ZipHeaderSize)
	copy(hdr, "EBZip")
	hdr[5] = 1<<4 | byte(level)
	putUintN(hdr[9:14], int64(len(data)))

	out := append([]byte{}, hdr...)
	for _, s := range starts {
		b := make([]byte, indexSize)
		putUintN(b, int64(s))
		out = append(out, b...)
	}
	return append(out, body.Bytes()...)
}

func putUintN(b []byte, v int64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
