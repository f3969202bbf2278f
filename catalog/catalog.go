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

// Package catalog implements reading the catalog of an EB or EPWING book.
//
// An EB book lists its sub-books in a file called "catalog" and an EPWING
// book in a file called "catalogs". An optional "language" file declares the
// character set of the book.
package catalog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/internal/jis"
)

var log = logging.MustGetLogger("eb/catalog")

// CharCode is the character set of a book.
type CharCode int

const (
	// ISO8859_1 is ISO 8859-1.
	//nolint:revive,stylecheck // the name of the character set.
	ISO8859_1 CharCode = 1

	// JISX0208 is JIS X 0208.
	JISX0208 CharCode = 2

	// JISX0208GB2312 is JIS X 0208 mixed with GB 2312.
	JISX0208GB2312 CharCode = 3
)

// String implements fmt.Stringer.
func (c CharCode) String() string {
	switch c {
	case ISO8859_1:
		return "ISO 8859-1"
	case JISX0208:
		return "JIS X 0208"
	case JISX0208GB2312:
		return "JIS X 0208/GB 2312"
	default:
		return fmt.Sprintf("CharCode(%d)", int(c))
	}
}

// BookType is the kind of book.
type BookType int

const (
	// EB is an EB, EBG or EBXA book.
	EB BookType = iota

	// EPWING is an EPWING book.
	EPWING
)

// String implements fmt.Stringer.
func (t BookType) String() string {
	if t == EB {
		return "EB"
	}
	return "EPWING"
}

const (
	// FileName is the catalog file of EB books.
	FileName = "catalog"

	// EPWINGFileName is the catalog file of EPWING books.
	EPWINGFileName = "catalogs"

	// LanguageFileName is the optional file declaring the character set.
	LanguageFileName = "language"

	headerSize    = 16
	ebRecordSize  = 40
	ebTitleSize   = 30
	epwRecordSize = 164
	epwTitleSize  = 80
	dirNameSize   = 8
	fontSlots     = 4

	ebTextFile  = "start"
	epwTextFile = "honmon"
)

// misleadedTitles are titles of books that declare ISO 8859-1 although their
// text is JIS X 0208.
var misleadedTitles = []string{
	"%;%s%A%e%j!\\%S%8%M%9!\\%/%i%&%s",
	"8&5f<R!!?71QOBCf<-E5",
	"#E#B2J3X5;=QMQ8lBg<-E5",
	"#E#N#G!?#J#A#N!J!\\#F#R#E!K",
	"#E#N#G!?#J#A#N!J!\\#S#P#A!K",
	"%W%m%7!<%I1QOB!&OB1Q<-E5",
}

// FileSpec names a data file of a sub-book.
type FileSpec struct {
	Name   string
	Format ebfile.Format
}

// Entry describes one sub-book.
type Entry struct {
	// Title is the decoded title.
	Title string

	// Directory is the name of the sub-book directory.
	Directory string

	// IndexPage is the block of the index header in the text file.
	IndexPage uint32

	// Text is the file holding text and indexes.
	Text FileSpec

	// Graphic and Sound are optional data files.
	Graphic FileSpec
	Sound   FileSpec

	// WideFonts and NarrowFonts are external font file names by size.
	WideFonts   [fontSlots]string
	NarrowFonts [fontSlots]string
}

// Catalog is the parsed book catalog.
type Catalog struct {
	Type     BookType
	CharCode CharCode

	// Version is the EPWING format version. It is 0 for EB books.
	Version int

	Entries []Entry
}

// LoadLanguage returns the character set declared by the language file in
// dir. Books without a language file are JIS X 0208.
func LoadLanguage(dir string) CharCode {
	f, err := ebfile.Open(dir, LanguageFileName, ebfile.FormatPlain)
	if err != nil {
		return JISX0208
	}
	defer f.Close()

	b := make([]byte, headerSize)
	if err := f.NewReader().ReadFull(b); err != nil {
		log.Warningf("ignoring %s: %v", f.Path(), err)
		return JISX0208
	}
	return CharCode(binary.BigEndian.Uint16(b))
}

// Load reads the language and catalog files of the book in dir.
func Load(dir string) (*Catalog, error) {
	cs := LoadLanguage(dir)

	typ := EB
	f, err := ebfile.Open(dir, FileName, ebfile.FormatPlain)
	if errors.Is(err, ebfile.ErrFileNotFound) {
		typ = EPWING
		f, err = ebfile.Open(dir, EPWINGFileName, ebfile.FormatPlain)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, typ, cs)
}

// Parse parses the catalog file f of a book of the given type and declared
// character set.
func Parse(f *ebfile.File, typ BookType, cs CharCode) (*Catalog, error) {
	c := &Catalog{
		Type:     typ,
		CharCode: cs,
	}

	r := f.NewReader()
	hdr := make([]byte, headerSize)
	if err := r.ReadFull(hdr); err != nil {
		return nil, err
	}
	count := int(int16(binary.BigEndian.Uint16(hdr)))
	if count <= 0 {
		return nil, ebfile.UnexpectedFormat(f.Path(), "sub-book count %d", count)
	}

	var err error
	if typ == EB {
		err = c.parseEB(r, count)
	} else {
		c.Version = int(binary.BigEndian.Uint16(hdr[2:]))
		err = c.parseEPWING(f.Path(), r, count)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) parseEB(r *ebfile.Reader, count int) error {
	b := make([]byte, ebRecordSize)
	for range count {
		if err := r.ReadFull(b); err != nil {
			return err
		}
		off := 2
		title := c.decodeTitle(b[off : off+ebTitleSize])
		off += ebTitleSize
		c.Entries = append(c.Entries, Entry{
			Title:     title,
			Directory: asciiField(b[off : off+dirNameSize]),
			IndexPage: 1,
			Text:      FileSpec{Name: ebTextFile, Format: ebfile.FormatPlain},
		})
	}
	return nil
}

func (c *Catalog) parseEPWING(path string, r *ebfile.Reader, count int) error {
	b := make([]byte, epwRecordSize)
	for i := range count {
		if err := r.SeekPosition(int64(headerSize + i*epwRecordSize)); err != nil {
			return err
		}
		if err := r.ReadFull(b); err != nil {
			return err
		}

		var e Entry
		off := 2
		e.Title = c.decodeTitle(b[off : off+epwTitleSize])
		off += epwTitleSize
		e.Directory = asciiField(b[off : off+dirNameSize])
		off += dirNameSize
		e.IndexPage = uint32(binary.BigEndian.Uint16(b[off+4:]))
		off += 10
		for j := range fontSlots {
			if b[off] != 0 && b[off] < 0x80 {
				e.WideFonts[j] = asciiField(b[off : off+dirNameSize])
			}
			if b[off+32] != 0 && b[off+32] < 0x80 {
				e.NarrowFonts[j] = asciiField(b[off+32 : off+32+dirNameSize])
			}
			off += dirNameSize
		}
		e.Text = FileSpec{Name: epwTextFile, Format: ebfile.FormatPlain}

		if c.Version != 1 {
			if err := r.SeekPosition(int64(headerSize + (count+i)*epwRecordSize)); err != nil {
				return err
			}
			if err := r.ReadFull(b); err != nil {
				return err
			}
			if err := parseExtension(path, b, &e); err != nil {
				return err
			}
		}

		c.Entries = append(c.Entries, e)
	}
	return nil
}

// parseExtension reads the data file names from the extension record of an
// EPWING sub-book.
func parseExtension(path string, b []byte, e *Entry) error {
	if b[4] == 0 {
		return nil
	}

	var err error
	e.Text.Name = asciiField(b[4 : 4+dirNameSize])
	if e.Text.Format, err = dataFormat(path, b[55]); err != nil {
		return err
	}

	dataType := binary.BigEndian.Uint16(b[41:])
	field := func(kind uint16) (FileSpec, error) {
		var spec FileSpec
		var code byte
		switch {
		case dataType&0x03 == kind:
			spec.Name, code = asciiField(b[44:44+dirNameSize]), b[54]
		case dataType>>8&0x03 == kind:
			spec.Name, code = asciiField(b[56:56+dirNameSize]), b[53]
		}
		spec.Format, err = dataFormat(path, code)
		return spec, err
	}
	if e.Graphic, err = field(0x02); err != nil {
		return err
	}
	if e.Sound, err = field(0x01); err != nil {
		return err
	}
	return nil
}

func dataFormat(path string, code byte) (ebfile.Format, error) {
	switch code {
	case 0x00:
		return ebfile.FormatPlain, nil
	case 0x11:
		return ebfile.FormatEPWING, nil
	case 0x12:
		return ebfile.FormatEPWING6, nil
	default:
		return 0, ebfile.UnexpectedFormat(path, "data format 0x%02x", code)
	}
}

// decodeTitle decodes a title field. A book declared as ISO 8859-1 whose
// title matches one of the misleaded titles is switched to JIS X 0208 for
// good.
func (c *Catalog) decodeTitle(b []byte) string {
	if c.CharCode != ISO8859_1 {
		return jis.DecodeJISX0208(b)
	}

	raw := trimLow(b)
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	title := string(s)
	for _, m := range misleadedTitles {
		if title == m {
			log.Debugf("title %q is JIS X 0208", title)
			c.CharCode = JISX0208
			return jis.DecodeJISX0208(raw)
		}
	}
	return title
}

// trimLow removes leading and trailing control characters and spaces.
func trimLow(b []byte) []byte {
	for len(b) > 0 && b[0] <= ' ' {
		b = b[1:]
	}
	for len(b) > 0 && b[len(b)-1] <= ' ' {
		b = b[:len(b)-1]
	}
	return b
}

func asciiField(b []byte) string {
	return strings.TrimSpace(string(trimLow(b)))
}
