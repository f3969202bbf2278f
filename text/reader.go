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

// Package text implements reading the headings and texts of an EB sub-book.
//
// Text is a stream of characters interleaved with escape sequences that
// start with the byte 0x1f. Headings end at a newline escape and texts at an
// end of text escape or at the start of the next entry's keyword.
package text

import (
	"regexp"

	"github.com/k3a/html2text"
	"github.com/op/go-logging"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
)

var log = logging.MustGetLogger("eb/text")

// DefaultMaxBytes is the default limit on the bytes read for one heading or
// text.
const DefaultMaxBytes = 1 << 20

// Options configures a Reader.
type Options struct {
	// MaxBytes limits the bytes read for one heading or text. A heading or
	// text that is longer is truncated. Zero means DefaultMaxBytes.
	MaxBytes int
}

// Reader reads headings and texts from the text file of a sub-book. A Reader
// is safe for concurrent use.
type Reader struct {
	f        *ebfile.File
	charCode catalog.CharCode
	bookType catalog.BookType
	maxBytes int
}

// NewReader returns a Reader over the text file f of a book with the given
// character set and type. opts may be nil.
func NewReader(f *ebfile.File, cs catalog.CharCode, bt catalog.BookType, opts *Options) *Reader {
	r := &Reader{
		f:        f,
		charCode: cs,
		bookType: bt,
		maxBytes: DefaultMaxBytes,
	}
	if opts != nil && opts.MaxBytes > 0 {
		r.maxBytes = opts.MaxBytes
	}
	return r
}

// Heading returns the heading at pos rendered as an HTML fragment.
func (r *Reader) Heading(pos int64) (string, error) {
	s := r.newScanner(modeHeading, true)
	if err := s.run(pos); err != nil {
		return "", err
	}
	return s.w.String(), nil
}

// Text returns the text at pos rendered as an HTML fragment.
func (r *Reader) Text(pos int64) (string, error) {
	s := r.newScanner(modeText, true)
	if err := s.run(pos); err != nil {
		return "", err
	}
	return s.w.String(), nil
}

// NextHeadingPosition returns the position of the heading following the one
// at pos.
func (r *Reader) NextHeadingPosition(pos int64) (int64, error) {
	s := r.newScanner(modeHeading, false)
	if err := s.run(pos); err != nil {
		return 0, err
	}
	return s.position(), nil
}

func (r *Reader) newScanner(m mode, render bool) *scanner {
	return &scanner{
		r:        r.f.NewReader(),
		path:     r.f.Path(),
		charCode: r.charCode,
		bookType: r.bookType,
		mode:     m,
		render:   render,
		limit:    int64(r.maxBytes),
		buf:      make([]byte, ebfile.PageSize),
		autoStop: -1,
		skipCode: -1,
	}
}

// anchorTag matches the opening and closing tags of a reference.
var anchorTag = regexp.MustCompile(`(?i)</?a(\s[^>]*)?>`)

// PlainText converts an HTML fragment returned by Heading or Text to plain
// text. References are replaced by their labels.
func PlainText(html string) string {
	return html2text.HTML2TextWithOptions(anchorTag.ReplaceAllString(html, ""),
		html2text.WithUnixLineBreaks(),
	)
}
