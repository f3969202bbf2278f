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

// Package folding implements the folding applied to search queries before
// they are encoded for a book.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// WhitespaceFolder removes whitespace from the beginning and end of the
// input and replaces every internal whitespace span, including ideographic
// spaces, with a single Space rune.
type WhitespaceFolder struct {
	// Space is the rune emitted for a whitespace span. The zero value emits
	// an ASCII space.
	Space rune

	// started is set after the first non-whitespace rune.
	started bool

	// inSpan is set while inside an internal whitespace span.
	inSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	spc := w.Space
	if spc == 0 {
		spc = ' '
	}

	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			nSrc += size
			if w.started {
				w.inSpan = true
			}
			continue
		}

		if w.inSpan {
			if nDst+utf8.RuneLen(spc) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], spc)
			w.inSpan = false
		}

		// utf8.RuneError is longer than the invalid byte it replaces.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.started = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{Space: w.Space}
}

// Query returns the transformer applied to search queries. Queries for
// ISO 8859-1 books have their full-width characters narrowed, and queries
// for JIS X 0208 books have whitespace folded to ideographic spaces.
func Query(latin bool) transform.Transformer {
	if latin {
		return transform.Chain(&WhitespaceFolder{}, width.Narrow)
	}
	return &WhitespaceFolder{Space: '　'}
}
