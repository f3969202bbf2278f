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

package text

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
)

type mode int

const (
	modeText mode = iota
	modeHeading
)

const escape = 0x1f

// scanner reads one heading or text. Escape sequences are interpreted even
// when nothing is rendered so that positions are always exact.
type scanner struct {
	r        *ebfile.Reader
	path     string
	charCode catalog.CharCode
	bookType catalog.BookType
	mode     mode
	render   bool
	limit    int64

	// buf[off:n] holds unread bytes. base is the position of buf[0].
	buf  []byte
	off  int
	n    int
	base int64
	// start is the position the scan started at.
	start int64

	autoStop  int
	skipCode  int
	printable bool
	eof       bool

	w writer
}

// position returns the position of the next unread byte.
func (s *scanner) position() int64 {
	return s.base + int64(s.off)
}

func (s *scanner) run(pos int64) error {
	if err := s.r.SeekPosition(pos); err != nil {
		return err
	}
	s.base = pos
	s.start = pos

	for !s.eof {
		if s.position()-s.start >= s.limit {
			log.Debugf("%s: stopped reading at %d after %d bytes", s.path, s.position(), s.limit)
			break
		}
		if err := s.fill(2); err != nil {
			return err
		}

		var err error
		switch {
		case s.buf[s.off] == escape:
			err = s.escape()
		case s.charCode == catalog.ISO8859_1:
			s.latin()
		default:
			s.double()
		}
		if err != nil {
			return err
		}
	}
	s.w.flush()
	return nil
}

// fill makes sure at least k unread bytes are buffered.
func (s *scanner) fill(k int) error {
	if s.off+k <= s.n {
		return nil
	}
	copy(s.buf, s.buf[s.off:s.n])
	s.base += int64(s.off)
	s.n -= s.off
	s.off = 0

	for s.n < k {
		m, err := s.r.Read(s.buf[s.n:])
		s.n += m
		if s.n >= k {
			break
		}
		if errors.Is(err, io.EOF) || (err == nil && m == 0) {
			return ebfile.UnexpectedFormat(s.path, "text at %d is not terminated", s.start)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// advance consumes k bytes, all of which must be buffered by fill.
func (s *scanner) advance(k int) error {
	if err := s.fill(k); err != nil {
		return err
	}
	s.off += k
	return nil
}

func (s *scanner) u16(i int) int {
	return int(binary.BigEndian.Uint16(s.buf[s.off+i:]))
}

// latin reads an ISO 8859-1 character or a two byte external character.
func (s *scanner) latin() {
	s.printable = true
	c := s.buf[s.off]
	if c >= 0x20 && c <= 0x7f || c >= 0xa0 {
		if s.visible() {
			s.w.latin(c)
		}
		s.off++
		return
	}
	if s.visible() {
		s.w.gaiji(s.u16(0))
	}
	s.off += 2
}

// double reads a two byte character.
func (s *scanner) double() {
	s.printable = true
	high, low := s.buf[s.off], s.buf[s.off+1]
	if s.visible() {
		switch {
		case high > 0x20 && high < 0x7f && low > 0x20 && low < 0x7f:
			s.w.jis(high, low)
		case high > 0x20 && high < 0x7f && low > 0xa0 && low < 0xff:
			s.w.gb2312(high, low&0x7f)
		case high > 0xa0 && high < 0xff && low > 0x20 && low < 0x7f:
			s.w.gaiji(s.u16(0))
		}
	}
	s.off += 2
}

// visible reports whether characters are rendered at this point.
func (s *scanner) visible() bool {
	return s.render && s.skipCode == -1
}

// escape interprets the escape sequence at the current position.
func (s *scanner) escape() error {
	code := s.buf[s.off+1]
	r := s.render

	switch code {
	case 0x02:
		return s.advance(2)
	case 0x03:
		// The terminator is not consumed.
		s.eof = true
		return nil
	case 0x04, 0x05:
		if r {
			s.w.narrow(code == 0x04)
		}
		return s.advance(2)
	case 0x06, 0x07:
		if r {
			s.w.tag(code == 0x06, "sub")
		}
		return s.advance(2)
	case 0x09:
		return s.advance(4)
	case 0x0a:
		if s.mode == modeHeading {
			s.eof = true
		} else if r {
			s.w.newline()
		}
		return s.advance(2)
	case 0x0b, 0x0c, 0x10, 0x11:
		return s.advance(2)
	case 0x0e, 0x0f:
		if r {
			s.w.tag(code == 0x0e, "sup")
		}
		return s.advance(2)
	case 0x12, 0x13:
		if r {
			s.w.tag(code == 0x12, "b")
		}
		return s.advance(2)
	case 0x14:
		s.skipCode = 0x15
		return s.advance(4)
	case 0x1a, 0x1b, 0x1e, 0x1f, 0xe0:
		return s.variable()
	case 0x1c, 0x1d:
		if s.charCode == catalog.JISX0208GB2312 {
			return s.advance(2)
		}
		return s.variable()
	case 0x32, 0x59, 0x5c, 0x6a, 0x6d, 0x6f, 0xe1:
		return s.advance(2)
	case 0x39:
		return s.advance(46)
	case 0x3c, 0x4d:
		return s.advance(20)
	case 0x35, 0x36, 0x37, 0x38, 0x3a, 0x3b, 0x3d, 0x3e, 0x3f, 0x49, 0x4e:
		s.skipCode = int(code) + 0x20
		return s.advance(2)
	case 0x41:
		return s.keyword()
	case 0x42:
		if err := s.fill(4); err != nil {
			return err
		}
		if r {
			s.w.beginReference()
		}
		if s.buf[s.off+2] != 0x00 {
			return s.advance(2)
		}
		return s.advance(4)
	case 0x43:
		return s.advance(2)
	case 0x44:
		return s.advance(12)
	case 0x45:
		if err := s.fill(4); err != nil {
			return err
		}
		if s.buf[s.off+2] != escape {
			return s.advance(4)
		}
		return s.advance(6)
	case 0x4a:
		return s.advance(18)
	case 0x4b:
		return s.graphicReference()
	case 0x4c:
		return s.advance(4)
	case 0x4f:
		return s.advance(34)
	case 0x52, 0x63, 0x64:
		return s.advance(8)
	case 0x53:
		return s.advance(10)
	case 0x61:
		if r {
			s.w.tag(false, "span")
		}
		return s.advance(2)
	case 0x62:
		if err := s.fill(8); err != nil {
			return err
		}
		if r {
			s.w.endReference(ebfile.BCDPosition(s.buf[s.off+2:]))
		}
		return s.advance(8)
	case 0x6b:
		return s.advance(2)
	case 0x6c:
		s.eof = true
		return s.advance(2)
	}

	switch {
	case code >= 0x70 && code <= 0x8f:
		s.skipCode = int(code) + 0x20
	case code >= 0xe4 && code <= 0xfe && code%2 == 0:
		s.skipCode = int(code) + 0x01
	default:
		if int(code) == s.skipCode {
			s.skipCode = -1
		}
	}
	return s.advance(2)
}

// variable skips an escape whose length depends on the next byte in EB
// books.
func (s *scanner) variable() error {
	if err := s.fill(4); err != nil {
		return err
	}
	if s.bookType == catalog.EB && s.buf[s.off+2] >= escape {
		return s.advance(2)
	}
	return s.advance(4)
}

// keyword starts a keyword. The second keyword of a text with the same code
// as the first one starts the next entry and ends the text.
func (s *scanner) keyword() error {
	if err := s.fill(4); err != nil {
		return err
	}
	stop := s.u16(2)
	if s.printable && s.mode == modeText && s.autoStop >= 0 && stop == s.autoStop {
		s.eof = true
		return nil
	}
	if s.autoStop < 0 {
		s.autoStop = stop
	}
	if s.render {
		s.w.keyword()
	}
	return s.advance(4)
}

// graphicReference skips a reference to a color graphic. When it is
// immediately closed it ends the text.
func (s *scanner) graphicReference() error {
	if err := s.fill(10); err != nil {
		return err
	}
	if err := s.advance(8); err != nil {
		return err
	}
	if s.buf[s.off] == escape && s.buf[s.off+1] == 0x6b {
		s.eof = true
		return s.advance(2)
	}
	return nil
}
