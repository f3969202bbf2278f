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

package ebfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("eb/ebfile")

// Format is the storage format of a book file.
type Format int

const (
	// FormatPlain is an uncompressed file.
	FormatPlain Format = iota

	// FormatEBZip is a file compressed with ebzip.
	FormatEBZip

	// FormatEPWING is an EPWING V4 compressed file.
	FormatEPWING

	// FormatEPWING6 is an EPWING V6 compressed file.
	FormatEPWING6

	// FormatSEBXA is an S-EBXA compressed file.
	FormatSEBXA
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatEBZip:
		return "ebzip"
	case FormatEPWING:
		return "epwing"
	case FormatEPWING6:
		return "epwing6"
	case FormatSEBXA:
		return "s-ebxa"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Segment is one physical part of a logical file.
type Segment struct {
	R    io.ReaderAt
	Size int64
}

// File is a read-only logical book file. A File is safe for concurrent use;
// every read is a positioned read against the underlying segments.
type File struct {
	path    string
	format  Format
	segs    []Segment
	closers []io.Closer
	size    int64
	zip     *zipInfo
}

// NewFile returns a File over the given segments. Plain files may consist of
// several segments which are read as their concatenation. Compressed files
// must have exactly one segment.
func NewFile(path string, format Format, segs ...Segment) (*File, error) {
	f := &File{
		path:   path,
		format: format,
		segs:   segs,
	}

	switch format {
	case FormatPlain:
		for _, s := range segs {
			f.size += s.Size
		}
	case FormatEBZip:
		if len(segs) != 1 {
			return nil, UnexpectedFormat(path, "ebzip file with %d segments", len(segs))
		}
		zi, err := readZipInfo(path, segs[0].R)
		if err != nil {
			return nil, err
		}
		f.zip = zi
		f.size = zi.fileSize
	default:
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, format)
	}

	return f, nil
}

// Open opens the file called name in dir. The name is matched without regard
// to case. A file with the suffix ".org" is opened as a plain file and one
// with the suffix ".ebz" is opened as an ebzip file. Otherwise the file is
// opened with the given format.
func Open(dir, name string, format Format) (*File, error) {
	path, format, err := Find(dir, name, format)
	if err != nil {
		return nil, err
	}
	return OpenPath(path, format)
}

// OpenPath opens the file at path with the given format.
func OpenPath(path string, format Format) (*File, error) {
	seg, c, err := openSegment(path)
	if err != nil {
		return nil, err
	}

	f, err := NewFile(path, format, seg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	f.closers = []io.Closer{c}

	log.Debugf("opened %s (%v, %d bytes)", path, format, f.size)

	return f, nil
}

// OpenSegments opens a plain logical file made of the given physical files in
// order.
func OpenSegments(paths ...string) (*File, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrFileNotFound)
	}

	var segs []Segment
	var closers []io.Closer
	for _, p := range paths {
		seg, c, err := openSegment(p)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, err
		}
		segs = append(segs, seg)
		closers = append(closers, c)
	}

	f, err := NewFile(paths[0], FormatPlain, segs...)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	f.closers = closers

	return f, nil
}

func openSegment(path string) (Segment, io.Closer, error) {
	osf, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Segment{}, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Segment{}, nil, ioError(path, err)
	}
	info, err := osf.Stat()
	if err != nil {
		_ = osf.Close()
		return Segment{}, nil, ioError(path, err)
	}
	return Segment{R: osf, Size: info.Size()}, osf, nil
}

// Path returns the path of the file.
func (f *File) Path() string {
	return f.path
}

// Format returns the storage format of the file.
func (f *File) Format() Format {
	return f.format
}

// Size returns the logical, uncompressed size of the file.
func (f *File) Size() int64 {
	return f.size
}

// Close closes the underlying files.
func (f *File) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, ioError(f.path, err))
		}
	}
	f.closers = nil
	return errors.Join(errs...)
}

// ReadAt implements io.ReaderAt over the logical file contents.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.readAt(p, off, nil)
}

func (f *File) readAt(p []byte, off int64, c *sliceCache) (int, error) {
	if off < 0 {
		return 0, UnexpectedFormat(f.path, "negative offset %d", off)
	}
	if off >= f.size {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	want := len(p)
	if rest := f.size - off; int64(want) > rest {
		want = int(rest)
	}

	var n int
	var err error
	if f.zip != nil {
		if c == nil {
			c = newSliceCache()
		}
		n, err = f.readZipAt(p[:want], off, c)
	} else {
		n, err = f.readPlainAt(p[:want], off)
	}
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *File) readPlainAt(p []byte, off int64) (int, error) {
	var n int
	var base int64
	for _, s := range f.segs {
		if n == len(p) {
			break
		}
		if off+int64(n) >= base+s.Size {
			base += s.Size
			continue
		}
		segOff := off + int64(n) - base
		toRead := p[n:]
		if rest := s.Size - segOff; int64(len(toRead)) > rest {
			toRead = toRead[:rest]
		}
		m, err := s.R.ReadAt(toRead, segOff)
		n += m
		if err != nil && !(errors.Is(err, io.EOF) && m == len(toRead)) {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return n, ioError(f.path, err)
		}
		base += s.Size
	}
	return n, nil
}

// NewReader returns a Reader positioned at the start of the file. Each
// Reader has its own position and cache and must not be shared between
// goroutines.
func (f *File) NewReader() *Reader {
	return &Reader{
		f:     f,
		cache: newSliceCache(),
	}
}

// Reader is a sequential reader over a File addressed in blocks.
type Reader struct {
	f     *File
	pos   int64
	cache *sliceCache
}

// Seek moves the reader to offset off in the 1-based block.
func (r *Reader) Seek(block uint32, off uint16) error {
	if block == 0 {
		return UnexpectedFormat(r.f.path, "block 0")
	}
	return r.SeekPosition(Position(block, off))
}

// SeekPosition moves the reader to the absolute position pos.
func (r *Reader) SeekPosition(pos int64) error {
	if pos < 0 || pos > r.f.size {
		return UnexpectedFormat(r.f.path, "position %d out of range", pos)
	}
	r.pos = pos
	return nil
}

// Position returns the current absolute position.
func (r *Reader) Position() int64 {
	return r.pos
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.f.readAt(p, r.pos, r.cache)
	r.pos += int64(n)
	return n, err
}

// ReadFull fills p from the current position. A short read is an ErrIO
// wrapping io.ErrUnexpectedEOF.
func (r *Reader) ReadFull(p []byte) error {
	n, err := r.f.readAt(p, r.pos, r.cache)
	r.pos += int64(n)
	if n == len(p) {
		return nil
	}
	if errors.Is(err, io.EOF) || err == nil {
		return ioError(r.f.path, io.ErrUnexpectedEOF)
	}
	return err
}

// ReadPage reads the whole 1-based block into p, which must be PageSize
// bytes long.
func (r *Reader) ReadPage(block uint32, p []byte) error {
	if err := r.Seek(block, 0); err != nil {
		return err
	}
	return r.ReadFull(p[:PageSize])
}
