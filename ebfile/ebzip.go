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
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
)

const (
	// ZipHeaderSize is the size of the ebzip file header.
	ZipHeaderSize = 22

	// ZipMaxLevel is the highest ebzip compression level.
	ZipMaxLevel = 5

	zipMagic = "EBZip"
)

type zipInfo struct {
	level     int
	sliceSize int
	fileSize  int64
	crc       uint32
	indexSize int
}

func readZipInfo(path string, r io.ReaderAt) (*zipInfo, error) {
	b := make([]byte, ZipHeaderSize)
	if _, err := r.ReadAt(b, 0); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, UnexpectedFormat(path, "short ebzip header")
		}
		return nil, ioError(path, err)
	}

	if string(b[:5]) != zipMagic {
		return nil, UnexpectedFormat(path, "bad ebzip magic")
	}
	mode := b[5] >> 4
	if mode != 1 && mode != 2 {
		return nil, UnexpectedFormat(path, "bad ebzip mode %d", mode)
	}

	zi := &zipInfo{
		level:    int(b[5] & 0x0f),
		fileSize: uintN(b[9:14]),
		crc:      binary.BigEndian.Uint32(b[14:18]),
	}
	if zi.level > ZipMaxLevel {
		return nil, UnexpectedFormat(path, "bad ebzip level %d", zi.level)
	}
	zi.sliceSize = PageSize << zi.level
	zi.indexSize = zipIndexSize(zi.fileSize)

	return zi, nil
}

func zipIndexSize(fileSize int64) int {
	switch {
	case fileSize < 1<<16:
		return 2
	case fileSize < 1<<24:
		return 3
	case fileSize < 1<<32:
		return 4
	default:
		return 5
	}
}

// sliceCache holds the most recently decoded ebzip slice.
type sliceCache struct {
	index int64
	buf   []byte
}

func newSliceCache() *sliceCache {
	return &sliceCache{index: -1}
}

func (f *File) readZipAt(p []byte, off int64, c *sliceCache) (int, error) {
	zi := f.zip
	var n int
	for n < len(p) {
		pos := off + int64(n)
		idx := pos / int64(zi.sliceSize)
		if c.index != idx {
			if err := f.decodeSlice(idx, c); err != nil {
				return n, err
			}
		}
		n += copy(p[n:], c.buf[pos%int64(zi.sliceSize):])
	}
	return n, nil
}

func (f *File) decodeSlice(idx int64, c *sliceCache) error {
	zi := f.zip
	r := f.segs[0].R

	ib := make([]byte, zi.indexSize*2)
	if _, err := r.ReadAt(ib, ZipHeaderSize+idx*int64(zi.indexSize)); err != nil {
		if errors.Is(err, io.EOF) {
			return UnexpectedFormat(f.path, "short ebzip index")
		}
		return ioError(f.path, err)
	}
	start := uintN(ib[:zi.indexSize])
	end := uintN(ib[zi.indexSize:])
	size := end - start
	if size <= 0 || size > int64(zi.sliceSize) {
		return UnexpectedFormat(f.path, "bad ebzip slice %d size %d", idx, size)
	}

	if len(c.buf) != zi.sliceSize {
		c.buf = make([]byte, zi.sliceSize)
	}
	c.index = -1

	raw := make([]byte, size)
	if _, err := r.ReadAt(raw, start); err != nil {
		if errors.Is(err, io.EOF) {
			return UnexpectedFormat(f.path, "short ebzip slice %d", idx)
		}
		return ioError(f.path, err)
	}

	if size == int64(zi.sliceSize) {
		copy(c.buf, raw)
	} else {
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return UnexpectedFormat(f.path, "ebzip slice %d: %v", idx, err)
		}
		defer zr.Close()
		m, err := io.ReadFull(zr, c.buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return UnexpectedFormat(f.path, "ebzip slice %d: %v", idx, err)
		}
		clear(c.buf[m:])
	}

	c.index = idx
	return nil
}
