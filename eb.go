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

package eb

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/text"
)

var log = logging.MustGetLogger("eb")

var (
	// ErrInvalidArgument indicates an out of range multi-search or entry
	// index, or more words than a multi-search has entries.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Options configures how books are opened.
type Options struct {
	// Text configures reading headings and texts.
	Text text.Options
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	Text: text.Options{
		MaxBytes: text.DefaultMaxBytes,
	},
}

// Book is an EB or EPWING book.
type Book struct {
	path     string
	catalog  *catalog.Catalog
	subBooks []*SubBook
}

// OpenAll opens all books under a directory. This function will return all
// successfully opened books along with any errors that occurred.
func OpenAll(path string) ([]*Book, []error) {
	var books []*Book
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if info.IsDir() || !isCatalog(info.Name()) {
			return nil
		}
		b, err := Open(filepath.Dir(path))
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		books = append(books, b)
		// A book has a single catalog.
		return fs.SkipDir
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return books, errs
}

func isCatalog(name string) bool {
	for _, n := range []string{catalog.FileName, catalog.EPWINGFileName} {
		if strings.EqualFold(name, n) || strings.EqualFold(name, n+".org") || strings.EqualFold(name, n+".ebz") {
			return true
		}
	}
	return false
}

// Open opens the book in the directory path with the default options.
func Open(path string) (*Book, error) {
	return OpenWithOptions(path, &DefaultOptions)
}

// OpenWithOptions opens the book in the directory path.
func OpenWithOptions(path string, opts *Options) (*Book, error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	if err := ebfile.CheckDirectory(path); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog of %q: %w", path, err)
	}

	b := &Book{
		path:    path,
		catalog: cat,
	}
	for i := range cat.Entries {
		sb, err := openSubBook(b, &cat.Entries[i], opts)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("error opening sub-book %q: %w", cat.Entries[i].Directory, err)
		}
		b.subBooks = append(b.subBooks, sb)
	}
	log.Debugf("opened %v book %q with %d sub-books", cat.Type, path, len(b.subBooks))

	return b, nil
}

// Path returns the directory of the book.
func (b *Book) Path() string {
	return b.path
}

// Type returns the type of the book.
func (b *Book) Type() catalog.BookType {
	return b.catalog.Type
}

// CharCode returns the character set of the book.
func (b *Book) CharCode() catalog.CharCode {
	return b.catalog.CharCode
}

// Version returns the EPWING format version. It is 0 for EB books.
func (b *Book) Version() int {
	return b.catalog.Version
}

// SubBooks returns the sub-books of the book.
func (b *Book) SubBooks() []*SubBook {
	return b.subBooks
}

// SubBook returns the i-th sub-book or nil if there is none.
func (b *Book) SubBook(i int) *SubBook {
	if i < 0 || i >= len(b.subBooks) {
		return nil
	}
	return b.subBooks[i]
}

// Close closes the files of all sub-books.
func (b *Book) Close() error {
	var errs []error
	for _, sb := range b.subBooks {
		if err := sb.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
