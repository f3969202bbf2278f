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

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/index"
	"github.com/ianlewis/go-eb/text"
)

// ErrUnavailable indicates that the sub-book does not have the requested
// text, menu or index.
var ErrUnavailable = errors.New("not available")

const (
	dataDirName  = "data"
	gaijiDirName = "gaiji"
)

// fontHeights are the heights of the font slots of a sub-book.
var fontHeights = [...]int{16, 24, 30, 48}

// Font describes the external character fonts of one height. EPWING books
// store fonts in separate files and EB books store them in the text file.
type Font struct {
	Height int

	// NarrowFile and WideFile are the paths of the font files. They are
	// empty if there is no such font file.
	NarrowFile string
	WideFile   string

	// NarrowPage and WidePage are the blocks of the fonts in the text file.
	// They are 0 if there is no such font.
	NarrowPage uint32
	WidePage   uint32
}

// SubBook is one dictionary of a book. A SubBook is safe for concurrent use.
type SubBook struct {
	book  *Book
	entry *catalog.Entry
	dir   string

	textFile *ebfile.File
	text     *text.Reader
	styles   *index.Styles

	graphicFile string
	soundFile   string
	fonts       []Font
}

func openSubBook(b *Book, e *catalog.Entry, opts *Options) (*SubBook, error) {
	dir, err := ebfile.SearchDirectory(b.path, e.Directory)
	if err != nil {
		return nil, err
	}
	sb := &SubBook{
		book:   b,
		entry:  e,
		dir:    dir,
		styles: &index.Styles{},
	}

	dataDir := dir
	if b.Type() == catalog.EPWING {
		dataDir, err = ebfile.SearchDirectory(dir, dataDirName)
		if err != nil {
			log.Warningf("sub-book %q has no data directory: %v", e.Directory, err)
			dataDir = ""
		}
		sb.graphicFile = findData(dataDir, e.Graphic)
		sb.soundFile = findData(dataDir, e.Sound)
	}

	if dataDir != "" && e.Text.Name != "" {
		path, format, err := ebfile.Find(dataDir, e.Text.Name, e.Text.Format)
		if err != nil {
			log.Warningf("sub-book %q has no text file: %v", e.Directory, err)
		} else if sb.textFile, err = ebfile.OpenPath(path, format); err != nil {
			return nil, err
		}
	}

	if sb.textFile != nil {
		sb.text = text.NewReader(sb.textFile, b.CharCode(), b.Type(), &opts.Text)
		if err := sb.load(); err != nil {
			_ = sb.close()
			return nil, err
		}
	}
	sb.fonts = sb.findFonts()

	return sb, nil
}

func findData(dir string, spec catalog.FileSpec) string {
	if dir == "" || spec.Name == "" {
		return ""
	}
	path, _, err := ebfile.Find(dir, spec.Name, spec.Format)
	if err != nil {
		log.Warningf("ignoring data file: %v", err)
		return ""
	}
	return path
}

// load reads the index header and the multi-search tables.
func (sb *SubBook) load() error {
	r := sb.textFile.NewReader()
	page := make([]byte, ebfile.PageSize)
	if err := r.ReadPage(sb.entry.IndexPage, page); err != nil {
		return err
	}

	cs := sb.book.CharCode()
	styles, err := index.ParseStyles(sb.textFile.Path(), page, cs, sb.book.Type())
	if err != nil {
		return err
	}

	for _, m := range styles.Multi {
		if err := r.ReadPage(m.StartPage, page); err != nil {
			return err
		}
		if err := index.ParseMulti(sb.textFile.Path(), page, m); err != nil {
			return err
		}
	}

	index.DefaultMultiTitles(styles.Multi, cs)
	if sb.book.Type() == catalog.EPWING && styles.TitlePage != 0 {
		if err := r.ReadPage(styles.TitlePage, page); err != nil {
			return err
		}
		index.ParseMultiTitles(page, styles.Multi)
	}

	sb.styles = styles
	return nil
}

func (sb *SubBook) findFonts() []Font {
	gaijiDir := ""
	if sb.book.Type() == catalog.EPWING {
		var err error
		if gaijiDir, err = ebfile.SearchDirectory(sb.dir, gaijiDirName); err != nil {
			log.Debugf("sub-book %q has no gaiji directory", sb.entry.Directory)
			gaijiDir = ""
		}
	}

	var fonts []Font
	for i, h := range fontHeights {
		f := Font{
			Height:     h,
			NarrowPage: sb.styles.NarrowFontPages[i],
			WidePage:   sb.styles.WideFontPages[i],
		}
		if gaijiDir != "" {
			f.NarrowFile = findData(gaijiDir, catalog.FileSpec{Name: sb.entry.NarrowFonts[i]})
			f.WideFile = findData(gaijiDir, catalog.FileSpec{Name: sb.entry.WideFonts[i]})
		}
		if f.NarrowFile == "" && f.WideFile == "" && f.NarrowPage == 0 && f.WidePage == 0 {
			continue
		}
		fonts = append(fonts, f)
	}
	return fonts
}

func (sb *SubBook) close() error {
	if sb.textFile == nil {
		return nil
	}
	return sb.textFile.Close()
}

// Book returns the book the sub-book belongs to.
func (sb *SubBook) Book() *Book {
	return sb.book
}

// Title returns the title of the sub-book.
func (sb *SubBook) Title() string {
	return sb.entry.Title
}

// Name returns the directory name of the sub-book.
func (sb *SubBook) Name() string {
	return sb.entry.Directory
}

// Path returns the directory of the sub-book.
func (sb *SubBook) Path() string {
	return sb.dir
}

// GraphicFile returns the path of the graphic file or "" if there is none.
func (sb *SubBook) GraphicFile() string {
	return sb.graphicFile
}

// SoundFile returns the path of the sound file or "" if there is none.
func (sb *SubBook) SoundFile() string {
	return sb.soundFile
}

// Fonts returns the external character fonts of the sub-book.
func (sb *SubBook) Fonts() []Font {
	return sb.fonts
}

// HasText reports whether the sub-book has a text file.
func (sb *SubBook) HasText() bool {
	return sb.text != nil
}

func anyAvailable(styles [3]*index.Style) bool {
	for _, st := range styles {
		if st.Available() {
			return true
		}
	}
	return false
}

// HasWordSearch reports whether the sub-book supports word searches.
func (sb *SubBook) HasWordSearch() bool {
	return anyAvailable(sb.styles.Word)
}

// HasEndwordSearch reports whether the sub-book supports endword searches.
func (sb *SubBook) HasEndwordSearch() bool {
	return anyAvailable(sb.styles.Endword)
}

// HasExactwordSearch reports whether the sub-book supports exactword
// searches. They use the word indexes.
func (sb *SubBook) HasExactwordSearch() bool {
	return anyAvailable(sb.styles.Word)
}

// HasKeywordSearch reports whether the sub-book supports keyword searches.
func (sb *SubBook) HasKeywordSearch() bool {
	return sb.styles.Keyword.Available()
}

// HasCrossSearch reports whether the sub-book supports cross searches.
func (sb *SubBook) HasCrossSearch() bool {
	return sb.styles.Cross.Available()
}

// HasMultiSearch reports whether the sub-book has multi-searches.
func (sb *SubBook) HasMultiSearch() bool {
	return len(sb.styles.Multi) > 0
}

// HasMenu reports whether the sub-book has a menu.
func (sb *SubBook) HasMenu() bool {
	return sb.text != nil && sb.styles.Menu.Available()
}

// HasImageMenu reports whether the sub-book has an image menu.
func (sb *SubBook) HasImageMenu() bool {
	return sb.text != nil && sb.styles.ImageMenu.Available()
}

// HasCopyright reports whether the sub-book has a copyright notice.
func (sb *SubBook) HasCopyright() bool {
	return sb.text != nil && sb.styles.Copyright.Available()
}

// Menu returns the menu of the sub-book.
func (sb *SubBook) Menu() (string, error) {
	return sb.pageText("menu", sb.styles.Menu)
}

// ImageMenu returns the image menu of the sub-book.
func (sb *SubBook) ImageMenu() (string, error) {
	return sb.pageText("image menu", sb.styles.ImageMenu)
}

// Copyright returns the copyright notice of the sub-book.
func (sb *SubBook) Copyright() (string, error) {
	return sb.pageText("copyright", sb.styles.Copyright)
}

func (sb *SubBook) pageText(what string, st *index.Style) (string, error) {
	if !st.Available() {
		return "", fmt.Errorf("%w: %s of %q", ErrUnavailable, what, sb.Name())
	}
	return sb.Text(ebfile.Position(st.StartPage, 0))
}

// MultiCount returns the number of multi-searches.
func (sb *SubBook) MultiCount() int {
	return len(sb.styles.Multi)
}

func (sb *SubBook) multi(i int) (*index.Multi, error) {
	if i < 0 || i >= len(sb.styles.Multi) {
		return nil, fmt.Errorf("%w: multi-search %d of %q", ErrInvalidArgument, i, sb.Name())
	}
	return sb.styles.Multi[i], nil
}

func (sb *SubBook) multiEntry(i, j int) (*index.Style, error) {
	m, err := sb.multi(i)
	if err != nil {
		return nil, err
	}
	if j < 0 || j >= len(m.Entries) {
		return nil, fmt.Errorf("%w: entry %d of multi-search %d", ErrInvalidArgument, j, i)
	}
	return &m.Entries[j], nil
}

// MultiTitle returns the title of the i-th multi-search.
func (sb *SubBook) MultiTitle(i int) (string, error) {
	m, err := sb.multi(i)
	if err != nil {
		return "", err
	}
	return m.Label, nil
}

// MultiEntryCount returns the number of entries of the i-th multi-search.
func (sb *SubBook) MultiEntryCount(i int) (int, error) {
	m, err := sb.multi(i)
	if err != nil {
		return 0, err
	}
	return len(m.Entries), nil
}

// MultiEntryLabel returns the label of the j-th entry of the i-th
// multi-search.
func (sb *SubBook) MultiEntryLabel(i, j int) (string, error) {
	e, err := sb.multiEntry(i, j)
	if err != nil {
		return "", err
	}
	return e.Label, nil
}

// HasMultiEntryCandidates reports whether the j-th entry of the i-th
// multi-search has a list of candidates.
func (sb *SubBook) HasMultiEntryCandidates(i, j int) bool {
	e, err := sb.multiEntry(i, j)
	return err == nil && e.CandidatePage != 0
}

// MultiEntryCandidates returns the candidates of the j-th entry of the i-th
// multi-search.
func (sb *SubBook) MultiEntryCandidates(i, j int) (string, error) {
	e, err := sb.multiEntry(i, j)
	if err != nil {
		return "", err
	}
	if e.CandidatePage == 0 {
		return "", fmt.Errorf("%w: candidates of entry %d of multi-search %d", ErrUnavailable, j, i)
	}
	return sb.Text(ebfile.Position(e.CandidatePage, 0))
}

func (sb *SubBook) textReader() (*text.Reader, error) {
	if sb.text == nil {
		return nil, fmt.Errorf("%w: text of %q", ErrUnavailable, sb.Name())
	}
	return sb.text, nil
}

// Heading returns the heading at pos as an HTML fragment.
func (sb *SubBook) Heading(pos int64) (string, error) {
	r, err := sb.textReader()
	if err != nil {
		return "", err
	}
	return r.Heading(pos)
}

// Text returns the text at pos as an HTML fragment.
func (sb *SubBook) Text(pos int64) (string, error) {
	r, err := sb.textReader()
	if err != nil {
		return "", err
	}
	return r.Text(pos)
}

// NextHeadingPosition returns the position of the heading that follows the
// heading at pos.
func (sb *SubBook) NextHeadingPosition(pos int64) (int64, error) {
	r, err := sb.textReader()
	if err != nil {
		return 0, err
	}
	return r.NextHeadingPosition(pos)
}
