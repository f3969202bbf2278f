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

package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-eb/catalog"
	"github.com/ianlewis/go-eb/ebfile"
	"github.com/ianlewis/go-eb/internal/jis"
	"github.com/ianlewis/go-eb/internal/testutil"
)

func languageFile(cs catalog.CharCode) []byte {
	b := make([]byte, 16)
	b[1] = byte(cs)
	return b
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string][]byte

		expected *catalog.Catalog
		err      error
	}{
		{
			name: "eb",
			files: map[string][]byte{
				"CATALOG": testutil.EBCatalog(t, []testutil.CatalogEntry{
					{Title: jis.EncodeJISX0208("辞書"), Directory: "DICT"},
					{Title: jis.EncodeJISX0208("百科"), Directory: "ENCY"},
				}),
			},
			expected: &catalog.Catalog{
				Type:     catalog.EB,
				CharCode: catalog.JISX0208,
				Entries: []catalog.Entry{
					{
						Title:     "辞書",
						Directory: "DICT",
						IndexPage: 1,
						Text:      catalog.FileSpec{Name: "start", Format: ebfile.FormatPlain},
					},
					{
						Title:     "百科",
						Directory: "ENCY",
						IndexPage: 1,
						Text:      catalog.FileSpec{Name: "start", Format: ebfile.FormatPlain},
					},
				},
			},
		},
		{
			name: "epwing version 1",
			files: map[string][]byte{
				"catalogs": testutil.EPWINGCatalog(t, 1, []testutil.CatalogEntry{
					{
						Title:       jis.EncodeJISX0208("辞書"),
						Directory:   "DICT",
						IndexPage:   1,
						WideFonts:   [4]string{"GA16FULL"},
						NarrowFonts: [4]string{"GA16HALF", "", "", "GA48HALF"},
					},
				}),
			},
			expected: &catalog.Catalog{
				Type:     catalog.EPWING,
				CharCode: catalog.JISX0208,
				Version:  1,
				Entries: []catalog.Entry{
					{
						Title:       "辞書",
						Directory:   "DICT",
						IndexPage:   1,
						Text:        catalog.FileSpec{Name: "honmon", Format: ebfile.FormatPlain},
						WideFonts:   [4]string{"GA16FULL"},
						NarrowFonts: [4]string{"GA16HALF", "", "", "GA48HALF"},
					},
				},
			},
		},
		{
			name: "epwing extension",
			files: map[string][]byte{
				"CATALOGS": testutil.EPWINGCatalog(t, 2, []testutil.CatalogEntry{
					{
						Title:     jis.EncodeJISX0208("辞書"),
						Directory: "DICT",
						IndexPage: 3,
						TextFile:  "HONMON2",
					},
					{
						Title:     jis.EncodeJISX0208("百科"),
						Directory: "ENCY",
						IndexPage: 1,
					},
				}),
			},
			expected: &catalog.Catalog{
				Type:     catalog.EPWING,
				CharCode: catalog.JISX0208,
				Version:  2,
				Entries: []catalog.Entry{
					{
						Title:     "辞書",
						Directory: "DICT",
						IndexPage: 3,
						Text:      catalog.FileSpec{Name: "HONMON2", Format: ebfile.FormatPlain},
					},
					{
						Title:     "百科",
						Directory: "ENCY",
						IndexPage: 1,
						Text:      catalog.FileSpec{Name: "honmon", Format: ebfile.FormatPlain},
					},
				},
			},
		},
		{
			name: "latin",
			files: map[string][]byte{
				"language": languageFile(catalog.ISO8859_1),
				"catalog": testutil.EBCatalog(t, []testutil.CatalogEntry{
					{Title: []byte("English Dictionary"), Directory: "ENG"},
				}),
			},
			expected: &catalog.Catalog{
				Type:     catalog.EB,
				CharCode: catalog.ISO8859_1,
				Entries: []catalog.Entry{
					{
						Title:     "English Dictionary",
						Directory: "ENG",
						IndexPage: 1,
						Text:      catalog.FileSpec{Name: "start", Format: ebfile.FormatPlain},
					},
				},
			},
		},
		{
			name: "misleaded title",
			files: map[string][]byte{
				"language": languageFile(catalog.ISO8859_1),
				"catalog": testutil.EBCatalog(t, []testutil.CatalogEntry{
					{Title: []byte("8&5f<R!!?71QOBCf<-E5"), Directory: "KENKYU"},
				}),
			},
			expected: &catalog.Catalog{
				Type:     catalog.EB,
				CharCode: catalog.JISX0208,
				Entries: []catalog.Entry{
					{
						Title:     "研究社　新英和中辞典",
						Directory: "KENKYU",
						IndexPage: 1,
						Text:      catalog.FileSpec{Name: "start", Format: ebfile.FormatPlain},
					},
				},
			},
		},
		{
			name: "no sub-books",
			files: map[string][]byte{
				"catalog": make([]byte, 16),
			},
			err: ebfile.ErrUnexpectedFormat,
		},
		{
			name: "truncated",
			files: map[string][]byte{
				"catalog": testutil.EBCatalog(t, []testutil.CatalogEntry{
					{Title: jis.EncodeJISX0208("辞書"), Directory: "DICT"},
				})[:30],
			},
			err: ebfile.ErrIO,
		},
		{
			name:  "no catalog",
			files: map[string][]byte{},
			err:   ebfile.ErrFileNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, b := range test.files {
				testutil.WriteFile(t, filepath.Join(dir, name), b)
			}

			got, err := catalog.Load(dir)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Load (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoadLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if diff := cmp.Diff(catalog.JISX0208, catalog.LoadLanguage(dir)); diff != "" {
		t.Errorf("LoadLanguage (-want, +got):\n%s", diff)
	}

	testutil.WriteFile(t, filepath.Join(dir, "LANGUAGE"), languageFile(catalog.JISX0208GB2312))
	if diff := cmp.Diff(catalog.JISX0208GB2312, catalog.LoadLanguage(dir)); diff != "" {
		t.Errorf("LoadLanguage (-want, +got):\n%s", diff)
	}
}
