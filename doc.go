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

// Package eb implements a library for reading EB and EPWING dictionaries in
// pure Go.
//
// A book is a directory containing several files:
//  1. A catalog file, called "catalog" for EB books and "catalogs" for EPWING
//     books, that lists the sub-books of the book.
//  2. An optional "language" file that declares the character set of the
//     book.
//  3. A directory per sub-book. Its text file holds the headings and texts
//     of the sub-book as well as the index trees used to search them. The
//     text file may be compressed with ebzip.
//  4. Optional graphic, sound and font files.
//
// Searches return an [index.Iterator] of results. The heading and text of a
// result are read with [SubBook.Heading] and [SubBook.Text].
package eb
