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

// Package index implements searching the index trees of an EB sub-book.
//
// An index is a tree of 2048-byte pages. Upper layer pages hold fixed length
// keys each followed by the block of the page below. Leaf pages hold keys
// followed by the positions of the matching text and heading, either one
// entry per key or in groups sharing a key. The leaf layer is read in page
// order until the matching run of keys ends.
//
// The index header page of a sub-book lists its indexes. ParseStyles decodes
// it.
package index
