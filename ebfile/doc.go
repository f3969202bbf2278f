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

// Package ebfile implements random access to the files of an EB or EPWING
// book.
//
// Book files are addressed in 2048 byte blocks numbered from 1. A position is
// encoded as (block-1)*2048 + offset. A logical file may be split over
// several physical segments and may be stored uncompressed or compressed
// with ebzip. Files with the names "NAME.org" and "NAME.ebz" are found in
// place of "NAME" and imply the plain and ebzip formats respectively.
package ebfile
