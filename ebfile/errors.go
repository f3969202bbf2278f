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
)

var (
	// ErrDirectoryNotFound indicates that a book or sub-book directory does
	// not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrCannotReadDirectory indicates that a directory exists but could not
	// be listed.
	ErrCannotReadDirectory = errors.New("cannot read directory")

	// ErrFileNotFound indicates that an expected file is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnexpectedFormat indicates a structural violation in a book file.
	ErrUnexpectedFormat = errors.New("unexpected format")

	// ErrIO wraps low-level I/O failures.
	ErrIO = errors.New("i/o error")

	// ErrUnsupportedFormat indicates a file compression format that cannot be
	// read.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// FormatError is returned when a file does not have the expected structure.
// It unwraps to ErrUnexpectedFormat.
type FormatError struct {
	// Path is the path of the offending file.
	Path string

	// Reason describes the violation.
	Reason string
}

// Error implements error.
func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", ErrUnexpectedFormat, e.Path)
	}
	return fmt.Sprintf("%v: %s: %s", ErrUnexpectedFormat, e.Path, e.Reason)
}

// Unwrap returns ErrUnexpectedFormat.
func (e *FormatError) Unwrap() error {
	return ErrUnexpectedFormat
}

// UnexpectedFormat returns a *FormatError for the file at path.
func UnexpectedFormat(path, format string, args ...any) error {
	return &FormatError{
		Path:   path,
		Reason: fmt.Sprintf(format, args...),
	}
}

func ioError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
}
