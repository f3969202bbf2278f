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
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	orgSuffix = ".org"
	ebzSuffix = ".ebz"
)

// Find looks up the regular file called name in dir without regard to case.
// It returns the path found and the format implied by its suffix, or
// defaultFormat when the name matched exactly.
func Find(dir, name string, defaultFormat Format) (string, Format, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %s", ErrFileNotFound, dir, name)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch n := e.Name(); {
		case strings.EqualFold(n, name):
			return filepath.Join(dir, n), defaultFormat, nil
		case strings.EqualFold(n, name+orgSuffix):
			return filepath.Join(dir, n), FormatPlain, nil
		case strings.EqualFold(n, name+ebzSuffix):
			return filepath.Join(dir, n), FormatEBZip, nil
		}
	}

	return "", 0, fmt.Errorf("%w: %s: %s", ErrFileNotFound, dir, name)
}

// SearchDirectory looks up the directory called name in dir without regard
// to case.
func SearchDirectory(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrCannotReadDirectory, dir, err)
	}

	for _, e := range entries {
		if e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(dir, e.Name()), nil
		}
	}

	return "", fmt.Errorf("%w: %s: %s", ErrDirectoryNotFound, dir, name)
}

// CheckDirectory verifies that path is a readable directory.
func CheckDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrCannotReadDirectory, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}
	if _, err := os.ReadDir(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCannotReadDirectory, path, err)
	}
	return nil
}
