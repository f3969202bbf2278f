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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	eb "github.com/ianlewis/go-eb"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrEbutil is a parent error for all command errors.
var ErrEbutil = errors.New("ebutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrEbutil)

// ErrBooks indicates that some books could not be opened.
var ErrBooks = fmt.Errorf("%w: opening books", ErrEbutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

const logFormat = `%{time:15:04:05.000} %{module} %{level:.4s} %{message}`

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// setupLogging sends log output to stderr at the named level.
func setupLogging(level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return fmt.Errorf("%w: log level %q", ErrFlagParse, level)
	}
	backend := logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0),
		logging.MustStringFormatter(logFormat),
	)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}

// openBooks opens all books found under dirs. Directories that don't exist
// are skipped.
func openBooks(dirs []string) ([]*eb.Book, []error) {
	var books []*eb.Book
	var errs []error

	for _, path := range dirs {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found, openErrs := eb.OpenAll(path)

		books = append(books, found...)
		errs = append(errs, openErrs...)
	}

	return books, errs
}

func closeBooks(books []*eb.Book) {
	for _, b := range books {
		_ = b.Close()
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info.GitVersion)
	fmt.Fprintln(c.App.Writer, c.App.Copyright)
	return nil
}

func newEbutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search EB and EPWING dictionaries.",
		Description: strings.Join([]string{
			"EB/EPWING utility written in Go.",
			"http://github.com/ianlewis/go-eb",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include books in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (DEBUG, INFO, WARNING, ERROR)",
				Value: "WARNING",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Before: func(c *cli.Context) error {
			return setupLogging(c.String("log-level"))
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			queryCommand,
		},
	}
}
