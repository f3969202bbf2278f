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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	eb "github.com/ianlewis/go-eb"
	"github.com/ianlewis/go-eb/index"
	"github.com/ianlewis/go-eb/text"
)

var searchTypes = []index.SearchType{
	index.SearchWord,
	index.SearchEndword,
	index.SearchExactword,
	index.SearchKeyword,
	index.SearchCross,
	index.SearchMulti,
}

// parseSearchType returns the search type called name.
func parseSearchType(name string) (index.SearchType, error) {
	for _, t := range searchTypes {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown search type %q", ErrFlagParse, name)
}

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Search all books",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "type",
			Usage:   "search `TYPE` (word, endword, exactword, keyword, cross, multi)",
			Aliases: []string{"t"},
			Value:   index.SearchWord.String(),
		},
		&cli.IntFlag{
			Name:  "multi",
			Usage: "use the multi-search numbered `N`, starting at 1",
			Value: 1,
		},
		&cli.IntFlag{
			Name:    "max",
			Usage:   "print at most `N` entries per sub-book",
			Aliases: []string{"n"},
			Value:   10,
		},
		&cli.BoolFlag{
			Name:  "html",
			Usage: "print texts as HTML",
		},
	},
	Action: func(c *cli.Context) error {
		t, err := parseSearchType(c.String("type"))
		if err != nil {
			return err
		}
		if t == index.SearchMulti && c.Int("multi") < 1 {
			return fmt.Errorf("%w: invalid multi-search number %d", ErrFlagParse, c.Int("multi"))
		}
		words := c.Args().Slice()
		if len(words) == 0 {
			return fmt.Errorf("%w: no search words", ErrFlagParse)
		}

		books, errs := openBooks(c.StringSlice("data-dir"))
		defer closeBooks(books)
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}

		q := &query{
			w:     c.App.Writer,
			typ:   t,
			multi: c.Int("multi") - 1,
			words: words,
			max:   c.Int("max"),
			html:  c.Bool("html"),
		}
		for _, b := range books {
			for _, sb := range b.SubBooks() {
				if err := q.run(sb); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", sb.Path(), err)
				}
			}
		}

		if len(errs) > 0 {
			return ErrBooks
		}
		return nil
	},
}

type query struct {
	w     io.Writer
	typ   index.SearchType
	multi int
	words []string
	max   int
	html  bool
}

func (q *query) search(sb *eb.SubBook) (index.Iterator, error) {
	switch q.typ {
	case index.SearchEndword:
		return sb.SearchEndword(strings.Join(q.words, " "))
	case index.SearchExactword:
		return sb.SearchExactword(strings.Join(q.words, " "))
	case index.SearchKeyword:
		return sb.SearchKeyword(q.words)
	case index.SearchCross:
		return sb.SearchCross(q.words)
	case index.SearchMulti:
		return sb.SearchMulti(q.multi, q.words)
	default:
		return sb.SearchWord(strings.Join(q.words, " "))
	}
}

func (q *query) format(s string) string {
	if q.html {
		return s
	}
	return text.PlainText(s)
}

// run prints the entries of sb found by the query.
func (q *query) run(sb *eb.SubBook) error {
	if !sb.HasText() {
		return nil
	}
	it, err := q.search(sb)
	if err != nil {
		return err
	}

	for n := 0; q.max <= 0 || n < q.max; n++ {
		r, err := it.Next()
		if err != nil {
			return err
		}
		if r == nil {
			break
		}
		if n == 0 {
			fmt.Fprintf(q.w, "== %s\n\n", sb.Title())
		}

		heading, err := sb.Heading(r.Heading)
		if err != nil {
			return err
		}
		body, err := sb.Text(r.Text)
		if err != nil {
			return err
		}
		fmt.Fprintf(q.w, "%s\n%s\n\n", q.format(heading), q.format(body))
	}
	return nil
}
