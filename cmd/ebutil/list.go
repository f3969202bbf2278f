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
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	eb "github.com/ianlewis/go-eb"
	"github.com/ianlewis/go-eb/index"
)

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List books and their sub-books",
	ArgsUsage: "[DIR]...",
	Action: func(c *cli.Context) error {
		dirs := c.Args().Slice()
		if len(dirs) == 0 {
			dirs = c.StringSlice("data-dir")
		}

		books, errs := openBooks(dirs)
		defer closeBooks(books)
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}

		tbl := table.New("Book", "Type", "Sub-book", "Title", "Searches").WithWriter(c.App.Writer)
		for _, b := range books {
			for _, sb := range b.SubBooks() {
				tbl.AddRow(b.Path(), fmt.Sprintf("%v/%v", b.Type(), b.CharCode()), sb.Name(), sb.Title(), strings.Join(searches(sb), ","))
			}
		}
		tbl.Print()

		if len(errs) > 0 {
			return ErrBooks
		}
		return nil
	},
}

// searches returns the names of the searches sb supports.
func searches(sb *eb.SubBook) []string {
	var s []string
	for _, t := range []struct {
		typ index.SearchType
		ok  bool
	}{
		{index.SearchWord, sb.HasWordSearch()},
		{index.SearchEndword, sb.HasEndwordSearch()},
		{index.SearchExactword, sb.HasExactwordSearch()},
		{index.SearchKeyword, sb.HasKeywordSearch()},
		{index.SearchCross, sb.HasCrossSearch()},
		{index.SearchMulti, sb.HasMultiSearch()},
	} {
		if t.ok {
			s = append(s, t.typ.String())
		}
	}
	return s
}
