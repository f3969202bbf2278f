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

package index

// Iterator yields search results. Next returns nil when there are no more
// results.
type Iterator interface {
	Next() (*Result, error)
}

type empty struct{}

func (empty) Next() (*Result, error) {
	return nil, nil
}

// Empty is an Iterator without results.
var Empty Iterator = empty{}

// All drains it and returns its results.
func All(it Iterator) ([]*Result, error) {
	var results []*Result
	for {
		r, err := it.Next()
		if err != nil {
			return results, err
		}
		if r == nil {
			return results, nil
		}
		results = append(results, r)
	}
}

type intersection struct {
	its  []Iterator
	cur  []*Result
	done bool
}

// Intersect returns an Iterator over the results whose text position is
// found by every one of its. The results of the first iterator are returned.
func Intersect(its ...Iterator) Iterator {
	switch len(its) {
	case 0:
		return Empty
	case 1:
		return its[0]
	}
	return &intersection{
		its: its,
		cur: make([]*Result, len(its)),
	}
}

func (x *intersection) Next() (*Result, error) {
	if x.done {
		return nil, nil
	}

	var target int64 = -1
	for i := range x.its {
		if ok, err := x.advance(i); !ok {
			return nil, err
		}
		target = max(target, x.cur[i].Text)
	}

	for {
		aligned := true
		for i := range x.its {
			for x.cur[i].Text < target {
				if ok, err := x.advance(i); !ok {
					return nil, err
				}
			}
			if x.cur[i].Text > target {
				target = x.cur[i].Text
				aligned = false
			}
		}
		if aligned {
			return x.cur[0], nil
		}
	}
}

// advance moves the i-th iterator forward. Once any iterator runs out the
// intersection is done.
func (x *intersection) advance(i int) (bool, error) {
	r, err := x.its[i].Next()
	if err != nil || r == nil {
		x.done = true
		return false, err
	}
	x.cur[i] = r
	return true, nil
}
