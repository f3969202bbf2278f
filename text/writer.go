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

package text

import (
	"bytes"
	"fmt"
	"html"

	"golang.org/x/text/width"

	"github.com/ianlewis/go-eb/internal/jis"
)

// writer renders text as an HTML fragment. External characters are written
// as [gaiji:hXXXX] when narrow and [gaiji:zXXXX] when wide. References link
// to the decimal position of their target.
type writer struct {
	out bytes.Buffer

	// pending holds code pairs not yet decoded. gb is set if they are
	// GB 2312.
	pending []byte
	gb      bool

	narrowMode bool

	refMark int
	refOpen bool
}

func (w *writer) jis(high, low byte) {
	w.queue(false, high, low)
}

func (w *writer) gb2312(high, low byte) {
	w.queue(true, high, low)
}

func (w *writer) queue(gb bool, high, low byte) {
	if len(w.pending) > 0 && w.gb != gb {
		w.flush()
	}
	w.gb = gb
	w.pending = append(w.pending, high, low)
}

func (w *writer) flush() {
	if len(w.pending) == 0 {
		return
	}
	var s string
	if w.gb {
		s = jis.GB2312Text(w.pending)
	} else {
		s = jis.JISX0208Text(w.pending)
	}
	w.pending = w.pending[:0]
	w.text(s)
}

func (w *writer) text(s string) {
	if w.narrowMode {
		s = width.Narrow.String(s)
	}
	w.out.WriteString(html.EscapeString(s))
}

func (w *writer) latin(c byte) {
	w.flush()
	w.text(string(rune(c)))
}

func (w *writer) gaiji(code int) {
	w.flush()
	kind := 'z'
	if w.narrowMode {
		kind = 'h'
	}
	fmt.Fprintf(&w.out, "[gaiji:%c%04x]", kind, code)
}

func (w *writer) narrow(on bool) {
	w.flush()
	w.narrowMode = on
}

func (w *writer) newline() {
	w.flush()
	w.out.WriteString("<br>")
}

func (w *writer) tag(open bool, name string) {
	w.flush()
	if open {
		fmt.Fprintf(&w.out, "<%s>", name)
	} else {
		fmt.Fprintf(&w.out, "</%s>", name)
	}
}

func (w *writer) keyword() {
	w.flush()
	w.out.WriteString(`<span class="keyword">`)
}

func (w *writer) beginReference() {
	w.flush()
	w.refMark = w.out.Len()
	w.refOpen = true
}

func (w *writer) endReference(pos int64) {
	w.flush()
	if !w.refOpen {
		return
	}
	label := string(w.out.Bytes()[w.refMark:])
	w.out.Truncate(w.refMark)
	fmt.Fprintf(&w.out, `<a href="#%d">%s</a>`, pos, label)
	w.refOpen = false
}

// String returns the rendered fragment.
func (w *writer) String() string {
	w.flush()
	return w.out.String()
}
