// recorder_test.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package typeset

import (
	"bytes"
	"testing"

	"github.com/seehuhn/texmacro/tex/dimen"
)

func addString(rec *Recorder, s string) {
	for _, r := range s {
		if r == ' ' {
			rec.AddSpace(dimen.ZeroGlue, Attributes{})
		} else {
			rec.AddChar(r, Attributes{})
		}
	}
}

func TestRecorderBoxes(t *testing.T) {
	rec := NewRecorder()
	addString(rec, "a")
	rec.OpenBox(HBox, BoxSpec{Exact: true, Size: dimen.Points(3)})
	addString(rec, "bc")
	b, err := rec.CloseBox()
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Nodes) != 2 {
		t.Errorf("wrong box contents %v", b.Nodes)
	}
	rec.AddBox(b)
	addString(rec, "d")

	if got := rec.String(); got != "abcd" {
		t.Errorf("expected \"abcd\", got %q", got)
	}
	if s := (BoxNode{Box: b}).String(); s != "\\hbox to 3.0pt{bc}" {
		t.Errorf("wrong box description %q", s)
	}

	_, err = rec.CloseBox()
	if err == nil {
		t.Error("unbalanced CloseBox not detected")
	}
	if err = rec.Finish(); err != nil {
		t.Error(err)
	}
}

func TestBoxCopy(t *testing.T) {
	inner := &Box{Kind: VBox, Nodes: []Node{CharNode{Char: 'x'}}}
	outer := &Box{Nodes: []Node{BoxNode{Box: inner}}}
	cp := outer.Copy()
	cp.Nodes[0].(BoxNode).Box.Nodes[0] = CharNode{Char: 'y'}
	if inner.Nodes[0].(CharNode).Char != 'x' {
		t.Error("Copy shares nested boxes")
	}
}

func TestWriteText(t *testing.T) {
	rec := NewRecorder()
	addString(rec, "one two three four")
	rec.Par()
	addString(rec, "five")
	rec.Par()
	rec.Par()

	buf := &bytes.Buffer{}
	err := rec.WriteText(buf, 9)
	if err != nil {
		t.Fatal(err)
	}
	expected := "one two\nthree\nfour\n\nfive\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFontParams(t *testing.T) {
	f := NewFont("tenrm", "cmr10", dimen.Points(9))
	g := f.SpaceGlue()
	if g.Width != dimen.Points(3) {
		t.Errorf("wrong interword space %v", g.Width)
	}
	if f.FullName() != "cmr10 at 9.0pt" {
		t.Errorf("wrong font name %q", f.FullName())
	}
	if NullFont.SpaceGlue() != dimen.ZeroGlue {
		t.Error("null font has non-zero interword space")
	}
}
