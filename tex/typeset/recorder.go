// recorder.go -
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
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seehuhn/texmacro/tex/dimen"
)

// Node is one item of typeset material.
type Node interface {
	String() string
}

// CharNode is a character together with its attributes.
type CharNode struct {
	Char rune
	Attr Attributes
}

func (n CharNode) String() string { return string(n.Char) }

// SpaceNode is interword glue.
type SpaceNode struct {
	Glue dimen.Glue
	Attr Attributes
}

func (n SpaceNode) String() string { return " " }

// GlueNode is explicit glue from \hskip or \vskip.
type GlueNode struct {
	Glue     dimen.Glue
	Vertical bool
}

func (n GlueNode) String() string {
	if n.Vertical {
		return "\\vskip " + n.Glue.String()
	}
	return "\\hskip " + n.Glue.String()
}

// KernNode is a kern.
type KernNode struct {
	Width dimen.Dimen
}

func (n KernNode) String() string { return "\\kern " + n.Width.String() }

// PenaltyNode is a penalty.
type PenaltyNode struct {
	Penalty int64
}

func (n PenaltyNode) String() string {
	return "\\penalty " + strconv.FormatInt(n.Penalty, 10)
}

// ParNode marks the end of a paragraph.
type ParNode struct{}

func (n ParNode) String() string { return "\\par" }

// BoxNode is a box included in the surrounding material.
type BoxNode struct {
	Box *Box
}

func (n BoxNode) String() string {
	if n.Box == nil {
		return "\\box{}"
	}
	kind := "\\hbox"
	if n.Box.Kind == VBox {
		kind = "\\vbox"
	}
	if spec := n.Box.Spec.String(); spec != "" {
		kind += " " + spec
	}
	return kind + "{" + nodesText(n.Box.Nodes) + "}"
}

var errNoOpenBox = errors.New("CloseBox without matching OpenBox")

// Recorder is a Typesetter which keeps all material in memory.
type Recorder struct {
	// Nodes is the material on the main vertical list.
	Nodes []Node

	open []*Box
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (rec *Recorder) add(n Node) error {
	if k := len(rec.open); k > 0 {
		b := rec.open[k-1]
		b.Nodes = append(b.Nodes, n)
	} else {
		rec.Nodes = append(rec.Nodes, n)
	}
	return nil
}

// AddChar implements the Typesetter interface.
func (rec *Recorder) AddChar(r rune, attr Attributes) error {
	return rec.add(CharNode{Char: r, Attr: attr})
}

// AddSpace implements the Typesetter interface.
func (rec *Recorder) AddSpace(g dimen.Glue, attr Attributes) error {
	return rec.add(SpaceNode{Glue: g, Attr: attr})
}

// AddGlue implements the Typesetter interface.
func (rec *Recorder) AddGlue(g dimen.Glue, vertical bool) error {
	return rec.add(GlueNode{Glue: g, Vertical: vertical})
}

// AddKern implements the Typesetter interface.
func (rec *Recorder) AddKern(d dimen.Dimen) error {
	return rec.add(KernNode{Width: d})
}

// AddPenalty implements the Typesetter interface.
func (rec *Recorder) AddPenalty(p int64) error {
	return rec.add(PenaltyNode{Penalty: p})
}

// AddBox implements the Typesetter interface.
func (rec *Recorder) AddBox(b *Box) error {
	return rec.add(BoxNode{Box: b})
}

// Par implements the Typesetter interface.
func (rec *Recorder) Par() error {
	return rec.add(ParNode{})
}

// OpenBox implements the Typesetter interface.
func (rec *Recorder) OpenBox(kind BoxKind, spec BoxSpec) error {
	rec.open = append(rec.open, &Box{Kind: kind, Spec: spec})
	return nil
}

// CloseBox implements the Typesetter interface.
func (rec *Recorder) CloseBox() (*Box, error) {
	k := len(rec.open)
	if k == 0 {
		return nil, errNoOpenBox
	}
	b := rec.open[k-1]
	rec.open = rec.open[:k-1]
	return b, nil
}

// Finish implements the Typesetter interface.
func (rec *Recorder) Finish() error {
	if len(rec.open) > 0 {
		return errors.New("unfinished box at end of input")
	}
	return nil
}

// String returns the recorded material as plain text.  Spaces are
// shown as blanks, other glue, kerns and penalties are omitted.
func (rec *Recorder) String() string {
	return nodesText(rec.Nodes)
}

func nodesText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case CharNode, SpaceNode:
			b.WriteString(n.String())
		case ParNode:
			b.WriteString("\n\n")
		case BoxNode:
			if n.Box != nil {
				b.WriteString(nodesText(n.Box.Nodes))
			}
		}
	}
	return b.String()
}

// WriteText writes the recorded material as plain text to w.
// Paragraphs are filled to lines of at most width characters, and
// separated by empty lines.
func (rec *Recorder) WriteText(w io.Writer, width int) error {
	tw := &textWriter{out: w, width: width}
	for _, par := range strings.Split(rec.String(), "\n\n") {
		words := strings.Fields(par)
		if len(words) == 0 {
			continue
		}
		if err := tw.paragraph(words); err != nil {
			return err
		}
	}
	return nil
}

type textWriter struct {
	out   io.Writer
	width int

	started    bool
	line       []string
	lineLength int
}

func (tw *textWriter) paragraph(words []string) error {
	if tw.started {
		if _, err := io.WriteString(tw.out, "\n"); err != nil {
			return err
		}
	}
	tw.started = true
	for _, word := range words {
		l := utf8.RuneCountInString(word)
		if len(tw.line) == 0 {
			tw.line = []string{word}
			tw.lineLength = l
		} else if tw.width <= 0 || tw.lineLength+1+l <= tw.width {
			tw.line = append(tw.line, word)
			tw.lineLength += 1 + l
		} else {
			if err := tw.writeLine(); err != nil {
				return err
			}
			tw.line = []string{word}
			tw.lineLength = l
		}
	}
	return tw.writeLine()
}

func (tw *textWriter) writeLine() error {
	if len(tw.line) == 0 {
		return nil
	}
	_, err := io.WriteString(tw.out, strings.Join(tw.line, " ")+"\n")
	tw.line = tw.line[:0]
	tw.lineLength = 0
	return err
}
