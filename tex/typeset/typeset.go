// typeset.go -
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

// Package typeset defines the interface between the interpreter and
// the typesetting back end.
//
// The interpreter forwards fully expanded content in document order.
// Line breaking and page building are the business of the
// implementation; the Recorder in this package simply keeps all
// content in memory.
package typeset

import (
	"fmt"

	"github.com/seehuhn/texmacro/tex/dimen"
)

// Typesetter accepts finished content from the interpreter.
type Typesetter interface {
	AddChar(r rune, attr Attributes) error
	AddSpace(g dimen.Glue, attr Attributes) error
	AddGlue(g dimen.Glue, vertical bool) error
	AddKern(d dimen.Dimen) error
	AddPenalty(p int64) error
	AddBox(b *Box) error
	Par() error

	// OpenBox starts collecting material for a new box.  Until the
	// matching call to CloseBox, all content goes into this box.
	OpenBox(kind BoxKind, spec BoxSpec) error
	CloseBox() (*Box, error)

	// Finish is called once at the end of input.
	Finish() error
}

// Direction is the writing direction of text.
type Direction int

// The supported writing directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "TRT"
	}
	return "TLT"
}

// ColorSpace describes how the components of a Color are interpreted.
type ColorSpace int

// The supported color spaces.
const (
	Gray ColorSpace = iota
	RGB
)

// Color is a text color.  The zero value is black.
type Color struct {
	Space ColorSpace
	C     [3]float64
}

func (c Color) String() string {
	if c.Space == RGB {
		return fmt.Sprintf("rgb %g %g %g", c.C[0], c.C[1], c.C[2])
	}
	return fmt.Sprintf("gray %g", c.C[0])
}

// Attributes are the typesetting attributes attached to characters.
type Attributes struct {
	Font      *Font
	Color     Color
	Direction Direction
}

// Font describes a loaded font.  The interpreter does not read font
// metric files; font parameters are derived from the size.
type Font struct {
	// ID is the name of the control sequence which selects the font.
	ID string

	Name       string
	Size       dimen.Dimen
	DesignSize dimen.Dimen
	Params     map[int]dimen.Dimen
}

// DefaultDesignSize is the design size assumed for all fonts.
var DefaultDesignSize = dimen.Points(10)

// NullFont is the font selected at the start of a job.
var NullFont = &Font{
	ID:     "nullfont",
	Name:   "nullfont",
	Params: map[int]dimen.Dimen{},
}

// NewFont creates a font of the given size.  The usual TeX font
// parameters (slant, space, stretch, shrink, x-height and quad) are
// set to values proportional to the size.
func NewFont(id, name string, size dimen.Dimen) *Font {
	if size <= 0 {
		size = DefaultDesignSize
	}
	return &Font{
		ID:         id,
		Name:       name,
		Size:       size,
		DesignSize: DefaultDesignSize,
		Params: map[int]dimen.Dimen{
			1: 0,
			2: size / 3,
			3: size / 6,
			4: size / 9,
			5: size * 43 / 100,
			6: size,
			7: size / 9,
		},
	}
}

// Param returns the font parameter n, or zero if the parameter is
// not set.
func (f *Font) Param(n int) dimen.Dimen {
	if f == nil {
		return 0
	}
	return f.Params[n]
}

// SpaceGlue returns the interword glue of the font.
func (f *Font) SpaceGlue() dimen.Glue {
	return dimen.Glue{
		Width:   f.Param(2),
		Stretch: dimen.GlueComponent{Value: f.Param(3)},
		Shrink:  dimen.GlueComponent{Value: f.Param(4)},
	}
}

// FullName returns the font name the way \fontname shows it.
func (f *Font) FullName() string {
	if f.Size != f.DesignSize && f.Size != 0 {
		return f.Name + " at " + f.Size.String()
	}
	return f.Name
}

// BoxKind distinguishes horizontal from vertical boxes.
type BoxKind int

// The two kinds of box.
const (
	HBox BoxKind = iota
	VBox
)

// BoxSpec gives the requested size of a box, as in "\hbox to 3pt" or
// "\hbox spread 1pt".  The zero value means the natural size.
type BoxSpec struct {
	Spread bool
	Size   dimen.Dimen
	Exact  bool
}

func (spec BoxSpec) String() string {
	switch {
	case spec.Exact:
		return "to " + spec.Size.String()
	case spec.Spread:
		return "spread " + spec.Size.String()
	}
	return ""
}

// Box is the material collected between \hbox{ and }.
type Box struct {
	Kind  BoxKind
	Spec  BoxSpec
	Nodes []Node
}

// Copy returns a deep copy of the box.
func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	res := &Box{
		Kind:  b.Kind,
		Spec:  b.Spec,
		Nodes: make([]Node, len(b.Nodes)),
	}
	for i, n := range b.Nodes {
		if bn, ok := n.(BoxNode); ok {
			n = BoxNode{Box: bn.Box.Copy()}
		}
		res.Nodes[i] = n
	}
	return res
}
