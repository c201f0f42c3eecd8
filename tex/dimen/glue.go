// glue.go -
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

package dimen

import "strings"

// Order is the order of infinity of a stretch or shrink component.
type Order int

// The orders of infinity.
const (
	Normal Order = iota
	Fil
	Fill
	Filll
)

// GlueComponent is the stretch or shrink part of a glue.
type GlueComponent struct {
	Value Dimen
	Order Order
}

// IsZero reports whether the component has no effect.
func (gc GlueComponent) IsZero() bool {
	return gc.Value == 0
}

func (gc GlueComponent) String() string {
	if gc.Order == Normal {
		return gc.Value.String()
	}
	return FormatScaled(int64(gc.Value)) + "fi" + strings.Repeat("l", int(gc.Order))
}

// add combines two components.  Components of lower order are
// dominated by those of higher order and are dropped.
func (gc GlueComponent) add(other GlueComponent) (GlueComponent, error) {
	switch {
	case other.IsZero():
		return gc, nil
	case gc.IsZero() || gc.Order < other.Order:
		return other, nil
	case gc.Order > other.Order:
		return gc, nil
	}
	val, err := gc.Value.Add(other.Value)
	if err != nil {
		return GlueComponent{}, err
	}
	if val == 0 {
		return GlueComponent{}, nil
	}
	return GlueComponent{Value: val, Order: gc.Order}, nil
}

// Glue is a length with stretchability and shrinkability.
type Glue struct {
	Width   Dimen
	Stretch GlueComponent
	Shrink  GlueComponent
}

// ZeroGlue is the glue 0pt plus 0pt minus 0pt.
var ZeroGlue = Glue{}

// Add returns g+other, following TeX's rules for glue arithmetic.
func (g Glue) Add(other Glue) (Glue, error) {
	width, err := g.Width.Add(other.Width)
	if err != nil {
		return Glue{}, err
	}
	stretch, err := g.Stretch.add(other.Stretch)
	if err != nil {
		return Glue{}, err
	}
	shrink, err := g.Shrink.add(other.Shrink)
	if err != nil {
		return Glue{}, err
	}
	return Glue{Width: width, Stretch: stretch, Shrink: shrink}, nil
}

// Negate returns -g.
func (g Glue) Negate() Glue {
	g.Width = -g.Width
	g.Stretch.Value = -g.Stretch.Value
	g.Shrink.Value = -g.Shrink.Value
	return g
}

// Multiply multiplies all components of g by n.
func (g Glue) Multiply(n int64) (Glue, error) {
	var err error
	var res Glue
	res.Width, err = g.Width.Multiply(n)
	if err != nil {
		return Glue{}, err
	}
	res.Stretch.Value, err = g.Stretch.Value.Multiply(n)
	if err != nil {
		return Glue{}, err
	}
	res.Shrink.Value, err = g.Shrink.Value.Multiply(n)
	if err != nil {
		return Glue{}, err
	}
	res.Stretch.Order = g.Stretch.Order
	res.Shrink.Order = g.Shrink.Order
	return res.normalize(), nil
}

// Divide divides all components of g by n.
func (g Glue) Divide(n int64) (Glue, error) {
	var err error
	var res Glue
	res.Width, err = g.Width.Divide(n)
	if err != nil {
		return Glue{}, err
	}
	res.Stretch.Value, _ = g.Stretch.Value.Divide(n)
	res.Shrink.Value, _ = g.Shrink.Value.Divide(n)
	res.Stretch.Order = g.Stretch.Order
	res.Shrink.Order = g.Shrink.Order
	return res.normalize(), nil
}

func (g Glue) normalize() Glue {
	if g.Stretch.Value == 0 {
		g.Stretch.Order = Normal
	}
	if g.Shrink.Value == 0 {
		g.Shrink.Order = Normal
	}
	return g
}

// String formats g the way TeX's \the does.
func (g Glue) String() string {
	res := g.Width.String()
	if !g.Stretch.IsZero() {
		res += " plus " + g.Stretch.String()
	}
	if !g.Shrink.IsZero() {
		res += " minus " + g.Shrink.String()
	}
	return res
}
