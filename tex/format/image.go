// image.go -
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

// Package format stores interpreter states written by \dump.
package format

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/token"
)

// Version is incremented whenever the layout of Image changes.  Images
// written with a different version cannot be loaded.
const Version = 2

// ErrVersion is returned when decoding an image written for a different
// format version.
var ErrVersion = errors.New("incompatible format version")

// formatNamespace is used to derive the IDs of format images.
var formatNamespace = uuid.MustParse("6f1d0c55-3c0e-4c59-9a53-1a7d2c6e9b40")

// BindingKind describes what a control sequence is bound to.
type BindingKind int

// The kinds of binding which can be stored in a format.
const (
	Primitive BindingKind = iota
	Macro
	CharToken
	CharDef
	Register
	Font
)

// Binding is the serialisable meaning of a control sequence or active
// character.
type Binding struct {
	Kind BindingKind

	// Name is the name of the primitive for Primitive bindings, the
	// register class ("count", "dimen", ...) for Register bindings,
	// and the font file name for Font bindings.
	Name string

	// Macro bindings.
	Pattern   token.TokenList
	Body      token.TokenList
	Long      bool
	Outer     bool
	Protected bool

	// CharToken bindings, from \let\x=a.
	Token token.Token

	// The character for CharDef bindings, the register number for
	// Register bindings.
	Value int64

	// Font bindings.
	FontID     string
	Size       dimen.Dimen
	FontParams map[int]dimen.Dimen
}

// Image is a dumped interpreter state.
type Image struct {
	Version int
	ID      uuid.UUID
	JobName string
	Created time.Time

	// Preset is the default catcode table ("initex" or "plain").
	// Catcodes holds the explicit assignments on top of it.
	Preset   string
	Catcodes map[rune]token.Catcode
	Tables   map[string]map[rune]int64
	Counts   map[string]int64
	Dimens   map[string]dimen.Dimen
	Glues    map[string]dimen.Glue
	Toks     map[string]token.TokenList
	Codes    map[string]Binding
	Active   map[rune]Binding

	// CurrentFont is the name of the control sequence which selects
	// the current font, or empty for \nullfont.
	CurrentFont string
}

// NewImage returns an empty image for the given job.
func NewImage(jobName string) *Image {
	now := time.Now()
	return &Image{
		Version:  Version,
		ID:       uuid.NewSHA1(formatNamespace, []byte(jobName+"@"+now.Format(time.RFC3339Nano))),
		JobName:  jobName,
		Created:  now,
		Catcodes: make(map[rune]token.Catcode),
		Tables:   make(map[string]map[rune]int64),
		Counts:   make(map[string]int64),
		Dimens:   make(map[string]dimen.Dimen),
		Glues:    make(map[string]dimen.Glue),
		Toks:     make(map[string]token.TokenList),
		Codes:    make(map[string]Binding),
		Active:   make(map[rune]Binding),
	}
}

// Encode writes the image to w.
func (img *Image) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(img)
}

// Decode reads an image written by Encode.
func Decode(r io.Reader) (*Image, error) {
	img := &Image{}
	err := gob.NewDecoder(r).Decode(img)
	if err != nil {
		return nil, err
	}
	if img.Version != Version {
		return nil, fmt.Errorf("%w %d (want %d)", ErrVersion, img.Version, Version)
	}
	return img, nil
}
