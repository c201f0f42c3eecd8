// catcode.go -
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

package token

import "strconv"

// Catcode is the category code of a character.  The category code
// decides how the tokenizer classifies a character.
type Catcode int

// The sixteen TeX category codes, in TeX order.
const (
	CatEscape Catcode = iota
	CatBeginGroup
	CatEndGroup
	CatMathShift
	CatTabMark
	CatEndOfLine
	CatMacroParam
	CatSuperscript
	CatSubscript
	CatIgnore
	CatSpace
	CatLetter
	CatOther
	CatActive
	CatComment
	CatInvalid
)

var catNames = [...]string{
	"escape",
	"begin-group",
	"end-group",
	"math-shift",
	"alignment-tab",
	"end-of-line",
	"parameter",
	"superscript",
	"subscript",
	"ignored",
	"space",
	"letter",
	"other",
	"active",
	"comment",
	"invalid",
}

func (c Catcode) String() string {
	if c.Valid() {
		return catNames[c]
	}
	return "catcode(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is one of the sixteen category codes.
func (c Catcode) Valid() bool {
	return c >= CatEscape && c <= CatInvalid
}
