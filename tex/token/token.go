// token.go -
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

// Package token defines the lexical units of the TeX interpreter.
package token

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind is used to enumerate the different kinds of token.
type Kind int

// The different token kinds used by this package.
const (
	KindChar Kind = iota
	KindControlSeq
	KindParam
)

// Token contains a single syntactic unit of TeX input.  Tokens are
// values: two tokens are the same if they compare equal with ==.
type Token struct {
	// Kind describes which kind of token this is.
	Kind Kind

	// For KindChar, the character and the category code it had
	// when it was read.  Active characters use CatActive.
	Char rune
	Cat  Catcode

	// For KindControlSeq, the name without the escape character.
	Name string

	// For KindParam, the parameter number 1 to 9.
	Index int
}

// Char returns a character token.
func Char(r rune, cat Catcode) Token {
	return Token{Kind: KindChar, Char: r, Cat: cat}
}

// Letter returns a character token with category letter.
func Letter(r rune) Token {
	return Char(r, CatLetter)
}

// Other returns a character token with category other.
func Other(r rune) Token {
	return Char(r, CatOther)
}

// Space is the token the tokenizer produces for blank space.
var Space = Char(' ', CatSpace)

// CS returns a control sequence token.
func CS(name string) Token {
	return Token{Kind: KindControlSeq, Name: name}
}

// Param returns a macro parameter reference.
func Param(idx int) Token {
	return Token{Kind: KindParam, Index: idx}
}

// IsCS reports whether t is a control sequence.
func (t Token) IsCS() bool {
	return t.Kind == KindControlSeq
}

// IsActive reports whether t is an active character.
func (t Token) IsActive() bool {
	return t.Kind == KindChar && t.Cat == CatActive
}

// IsCommand reports whether t is looked up in the table of meanings,
// i.e. whether it is a control sequence or an active character.
func (t Token) IsCommand() bool {
	return t.IsCS() || t.IsActive()
}

// Is reports whether t is a character token with the given category.
func (t Token) Is(cat Catcode) bool {
	return t.Kind == KindChar && t.Cat == cat
}

// IsOther reports whether t is the character r with category other.
func (t Token) IsOther(r rune) bool {
	return t.Kind == KindChar && t.Cat == CatOther && t.Char == r
}

func (t Token) String() string {
	return t.Format('\\')
}

// Format returns the textual form of t, using escape as the escape
// character.  A negative escape omits the escape character.
func (t Token) Format(escape rune) string {
	switch t.Kind {
	case KindControlSeq:
		var b strings.Builder
		if escape >= 0 {
			b.WriteRune(escape)
		}
		b.WriteString(t.Name)
		return b.String()
	case KindParam:
		return "#" + strconv.Itoa(t.Index)
	default:
		return string(t.Char)
	}
}

// needsSpace reports whether a space is printed after the control
// sequence t when it is shown as part of a token list.
func (t Token) needsSpace() bool {
	r := []rune(t.Name)
	if len(r) != 1 {
		return true
	}
	return unicode.IsLetter(r[0])
}
