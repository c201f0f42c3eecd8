// list.go -
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

import (
	"strconv"
	"strings"
)

// TokenList is a sequence of tokens, e.g. the body of a macro or the
// contents of a token register.
type TokenList []Token

// Equal reports whether the two lists contain the same tokens.
func (toks TokenList) Equal(other TokenList) bool {
	if len(toks) != len(other) {
		return false
	}
	for i, tok := range toks {
		if tok != other[i] {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of the list.
func (toks TokenList) Copy() TokenList {
	if toks == nil {
		return nil
	}
	res := make(TokenList, len(toks))
	copy(res, toks)
	return res
}

func (toks TokenList) String() string {
	return toks.Format('\\')
}

// Format shows the list the way TeX shows token lists: control
// sequence names are followed by a space where needed and parameter
// characters are doubled.
func (toks TokenList) Format(escape rune) string {
	var res []string
	for _, tok := range toks {
		switch tok.Kind {
		case KindControlSeq:
			s := tok.Format(escape)
			if tok.needsSpace() {
				s += " "
			}
			res = append(res, s)
		case KindParam:
			res = append(res, "#"+strconv.Itoa(tok.Index))
		default:
			if tok.Cat == CatMacroParam {
				res = append(res, string(tok.Char)+string(tok.Char))
			} else {
				res = append(res, string(tok.Char))
			}
		}
	}
	return strings.Join(res, "")
}

// Text concatenates the characters of all character tokens.  Control
// sequences are written with the given escape character and without
// trailing space.
func (toks TokenList) Text(escape rune) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Format(escape))
	}
	return b.String()
}

// FromString converts s into a list of character tokens, as \string
// and \the do: spaces become space tokens, everything else has
// category other.
func FromString(s string) TokenList {
	res := make(TokenList, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			res = append(res, Space)
		} else {
			res = append(res, Other(r))
		}
	}
	return res
}
