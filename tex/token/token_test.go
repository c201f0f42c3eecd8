// token_test.go -
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

import "testing"

func TestTokenEquality(t *testing.T) {
	if Letter('a') != Char('a', CatLetter) {
		t.Error("equal character tokens compare unequal")
	}
	if Letter('a') == Other('a') {
		t.Error("tokens with different catcodes compare equal")
	}
	if CS("relax") != CS("relax") {
		t.Error("equal control sequences compare unequal")
	}
	if Param(1) == Param(2) {
		t.Error("different parameters compare equal")
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		toks     TokenList
		expected string
	}{
		{TokenList{CS("a"), Letter('b')}, `\a b`},
		{TokenList{CS("abc"), Other('1')}, `\abc 1`},
		{TokenList{CS(","), Letter('x')}, `\,x`},
		{TokenList{Other('['), Param(1), Other(']')}, `[#1]`},
		{TokenList{Char('#', CatMacroParam)}, `##`},
	}
	for i, testCase := range testCases {
		got := testCase.toks.String()
		if got != testCase.expected {
			t.Errorf("%d: expected %q, got %q", i, testCase.expected, got)
		}
	}
}

func TestFromString(t *testing.T) {
	toks := FromString("1 a")
	expected := TokenList{Other('1'), Space, Other('a')}
	if !toks.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, toks)
	}
}
