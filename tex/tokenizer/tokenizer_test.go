// tokenizer_test.go -
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

package tokenizer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

// plainCodes is a minimal catcode table similar to plain TeX.
type plainCodes map[rune]token.Catcode

func (pc plainCodes) Catcode(r rune) token.Catcode {
	if cat, ok := pc[r]; ok {
		return cat
	}
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return token.CatLetter
	case r == '\\':
		return token.CatEscape
	case r == '%':
		return token.CatComment
	case r == ' ':
		return token.CatSpace
	case r == '\r':
		return token.CatEndOfLine
	case r == '{':
		return token.CatBeginGroup
	case r == '}':
		return token.CatEndGroup
	case r == '^':
		return token.CatSuperscript
	case r == '#':
		return token.CatMacroParam
	case r == '~':
		return token.CatActive
	case r == 0x7f:
		return token.CatInvalid
	}
	return token.CatOther
}

func (pc plainCodes) EndLineChar() rune {
	return '\r'
}

func readAll(t *testing.T, src *Source) token.TokenList {
	t.Helper()
	var res token.TokenList
	for {
		tok, err := src.GetToken()
		if err == io.EOF {
			return res
		} else if err != nil {
			t.Fatal(err)
		}
		res = append(res, tok)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		in       string
		expected token.TokenList
	}{
		{"ab", token.TokenList{token.Letter('a'), token.Letter('b'), token.Space}},
		{`\relax x`, token.TokenList{token.CS("relax"), token.Letter('x'), token.Space}},
		{`\relax   x%comment`, token.TokenList{token.CS("relax"), token.Letter('x')}},
		{`\, x`, token.TokenList{token.CS(","), token.Space, token.Letter('x'), token.Space}},
		{`\  x`, token.TokenList{token.CS(" "), token.Letter('x'), token.Space}},
		{"a  \n\nb", token.TokenList{
			token.Letter('a'), token.Space, token.CS("par"),
			token.Letter('b'), token.Space,
		}},
		{"   a", token.TokenList{token.Letter('a'), token.Space}},
		{"{#1}", token.TokenList{
			token.Char('{', token.CatBeginGroup),
			token.Char('#', token.CatMacroParam),
			token.Other('1'),
			token.Char('}', token.CatEndGroup),
			token.Space,
		}},
		{"~", token.TokenList{token.Char('~', token.CatActive), token.Space}},
		{"^^41^^5a%", token.TokenList{token.Letter('A'), token.Letter('Z')}},
		{"^^7a%", token.TokenList{token.Letter('z')}},
		{`\^^41^^41 1%`, token.TokenList{token.CS("AA"), token.Other('1')}},
		{`\`, token.TokenList{token.CS("\r")}},
	}
	for i, testCase := range testCases {
		src := NewSource(plainCodes{})
		src.PushString(testCase.in, "test")
		got := readAll(t, src)
		if !got.Equal(testCase.expected) {
			t.Errorf("%d: expected %q, got %q", i, testCase.expected, got)
		}
	}
}

func TestCatcodeChange(t *testing.T) {
	codes := plainCodes{}
	src := NewSource(codes)
	src.PushString("ab", "test")

	tok, _ := src.GetToken()
	if tok != token.Letter('a') {
		t.Fatalf("wrong first token %v", tok)
	}
	codes['b'] = token.CatOther
	tok, _ = src.GetToken()
	if tok != token.Other('b') {
		t.Errorf("catcode change not applied mid-line, got %#v", tok)
	}
}

func TestPushRoundTrip(t *testing.T) {
	src := NewSource(plainCodes{})
	src.PushString("z", "test")

	seq := token.TokenList{
		token.CS("a"), token.Letter('b'), token.Param(1), token.Space,
	}
	src.PushList(seq[2:])
	src.Push(seq[:2]...)
	if src.Pending() != len(seq) {
		t.Errorf("wrong pending count %d", src.Pending())
	}
	for i, exp := range seq {
		tok, err := src.GetToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok != exp {
			t.Errorf("%d: expected %v, got %v", i, exp, tok)
		}
	}
	tok, _ := src.GetToken()
	if tok != token.Letter('z') {
		t.Errorf("stream content lost after push back, got %v", tok)
	}
}

func TestPushEmptyStack(t *testing.T) {
	src := NewSource(plainCodes{})
	src.Push(token.Letter('q'))
	tok, err := src.GetToken()
	if err != nil || tok != token.Letter('q') {
		t.Errorf("wrong token %v (%v)", tok, err)
	}
	_, err = src.GetToken()
	if err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestStreamStack(t *testing.T) {
	src := NewSource(plainCodes{})
	src.PushString("b%", "outer")
	src.PushString("a%", "inner")
	got := readAll(t, src)
	expected := token.TokenList{token.Letter('a'), token.Letter('b')}
	if !got.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestGetNonSpace(t *testing.T) {
	src := NewSource(plainCodes{})
	src.Push(token.Space, token.Space, token.Letter('x'))
	tok, err := src.GetNonSpace()
	if err != nil || tok != token.Letter('x') {
		t.Errorf("wrong token %v (%v)", tok, err)
	}
}

func TestInvalidCharacter(t *testing.T) {
	src := NewSource(plainCodes{})
	src.PushString("a\x7f", "bad")
	_, err := src.GetToken()
	if err != nil {
		t.Fatal(err)
	}
	_, err = src.GetToken()
	if !texerr.Is(err, texerr.InvalidCharacter) {
		t.Fatalf("expected invalid character error, got %v", err)
	}
	loc := err.(*texerr.Error).Locator()
	if loc.Name != "bad" || loc.Line != 1 {
		t.Errorf("wrong error location %v", loc)
	}
}

type recorder []string

func (r *recorder) StreamOpened(name string, isFile bool) {
	*r = append(*r, "open "+name)
}

func (r *recorder) StreamClosed(name string, isFile bool) {
	*r = append(*r, "close "+name)
}

func TestIncludeAndEndInput(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "part.tex"),
		[]byte("x\\stop y\nz\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	var events recorder
	src := NewSource(plainCodes{})
	src.Listener = &events
	src.BaseDir = dir
	err = src.Include("part")
	if err != nil {
		t.Fatal(err)
	}

	tok, _ := src.GetToken()
	if tok != token.Letter('x') {
		t.Fatalf("wrong token %v", tok)
	}
	tok, _ = src.GetToken()
	if tok != token.CS("stop") {
		t.Fatalf("wrong token %v", tok)
	}
	src.EndInput()
	rest := readAll(t, src)
	expected := token.TokenList{token.Letter('y'), token.Space}
	if !rest.Equal(expected) {
		t.Errorf("expected %v after \\endinput, got %v", expected, rest)
	}
	if len(events) != 2 || events[0] != "open part.tex" || events[1] != "close part.tex" {
		t.Errorf("wrong events %q", events)
	}
}

func TestClose(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "a.tex"), []byte("abc\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	src := NewSource(plainCodes{})
	src.BaseDir = dir
	if err := src.Include("a"); err != nil {
		t.Fatal(err)
	}
	src.PushString("x", "inner")
	src.Push(token.Letter('p'))
	if d := src.Depth(); d != 2 {
		t.Errorf("wrong depth %d", d)
	}

	err = src.Close()
	if err != nil {
		t.Fatal(err)
	}
	if src.Depth() != 0 || src.Pending() != 0 {
		t.Error("streams left open")
	}
	if _, err := src.GetToken(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}
