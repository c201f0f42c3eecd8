// scan_test.go -
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

package interp

import (
	"io"
	"testing"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

// newTest returns an interpreter with plain TeX category codes which
// reads the given input.  No end-of-line characters are appended to
// the input lines.
func newTest(input string, opt *Options) *Interpreter {
	if opt == nil {
		opt = &Options{}
	}
	if opt.State == nil {
		opt.State = &state.Options{Preset: "plain"}
	}
	ip := New(opt)
	ip.Ctx.SetCount("endlinechar", -1, true)
	ip.In.PushString(input, "test")
	return ip
}

func TestPushRoundTrip(t *testing.T) {
	ip := newTest("rest", nil)
	toks := token.TokenList{
		token.CS("a"), token.Letter('b'), token.Space,
		token.Char('{', token.CatBeginGroup), token.Other('1'),
		token.Char('}', token.CatEndGroup), token.Char('~', token.CatActive),
	}
	ip.In.PushList(toks)
	for i, want := range toks {
		got, err := ip.GetToken()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("token %d: expected %s, got %s", i, want, got)
		}
	}
	got, err := ip.GetToken()
	if err != nil || got != token.Letter('r') {
		t.Errorf("stream not resumed: %s %v", got, err)
	}
}

func TestKeywordRollback(t *testing.T) {
	ip := newTest("", nil)
	ip.In.PushList(token.TokenList{token.Space, token.Letter('p'), token.Letter('c')})
	ok, err := ip.ScanKeyword("pt")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("keyword pt matched pc")
	}
	want := token.TokenList{token.Space, token.Letter('p'), token.Letter('c')}
	for _, w := range want {
		got, err := ip.GetToken()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("expected %s, got %s", w, got)
		}
	}
	if _, err := ip.GetToken(); err != io.EOF {
		t.Errorf("expected end of input, got %v", err)
	}
}

func TestKeywordCase(t *testing.T) {
	ip := newTest("PlUs", nil)
	ok, err := ip.ScanKeyword("plus")
	if err != nil || !ok {
		t.Errorf("keyword not matched: %t %v", ok, err)
	}
}

func TestScanInteger(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123", 123},
		{"-17", -17},
		{"--5", 5},
		{"+ - 7", -7},
		{"'17", 15},
		{"\"1F", 31},
		{"`a", 'a'},
		{"`\\a", 'a'},
		{"`\\%", '%'},
		{"2147483647", 2147483647},
		{"\\count1", 0},
		{"\\catcode`\\\\", 0},
		{"\\catcode`\\{", 1},
		{"\\tolerance", 10000},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		got, err := ip.ScanInteger()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: expected %d, got %d", test.in, test.want, got)
		}
	}
}

func TestScanIntegerErrors(t *testing.T) {
	cases := []struct {
		in   string
		kind texerr.Kind
	}{
		{"x", texerr.MissingNumber},
		{"", texerr.MissingNumber},
		{"\"ff", texerr.MissingNumber},
		{"99999999999", texerr.NumberTooBig},
		{"\\everypar", texerr.MissingNumber},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		_, err := ip.ScanInteger()
		if !texerr.Is(err, test.kind) {
			t.Errorf("%q: expected %s, got %v", test.in, test.kind, err)
		}
	}
}

func TestScanNumberRange(t *testing.T) {
	ip := newTest("40000", nil)
	_, err := ip.ScanNumber(MaxRegister)
	if !texerr.Is(err, texerr.BadRegister) {
		t.Errorf("expected bad register, got %v", err)
	}
}

func TestScanDimen(t *testing.T) {
	cases := []struct {
		in   string
		want dimen.Dimen
	}{
		{"1pt", 65536},
		{"1.0pt", 65536},
		{"1.pt", 65536},
		{"-1.5pt", -98304},
		{"1,5pt", 98304},
		{".5pt", 32768},
		{"1in", 4736286},
		{"1pc", 12 * 65536},
		{"10sp", 10},
		{"'17sp", 15},
		{"\"Fsp", 15},
		{"1 true pt", 65536},
		{"3em", 0},
		{"- 2 pt", -131072},
		{"2\\hsize", 0},
		{"16383.99999pt", dimen.MaxDimen},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		got, err := ip.ScanDimen()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: expected %d, got %d", test.in, test.want, got)
		}
	}
}

func TestScanDimenIdempotentFraction(t *testing.T) {
	for _, unit := range append([]string{"em", "ex"}, dimen.Units...) {
		a, err := newTest("1"+unit, nil).ScanDimen()
		if err != nil {
			t.Fatal(unit, err)
		}
		b, err := newTest("1.0"+unit, nil).ScanDimen()
		if err != nil {
			t.Fatal(unit, err)
		}
		if a != b {
			t.Errorf("1%s = %d but 1.0%s = %d", unit, a, unit, b)
		}
	}
}

func TestInchesVersusPoints(t *testing.T) {
	a, err := newTest("1in", nil).ScanDimen()
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTest("72.27pt", nil).ScanDimen()
	if err != nil {
		t.Fatal(err)
	}
	if d := a - b; d < -1 || d > 1 {
		t.Errorf("1in = %dsp, 72.27pt = %dsp", a, b)
	}
}

func TestScanDimenInternal(t *testing.T) {
	ip := newTest("\\hsize=100pt \\dimen0=.5\\hsize \\dimen1=-\\dimen0 \\count3=2 \\dimen2=\\count3pt", nil)
	if err := ip.Run(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		reg  string
		want dimen.Dimen
	}{
		{"0", dimen.Points(50)},
		{"1", -dimen.Points(50)},
		{"2", dimen.Points(2)},
	} {
		if got := ip.Ctx.Dimen(test.reg); got != test.want {
			t.Errorf("\\dimen%s: expected %s, got %s", test.reg, test.want, got)
		}
	}
}

func TestScanTrueDimen(t *testing.T) {
	ip := newTest("2truept", nil)
	ip.Ctx.SetCount("mag", 2000, true)
	got, err := ip.ScanDimen()
	if err != nil {
		t.Fatal(err)
	}
	if got != dimen.Points(1) {
		t.Errorf("expected 1pt, got %s", got)
	}
}

func TestScanDimenErrors(t *testing.T) {
	cases := []struct {
		in   string
		kind texerr.Kind
	}{
		{"1zz", texerr.IllegalUnit},
		{"1fil", texerr.IllegalUnit},
		{"20000pt", texerr.DimenTooLarge},
		{"pt", texerr.MissingNumber},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		_, err := ip.ScanDimen()
		if !texerr.Is(err, test.kind) {
			t.Errorf("%q: expected %s, got %v", test.in, test.kind, err)
		}
	}
}

func TestScanGlue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3pt", "3.0pt"},
		{"3pt plus 1fil minus 2pt", "3.0pt plus 1.0fil minus 2.0pt"},
		{"0pt plus 1fill", "0.0pt plus 1.0fill"},
		{"1pt minus 1fil l l", "1.0pt minus 1.0filll"},
		{"-1pt plus -2pt", "-1.0pt plus -2.0pt"},
		{"2pt plus0pt", "2.0pt"},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		got, err := ip.ScanGlue()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%q: expected %q, got %q", test.in, test.want, got)
		}
	}
}

func TestScanGlueInternal(t *testing.T) {
	ip := newTest("\\skip1=1pt plus 2fil \\skip2=-\\skip1", nil)
	if err := ip.Run(); err != nil {
		t.Fatal(err)
	}
	want := "-1.0pt plus -2.0fil"
	if got := ip.Ctx.Glue("2").String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConditionalBranch(t *testing.T) {
	cases := []struct {
		in     string
		first  rune
		inElse bool
	}{
		{`\iftrue a\else b\fi`, 'a', false},
		{`\iffalse a\else b\fi`, 'b', true},
		{`\iffalse a\iftrue c\fi\else b\fi`, 'b', true},
		{`\ifcase 1 a\or b\else c\fi`, 'b', false},
		{`\ifcase 3 a\or b\else c\fi`, 'c', true},
		{`\ifcase -1 a\or b\else c\fi`, 'c', true},
	}
	for _, test := range cases {
		ip := newTest(test.in, nil)
		tok, err := ip.GetXToken()
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if tok.Char != test.first {
			t.Errorf("%s: wrong branch, got %s", test.in, tok)
		}
		cond := ip.Ctx.TopConditional()
		if cond == nil {
			t.Errorf("%s: conditional closed early", test.in)
			continue
		}
		if !cond.Value || cond.Pending || cond.InElse != test.inElse {
			t.Errorf("%s: wrong state %+v", test.in, *cond)
		}
	}

	ip := newTest(`\iffalse a\fi x`, nil)
	tok, err := ip.GetXToken()
	if err != nil || tok.Char != 'x' {
		t.Fatalf("got %s (%v)", tok, err)
	}
	if ip.Ctx.TopConditional() != nil {
		t.Error("false conditional without \\else left open")
	}
}
