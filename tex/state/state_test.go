// state_test.go -
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

package state

import (
	"testing"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

type named string

func (n named) Name() string { return string(n) }

type pusher struct {
	toks token.TokenList
}

func (p *pusher) Push(toks ...token.Token) {
	p.toks = append(toks, p.toks...)
}

func enter(ctx *Context) {
	ctx.OpenGroup(SimpleGroup, token.Locator{}, token.Char('{', token.CatBeginGroup))
}

func leave(t *testing.T, ctx *Context) {
	t.Helper()
	if err := ctx.CloseGroup(nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestCatcodeScoping(t *testing.T) {
	for _, r := range []rune{'a', '@', '{', 'ä'} {
		for cat := token.CatEscape; cat <= token.CatInvalid; cat++ {
			ctx := NewContext(nil)
			before := ctx.Catcode(r)

			enter(ctx)
			ctx.SetCatcode(r, cat, false)
			ctx.SetCatcode(r, token.CatOther, false)
			if ctx.Catcode(r) != token.CatOther {
				t.Fatalf("%q: local assignment not visible", r)
			}
			leave(t, ctx)
			if got := ctx.Catcode(r); got != before {
				t.Errorf("%q/%s: expected %s after group, got %s", r, cat, before, got)
			}

			enter(ctx)
			enter(ctx)
			ctx.SetCatcode(r, cat, true)
			leave(t, ctx)
			leave(t, ctx)
			if got := ctx.Catcode(r); got != cat {
				t.Errorf("%q/%s: global assignment lost, got %s", r, cat, got)
			}
		}
	}
}

func TestGlobalPurgesUndo(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetCount("0", 1, false)
	enter(ctx)
	ctx.SetCount("0", 2, false)
	enter(ctx)
	ctx.SetCount("0", 3, false)
	ctx.SetCount("0", 4, true)
	leave(t, ctx)
	if v := ctx.Count("0"); v != 4 {
		t.Errorf("expected 4, got %d", v)
	}
	ctx.SetCount("0", 5, false)
	leave(t, ctx)
	if v := ctx.Count("0"); v != 4 {
		t.Errorf("local assignment after global one: expected 4, got %d", v)
	}
}

func TestRegisterDefaults(t *testing.T) {
	ctx := NewContext(nil)
	if ctx.Count("17") != 0 || ctx.Dimen("3") != 0 || ctx.Glue("1") != dimen.ZeroGlue {
		t.Error("unset registers are not zero")
	}
	if ctx.Toks("0") != nil || ctx.Box("0") != nil || ctx.Code("undefined") != nil {
		t.Error("unset registers are not empty")
	}
	if ctx.Count("mag") != 1000 || ctx.EndLineChar() != '\r' {
		t.Error("wrong initial parameters")
	}
	ctx.SetCount("endlinechar", -1, false)
	if ctx.EndLineChar() != -1 {
		t.Error("negative \\endlinechar not honoured")
	}
}

func TestGroupLevel(t *testing.T) {
	ctx := NewContext(nil)
	for n := 1; n <= 5; n++ {
		enter(ctx)
		if ctx.GroupLevel() != n {
			t.Errorf("expected level %d, got %d", n, ctx.GroupLevel())
		}
	}
	for m := 1; m <= 5; m++ {
		leave(t, ctx)
		if ctx.GroupLevel() != 5-m {
			t.Errorf("expected level %d, got %d", 5-m, ctx.GroupLevel())
		}
	}
	if !ctx.IsGlobalGroup() {
		t.Error("not back at the global level")
	}
	err := ctx.CloseGroup(nil, nil)
	if !texerr.Is(err, texerr.TooManyRightBraces) {
		t.Errorf("closing the global group: expected error, got %v", err)
	}
}

func TestCodeScoping(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetCode("x", named("outer"), false)
	enter(ctx)
	ctx.SetCode("x", named("inner"), false)
	ctx.SetCode("y", named("new"), false)
	ctx.SetActive('~', named("tie"), false)
	if ctx.Meaning(token.CS("x")).Name() != "inner" {
		t.Error("local definition not visible")
	}
	leave(t, ctx)
	if ctx.Code("x").Name() != "outer" {
		t.Error("old definition not restored")
	}
	if ctx.Code("y") != nil || ctx.Active('~') != nil {
		t.Error("local definitions survive the group")
	}
}

func TestAfterGroup(t *testing.T) {
	ctx := NewContext(nil)
	p := &pusher{toks: token.TokenList{token.Letter('z')}}

	ctx.AfterGroup(token.Letter('q'))
	enter(ctx)
	ctx.AfterGroup(token.Letter('a'))
	ctx.AfterGroup(token.Letter('b'))
	err := ctx.CloseGroup(nil, p)
	if err != nil {
		t.Fatal(err)
	}
	expected := token.TokenList{token.Letter('a'), token.Letter('b'), token.Letter('z')}
	if !p.toks.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, p.toks)
	}
}

func TestBoxGroup(t *testing.T) {
	ctx := NewContext(nil)
	rec := typeset.NewRecorder()
	g := ctx.OpenGroup(HBoxGroup, token.Locator{}, token.CS("hbox"))
	rec.OpenBox(typeset.HBox, typeset.BoxSpec{})
	g.Deliver = func(b *typeset.Box) error {
		ctx.SetBox("0", b, false)
		return nil
	}
	ctx.SetCount("1", 7, false)
	rec.AddChar('x', ctx.Attributes())
	err := ctx.CloseGroup(rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	b := ctx.Box("0")
	if b == nil || len(b.Nodes) != 1 {
		t.Fatalf("box not delivered: %v", b)
	}
	if ctx.Count("1") != 0 {
		t.Error("assignment inside box group survives")
	}
}

func TestAttributes(t *testing.T) {
	ctx := NewContext(nil)
	f := typeset.NewFont("tenrm", "cmr10", 0)
	red := typeset.Color{Space: typeset.RGB, C: [3]float64{1, 0, 0}}
	enter(ctx)
	ctx.SetFont(f, false)
	ctx.SetColor(red, false)
	ctx.SetDirection(typeset.RightToLeft, true)
	attr := ctx.Attributes()
	if attr.Font != f || attr.Color != red {
		t.Error("attributes not set")
	}
	leave(t, ctx)
	attr = ctx.Attributes()
	if attr.Font != typeset.NullFont || attr.Color != (typeset.Color{}) {
		t.Error("local attributes not restored")
	}
	if attr.Direction != typeset.RightToLeft {
		t.Error("global direction lost")
	}
}

func TestCharTables(t *testing.T) {
	ctx := NewContext(&Options{Preset: "plain", UnicodeLetters: true})
	testCases := []struct {
		tab      Table
		r        rune
		expected int64
	}{
		{LcCode, 'A', 'a'},
		{UcCode, 'a', 'A'},
		{LcCode, '1', 0},
		{UcCode, 'ö', 'Ö'},
		{SfCode, 'B', 999},
		{SfCode, 'b', 1000},
		{MathCode, 'a', 0x7161},
		{MathCode, '3', 0x7033},
		{DelCode, '.', 0},
		{DelCode, '(', -1},
	}
	for _, testCase := range testCases {
		got := ctx.CharCode(testCase.tab, testCase.r)
		if got != testCase.expected {
			t.Errorf("%s %q: expected %d, got %d",
				testCase.tab, testCase.r, testCase.expected, got)
		}
	}
	if ctx.Catcode('{') != token.CatBeginGroup || ctx.Catcode('ß') != token.CatLetter {
		t.Error("wrong plain catcodes")
	}
	ini := NewContext(nil)
	if ini.Catcode('{') != token.CatOther || ini.Catcode('#') != token.CatMacroParam {
		t.Error("wrong initex catcodes")
	}
}

func TestConditionalStack(t *testing.T) {
	ctx := NewContext(nil)
	i := ctx.PushConditional(Conditional{Primitive: "ifnum", Pending: true})
	ctx.PushConditional(Conditional{Primitive: "iftrue", Value: true})
	if ctx.ConditionalLevel() != 2 {
		t.Errorf("wrong level %d", ctx.ConditionalLevel())
	}
	ctx.Conditional(i).Pending = false
	if c := ctx.PopConditional(); c.Primitive != "iftrue" {
		t.Errorf("wrong conditional %v", c)
	}
	if c := ctx.TopConditional(); c.Primitive != "ifnum" || c.Pending {
		t.Errorf("wrong conditional %v", c)
	}
	ctx.PopConditional()
	if ctx.PopConditional() != nil || ctx.TopConditional() != nil {
		t.Error("empty stack not detected")
	}
}

func TestSnapshot(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetCatcode('{', token.CatBeginGroup, false)
	ctx.SetCount("5", 42, false)
	ctx.SetCode("x", named("x"), false)
	ctx.SetCharCode(LcCode, 'Q', 'z', false)

	enter(ctx)
	if _, err := ctx.Snapshot(); !texerr.Is(err, texerr.DumpInGroup) {
		t.Errorf("expected error inside group, got %v", err)
	}
	leave(t, ctx)

	s, err := ctx.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	other := NewContext(nil)
	if err := other.Restore(s); err != nil {
		t.Fatal(err)
	}
	if other.Catcode('{') != token.CatBeginGroup || other.Count("5") != 42 ||
		other.Code("x") == nil || other.CharCode(LcCode, 'Q') != 'z' {
		t.Error("state not restored")
	}
}

func TestSnapshotPreset(t *testing.T) {
	ctx := NewContext(&Options{Preset: "plain"})
	ctx.SetCatcode('~', token.CatOther, false)
	s, err := ctx.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if s.Preset != "plain" {
		t.Errorf("wrong preset %q", s.Preset)
	}

	other := NewContext(nil)
	if other.Catcode('}') != token.CatOther {
		t.Fatal("wrong initex catcodes")
	}
	if err := other.Restore(s); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		r   rune
		cat token.Catcode
	}{
		{'{', token.CatBeginGroup},
		{'}', token.CatEndGroup},
		{'#', token.CatMacroParam},
		{'$', token.CatMathShift},
		{'~', token.CatOther},
	} {
		if got := other.Catcode(test.r); got != test.cat {
			t.Errorf("catcode %q: expected %s, got %s", test.r, test.cat, got)
		}
	}
	if other.Preset() != "plain" {
		t.Errorf("preset not restored: %q", other.Preset())
	}
}

func TestAfterAssignment(t *testing.T) {
	ctx := NewContext(nil)
	if _, ok := ctx.TakeAfterAssignment(); ok {
		t.Error("unexpected token")
	}
	ctx.SetAfterAssignment(token.CS("x"))
	if tok, ok := ctx.TakeAfterAssignment(); !ok || tok != token.CS("x") {
		t.Error("token lost")
	}
	if _, ok := ctx.TakeAfterAssignment(); ok {
		t.Error("token not cleared")
	}
}
