// cond.go -
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
	"strconv"

	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

type condRole int

const (
	roleIf condRole = iota
	roleElse
	roleOr
	roleFi
)

// ifCode is one of the conditional primitives, or \else, \or, \fi.
type ifCode struct {
	name string
	role condRole

	// test evaluates the condition of an \if... primitive.  For
	// \ifcase, caseTest is used instead.
	test     func(ip *Interpreter) (bool, error)
	caseTest bool
}

func (c *ifCode) Name() string { return c.name }

// IsIf reports whether c opens a conditional.
func (c *ifCode) IsIf() bool { return c.role == roleIf }

func (c *ifCode) Expand(ip *Interpreter, t token.Token) error {
	switch c.role {
	case roleIf:
		return c.expandIf(ip)
	case roleElse:
		return expandElse(ip, t)
	case roleOr:
		return expandOr(ip, t)
	default:
		return expandFi(ip, t)
	}
}

func (c *ifCode) expandIf(ip *Interpreter) error {
	idx := ip.Ctx.PushConditional(state.Conditional{
		Locator:   ip.In.Locator(),
		Primitive: c.name,
		Pending:   true,
		IsCase:    c.caseTest,
	})
	if ip.Ctx.Count("tracingcommands") > 1 {
		tracer().Infof("{\\%s: (level %d)}", c.name, idx+1)
	}

	if c.caseTest {
		n, err := ip.ScanInteger()
		cond := ip.Ctx.Conditional(idx)
		cond.Pending = false
		if err != nil {
			return err
		}
		if n < 0 {
			role, err := ip.skipBranch(idx, false)
			if err != nil {
				return err
			}
			if role == roleFi {
				ip.Ctx.PopConditional()
			} else {
				cond.Value, cond.InElse = true, true
			}
			return nil
		}
		for n > 0 {
			role, err := ip.skipBranch(idx, true)
			if err != nil {
				return err
			}
			switch role {
			case roleFi:
				ip.Ctx.PopConditional()
				return nil
			case roleElse:
				cond.Value, cond.InElse = true, true
				return nil
			}
			n--
		}
		cond.Value = true
		return nil
	}

	value, err := c.test(ip)
	cond := ip.Ctx.Conditional(idx)
	cond.Pending = false
	if err != nil {
		return err
	}
	if value {
		cond.Value = true
		return nil
	}
	role, err := ip.skipBranch(idx, false)
	if err != nil {
		return err
	}
	if role == roleFi {
		ip.Ctx.PopConditional()
	} else {
		cond.Value, cond.InElse = true, true
	}
	return nil
}

// skipBranch skips raw tokens up to the \else or \fi belonging to the
// conditional on level idx.  If or is set, \or also ends the skipped
// branch.  Nested conditionals are skipped as a whole.
func (ip *Interpreter) skipBranch(idx int, or bool) (condRole, error) {
	depth := 0
	for {
		t, err := ip.In.GetToken()
		if err != nil {
			cond := ip.Ctx.Conditional(idx)
			return roleFi, ip.eofError(err, texerr.RunawayConditional,
				"\\"+cond.Primitive, "opened at", cond.Locator)
		}
		if !t.IsCommand() {
			continue
		}
		c, ok := ip.meaning(t).(*ifCode)
		if !ok {
			continue
		}
		if c.IsIf() {
			depth++
			continue
		}
		switch c.role {
		case roleFi:
			if depth == 0 {
				return roleFi, nil
			}
			depth--
		case roleElse:
			if depth == 0 {
				return roleElse, nil
			}
		case roleOr:
			if depth == 0 && or {
				return roleOr, nil
			}
		}
	}
}

// skipToFi skips the rest of the active branch of the innermost
// conditional and closes it.
func (ip *Interpreter) skipToFi() error {
	idx := ip.Ctx.ConditionalLevel() - 1
	for {
		role, err := ip.skipBranch(idx, false)
		if err != nil {
			return err
		}
		if role == roleFi {
			ip.Ctx.PopConditional()
			return nil
		}
	}
}

// interrupted handles \else, \or and \fi which are read while the
// test of the innermost conditional is still being evaluated.
func (ip *Interpreter) interrupted(cond *state.Conditional, t token.Token) bool {
	if !cond.Pending {
		return false
	}
	ip.In.Push(frozenRelax, t)
	return true
}

func expandFi(ip *Interpreter, t token.Token) error {
	cond := ip.Ctx.TopConditional()
	if cond == nil {
		return texerr.At(texerr.ExtraFi, t)
	}
	if ip.interrupted(cond, t) {
		return nil
	}
	ip.Ctx.PopConditional()
	return nil
}

func expandElse(ip *Interpreter, t token.Token) error {
	cond := ip.Ctx.TopConditional()
	if cond == nil || cond.InElse {
		return texerr.At(texerr.ExtraElse, t)
	}
	if ip.interrupted(cond, t) {
		return nil
	}
	return ip.skipToFi()
}

func expandOr(ip *Interpreter, t token.Token) error {
	cond := ip.Ctx.TopConditional()
	if cond == nil || !cond.IsCase || cond.InElse {
		return texerr.At(texerr.ExtraOr, t)
	}
	if ip.interrupted(cond, t) {
		return nil
	}
	return ip.skipToFi()
}

// scanRelation reads one of the relations <, = and >.
func (ip *Interpreter) scanRelation() (rune, error) {
	t, err := ip.getXNonSpace()
	if err != nil {
		return 0, ip.eofError(err, texerr.MissingRelation)
	}
	if t.Kind == token.KindChar && t.Cat == token.CatOther {
		switch t.Char {
		case '<', '=', '>':
			return t.Char, nil
		}
	}
	ip.In.Push(t)
	return 0, texerr.At(texerr.MissingRelation, t)
}

func compare(a int64, rel rune, b int64) bool {
	switch rel {
	case '<':
		return a < b
	case '>':
		return a > b
	}
	return a == b
}

func testIfNum(ip *Interpreter) (bool, error) {
	a, err := ip.ScanInteger()
	if err != nil {
		return false, err
	}
	rel, err := ip.scanRelation()
	if err != nil {
		return false, err
	}
	b, err := ip.ScanInteger()
	if err != nil {
		return false, err
	}
	return compare(a, rel, b), nil
}

func testIfDim(ip *Interpreter) (bool, error) {
	a, err := ip.ScanDimen()
	if err != nil {
		return false, err
	}
	rel, err := ip.scanRelation()
	if err != nil {
		return false, err
	}
	b, err := ip.ScanDimen()
	if err != nil {
		return false, err
	}
	return compare(int64(a), rel, int64(b)), nil
}

func testIfOdd(ip *Interpreter) (bool, error) {
	n, err := ip.ScanInteger()
	return n%2 != 0, err
}

// testIfX compares two raw tokens.
func testIfX(ip *Interpreter) (bool, error) {
	a, err := ip.In.GetToken()
	if err != nil {
		return false, ip.eofError(err, texerr.RunawayConditional)
	}
	b, err := ip.In.GetToken()
	if err != nil {
		return false, ip.eofError(err, texerr.RunawayConditional)
	}
	if !a.IsCommand() || !b.IsCommand() {
		if a.IsCommand() || b.IsCommand() {
			ca, cb := a, b
			if a.IsCommand() {
				ca, cb = b, a
			}
			cm, ok := ip.meaning(cb).(*charMeaning)
			return ok && cm.tok == ca, nil
		}
		return a.Char == b.Char && a.Cat == b.Cat, nil
	}
	ma, mb := ip.meaning(a), ip.meaning(b)
	if ma == nil || mb == nil {
		return ma == nil && mb == nil, nil
	}
	return sameMeaning(ma, mb), nil
}

// charCat returns the character code and category which \if and
// \ifcat use to compare tokens.
func (ip *Interpreter) charCat(t token.Token) (rune, token.Catcode) {
	if t.IsCommand() && !ip.dontExpand {
		if cm, ok := ip.meaning(t).(*charMeaning); ok {
			return cm.tok.Char, cm.tok.Cat
		}
	}
	if t.Kind == token.KindChar && !t.IsActive() {
		return t.Char, t.Cat
	}
	return 256, 16
}

func testIfCharCat(byCat bool) func(ip *Interpreter) (bool, error) {
	return func(ip *Interpreter) (bool, error) {
		a, err := ip.GetXToken()
		if err != nil {
			return false, ip.eofError(err, texerr.RunawayConditional)
		}
		ca, ka := ip.charCat(a)
		b, err := ip.GetXToken()
		if err != nil {
			return false, ip.eofError(err, texerr.RunawayConditional)
		}
		cb, kb := ip.charCat(b)
		if byCat {
			return ka == kb, nil
		}
		return ca == cb, nil
	}
}

func testIfBox(check func(b *typeset.Box) bool) func(ip *Interpreter) (bool, error) {
	return func(ip *Interpreter) (bool, error) {
		n, err := ip.scanRegisterNumber()
		if err != nil {
			return false, err
		}
		return check(ip.Ctx.Box(strconv.FormatInt(n, 10))), nil
	}
}

func testIfDefined(ip *Interpreter) (bool, error) {
	t, err := ip.In.GetToken()
	if err != nil {
		return false, ip.eofError(err, texerr.RunawayConditional)
	}
	if !t.IsCommand() {
		return true, nil
	}
	return ip.meaning(t) != nil, nil
}

func testIfCsname(ip *Interpreter) (bool, error) {
	name, err := ip.scanCsname()
	if err != nil {
		return false, err
	}
	return ip.Ctx.Code(name) != nil, nil
}

func (ip *Interpreter) defineConditionals() {
	constant := func(v bool) func(ip *Interpreter) (bool, error) {
		return func(*Interpreter) (bool, error) { return v, nil }
	}
	for _, c := range []*ifCode{
		{name: "iftrue", test: constant(true)},
		{name: "iffalse", test: constant(false)},
		{name: "ifnum", test: testIfNum},
		{name: "ifdim", test: testIfDim},
		{name: "ifodd", test: testIfOdd},
		{name: "ifx", test: testIfX},
		{name: "if", test: testIfCharCat(false)},
		{name: "ifcat", test: testIfCharCat(true)},
		{name: "ifcase", caseTest: true},
		{name: "ifvoid", test: testIfBox(func(b *typeset.Box) bool { return b == nil })},
		{name: "ifhbox", test: testIfBox(func(b *typeset.Box) bool { return b != nil && b.Kind == typeset.HBox })},
		{name: "ifvbox", test: testIfBox(func(b *typeset.Box) bool { return b != nil && b.Kind == typeset.VBox })},
		{name: "ifdefined", test: testIfDefined},
		{name: "ifcsname", test: testIfCsname},
		{name: "else", role: roleElse},
		{name: "or", role: roleOr},
		{name: "fi", role: roleFi},
	} {
		ip.primitive(c)
	}
}
