// code.go -
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

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

// Expandable is implemented by codes which are replaced by other
// tokens: macros, conditionals and expandable primitives.
type Expandable interface {
	state.Code
	Expand(ip *Interpreter, t token.Token) error
}

// Executable is implemented by codes which perform an action.
type Executable interface {
	state.Code
	Execute(ip *Interpreter, t token.Token) error
}

// Flags are the prefixes which apply to the next command.
type Flags struct {
	Global    bool
	Long      bool
	Outer     bool
	Protected bool
	Immediate bool
	Expanded  bool
}

func (f Flags) any() bool {
	return f != Flags{}
}

// expander is an expandable primitive.
type expander struct {
	name string
	fn   func(ip *Interpreter, t token.Token) error
}

func (p *expander) Name() string { return p.name }

func (p *expander) Expand(ip *Interpreter, t token.Token) error {
	return p.fn(ip, t)
}

// command is a primitive which does not accept prefixes.
type command struct {
	name string
	fn   func(ip *Interpreter, t token.Token) error

	// immediate commands accept \immediate.
	immediate bool
}

func (p *command) Name() string { return p.name }

func (p *command) Execute(ip *Interpreter, t token.Token) error {
	return p.fn(ip, t)
}

// assignment is a primitive which assigns a value.  The \globaldefs
// and \afterassignment handling is shared by all assignments.
type assignment struct {
	name   string
	assign func(ip *Interpreter, t token.Token, global bool) error

	// definition is set for \def and friends, which also accept
	// \long, \outer and \protected.
	definition bool
}

func (p *assignment) Name() string { return p.name }

func (p *assignment) Execute(ip *Interpreter, t token.Token) error {
	return ip.runAssignment(func(global bool) error {
		return p.assign(ip, t, global)
	})
}

// runAssignment applies \globaldefs before calling assign, and
// inserts the \afterassignment token afterwards.
func (ip *Interpreter) runAssignment(assign func(global bool) error) error {
	global := ip.flags.Global
	if gd := ip.Ctx.Count("globaldefs"); gd != 0 {
		global = gd > 0
	}
	err := assign(global)
	if err != nil {
		return err
	}
	if t, ok := ip.Ctx.TakeAfterAssignment(); ok {
		ip.In.Push(t)
	}
	return nil
}

// prefix is one of \global, \long, \outer, \protected, \immediate and
// \expanded.
type prefix struct {
	name string
	set  func(f *Flags)
}

func (p *prefix) Name() string { return p.name }

func (p *prefix) Execute(ip *Interpreter, t token.Token) error {
	p.set(&ip.flags)
	next, err := ip.getXNonBlankNonRelax()
	if err != nil {
		return ip.eofError(err, texerr.CantUsePrefix)
	}
	return ip.fail(ip.dispatch(next), next)
}

func acceptsPrefix(code state.Code, f Flags) bool {
	defOnly := f.Long || f.Outer || f.Protected || f.Expanded
	switch c := code.(type) {
	case *prefix:
		return true
	case *assignment:
		return c.definition || !defOnly
	case *quantity, *registerAlias, *fontCode:
		return !defOnly && !f.Immediate
	case *command:
		return c.immediate && !defOnly && !f.Global
	}
	return false
}

// charMeaning is the meaning of a control sequence which was \let to
// a character token.
type charMeaning struct {
	tok token.Token
}

func (c *charMeaning) Name() string { return string(c.tok.Char) }

// valueKind is the type of an internal quantity.
type valueKind int

const (
	intValue valueKind = iota
	dimenValue
	glueValue
	toksValue
)

type value struct {
	kind valueKind
	i    int64
	d    dimen.Dimen
	g    dimen.Glue
	toks token.TokenList
}

func (v value) tokens() token.TokenList {
	switch v.kind {
	case intValue:
		return token.FromString(strconv.FormatInt(v.i, 10))
	case dimenValue:
		return token.FromString(v.d.String())
	case glueValue:
		return token.FromString(v.g.String())
	}
	return v.toks.Copy()
}

// asInt coerces v to an integer, as TeX does when a dimension or glue
// is used where a number is expected.
func (v value) asInt() int64 {
	switch v.kind {
	case dimenValue:
		return int64(v.d)
	case glueValue:
		return int64(v.g.Width)
	}
	return v.i
}

// ref gives access to one register, parameter or table entry.
type ref struct {
	kind valueKind
	get  func() value

	// set is nil for read-only quantities.
	set func(v value, global bool) error
}

// internal is implemented by codes which denote a quantity, like
// \count or \tolerance.
type internal interface {
	state.Code
	kind() valueKind
	resolve(ip *Interpreter) (*ref, error)
}

// quantity is a primitive which denotes a quantity.  For \count and
// similar, resolve reads the register number from the input.
type quantity struct {
	name     string
	vk       valueKind
	resolver func(ip *Interpreter) (*ref, error)
}

func (q *quantity) Name() string    { return q.name }
func (q *quantity) kind() valueKind { return q.vk }

func (q *quantity) resolve(ip *Interpreter) (*ref, error) {
	return q.resolver(ip)
}

func (q *quantity) Execute(ip *Interpreter, t token.Token) error {
	return ip.assignInternal(q)
}

// regClass identifies the register banks.
type regClass int

const (
	countReg regClass = iota
	dimenReg
	skipReg
	toksReg
)

var regNames = [...]string{"count", "dimen", "skip", "toks"}

func (c regClass) String() string { return regNames[c] }

func (c regClass) kind() valueKind {
	switch c {
	case dimenReg:
		return dimenValue
	case skipReg:
		return glueValue
	case toksReg:
		return toksValue
	}
	return intValue
}

// registerAlias is the meaning of a control sequence defined by
// \countdef, \dimendef, \skipdef or \toksdef.
type registerAlias struct {
	class regClass
	index int64
}

func (r *registerAlias) Name() string {
	return r.class.String() + strconv.FormatInt(r.index, 10)
}

func (r *registerAlias) kind() valueKind { return r.class.kind() }

func (r *registerAlias) resolve(ip *Interpreter) (*ref, error) {
	return ip.registerRef(r.class, strconv.FormatInt(r.index, 10)), nil
}

func (r *registerAlias) Execute(ip *Interpreter, t token.Token) error {
	return ip.assignInternal(r)
}

// charDef is the meaning of a control sequence defined by \chardef.
type charDef struct {
	char rune
}

func (c *charDef) Name() string    { return "char" + strconv.Itoa(int(c.char)) }
func (c *charDef) kind() valueKind { return intValue }

func (c *charDef) resolve(ip *Interpreter) (*ref, error) {
	return &ref{
		kind: intValue,
		get:  func() value { return value{kind: intValue, i: int64(c.char)} },
	}, nil
}

func (c *charDef) Execute(ip *Interpreter, t token.Token) error {
	return ip.Out.AddChar(c.char, ip.Ctx.Attributes())
}

// fontCode is the meaning of a font identifier defined by \font.
type fontCode struct {
	font *typeset.Font
}

func (f *fontCode) Name() string { return f.font.ID }

func (f *fontCode) Execute(ip *Interpreter, t token.Token) error {
	return ip.runAssignment(func(global bool) error {
		ip.Ctx.SetFont(f.font, global)
		return nil
	})
}

// assignInternal performs an assignment like \count1=5.
func (ip *Interpreter) assignInternal(c internal) error {
	return ip.runAssignment(func(global bool) error {
		r, err := c.resolve(ip)
		if err != nil {
			return err
		}
		if r.set == nil {
			return texerr.New(texerr.Immutable, c.Name())
		}
		err = ip.ScanOptionalEquals()
		if err != nil {
			return err
		}
		v, err := ip.scanValue(r.kind)
		if err != nil {
			return err
		}
		return r.set(v, global)
	})
}

func (ip *Interpreter) scanValue(vk valueKind) (value, error) {
	v := value{kind: vk}
	var err error
	switch vk {
	case intValue:
		v.i, err = ip.ScanInteger()
	case dimenValue:
		v.d, err = ip.ScanDimen()
	case glueValue:
		v.g, err = ip.ScanGlue()
	case toksValue:
		v.toks, err = ip.scanToksValue()
	}
	return v, err
}

// internalOf returns the quantity denoted by t, if any.
func (ip *Interpreter) internalOf(t token.Token) (internal, bool) {
	if ip.dontExpand || !t.IsCommand() {
		return nil, false
	}
	c, ok := ip.meaning(t).(internal)
	return c, ok
}

// sameMeaning compares two meanings the way \ifx does.
func sameMeaning(a, b state.Code) bool {
	switch a := a.(type) {
	case *Macro:
		m, ok := b.(*Macro)
		return ok && a.Equal(m)
	case *charMeaning:
		c, ok := b.(*charMeaning)
		return ok && a.tok == c.tok
	case *charDef:
		c, ok := b.(*charDef)
		return ok && a.char == c.char
	case *registerAlias:
		r, ok := b.(*registerAlias)
		return ok && *a == *r
	case *fontCode:
		f, ok := b.(*fontCode)
		return ok && a.font == f.font
	}
	return a == b
}
