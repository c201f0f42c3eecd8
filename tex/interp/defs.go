// defs.go -
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
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

func codeName(t token.Token) string {
	if t.IsActive() {
		return string(t.Char)
	}
	return t.Name
}

// define implements \def, \gdef, \edef and \xdef.
func define(name string, alwaysGlobal, expand bool) *assignment {
	return &assignment{
		name:       name,
		definition: true,
		assign: func(ip *Interpreter, t token.Token, global bool) error {
			if alwaysGlobal && ip.Ctx.Count("globaldefs") >= 0 {
				global = true
			}
			flags := ip.flags
			cs, err := ip.getRToken()
			if err != nil {
				return err
			}
			m, err := ip.readDefinition(codeName(cs), expand || flags.Expanded)
			if err != nil {
				return err
			}
			m.Long = flags.Long
			m.Outer = flags.Outer
			m.Protected = flags.Protected
			ip.Ctx.SetMeaning(cs, m, global)
			return nil
		},
	}
}

// letMeaning returns the meaning a control sequence gets from
// \let\cs=t.
func (ip *Interpreter) letMeaning(t token.Token) state.Code {
	if t.IsCommand() {
		return ip.meaning(t)
	}
	return &charMeaning{tok: t}
}

func assignLet(ip *Interpreter, t token.Token, global bool) error {
	cs, err := ip.getRToken()
	if err != nil {
		return err
	}
	next, err := ip.In.GetNonSpace()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	if next.IsOther('=') {
		next, err = ip.In.GetToken()
		if err == nil && next.Is(token.CatSpace) {
			next, err = ip.In.GetToken()
		}
		if err != nil {
			return ip.eofError(err, texerr.MissingControlSequence)
		}
	}
	ip.Ctx.SetMeaning(cs, ip.letMeaning(next), global)
	return nil
}

func assignFutureLet(ip *Interpreter, t token.Token, global bool) error {
	cs, err := ip.getRToken()
	if err != nil {
		return err
	}
	first, err := ip.In.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	second, err := ip.In.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	ip.In.Push(first, second)
	ip.Ctx.SetMeaning(cs, ip.letMeaning(second), global)
	return nil
}

func assignCharDef(ip *Interpreter, t token.Token, global bool) error {
	cs, err := ip.getRToken()
	if err != nil {
		return err
	}
	ip.Ctx.SetMeaning(cs, ip.relax, global)
	err = ip.ScanOptionalEquals()
	if err != nil {
		return err
	}
	r, err := ip.scanCharCode()
	if err != nil {
		return err
	}
	ip.Ctx.SetMeaning(cs, &charDef{char: r}, global)
	return nil
}

// registerDef implements \countdef, \dimendef, \skipdef and \toksdef.
func registerDef(class regClass) *assignment {
	return &assignment{
		name: class.String() + "def",
		assign: func(ip *Interpreter, t token.Token, global bool) error {
			cs, err := ip.getRToken()
			if err != nil {
				return err
			}
			ip.Ctx.SetMeaning(cs, ip.relax, global)
			err = ip.ScanOptionalEquals()
			if err != nil {
				return err
			}
			n, err := ip.scanRegisterNumber()
			if err != nil {
				return err
			}
			ip.Ctx.SetMeaning(cs, &registerAlias{class: class, index: n}, global)
			return nil
		},
	}
}

func (ip *Interpreter) defineDefinitions() {
	ip.primitive(define("def", false, false))
	ip.primitive(define("gdef", true, false))
	ip.primitive(define("edef", false, true))
	ip.primitive(define("xdef", true, true))
	ip.primitive(&assignment{name: "let", assign: assignLet})
	ip.primitive(&assignment{name: "futurelet", assign: assignFutureLet})
	ip.primitive(&assignment{name: "chardef", assign: assignCharDef})
	for _, class := range []regClass{countReg, dimenReg, skipReg, toksReg} {
		ip.primitive(registerDef(class))
	}

	for _, p := range []*prefix{
		{"global", func(f *Flags) { f.Global = true }},
		{"long", func(f *Flags) { f.Long = true }},
		{"outer", func(f *Flags) { f.Outer = true }},
		{"protected", func(f *Flags) { f.Protected = true }},
		{"immediate", func(f *Flags) { f.Immediate = true }},
		{"expanded", func(f *Flags) { f.Expanded = true }},
	} {
		ip.primitive(p)
	}
}
