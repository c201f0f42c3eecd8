// content.go -
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

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/token"
)

// addSpace adds interword glue.  \spaceskip is used if it is
// non-zero, otherwise the space of the current font.
func (ip *Interpreter) addSpace() error {
	g := ip.Ctx.Glue("spaceskip")
	if g == (dimen.Glue{}) {
		g = ip.Ctx.Font().SpaceGlue()
	}
	return ip.Out.AddSpace(g, ip.Ctx.Attributes())
}

func controlSpace(ip *Interpreter, t token.Token) error {
	return ip.Out.AddSpace(ip.Ctx.Font().SpaceGlue(), ip.Ctx.Attributes())
}

func addCharCode(ip *Interpreter, t token.Token) error {
	r, err := ip.scanCharCode()
	if err != nil {
		return err
	}
	return ip.Out.AddChar(r, ip.Ctx.Attributes())
}

func addSkip(vertical bool) func(ip *Interpreter, t token.Token) error {
	return func(ip *Interpreter, t token.Token) error {
		g, err := ip.ScanGlue()
		if err != nil {
			return err
		}
		return ip.Out.AddGlue(g, vertical)
	}
}

func addKern(ip *Interpreter, t token.Token) error {
	d, err := ip.ScanDimen()
	if err != nil {
		return err
	}
	return ip.Out.AddKern(d)
}

func addPenalty(ip *Interpreter, t token.Token) error {
	p, err := ip.ScanInteger()
	if err != nil {
		return err
	}
	return ip.Out.AddPenalty(p)
}

func endParagraph(ip *Interpreter, t token.Token) error {
	return ip.Out.Par()
}

func relax(ip *Interpreter, t token.Token) error {
	return nil
}

func ignoreSpaces(ip *Interpreter, t token.Token) error {
	next, err := ip.getXNonSpace()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	ip.In.Push(next)
	return nil
}

// changeCase implements \uppercase and \lowercase.  Character codes
// are mapped through the given table, category codes are kept.
func changeCase(tab state.Table) func(ip *Interpreter, t token.Token) error {
	return func(ip *Interpreter, t token.Token) error {
		err := ip.scanLeftBrace()
		if err != nil {
			return err
		}
		toks, err := ip.scanBalanced()
		if err != nil {
			return err
		}
		res := make(token.TokenList, len(toks))
		for i, tok := range toks {
			if tok.Kind == token.KindChar {
				if c := ip.Ctx.CharCode(tab, tok.Char); c != 0 {
					tok.Char = rune(c)
				}
			}
			res[i] = tok
		}
		ip.In.PushList(res)
		return nil
	}
}

func endJob(ip *Interpreter, t token.Token) error {
	ip.stopped = true
	return nil
}

func dumpFormat(ip *Interpreter, t token.Token) error {
	img, err := ip.Dump()
	if err != nil {
		return err
	}
	if ip.OnDump != nil {
		err = ip.OnDump(img)
		if err != nil {
			return err
		}
	}
	ip.stopped = true
	return nil
}

func (ip *Interpreter) defineContent() {
	for _, c := range []*command{
		{name: " ", fn: controlSpace},
		{name: "char", fn: addCharCode},
		{name: "hskip", fn: addSkip(false)},
		{name: "vskip", fn: addSkip(true)},
		{name: "kern", fn: addKern},
		{name: "penalty", fn: addPenalty},
		{name: "par", fn: endParagraph},
		{name: "relax", fn: relax},
		{name: "ignorespaces", fn: ignoreSpaces},
		{name: "uppercase", fn: changeCase(state.UcCode)},
		{name: "lowercase", fn: changeCase(state.LcCode)},
		{name: "end", fn: endJob},
		{name: "dump", fn: dumpFormat},
	} {
		ip.primitive(c)
	}
}
