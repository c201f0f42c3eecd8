// groups.go -
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

// closeBrace handles an end-group character.
func (ip *Interpreter) closeBrace(t token.Token) error {
	if ip.Ctx.IsGlobalGroup() {
		return texerr.At(texerr.TooManyRightBraces, t)
	}
	g := ip.Ctx.CurrentGroup()
	if g.Type == state.SemiSimpleGroup {
		return texerr.At(texerr.GroupMismatch, t, "\\begingroup opened at", g.Locator)
	}
	return ip.Ctx.CloseGroup(ip.Out, ip.In)
}

func beginGroup(ip *Interpreter, t token.Token) error {
	ip.Ctx.OpenGroup(state.SemiSimpleGroup, ip.In.Locator(), t)
	return nil
}

func endGroup(ip *Interpreter, t token.Token) error {
	if ip.Ctx.IsGlobalGroup() {
		return texerr.At(texerr.ExtraEndgroup, t)
	}
	g := ip.Ctx.CurrentGroup()
	if g.Type != state.SemiSimpleGroup {
		return texerr.At(texerr.GroupMismatch, t, g.Type.String()+" group opened at", g.Locator)
	}
	return ip.Ctx.CloseGroup(ip.Out, ip.In)
}

func afterGroup(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	ip.Ctx.AfterGroup(next)
	return nil
}

func afterAssignment(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	ip.Ctx.SetAfterAssignment(next)
	return nil
}

// scanBoxSpec reads the optional "to <dimen>" or "spread <dimen>".
func (ip *Interpreter) scanBoxSpec() (typeset.BoxSpec, error) {
	var spec typeset.BoxSpec
	ok, err := ip.ScanKeyword("to")
	if err != nil {
		return spec, err
	}
	if ok {
		spec.Exact = true
	} else {
		ok, err = ip.ScanKeyword("spread")
		if err != nil {
			return spec, err
		}
		if !ok {
			return spec, nil
		}
		spec.Spread = true
	}
	spec.Size, err = ip.ScanDimen()
	return spec, err
}

// beginBox reads the box specification and the opening brace and
// starts a box group.  When the group ends, the box is passed to
// deliver.
func (ip *Interpreter) beginBox(kind typeset.BoxKind, t token.Token, deliver func(b *typeset.Box) error) error {
	spec, err := ip.scanBoxSpec()
	if err != nil {
		return err
	}
	err = ip.scanLeftBrace()
	if err != nil {
		return err
	}
	err = ip.Out.OpenBox(kind, spec)
	if err != nil {
		return err
	}
	gt, every := state.HBoxGroup, "everyhbox"
	if kind == typeset.VBox {
		gt, every = state.VBoxGroup, "everyvbox"
	}
	g := ip.Ctx.OpenGroup(gt, ip.In.Locator(), t)
	g.Deliver = deliver
	if toks := ip.Ctx.Toks(every); len(toks) > 0 {
		ip.In.PushList(toks.Copy())
	}
	return nil
}

func boxCommand(name string, kind typeset.BoxKind) *command {
	return &command{
		name: name,
		fn: func(ip *Interpreter, t token.Token) error {
			return ip.beginBox(kind, t, ip.Out.AddBox)
		},
	}
}

// takeBox returns the contents of box register n.  For \box the
// register becomes void, for \copy a copy is returned.
func (ip *Interpreter) takeBox(n int64, keep bool) *typeset.Box {
	name := strconv.FormatInt(n, 10)
	b := ip.Ctx.Box(name)
	if keep {
		return b.Copy()
	}
	if b != nil {
		ip.Ctx.SetBox(name, nil, false)
	}
	return b
}

func useBox(keep bool) func(ip *Interpreter, t token.Token) error {
	return func(ip *Interpreter, t token.Token) error {
		n, err := ip.scanRegisterNumber()
		if err != nil {
			return err
		}
		b := ip.takeBox(n, keep)
		if b == nil {
			return nil
		}
		return ip.Out.AddBox(b)
	}
}

func assignSetBox(ip *Interpreter, t token.Token, global bool) error {
	n, err := ip.scanRegisterNumber()
	if err != nil {
		return err
	}
	err = ip.ScanOptionalEquals()
	if err != nil {
		return err
	}
	name := strconv.FormatInt(n, 10)
	deliver := func(b *typeset.Box) error {
		ip.Ctx.SetBox(name, b, global)
		return nil
	}

	next, err := ip.getXNonBlankNonRelax()
	if err != nil {
		return ip.eofError(err, texerr.MissingLeftBrace)
	}
	if c, ok := ip.meaning(next).(*command); ok && next.IsCommand() {
		switch c.name {
		case "hbox":
			return ip.beginBox(typeset.HBox, next, deliver)
		case "vbox":
			return ip.beginBox(typeset.VBox, next, deliver)
		case "box", "copy":
			m, err := ip.scanRegisterNumber()
			if err != nil {
				return err
			}
			return deliver(ip.takeBox(m, c.name == "copy"))
		}
	}
	ip.In.Push(next)
	return texerr.At(texerr.CantUse, next, "a box was supposed to be here")
}

func (ip *Interpreter) defineGroups() {
	for _, c := range []*command{
		{name: "begingroup", fn: beginGroup},
		{name: "endgroup", fn: endGroup},
		{name: "aftergroup", fn: afterGroup},
		{name: "afterassignment", fn: afterAssignment},
		boxCommand("hbox", typeset.HBox),
		boxCommand("vbox", typeset.VBox),
		{name: "box", fn: useBox(false)},
		{name: "copy", fn: useBox(true)},
	} {
		ip.primitive(c)
	}
	ip.primitive(&assignment{name: "setbox", assign: assignSetBox})
}
