// expand.go -
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
	"fmt"
	"strconv"
	"strings"

	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

func expandAfter(ip *Interpreter, t token.Token) error {
	first, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	second, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	if second.IsCommand() && !ip.dontExpand {
		if exp, ok := ip.meaning(second).(Expandable); ok {
			err = ip.expand(exp, second)
			if err != nil {
				return err
			}
			ip.In.Push(first)
			return nil
		}
	}
	ip.In.Push(first, second)
	return nil
}

func noExpand(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	if next.IsCommand() {
		if _, ok := ip.meaning(next).(Expandable); ok {
			ip.noexpand = &next
		}
	}
	ip.In.Push(next)
	return nil
}

// scanCsname reads the characters of a control sequence name up to
// \endcsname.
func (ip *Interpreter) scanCsname() (string, error) {
	endcsname := ip.primitives["endcsname"]
	var name []rune
	for {
		t, err := ip.GetXToken()
		if err != nil {
			return "", ip.eofError(err, texerr.MissingEndcsname)
		}
		if t.IsCommand() {
			if !ip.dontExpand && ip.meaning(t) == endcsname {
				return string(name), nil
			}
			ip.In.Push(t)
			return "", texerr.At(texerr.MissingEndcsname, t)
		}
		name = append(name, t.Char)
	}
}

func csName(ip *Interpreter, t token.Token) error {
	name, err := ip.scanCsname()
	if err != nil {
		return err
	}
	if ip.Ctx.Code(name) == nil {
		ip.Ctx.SetCode(name, ip.relax, false)
	}
	ip.In.Push(token.CS(name))
	return nil
}

// stringTokens converts t into character tokens, as \string does.
func (ip *Interpreter) stringTokens(t token.Token) token.TokenList {
	if t.IsCS() {
		return token.FromString(t.Format(ip.Ctx.EscapeChar()))
	}
	if t.Char == ' ' {
		return token.TokenList{token.Space}
	}
	return token.TokenList{token.Other(t.Char)}
}

func expandString(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	if next == frozenRelax {
		next = token.CS("relax")
	}
	ip.In.PushList(ip.stringTokens(next))
	return nil
}

func expandNumber(ip *Interpreter, t token.Token) error {
	n, err := ip.ScanInteger()
	if err != nil {
		return err
	}
	ip.In.PushList(token.FromString(strconv.FormatInt(n, 10)))
	return nil
}

var romanDigits = []struct {
	value int64
	text  string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func romanNumeral(n int64) string {
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.text)
			n -= d.value
		}
	}
	return b.String()
}

func expandRoman(ip *Interpreter, t token.Token) error {
	n, err := ip.ScanInteger()
	if err != nil {
		return err
	}
	ip.In.PushList(token.FromString(romanNumeral(n)))
	return nil
}

// theTokens reads an internal quantity and returns its value as a
// token list, as \the does.
func (ip *Interpreter) theTokens() (token.TokenList, error) {
	t, err := ip.GetXToken()
	if err != nil {
		return nil, ip.eofError(err, texerr.MissingNumber)
	}
	if c, ok := ip.internalOf(t); ok {
		r, err := c.resolve(ip)
		if err != nil {
			return nil, err
		}
		return r.get().tokens(), nil
	}
	if !ip.dontExpand && t.IsCommand() {
		switch c := ip.meaning(t).(type) {
		case *fontCode:
			return token.TokenList{token.CS(c.font.ID)}, nil
		case *assignment:
			if c == ip.primitives["font"] {
				return token.TokenList{token.CS(ip.Ctx.Font().ID)}, nil
			}
		}
	}
	ip.In.Push(t)
	return nil, texerr.At(texerr.CantUse, t, "after \\the")
}

func expandThe(ip *Interpreter, t token.Token) error {
	toks, err := ip.theTokens()
	if err != nil {
		return err
	}
	ip.In.PushList(toks)
	return nil
}

var catDescriptions = map[token.Catcode]string{
	token.CatBeginGroup:  "begin-group character ",
	token.CatEndGroup:    "end-group character ",
	token.CatMathShift:   "math shift character ",
	token.CatTabMark:     "alignment tab character ",
	token.CatMacroParam:  "macro parameter character ",
	token.CatSuperscript: "superscript character ",
	token.CatSubscript:   "subscript character ",
	token.CatSpace:       "blank space ",
	token.CatLetter:      "the letter ",
	token.CatOther:       "the character ",
}

func describeChar(t token.Token) string {
	if desc, ok := catDescriptions[t.Cat]; ok {
		return desc + string(t.Char)
	}
	return "the character " + string(t.Char)
}

// meaningText returns the description of t printed by \meaning and
// \show.
func (ip *Interpreter) meaningText(t token.Token) string {
	if !t.IsCommand() {
		return describeChar(t)
	}
	esc := ip.Ctx.EscapeChar()
	escape := ""
	if esc >= 0 {
		escape = string(esc)
	}
	switch c := ip.meaning(t).(type) {
	case nil:
		return "undefined"
	case *Macro:
		return c.Meaning(esc)
	case *charMeaning:
		return describeChar(c.tok)
	case *charDef:
		return fmt.Sprintf("%schar\"%X", escape, c.char)
	case *registerAlias:
		return escape + c.Name()
	case *fontCode:
		return "select font " + c.font.FullName()
	default:
		return escape + c.Name()
	}
}

func expandMeaning(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	ip.In.PushList(token.FromString(ip.meaningText(next)))
	return nil
}

func expandJobName(ip *Interpreter, t token.Token) error {
	ip.In.PushList(token.FromString(ip.JobName))
	return nil
}

func expandFontName(ip *Interpreter, t token.Token) error {
	next, err := ip.getXNonSpace()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	switch c := ip.meaning(next).(type) {
	case *fontCode:
		ip.In.PushList(token.FromString(c.font.FullName()))
		return nil
	case *assignment:
		if c == ip.primitives["font"] {
			ip.In.PushList(token.FromString(ip.Ctx.Font().FullName()))
			return nil
		}
	}
	ip.In.Push(next)
	return texerr.At(texerr.MissingControlSequence, next, "font identifier expected")
}

func expandInput(ip *Interpreter, t token.Token) error {
	name, err := ip.scanFileName()
	if err != nil {
		return err
	}
	if err := ip.checkInputDepth(); err != nil {
		return err
	}
	err = ip.In.Include(name)
	if err != nil {
		return texerr.At(texerr.FileNotFound, t, name)
	}
	return nil
}

func (ip *Interpreter) checkInputDepth() error {
	if ip.In.Depth() >= ip.limits.MaxInputDepth {
		return texerr.New(texerr.RecursionTooDeep, "input nesting")
	}
	return nil
}

func expandEndInput(ip *Interpreter, t token.Token) error {
	ip.In.EndInput()
	return nil
}

// expandScanTokens reads an unexpanded balanced text and reads it again,
// using the current category codes.
func expandScanTokens(ip *Interpreter, t token.Token) error {
	err := ip.scanLeftBrace()
	if err != nil {
		return err
	}
	toks, err := ip.scanBalanced()
	if err != nil {
		return err
	}
	if err := ip.checkInputDepth(); err != nil {
		return err
	}
	var b strings.Builder
	esc := ip.Ctx.EscapeChar()
	for _, tok := range toks {
		b.WriteString(tok.Format(esc))
		if tok.IsCS() {
			b.WriteByte(' ')
		}
	}
	ip.In.PushString(b.String(), "scantokens")
	return nil
}

func (ip *Interpreter) defineExpandables() {
	for _, c := range []*expander{
		{"expandafter", expandAfter},
		{"noexpand", noExpand},
		{"csname", csName},
		{"string", expandString},
		{"number", expandNumber},
		{"romannumeral", expandRoman},
		{"the", expandThe},
		{"meaning", expandMeaning},
		{"jobname", expandJobName},
		{"fontname", expandFontName},
		{"input", expandInput},
		{"endinput", expandEndInput},
		{"scantokens", expandScanTokens},
	} {
		ip.primitive(c)
	}
	ip.primitive(&command{name: "endcsname", fn: func(ip *Interpreter, t token.Token) error {
		return texerr.At(texerr.CantUse, t, "extra \\endcsname")
	}})
}
