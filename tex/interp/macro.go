// macro.go -
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
	"strings"

	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

// Macro is a user defined macro.
//
// The pattern consists of delimiter tokens and parameter tokens
// token.Param(1), token.Param(2), ...  In the body, parameter tokens
// are replaced by the corresponding arguments; a parameter character
// in the body stands for itself.
type Macro struct {
	name    string
	Pattern token.TokenList
	Body    token.TokenList

	Long      bool
	Outer     bool
	Protected bool
}

// Name returns the name the macro was defined with.
func (m *Macro) Name() string { return m.name }

// Equal reports whether m and other have the same parameter text,
// body and prefixes.
func (m *Macro) Equal(other *Macro) bool {
	return m.Long == other.Long && m.Outer == other.Outer &&
		m.Protected == other.Protected &&
		m.Pattern.Equal(other.Pattern) && m.Body.Equal(other.Body)
}

// Meaning returns the macro the way \meaning shows it.
func (m *Macro) Meaning(escape rune) string {
	var b strings.Builder
	for _, pfx := range []struct {
		set  bool
		name string
	}{{m.Protected, "protected"}, {m.Long, "long"}, {m.Outer, "outer"}} {
		if pfx.set {
			if escape >= 0 {
				b.WriteRune(escape)
			}
			b.WriteString(pfx.name)
		}
	}
	if m.Protected || m.Long || m.Outer {
		b.WriteByte(' ')
	}
	b.WriteString("macro:")
	b.WriteString(m.Pattern.Format(escape))
	b.WriteString("->")
	b.WriteString(m.Body.Format(escape))
	return b.String()
}

// Expand reads the arguments of the macro and replaces the macro call
// by the body.
func (m *Macro) Expand(ip *Interpreter, t token.Token) error {
	args, err := m.readArgs(ip, t)
	if err != nil {
		return err
	}
	if ip.Ctx.Count("tracingmacros") > 0 {
		esc := ip.Ctx.EscapeChar()
		tracer().Infof("%s%s->%s", t.Format(esc), m.Pattern.Format(esc), m.Body.Format(esc))
		for i, arg := range args {
			tracer().Infof("#%d<-%s", i+1, arg.Format(esc))
		}
	}
	ip.In.PushList(m.substitute(args))
	return nil
}

func (m *Macro) substitute(args []token.TokenList) token.TokenList {
	res := make(token.TokenList, 0, len(m.Body))
	for _, t := range m.Body {
		if t.Kind == token.KindParam {
			res = append(res, args[t.Index-1]...)
		} else {
			res = append(res, t)
		}
	}
	return res
}

// readArgs matches the parameter text of m against the input.
func (m *Macro) readArgs(ip *Interpreter, call token.Token) ([]token.TokenList, error) {
	var args []token.TokenList
	pat := m.Pattern
	for len(pat) > 0 {
		p := pat[0]
		pat = pat[1:]
		if p.Kind != token.KindParam {
			t, err := ip.GetToken()
			if err != nil {
				return nil, ip.eofError(err, texerr.RunawayArgument, call.String())
			}
			if t != p {
				ip.In.Push(t)
				return nil, texerr.At(texerr.PatternMismatch, t, call.String())
			}
			continue
		}

		n := 0
		for n < len(pat) && pat[n].Kind != token.KindParam {
			n++
		}
		var arg token.TokenList
		var err error
		if n == 0 {
			arg, err = m.undelimitedArg(ip, call)
		} else {
			arg, err = m.delimitedArg(ip, call, pat[:n])
			pat = pat[n:]
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (m *Macro) undelimitedArg(ip *Interpreter, call token.Token) (token.TokenList, error) {
	var t token.Token
	var err error
	for {
		t, err = ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.RunawayArgument, call.String())
		}
		if !t.Is(token.CatSpace) {
			break
		}
	}
	if err := m.checkArgToken(ip, call, t); err != nil {
		return nil, err
	}
	switch {
	case t.Is(token.CatBeginGroup):
		return m.groupArg(ip, call)
	case t.Is(token.CatEndGroup):
		return nil, texerr.At(texerr.ExtraRightBrace, t, call.String())
	}
	return token.TokenList{t}, nil
}

// groupArg reads the remainder of a braced argument.  The braces are
// not included.
func (m *Macro) groupArg(ip *Interpreter, call token.Token) (token.TokenList, error) {
	var res token.TokenList
	depth := 0
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.RunawayArgument, call.String())
		}
		if err := m.checkArgToken(ip, call, t); err != nil {
			return nil, err
		}
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			if depth == 0 {
				return res, nil
			}
			depth--
		}
		res = append(res, t)
	}
}

// delimitedArg reads tokens up to the first occurrence of delim
// outside of braces.
func (m *Macro) delimitedArg(ip *Interpreter, call token.Token, delim token.TokenList) (token.TokenList, error) {
	var res token.TokenList
	depth := 0
	// all tokens from index top on are outside of braces
	top := 0
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.RunawayArgument, call.String())
		}
		if err := m.checkArgToken(ip, call, t); err != nil {
			return nil, err
		}
		res = append(res, t)
		if depth == 0 {
			k := len(res) - len(delim)
			if k >= top && res[k:].Equal(delim) {
				res = res[:k]
				break
			}
		}
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			if depth == 0 {
				return nil, texerr.At(texerr.ExtraRightBrace, t, call.String())
			}
			depth--
			if depth == 0 {
				top = len(res)
			}
		}
	}
	if isSingleGroup(res) {
		res = res[1 : len(res)-1]
	}
	return res, nil
}

// isSingleGroup reports whether toks has the form {...} with matching
// outer braces.
func isSingleGroup(toks token.TokenList) bool {
	n := len(toks)
	if n < 2 || !toks[0].Is(token.CatBeginGroup) || !toks[n-1].Is(token.CatEndGroup) {
		return false
	}
	depth := 0
	for i, t := range toks {
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			depth--
			if depth == 0 && i < n-1 {
				return false
			}
		}
	}
	return true
}

func (m *Macro) checkArgToken(ip *Interpreter, call, t token.Token) error {
	if !t.IsCommand() {
		return nil
	}
	if !m.Long && t.IsCS() && t.Name == "par" {
		ip.In.Push(t)
		return texerr.At(texerr.RunawayArgument, call, "paragraph ended before", call.String(), "was complete")
	}
	if om, ok := ip.meaning(t).(*Macro); ok && om.Outer {
		ip.In.Push(t)
		return texerr.At(texerr.OuterInArgument, t, "while scanning use of", call.String())
	}
	return nil
}

// readDefinition reads the parameter text and the body of a macro
// definition.  If expand is set, the body is expanded as for \edef.
func (ip *Interpreter) readDefinition(name string, expand bool) (*Macro, error) {
	m := &Macro{name: name}
	nParams := 0
	braceParam := false
paramText:
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.MissingLeftBrace)
		}
		switch {
		case t.Is(token.CatBeginGroup):
			break paramText
		case t.Is(token.CatEndGroup):
			return nil, texerr.At(texerr.MissingLeftBrace, t)
		case t.Is(token.CatMacroParam):
			next, err := ip.GetToken()
			if err != nil {
				return nil, ip.eofError(err, texerr.MissingLeftBrace)
			}
			if next.Is(token.CatBeginGroup) {
				m.Pattern = append(m.Pattern, next)
				braceParam = true
				break paramText
			}
			if next.Kind != token.KindChar || next.Char != rune('1'+nParams) || nParams >= 9 {
				return nil, texerr.At(texerr.ParameterNumber, next)
			}
			nParams++
			m.Pattern = append(m.Pattern, token.Param(nParams))
		default:
			m.Pattern = append(m.Pattern, t)
		}
	}

	body, err := ip.readBody(nParams, expand)
	if err != nil {
		return nil, err
	}
	if braceParam {
		body = append(body, m.Pattern[len(m.Pattern)-1])
	}
	m.Body = body
	return m, nil
}

// readBody reads a macro body up to the matching closing brace and
// converts parameter references into parameter tokens.
func (ip *Interpreter) readBody(nParams int, expand bool) (token.TokenList, error) {
	var res token.TokenList
	depth := 0
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.UnterminatedGroup)
		}
		if expand && !ip.dontExpand && t.IsCommand() {
			code := ip.meaning(t)
			if code == ip.primitives["the"] {
				toks, err := ip.theTokens()
				if err != nil {
					return nil, err
				}
				res = append(res, toks...)
				continue
			}
			if exp, ok := code.(Expandable); ok {
				if m, isMacro := exp.(*Macro); !isMacro || !m.Protected {
					if err := ip.expand(exp, t); err != nil {
						return nil, err
					}
					continue
				}
			}
		}
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			if depth == 0 {
				return res, nil
			}
			depth--
		case t.Is(token.CatMacroParam):
			next, err := ip.GetToken()
			if err != nil {
				return nil, ip.eofError(err, texerr.UnterminatedGroup)
			}
			if next.Is(token.CatMacroParam) {
				res = append(res, next)
				continue
			}
			if next.Kind != token.KindChar || next.Char < '1' || next.Char > '9' {
				return nil, texerr.At(texerr.IllegalParameter, next)
			}
			k := int(next.Char - '0')
			if k > nParams {
				return nil, texerr.At(texerr.IllegalParameter, next, "#"+strconv.Itoa(k))
			}
			res = append(res, token.Param(k))
			continue
		}
		res = append(res, t)
	}
}
