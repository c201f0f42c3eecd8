// interp.go -
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

// Package interp implements the TeX expansion engine and the
// primitive commands.
//
// An Interpreter reads tokens from a tokenizer.Source, expands macros
// and conditionals, performs assignments on a state.Context and
// forwards all typeset material to a typeset.Typesetter.
package interp

import (
	"errors"
	"io"

	"github.com/npillmayer/schuko/tracing"

	"github.com/seehuhn/texmacro/tex/format"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/tokenizer"
	"github.com/seehuhn/texmacro/tex/typeset"
)

func tracer() tracing.Trace {
	return tracing.Select("tex.interp")
}

// Listener receives messages from the interpreter.
type Listener interface {
	// Message is called for \message, \show and \showthe.
	Message(text string)

	// Write is called for \write.
	Write(stream int64, text string)

	// Undefined is called when an undefined control sequence or
	// active character is executed.
	Undefined(t token.Token, loc token.Locator)
}

type nopListener struct{}

func (nopListener) Message(string)                       {}
func (nopListener) Write(int64, string)                  {}
func (nopListener) Undefined(token.Token, token.Locator) {}

// Limits bound the resources used by macro expansion.
type Limits struct {
	// MaxExpansionDepth is the maximal nesting depth of expansions.
	MaxExpansionDepth int

	// MaxPushback is the maximal number of tokens waiting in the
	// push-back buffers.
	MaxPushback int

	// MaxInputDepth is the maximal number of files and \scantokens
	// texts which can be open at the same time.
	MaxInputDepth int
}

// DefaultLimits are used when no limits are given.
var DefaultLimits = Limits{
	MaxExpansionDepth: 5000,
	MaxPushback:       4 << 20,
	MaxInputDepth:     100,
}

// Options describe how a new Interpreter is set up.  All fields are
// optional.
type Options struct {
	JobName  string
	State    *state.Options
	Limits   Limits
	Out      typeset.Typesetter
	Listener Listener

	// OnDump receives the image written by \dump.
	OnDump func(img *format.Image) error
}

// Interpreter is one TeX interpreter.  It is not safe for concurrent
// use.
type Interpreter struct {
	Ctx      *state.Context
	In       *tokenizer.Source
	Out      typeset.Typesetter
	Listener Listener
	JobName  string
	OnDump   func(img *format.Image) error

	limits  Limits
	flags   Flags
	depth   int
	stopped bool

	// noexpand is the token marked by \noexpand.  The mark applies
	// to the next token read.
	noexpand   *token.Token
	dontExpand bool

	primitives map[string]state.Code
	relax      state.Code
}

// frozenRelax is inserted when a conditional test is interrupted by
// \else, \or or \fi.  It means \relax even if \relax is redefined.
var frozenRelax = token.Token{Kind: token.KindControlSeq, Name: "relax", Index: -1}

// New creates an interpreter with all primitives defined.
func New(opt *Options) *Interpreter {
	if opt == nil {
		opt = &Options{}
	}
	ctx := state.NewContext(opt.State)
	ip := &Interpreter{
		Ctx:        ctx,
		In:         tokenizer.NewSource(ctx),
		Out:        opt.Out,
		Listener:   opt.Listener,
		JobName:    opt.JobName,
		OnDump:     opt.OnDump,
		limits:     opt.Limits,
		primitives: make(map[string]state.Code),
	}
	if ip.Out == nil {
		ip.Out = typeset.NewRecorder()
	}
	if ip.Listener == nil {
		ip.Listener = nopListener{}
	}
	if ip.JobName == "" {
		ip.JobName = "texput"
	}
	if ip.limits.MaxExpansionDepth <= 0 {
		ip.limits.MaxExpansionDepth = DefaultLimits.MaxExpansionDepth
	}
	if ip.limits.MaxPushback <= 0 {
		ip.limits.MaxPushback = DefaultLimits.MaxPushback
	}
	if ip.limits.MaxInputDepth <= 0 {
		ip.limits.MaxInputDepth = DefaultLimits.MaxInputDepth
	}
	ip.definePrimitives()
	ip.relax = ip.primitives["relax"]
	return ip
}

// Primitive returns the primitive with the given name, or nil.
func (ip *Interpreter) Primitive(name string) state.Code {
	return ip.primitives[name]
}

// GetToken returns the next raw token.
func (ip *Interpreter) GetToken() (token.Token, error) {
	t, err := ip.In.GetToken()
	ip.dontExpand = false
	if ip.noexpand != nil {
		ip.dontExpand = err == nil && t == *ip.noexpand
		ip.noexpand = nil
	}
	return t, err
}

// GetXToken returns the next token which cannot be expanded further.
// Tokens marked by \noexpand are returned unexpanded.
func (ip *Interpreter) GetXToken() (token.Token, error) {
	for {
		t, err := ip.GetToken()
		if err != nil || ip.dontExpand || !t.IsCommand() {
			return t, err
		}
		exp, ok := ip.meaning(t).(Expandable)
		if !ok {
			return t, nil
		}
		err = ip.expand(exp, t)
		if err != nil {
			return t, err
		}
	}
}

// getXNonSpace returns the next unexpandable token which is not a
// space.
func (ip *Interpreter) getXNonSpace() (token.Token, error) {
	for {
		t, err := ip.GetXToken()
		if err != nil || !t.Is(token.CatSpace) {
			return t, err
		}
	}
}

// getXNonBlankNonRelax skips spaces and \relax.
func (ip *Interpreter) getXNonBlankNonRelax() (token.Token, error) {
	for {
		t, err := ip.GetXToken()
		if err != nil {
			return t, err
		}
		if t.Is(token.CatSpace) || ip.dontExpand || ip.meaning(t) == ip.relax {
			continue
		}
		return t, nil
	}
}

// Push prepends tokens to the input.
func (ip *Interpreter) Push(toks ...token.Token) {
	ip.In.Push(toks...)
}

func (ip *Interpreter) meaning(t token.Token) state.Code {
	if t == frozenRelax {
		return ip.relax
	}
	return ip.Ctx.Meaning(t)
}

func (ip *Interpreter) expand(exp Expandable, t token.Token) error {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.limits.MaxExpansionDepth {
		return ip.fail(texerr.New(texerr.RecursionTooDeep, "expansion depth"), t)
	}
	err := exp.Expand(ip, t)
	if err != nil {
		return ip.fail(err, t)
	}
	if ip.In.Pending() > ip.limits.MaxPushback {
		return ip.fail(texerr.New(texerr.RecursionTooDeep, "input buffer"), t)
	}
	return nil
}

// fail attaches the offending token and the input position to err.
func (ip *Interpreter) fail(err error, t token.Token) error {
	if err == nil {
		return nil
	}
	var e *texerr.Error
	if errors.As(err, &e) && e.Token == nil {
		e.Token = &t
	}
	return ip.In.Annotate(err)
}

// eofError converts io.EOF into an error of the given kind.
func (ip *Interpreter) eofError(err error, kind texerr.Kind, args ...interface{}) error {
	if err == io.EOF {
		return ip.In.MakeError(kind, args...)
	}
	return err
}

// Run processes all input.  Run returns when the input is exhausted,
// after \end, or when an error occurs.
func (ip *Interpreter) Run() error {
	if toks := ip.Ctx.Toks("everyjob"); len(toks) > 0 {
		ip.In.PushList(toks.Copy())
	}
	for !ip.stopped {
		t, err := ip.GetXToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if ip.dontExpand {
			continue
		}
		err = ip.execute(t)
		if err != nil {
			return err
		}
	}
	return ip.finish()
}

func (ip *Interpreter) finish() error {
	if lvl := ip.Ctx.GroupLevel(); lvl > 0 {
		g := ip.Ctx.CurrentGroup()
		err := texerr.New(texerr.UnterminatedGroup, g.Type.String(), "group opened at", g.Locator)
		return err
	}
	if c := ip.Ctx.TopConditional(); c != nil {
		return texerr.New(texerr.RunawayConditional, "\\"+c.Primitive, "opened at", c.Locator)
	}
	return ip.Out.Finish()
}

// execute performs the action of an unexpandable token.
func (ip *Interpreter) execute(t token.Token) error {
	err := ip.dispatch(t)
	ip.flags = Flags{}
	return ip.fail(err, t)
}

func (ip *Interpreter) dispatch(t token.Token) error {
	if !t.IsCommand() {
		if ip.flags.any() {
			return texerr.At(texerr.CantUsePrefix, t)
		}
		return ip.executeChar(t)
	}
	code := ip.meaning(t)
	if code == nil {
		ip.undefined(t)
		return nil
	}
	if ip.flags.any() && !acceptsPrefix(code, ip.flags) {
		return texerr.At(texerr.CantUsePrefix, t)
	}
	if ip.Ctx.Count("tracingcommands") > 0 {
		tracer().Infof("{%s}", ip.showToken(t))
	}
	switch c := code.(type) {
	case Executable:
		return c.Execute(ip, t)
	case *charMeaning:
		return ip.executeChar(c.tok)
	}
	return texerr.At(texerr.CantUse, t)
}

func (ip *Interpreter) undefined(t token.Token) {
	loc := ip.In.Locator()
	tracer().Errorf("%s: undefined control sequence %s", loc, ip.showToken(t))
	ip.Listener.Undefined(t, loc)
}

func (ip *Interpreter) executeChar(t token.Token) error {
	switch t.Cat {
	case token.CatBeginGroup:
		ip.Ctx.OpenGroup(state.SimpleGroup, ip.In.Locator(), t)
		return nil
	case token.CatEndGroup:
		return ip.closeBrace(t)
	case token.CatSpace:
		return ip.addSpace()
	case token.CatMacroParam, token.CatTabMark:
		return texerr.At(texerr.CantUse, t)
	}
	return ip.Out.AddChar(t.Char, ip.Ctx.Attributes())
}

// showToken formats a token using the current escape character.
func (ip *Interpreter) showToken(t token.Token) string {
	return t.Format(ip.Ctx.EscapeChar())
}
