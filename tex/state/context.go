// context.go -
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

// Package state implements the grouped context of the TeX interpreter.
//
// The Context stores registers, per-character tables, the meanings of
// control sequences and the current typesetting attributes.  All
// assignments go through the setters of this package; local
// assignments are undone when the enclosing group ends.  Lookups never
// fail: unset registers read as zero or empty.
package state

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

func tracer() tracing.Trace {
	return tracing.Select("tex.state")
}

// Code is the meaning of a control sequence or active character.
type Code interface {
	Name() string
}

// Context holds the complete mutable state of one interpreter.
type Context struct {
	group *Group
	level int

	catcodes   map[rune]token.Catcode
	catDefault func(r rune) token.Catcode
	preset     string
	tables     [numTables]map[rune]int64
	unicode    bool

	counts map[string]int64
	dimens map[string]dimen.Dimen
	glues  map[string]dimen.Glue
	toks   map[string]token.TokenList
	boxes  map[string]*typeset.Box

	codes  map[string]Code
	active map[rune]Code

	font      *typeset.Font
	color     typeset.Color
	direction typeset.Direction

	conds       []*Conditional
	afterAssign *token.Token
}

// Options control the initial state of a Context.
type Options struct {
	// Preset selects the initial category codes, either "initex"
	// (the default) or "plain".  Both presets give # the parameter
	// category.
	Preset string

	// UnicodeLetters gives category letter and case codes to all
	// Unicode letters, not only to a-z and A-Z.
	UnicodeLetters bool
}

// NewContext returns a Context with all registers set to their
// initial values.
func NewContext(opt *Options) *Context {
	if opt == nil {
		opt = &Options{}
	}
	ctx := &Context{
		group:    &Group{Type: GlobalGroup},
		catcodes: make(map[rune]token.Catcode),
		unicode:  opt.UnicodeLetters,
		counts:   make(map[string]int64),
		dimens:   make(map[string]dimen.Dimen),
		glues:    make(map[string]dimen.Glue),
		toks:     make(map[string]token.TokenList),
		boxes:    make(map[string]*typeset.Box),
		codes:    make(map[string]Code),
		active:   make(map[rune]Code),
		font:     typeset.NullFont,
	}
	for i := range ctx.tables {
		ctx.tables[i] = make(map[rune]int64)
	}
	ctx.setPreset(opt.Preset)
	ctx.counts["mag"] = 1000
	ctx.counts["tolerance"] = 10000
	ctx.counts["maxdeadcycles"] = 25
	ctx.counts["hangafter"] = 1
	ctx.counts["escapechar"] = '\\'
	ctx.counts["endlinechar"] = '\r'
	return ctx
}

// EndLineChar returns the value of \endlinechar, or -1 if no
// character is to be appended to input lines.
func (ctx *Context) EndLineChar() rune {
	c := ctx.Count("endlinechar")
	if c < 0 || c > 0x10FFFF {
		return -1
	}
	return rune(c)
}

// EscapeChar returns the value of \escapechar, or -1 if control
// sequences are shown without escape character.
func (ctx *Context) EscapeChar() rune {
	c := ctx.Count("escapechar")
	if c < 0 || c > 0x10FFFF {
		return -1
	}
	return rune(c)
}

// Count returns the integer register or parameter with the given
// name.  Numbered registers use the decimal number as their name.
func (ctx *Context) Count(name string) int64 {
	return ctx.counts[name]
}

// SetCount assigns to an integer register.
func (ctx *Context) SetCount(name string, v int64, global bool) {
	assign(ctx, ctx.counts, "count "+name, name, v, global)
}

// Dimen returns a dimension register or parameter.
func (ctx *Context) Dimen(name string) dimen.Dimen {
	return ctx.dimens[name]
}

// SetDimen assigns to a dimension register.
func (ctx *Context) SetDimen(name string, v dimen.Dimen, global bool) {
	assign(ctx, ctx.dimens, "dimen "+name, name, v, global)
}

// Glue returns a glue register or parameter.
func (ctx *Context) Glue(name string) dimen.Glue {
	return ctx.glues[name]
}

// SetGlue assigns to a glue register.
func (ctx *Context) SetGlue(name string, v dimen.Glue, global bool) {
	assign(ctx, ctx.glues, "skip "+name, name, v, global)
}

// Toks returns a token list register or parameter.  The returned list
// must not be modified.
func (ctx *Context) Toks(name string) token.TokenList {
	return ctx.toks[name]
}

// SetToks assigns to a token list register.
func (ctx *Context) SetToks(name string, v token.TokenList, global bool) {
	assign(ctx, ctx.toks, "toks "+name, name, v, global)
}

// Box returns the contents of a box register, or nil if the register
// is void.
func (ctx *Context) Box(name string) *typeset.Box {
	return ctx.boxes[name]
}

// SetBox assigns to a box register.  Setting nil makes the register
// void.
func (ctx *Context) SetBox(name string, b *typeset.Box, global bool) {
	assign(ctx, ctx.boxes, "box "+name, name, b, global)
}

// Code returns the meaning of the control sequence with the given
// name, or nil if the control sequence is undefined.
func (ctx *Context) Code(name string) Code {
	return ctx.codes[name]
}

// SetCode binds a control sequence.  Binding nil makes it undefined.
func (ctx *Context) SetCode(name string, c Code, global bool) {
	assign(ctx, ctx.codes, "\\"+name, name, c, global)
	if c == nil {
		delete(ctx.codes, name)
	}
}

// Active returns the meaning of the active character r.
func (ctx *Context) Active(r rune) Code {
	return ctx.active[r]
}

// SetActive binds an active character.
func (ctx *Context) SetActive(r rune, c Code, global bool) {
	assign(ctx, ctx.active, "active "+string(r), r, c, global)
	if c == nil {
		delete(ctx.active, r)
	}
}

// Meaning returns the code bound to a control sequence or active
// character token.  For all other tokens, nil is returned.
func (ctx *Context) Meaning(t token.Token) Code {
	switch {
	case t.IsCS():
		return ctx.codes[t.Name]
	case t.IsActive():
		return ctx.active[t.Char]
	}
	return nil
}

// SetMeaning binds t, which must be a control sequence or an active
// character.
func (ctx *Context) SetMeaning(t token.Token, c Code, global bool) {
	if t.IsActive() {
		ctx.SetActive(t.Char, c, global)
	} else {
		ctx.SetCode(t.Name, c, global)
	}
}

// Font returns the current font.
func (ctx *Context) Font() *typeset.Font {
	return ctx.font
}

// SetFont selects the current font.
func (ctx *Context) SetFont(f *typeset.Font, global bool) {
	assignVar(ctx, &ctx.font, "font", f, global)
}

// SetColor sets the current text color.
func (ctx *Context) SetColor(c typeset.Color, global bool) {
	assignVar(ctx, &ctx.color, "color", c, global)
}

// SetDirection sets the current writing direction.
func (ctx *Context) SetDirection(d typeset.Direction, global bool) {
	assignVar(ctx, &ctx.direction, "textdir", d, global)
}

// Attributes returns the current typesetting attributes.
func (ctx *Context) Attributes() typeset.Attributes {
	return typeset.Attributes{
		Font:      ctx.font,
		Color:     ctx.color,
		Direction: ctx.direction,
	}
}

func assignVar[V any](ctx *Context, p *V, key string, v V, global bool) {
	if global {
		ctx.purge(key)
	} else {
		old := *p
		ctx.save(key, func() interface{} {
			*p = old
			return old
		})
	}
	*p = v
}

// SetAfterAssignment saves the token for \afterassignment.
func (ctx *Context) SetAfterAssignment(t token.Token) {
	ctx.afterAssign = &t
}

// TakeAfterAssignment returns and clears the \afterassignment token.
func (ctx *Context) TakeAfterAssignment() (token.Token, bool) {
	t := ctx.afterAssign
	if t == nil {
		return token.Token{}, false
	}
	ctx.afterAssign = nil
	return *t, true
}
