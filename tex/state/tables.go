// tables.go -
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
	"unicode"

	"github.com/seehuhn/texmacro/tex/token"
)

// Table identifies one of the per-character code tables.
type Table int

// The per-character tables, apart from the category codes.
const (
	MathCode Table = iota
	LcCode
	UcCode
	SfCode
	DelCode
	numTables
)

var tableNames = [numTables]string{
	"mathcode", "lccode", "uccode", "sfcode", "delcode",
}

func (tab Table) String() string {
	return tableNames[tab]
}

func (ctx *Context) setPreset(name string) {
	if name == "plain" {
		ctx.preset = name
		ctx.catDefault = ctx.plainCatcode
	} else {
		ctx.preset = "initex"
		ctx.catDefault = ctx.iniCatcode
	}
}

// Preset returns the name of the table which gives the category codes
// of all characters without an explicit \catcode assignment.
func (ctx *Context) Preset() string {
	return ctx.preset
}

// Catcode returns the category code of r.
func (ctx *Context) Catcode(r rune) token.Catcode {
	if c, ok := ctx.catcodes[r]; ok {
		return c
	}
	return ctx.catDefault(r)
}

// SetCatcode changes the category code of r.
func (ctx *Context) SetCatcode(r rune, c token.Catcode, global bool) {
	key := "catcode " + string(r)
	if global {
		ctx.purge(key)
	} else {
		old, had := ctx.catcodes[r]
		ctx.save(key, func() interface{} {
			if had {
				ctx.catcodes[r] = old
				return old
			}
			delete(ctx.catcodes, r)
			return ctx.catDefault(r)
		})
	}
	ctx.catcodes[r] = c
}

// CharCode returns the entry for r in the given table.
func (ctx *Context) CharCode(tab Table, r rune) int64 {
	if v, ok := ctx.tables[tab][r]; ok {
		return v
	}
	return ctx.defaultCode(tab, r)
}

// SetCharCode changes the entry for r in the given table.
func (ctx *Context) SetCharCode(tab Table, r rune, v int64, global bool) {
	assign(ctx, ctx.tables[tab], tab.String()+" "+string(r), r, v, global)
}

func (ctx *Context) isLetter(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	return ctx.unicode && r > 127 && unicode.IsLetter(r)
}

func (ctx *Context) iniCatcode(r rune) token.Catcode {
	switch {
	case ctx.isLetter(r):
		return token.CatLetter
	case r == '\\':
		return token.CatEscape
	case r == '%':
		return token.CatComment
	case r == '#':
		return token.CatMacroParam
	case r == ' ':
		return token.CatSpace
	case r == '\r':
		return token.CatEndOfLine
	case r == 0:
		return token.CatIgnore
	case r == 0x7f:
		return token.CatInvalid
	}
	return token.CatOther
}

func (ctx *Context) plainCatcode(r rune) token.Catcode {
	switch r {
	case '{':
		return token.CatBeginGroup
	case '}':
		return token.CatEndGroup
	case '$':
		return token.CatMathShift
	case '&':
		return token.CatTabMark
	case '#':
		return token.CatMacroParam
	case '^':
		return token.CatSuperscript
	case '_':
		return token.CatSubscript
	case '~':
		return token.CatActive
	case '\t':
		return token.CatSpace
	}
	return ctx.iniCatcode(r)
}

func (ctx *Context) defaultCode(tab Table, r rune) int64 {
	letter := ctx.isLetter(r)
	switch tab {
	case MathCode:
		switch {
		case letter && r < 128:
			return 0x7100 + int64(r)
		case r >= '0' && r <= '9':
			return 0x7000 + int64(r)
		}
		return int64(r)
	case LcCode:
		if letter {
			return int64(unicode.ToLower(r))
		}
	case UcCode:
		if letter {
			return int64(unicode.ToUpper(r))
		}
	case SfCode:
		if letter && unicode.IsUpper(r) {
			return 999
		}
		return 1000
	case DelCode:
		if r == '.' {
			return 0
		}
		return -1
	}
	return 0
}
