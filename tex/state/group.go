// group.go -
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
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

// GroupType tells how a group was opened.
type GroupType int

// The different kinds of group.
const (
	GlobalGroup GroupType = iota
	SimpleGroup
	SemiSimpleGroup
	HBoxGroup
	VBoxGroup
)

var groupNames = [...]string{
	"bottom level",
	"simple",
	"semi simple",
	"hbox",
	"vbox",
}

func (gt GroupType) String() string {
	if gt >= 0 && int(gt) < len(groupNames) {
		return groupNames[gt]
	}
	return "unknown"
}

// IsBox reports whether the group collects the contents of a box.
func (gt GroupType) IsBox() bool {
	return gt == HBoxGroup || gt == VBoxGroup
}

// Group is one scope on the group stack.
type Group struct {
	Type    GroupType
	Locator token.Locator
	Start   token.Token

	// Deliver, if set, receives the finished box when a box group is
	// closed.  It is called after the group has been removed from the
	// stack, so assignments made by Deliver are made in the
	// enclosing group.
	Deliver func(b *typeset.Box) error

	parent  *Group
	undo    []*undoEntry
	touched map[string]*undoEntry

	afterTokens token.TokenList
}

// Parent returns the enclosing group, or nil for the global group.
func (g *Group) Parent() *Group {
	return g.parent
}

type undoEntry struct {
	key     string
	restore func() interface{}
	dead    bool
}

// TokenPusher receives the tokens saved by \aftergroup.
type TokenPusher interface {
	Push(toks ...token.Token)
}

// OpenGroup starts a new group.
func (ctx *Context) OpenGroup(gt GroupType, loc token.Locator, start token.Token) *Group {
	g := &Group{
		Type:    gt,
		Locator: loc,
		Start:   start,
		parent:  ctx.group,
	}
	ctx.group = g
	ctx.level++
	if ctx.traceGroups() {
		tracer().Infof("{entering %s group (level %d) at %s}", gt, ctx.level, loc)
	}
	return g
}

// CloseGroup ends the innermost group.  For box groups, the box is
// taken from ts and passed to the group's Deliver function.  All
// local assignments made inside the group are undone, and tokens
// saved by \aftergroup are pushed to in.
func (ctx *Context) CloseGroup(ts typeset.Typesetter, in TokenPusher) error {
	g := ctx.group
	if g.parent == nil {
		return texerr.New(texerr.TooManyRightBraces)
	}

	var box *typeset.Box
	if g.Type.IsBox() && ts != nil {
		var err error
		box, err = ts.CloseBox()
		if err != nil {
			return err
		}
	}

	trace := ctx.Count("tracingrestores") > 0
	for i := len(g.undo) - 1; i >= 0; i-- {
		e := g.undo[i]
		if e.dead {
			continue
		}
		val := e.restore()
		if trace {
			tracer().Infof("{restoring %s=%v}", e.key, val)
		}
	}

	ctx.group = g.parent
	ctx.level--
	if ctx.traceGroups() {
		tracer().Infof("{leaving %s group (level %d)}", g.Type, ctx.level+1)
	}

	if len(g.afterTokens) > 0 && in != nil {
		in.Push(g.afterTokens...)
	}

	if g.Deliver != nil {
		if box == nil {
			box = &typeset.Box{}
		}
		return g.Deliver(box)
	}
	return nil
}

func (ctx *Context) traceGroups() bool {
	return ctx.Count("tracinggroups") > 0
}

// CurrentGroup returns the innermost open group.
func (ctx *Context) CurrentGroup() *Group {
	return ctx.group
}

// IsGlobalGroup reports whether no groups are open.
func (ctx *Context) IsGlobalGroup() bool {
	return ctx.group.parent == nil
}

// GroupLevel returns the number of open groups.
func (ctx *Context) GroupLevel() int {
	return ctx.level
}

// AfterGroup saves a token to be inserted after the current group
// closes.  At the global level the token is discarded.
func (ctx *Context) AfterGroup(t token.Token) {
	if ctx.IsGlobalGroup() {
		return
	}
	ctx.group.afterTokens = append(ctx.group.afterTokens, t)
}

// save records how to undo an assignment to key.  Only the first
// local assignment in each group is recorded.
func (ctx *Context) save(key string, restore func() interface{}) {
	g := ctx.group
	if g.parent == nil {
		return
	}
	if _, seen := g.touched[key]; seen {
		return
	}
	if g.touched == nil {
		g.touched = make(map[string]*undoEntry)
	}
	e := &undoEntry{key: key, restore: restore}
	g.touched[key] = e
	g.undo = append(g.undo, e)
}

// purge discards pending undo entries for key in all open groups, so
// that the value of a global assignment survives the end of these
// groups.
func (ctx *Context) purge(key string) {
	for g := ctx.group; g.parent != nil; g = g.parent {
		if e, ok := g.touched[key]; ok {
			e.dead = true
			delete(g.touched, key)
		}
	}
}

// assign stores v under k in m.  Local assignments are recorded for
// undo, global assignments cancel all pending undo entries for key.
func assign[K comparable, V any](ctx *Context, m map[K]V, key string, k K, v V, global bool) {
	if global {
		ctx.purge(key)
	} else {
		old, had := m[k]
		ctx.save(key, func() interface{} {
			if had {
				m[k] = old
				return old
			}
			delete(m, k)
			return nil
		})
	}
	m[k] = v
}
