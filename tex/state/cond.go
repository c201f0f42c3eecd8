// cond.go -
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

import "github.com/seehuhn/texmacro/tex/token"

// Conditional records one open \if... on the conditional stack.
type Conditional struct {
	Locator   token.Locator
	Primitive string

	// Value is true once the test has been decided and a branch, either
	// the true branch or the \else branch, is being processed.
	Value bool

	// Pending is true while the test of the conditional is still
	// being evaluated.
	Pending bool

	// InElse is true once the \else branch is active.
	InElse bool

	// IsCase is true for \ifcase.
	IsCase bool
}

// PushConditional opens a conditional and returns its index on the
// stack.
func (ctx *Context) PushConditional(c Conditional) int {
	ctx.conds = append(ctx.conds, &c)
	return len(ctx.conds) - 1
}

// Conditional returns the conditional with the given index.
func (ctx *Context) Conditional(i int) *Conditional {
	return ctx.conds[i]
}

// TopConditional returns the innermost open conditional, or nil.
func (ctx *Context) TopConditional() *Conditional {
	if len(ctx.conds) == 0 {
		return nil
	}
	return ctx.conds[len(ctx.conds)-1]
}

// PopConditional closes the innermost conditional.
func (ctx *Context) PopConditional() *Conditional {
	n := len(ctx.conds)
	if n == 0 {
		return nil
	}
	c := ctx.conds[n-1]
	ctx.conds[n-1] = nil
	ctx.conds = ctx.conds[:n-1]
	return c
}

// ConditionalLevel returns the number of open conditionals.
func (ctx *Context) ConditionalLevel() int {
	return len(ctx.conds)
}
