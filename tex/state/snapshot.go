// snapshot.go -
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
	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

// Snapshot is a copy of all global state which survives \dump.
// Boxes and the conditional stack are not included.
type Snapshot struct {
	// Preset names the default catcode table; Catcodes only lists
	// the characters which differ from it.
	Preset   string
	Catcodes map[rune]token.Catcode
	Tables   [numTables]map[rune]int64
	Counts   map[string]int64
	Dimens   map[string]dimen.Dimen
	Glues    map[string]dimen.Glue
	Toks     map[string]token.TokenList
	Codes    map[string]Code
	Active   map[rune]Code
	Font     *typeset.Font
}

// Snapshot copies the current state.  This is only allowed when no
// groups are open.
func (ctx *Context) Snapshot() (*Snapshot, error) {
	if !ctx.IsGlobalGroup() {
		return nil, texerr.New(texerr.DumpInGroup)
	}
	s := &Snapshot{
		Preset:   ctx.preset,
		Catcodes: copyMap(ctx.catcodes),
		Counts:   copyMap(ctx.counts),
		Dimens:   copyMap(ctx.dimens),
		Glues:    copyMap(ctx.glues),
		Toks:     copyMap(ctx.toks),
		Codes:    copyMap(ctx.codes),
		Active:   copyMap(ctx.active),
		Font:     ctx.font,
	}
	for i, tab := range ctx.tables {
		s.Tables[i] = copyMap(tab)
	}
	return s, nil
}

// Restore replaces the global state by the contents of s.  Entries
// missing from s keep their current values.
func (ctx *Context) Restore(s *Snapshot) error {
	if !ctx.IsGlobalGroup() {
		return texerr.New(texerr.DumpInGroup)
	}
	if s.Preset != "" {
		ctx.setPreset(s.Preset)
	}
	mergeMap(ctx.catcodes, s.Catcodes)
	mergeMap(ctx.counts, s.Counts)
	mergeMap(ctx.dimens, s.Dimens)
	mergeMap(ctx.glues, s.Glues)
	mergeMap(ctx.toks, s.Toks)
	mergeMap(ctx.codes, s.Codes)
	mergeMap(ctx.active, s.Active)
	for i, tab := range s.Tables {
		mergeMap(ctx.tables[i], tab)
	}
	if s.Font != nil {
		ctx.font = s.Font
	}
	return nil
}

// Table returns a copy of the explicitly set entries of a table.
func (s *Snapshot) Table(tab Table) map[rune]int64 {
	return s.Tables[tab]
}

// SetTable replaces the entries of a table.
func (s *Snapshot) SetTable(tab Table, m map[rune]int64) {
	s.Tables[tab] = m
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	res := make(map[K]V, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}

func mergeMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}
