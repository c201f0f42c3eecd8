// primitives.go -
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
	"sort"

	"github.com/seehuhn/texmacro/tex/state"
)

// primitive registers c under its name.
func (ip *Interpreter) primitive(c state.Code) {
	name := c.Name()
	ip.primitives[name] = c
	ip.Ctx.SetCode(name, c, true)
}

func (ip *Interpreter) definePrimitives() {
	ip.defineExpandables()
	ip.defineConditionals()
	ip.defineRegisters()
	ip.defineDefinitions()
	ip.defineGroups()
	ip.defineFonts()
	ip.defineContent()
	ip.defineMessages()
	tracer().Debugf("%d primitives defined", len(ip.primitives))
}

// PrimitiveNames returns the names of all primitives, in alphabetical
// order.
func (ip *Interpreter) PrimitiveNames() []string {
	res := make([]string, 0, len(ip.primitives))
	for name := range ip.primitives {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
