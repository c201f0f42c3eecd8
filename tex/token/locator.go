// locator.go -
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

package token

import "strconv"

// Locator describes a position in the input.
type Locator struct {
	Name   string
	Line   int
	Column int
}

func (loc Locator) String() string {
	if loc.Name == "" {
		return "<unknown>"
	}
	return loc.Name + ":" + strconv.Itoa(loc.Line) + ":" + strconv.Itoa(loc.Column)
}
