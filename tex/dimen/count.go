// count.go -
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

package dimen

import "github.com/seehuhn/texmacro/tex/texerr"

// AddInt returns a+b, checking for overflow of TeX's integer range.
func AddInt(a, b int64) (int64, error) {
	res := a + b
	if res > MaxInt || res < -MaxInt {
		return 0, texerr.New(texerr.ArithmeticOverflow)
	}
	return res, nil
}

// MultInt returns a*b, checking for overflow of TeX's integer range.
func MultInt(a, b int64) (int64, error) {
	res := a * b
	if a != 0 && res/a != b || res > MaxInt || res < -MaxInt {
		return 0, texerr.New(texerr.ArithmeticOverflow)
	}
	return res, nil
}

// DivInt returns a/b, truncated towards zero.
func DivInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, texerr.New(texerr.ArithmeticOverflow, "division by zero")
	}
	return a / b, nil
}
