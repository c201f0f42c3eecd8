// dimen.go -
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

// Package dimen implements TeX's fixed-point arithmetic.
//
// Lengths are measured in scaled points; 65536 scaled points make one
// TeX point.  All values are plain Go values, so a Dimen or Glue held
// in a variable can never be changed behind the owner's back.  The
// functions in this package reproduce TeX's rounding bit for bit.
package dimen

import (
	"strconv"
	"strings"

	"github.com/seehuhn/texmacro/tex/texerr"
)

// Unity is the number of scaled points in one point.
const Unity = 1 << 16

// MaxDimen is the largest legal dimension, 16383.99999pt.
const MaxDimen Dimen = 1<<30 - 1

// MaxInt is the largest legal integer value.
const MaxInt = 1<<31 - 1

// Dimen is a length in scaled points.
type Dimen int64

// Zero is the zero length.
const Zero Dimen = 0

// Points returns a length of n points.
func Points(n int64) Dimen {
	return Dimen(n * Unity)
}

// Check returns an error if d is outside the legal range.
func (d Dimen) Check() error {
	if d > MaxDimen || d < -MaxDimen {
		return texerr.New(texerr.DimenTooLarge)
	}
	return nil
}

// Add returns d+other.
func (d Dimen) Add(other Dimen) (Dimen, error) {
	res := d + other
	if res > MaxDimen || res < -MaxDimen {
		return 0, texerr.New(texerr.ArithmeticOverflow)
	}
	return res, nil
}

// Multiply returns n times d.
func (d Dimen) Multiply(n int64) (Dimen, error) {
	res := int64(d) * n
	if n != 0 && res/n != int64(d) || res > int64(MaxDimen) || res < -int64(MaxDimen) {
		return 0, texerr.New(texerr.ArithmeticOverflow)
	}
	return Dimen(res), nil
}

// Divide returns d divided by n, truncated towards zero.
func (d Dimen) Divide(n int64) (Dimen, error) {
	if n == 0 {
		return 0, texerr.New(texerr.ArithmeticOverflow, "division by zero")
	}
	return Dimen(int64(d) / n), nil
}

// String formats d the way TeX's \the does, e.g. "12.0pt".
func (d Dimen) String() string {
	return FormatScaled(int64(d)) + "pt"
}

// FormatScaled prints a scaled value with the shortest decimal
// fraction which scans back to the same value.
func FormatScaled(s int64) string {
	var b strings.Builder
	if s < 0 {
		b.WriteByte('-')
		s = -s
	}
	b.WriteString(strconv.FormatInt(s/Unity, 10))
	b.WriteByte('.')
	s = 10*(s%Unity) + 5
	delta := int64(10)
	for {
		if delta > Unity {
			s = s + 0x8000 - 50000 // round the last digit
		}
		b.WriteByte(byte('0' + s/Unity))
		s = 10 * (s % Unity)
		delta *= 10
		if s <= delta {
			break
		}
	}
	return b.String()
}

// RoundDecimals converts the decimal fraction 0.d[0]d[1]... into a
// multiple of 2^-16, rounded to the nearest value.  At most 17 digits
// are significant.
func RoundDecimals(digits []int) int64 {
	if len(digits) > 17 {
		digits = digits[:17]
	}
	var a int64
	for k := len(digits) - 1; k >= 0; k-- {
		a = (a + int64(digits[k])*(2*Unity)) / 10
	}
	return (a + 1) / 2
}

// XnOverD computes x*n/d for non-negative x, together with the
// remainder.
func XnOverD(x, n, d int64) (int64, int64) {
	t := x * n
	return t / d, t % d
}

type ratio struct {
	num, denom int64
}

var units = map[string]ratio{
	"pt": {1, 1},
	"in": {7227, 100},
	"pc": {12, 1},
	"cm": {7227, 254},
	"mm": {7227, 2540},
	"bp": {7227, 7200},
	"dd": {1238, 1157},
	"cc": {14856, 1157},
}

// Units lists the physical unit keywords, apart from "sp", in the
// order TeX tries them.
var Units = []string{"pt", "in", "pc", "cm", "mm", "bp", "dd", "cc"}

// Scale converts the non-negative number integer+frac/2^16 given in
// the named physical unit into scaled points.
func Scale(integer, frac int64, unit string) (Dimen, error) {
	r, ok := units[unit]
	if !ok {
		return 0, texerr.New(texerr.IllegalUnit, unit)
	}
	if r.num != 1 || r.denom != 1 {
		var rem int64
		integer, rem = XnOverD(integer, r.num, r.denom)
		frac = (r.num*frac + Unity*rem) / r.denom
		integer += frac / Unity
		frac = frac % Unity
	}
	return attach(integer, frac)
}

// Magnify applies the "true" conversion for magnification mag, which
// must be between 1 and 32768.
func Magnify(integer, frac int64, mag int64) (int64, int64, error) {
	if mag <= 0 || mag > 32768 {
		return 0, 0, texerr.New(texerr.IllegalMag, mag)
	}
	if mag == 1000 {
		return integer, frac, nil
	}
	integer, rem := XnOverD(integer, 1000, mag)
	frac = (1000*frac + Unity*rem) / mag
	integer += frac / Unity
	frac = frac % Unity
	return integer, frac, nil
}

// Fraction multiplies the non-negative number integer+frac/2^16 by
// the length d, as in "1.5\dimen0".
func Fraction(integer, frac int64, d Dimen) (Dimen, error) {
	v := int64(d)
	neg := v < 0
	if neg {
		v = -v
	}
	q, _ := XnOverD(v, frac, Unity)
	res := integer*v + q
	if res > int64(MaxDimen) {
		return 0, texerr.New(texerr.DimenTooLarge)
	}
	if neg {
		res = -res
	}
	return Dimen(res), nil
}

func attach(integer, frac int64) (Dimen, error) {
	if integer >= 1<<14 {
		return 0, texerr.New(texerr.DimenTooLarge)
	}
	return Dimen(integer*Unity + frac), nil
}
