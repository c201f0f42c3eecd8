// fonts.go -
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
	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

// assignFont implements \font\cs=name [at <dimen> | scaled <number>].
func assignFont(ip *Interpreter, t token.Token, global bool) error {
	cs, err := ip.getRToken()
	if err != nil {
		return err
	}
	ip.Ctx.SetMeaning(cs, ip.relax, global)
	err = ip.ScanOptionalEquals()
	if err != nil {
		return err
	}
	name, err := ip.scanFileName()
	if err != nil {
		return err
	}
	if name == "" {
		return texerr.At(texerr.FileNotFound, t, "missing font name")
	}

	size := typeset.DefaultDesignSize
	ok, err := ip.ScanKeyword("at")
	if err != nil {
		return err
	}
	if ok {
		size, err = ip.ScanDimen()
		if err != nil {
			return err
		}
		if size <= 0 || size >= dimen.Points(2048) {
			return texerr.New(texerr.DimenTooLarge, "improper `at' size", size)
		}
	} else {
		ok, err = ip.ScanKeyword("scaled")
		if err != nil {
			return err
		}
		if ok {
			n, err := ip.ScanInteger()
			if err != nil {
				return err
			}
			if n <= 0 || n > 32768 {
				return texerr.New(texerr.IllegalMag, n)
			}
			q, _ := dimen.XnOverD(int64(typeset.DefaultDesignSize), n, 1000)
			size = dimen.Dimen(q)
		}
	}

	f := typeset.NewFont(codeName(cs), name, size)
	ip.Ctx.SetMeaning(cs, &fontCode{font: f}, global)
	return nil
}

// scanColorComponent reads a decimal number like 0.5.
func (ip *Interpreter) scanColorComponent() (float64, error) {
	neg, t, err := ip.scanSigns()
	if err != nil {
		return 0, err
	}
	if !isDecimalStart(t) {
		ip.In.Push(t)
		return 0, texerr.At(texerr.MissingNumber, t)
	}
	integer, frac, err := ip.scanDecimal(t)
	if err != nil {
		return 0, err
	}
	v := float64(integer) + float64(frac)/dimen.Unity
	if neg {
		v = -v
	}
	return v, nil
}

// assignColor implements \color rgb <r> <g> <b> and \color gray <g>.
func assignColor(ip *Interpreter, t token.Token, global bool) error {
	var col typeset.Color
	n := 0
	ok, err := ip.ScanKeyword("rgb")
	if err != nil {
		return err
	}
	if ok {
		col.Space, n = typeset.RGB, 3
	} else {
		ok, err = ip.ScanKeyword("gray")
		if err != nil {
			return err
		}
		if !ok {
			return texerr.At(texerr.CantUse, t, "color space expected")
		}
		col.Space, n = typeset.Gray, 1
	}
	for i := 0; i < n; i++ {
		col.C[i], err = ip.scanColorComponent()
		if err != nil {
			return err
		}
	}
	ip.Ctx.SetColor(col, global)
	return nil
}

// assignTextDir implements \textdir TLT and \textdir TRT.
func assignTextDir(ip *Interpreter, t token.Token, global bool) error {
	for _, d := range []typeset.Direction{typeset.LeftToRight, typeset.RightToLeft} {
		ok, err := ip.ScanKeyword(d.String())
		if err != nil {
			return err
		}
		if ok {
			ip.Ctx.SetDirection(d, global)
			return ip.skipOptionalSpace()
		}
	}
	return texerr.At(texerr.CantUse, t, "direction TLT or TRT expected")
}

func (ip *Interpreter) defineFonts() {
	ip.primitive(&assignment{name: "font", assign: assignFont})
	ip.primitive(&fontCode{font: typeset.NullFont})
	ip.primitive(&assignment{name: "color", assign: assignColor})
	ip.primitive(&assignment{name: "textdir", assign: assignTextDir})
}
