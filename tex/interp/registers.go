// registers.go -
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
	"strconv"
	"time"
	"unicode"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

var intParameters = []string{
	"pretolerance", "tolerance", "hbadness", "vbadness",
	"linepenalty", "hyphenpenalty", "exhyphenpenalty",
	"binoppenalty", "relpenalty", "clubpenalty", "widowpenalty",
	"displaywidowpenalty", "brokenpenalty", "predisplaypenalty",
	"postdisplaypenalty", "interlinepenalty", "floatingpenalty",
	"outputpenalty", "doublehyphendemerits", "finalhyphendemerits",
	"adjdemerits", "looseness", "pausing", "holdinginserts",
	"tracingonline", "tracingmacros", "tracingstats",
	"tracingparagraphs", "tracingpages", "tracingoutput",
	"tracinglostchars", "tracingcommands", "tracingrestores",
	"tracinggroups", "tracingifs", "language", "uchyph",
	"lefthyphenmin", "righthyphenmin", "globaldefs",
	"defaulthyphenchar", "defaultskewchar", "escapechar",
	"endlinechar", "newlinechar", "maxdeadcycles", "hangafter",
	"fam", "mag", "delimiterfactor", "time", "day", "month", "year",
	"showboxbreadth", "showboxdepth", "errorcontextlines",
}

var dimenParameters = []string{
	"hfuzz", "vfuzz", "overfullrule", "emergencystretch", "hsize",
	"vsize", "maxdepth", "splitmaxdepth", "boxmaxdepth",
	"lineskiplimit", "delimitershortfall", "nulldelimiterspace",
	"scriptspace", "mathsurround", "predisplaysize", "displaywidth",
	"displayindent", "parindent", "hangindent", "hoffset", "voffset",
}

var glueParameters = []string{
	"baselineskip", "lineskip", "parskip", "abovedisplayskip",
	"belowdisplayskip", "abovedisplayshortskip", "belowdisplayshortskip",
	"leftskip", "rightskip", "topskip", "splittopskip", "tabskip",
	"spaceskip", "xspaceskip", "parfillskip",
}

var toksParameters = []string{
	"output", "everypar", "everymath", "everydisplay", "everyhbox",
	"everyvbox", "everyjob", "everycr", "errhelp",
}

// registerRef gives access to a numbered register or a named
// parameter.
func (ip *Interpreter) registerRef(class regClass, name string) *ref {
	ctx := ip.Ctx
	r := &ref{kind: class.kind()}
	switch class {
	case countReg:
		r.get = func() value { return value{kind: intValue, i: ctx.Count(name)} }
		r.set = func(v value, global bool) error {
			ctx.SetCount(name, v.i, global)
			return nil
		}
	case dimenReg:
		r.get = func() value { return value{kind: dimenValue, d: ctx.Dimen(name)} }
		r.set = func(v value, global bool) error {
			ctx.SetDimen(name, v.d, global)
			return nil
		}
	case skipReg:
		r.get = func() value { return value{kind: glueValue, g: ctx.Glue(name)} }
		r.set = func(v value, global bool) error {
			ctx.SetGlue(name, v.g, global)
			return nil
		}
	case toksReg:
		r.get = func() value { return value{kind: toksValue, toks: ctx.Toks(name)} }
		r.set = func(v value, global bool) error {
			ctx.SetToks(name, v.toks, global)
			return nil
		}
	}
	return r
}

// parameter returns the quantity for a named parameter like \tolerance.
func parameter(class regClass, name string) *quantity {
	return &quantity{
		name: name,
		vk:   class.kind(),
		resolver: func(ip *Interpreter) (*ref, error) {
			return ip.registerRef(class, name), nil
		},
	}
}

// register returns the quantity for \count, \dimen, \skip or \toks,
// which read the register number from the input.
func register(class regClass) *quantity {
	return &quantity{
		name: class.String(),
		vk:   class.kind(),
		resolver: func(ip *Interpreter) (*ref, error) {
			n, err := ip.scanRegisterNumber()
			if err != nil {
				return nil, err
			}
			return ip.registerRef(class, strconv.FormatInt(n, 10)), nil
		},
	}
}

// readOnly returns an integer quantity which cannot be assigned to.
func readOnly(name string, get func(ip *Interpreter) int64) *quantity {
	return &quantity{
		name: name,
		vk:   intValue,
		resolver: func(ip *Interpreter) (*ref, error) {
			return &ref{
				kind: intValue,
				get:  func() value { return value{kind: intValue, i: get(ip)} },
			}, nil
		},
	}
}

func catcodeQuantity() *quantity {
	return &quantity{
		name: "catcode",
		vk:   intValue,
		resolver: func(ip *Interpreter) (*ref, error) {
			r, err := ip.scanCharCode()
			if err != nil {
				return nil, err
			}
			return &ref{
				kind: intValue,
				get: func() value {
					return value{kind: intValue, i: int64(ip.Ctx.Catcode(r))}
				},
				set: func(v value, global bool) error {
					c := token.Catcode(v.i)
					if !c.Valid() {
						return texerr.New(texerr.BadCatcode, v.i)
					}
					ip.Ctx.SetCatcode(r, c, global)
					return nil
				},
			}, nil
		},
	}
}

// tableQuantity returns the quantity for one of the character tables
// \mathcode, \lccode, \uccode, \sfcode and \delcode.
func tableQuantity(tab state.Table, min, max int64) *quantity {
	return &quantity{
		name: tab.String(),
		vk:   intValue,
		resolver: func(ip *Interpreter) (*ref, error) {
			r, err := ip.scanCharCode()
			if err != nil {
				return nil, err
			}
			return &ref{
				kind: intValue,
				get: func() value {
					return value{kind: intValue, i: ip.Ctx.CharCode(tab, r)}
				},
				set: func(v value, global bool) error {
					if v.i < min || v.i > max {
						return texerr.New(texerr.BadCatcode, v.i)
					}
					ip.Ctx.SetCharCode(tab, r, v.i, global)
					return nil
				},
			}, nil
		},
	}
}

// scanFontIdentifier reads a font identifier like \tenrm or \font.
func (ip *Interpreter) scanFontIdentifier() (*typeset.Font, error) {
	t, err := ip.getXNonSpace()
	if err != nil {
		return nil, ip.eofError(err, texerr.MissingControlSequence)
	}
	switch c := ip.meaning(t).(type) {
	case *fontCode:
		return c.font, nil
	case *assignment:
		if c == ip.primitives["font"] {
			return ip.Ctx.Font(), nil
		}
	}
	ip.In.Push(t)
	return nil, texerr.At(texerr.MissingControlSequence, t, "font identifier expected")
}

// fontDimen is \fontdimen.  Font parameters are not affected by
// grouping.
func fontDimen() *quantity {
	return &quantity{
		name: "fontdimen",
		vk:   dimenValue,
		resolver: func(ip *Interpreter) (*ref, error) {
			n, err := ip.ScanInteger()
			if err != nil {
				return nil, err
			}
			f, err := ip.scanFontIdentifier()
			if err != nil {
				return nil, err
			}
			if n < 1 || f == typeset.NullFont {
				return nil, texerr.New(texerr.BadRegister, n, "font", f.Name)
			}
			return &ref{
				kind: dimenValue,
				get:  func() value { return value{kind: dimenValue, d: f.Param(int(n))} },
				set: func(v value, global bool) error {
					f.Params[int(n)] = v.d
					return nil
				},
			}, nil
		},
	}
}

// arithmetic implements \advance, \multiply and \divide.
func arithmetic(name string) *assignment {
	return &assignment{
		name: name,
		assign: func(ip *Interpreter, t token.Token, global bool) error {
			next, err := ip.getXNonSpace()
			if err != nil {
				return ip.eofError(err, texerr.MissingControlSequence)
			}
			c, ok := ip.internalOf(next)
			if !ok || c.kind() == toksValue {
				return texerr.At(texerr.CantUse, next, "after \\"+name)
			}
			r, err := c.resolve(ip)
			if err != nil {
				return err
			}
			if r.set == nil {
				return texerr.New(texerr.Immutable, c.Name())
			}
			_, err = ip.ScanKeyword("by")
			if err != nil {
				return err
			}
			v := r.get()
			if name == "advance" {
				w, err := ip.scanValue(r.kind)
				if err != nil {
					return err
				}
				v, err = addValues(v, w)
				if err != nil {
					return err
				}
			} else {
				n, err := ip.ScanInteger()
				if err != nil {
					return err
				}
				v, err = scaleValue(v, n, name == "divide")
				if err != nil {
					return err
				}
			}
			return r.set(v, global)
		},
	}
}

func addValues(v, w value) (value, error) {
	var err error
	switch v.kind {
	case intValue:
		v.i, err = dimen.AddInt(v.i, w.i)
	case dimenValue:
		v.d, err = v.d.Add(w.d)
	case glueValue:
		v.g, err = v.g.Add(w.g)
	}
	return v, err
}

func scaleValue(v value, n int64, divide bool) (value, error) {
	var err error
	switch {
	case v.kind == intValue && divide:
		v.i, err = dimen.DivInt(v.i, n)
	case v.kind == intValue:
		v.i, err = dimen.MultInt(v.i, n)
	case v.kind == dimenValue && divide:
		v.d, err = v.d.Divide(n)
	case v.kind == dimenValue:
		v.d, err = v.d.Multiply(n)
	case divide:
		v.g, err = v.g.Divide(n)
	default:
		v.g, err = v.g.Multiply(n)
	}
	return v, err
}

func (ip *Interpreter) defineRegisters() {
	for _, name := range intParameters {
		ip.primitive(parameter(countReg, name))
	}
	for _, name := range dimenParameters {
		ip.primitive(parameter(dimenReg, name))
	}
	for _, name := range glueParameters {
		ip.primitive(parameter(skipReg, name))
	}
	for _, name := range toksParameters {
		ip.primitive(parameter(toksReg, name))
	}
	for _, class := range []regClass{countReg, dimenReg, skipReg, toksReg} {
		ip.primitive(register(class))
	}

	ip.primitive(readOnly("inputlineno", func(ip *Interpreter) int64 {
		return int64(ip.In.Locator().Line)
	}))
	ip.primitive(readOnly("currentgrouplevel", func(ip *Interpreter) int64 {
		return int64(ip.Ctx.GroupLevel())
	}))
	ip.primitive(readOnly("currentiflevel", func(ip *Interpreter) int64 {
		return int64(ip.Ctx.ConditionalLevel())
	}))

	ip.primitive(catcodeQuantity())
	ip.primitive(tableQuantity(state.MathCode, 0, 0x8000))
	ip.primitive(tableQuantity(state.LcCode, 0, unicode.MaxRune))
	ip.primitive(tableQuantity(state.UcCode, 0, unicode.MaxRune))
	ip.primitive(tableQuantity(state.SfCode, 0, 32767))
	ip.primitive(tableQuantity(state.DelCode, -1, 1<<24-1))
	ip.primitive(fontDimen())

	for _, name := range []string{"advance", "multiply", "divide"} {
		ip.primitive(arithmetic(name))
	}

	now := time.Now()
	ip.Ctx.SetCount("time", int64(now.Hour()*60+now.Minute()), true)
	ip.Ctx.SetCount("day", int64(now.Day()), true)
	ip.Ctx.SetCount("month", int64(now.Month()), true)
	ip.Ctx.SetCount("year", int64(now.Year()), true)
}
