// scan.go -
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
	"io"
	"strings"
	"unicode"

	"github.com/seehuhn/texmacro/tex/dimen"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

// MaxRegister is the largest register number.
const MaxRegister = 32767

// ScanKeyword tries to read the given keyword from the expanded
// input.  Upper and lower case letters are both accepted, and leading
// spaces are skipped.  If the keyword is not found, all tokens read
// are pushed back, so that the input is unchanged.
func (ip *Interpreter) ScanKeyword(kw string) (bool, error) {
	var backup token.TokenList
	matched := 0
	kwr := []rune(strings.ToLower(kw))
	n := len(kwr)
	for matched < n {
		t, err := ip.GetXToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return false, err
		}
		backup = append(backup, t)
		switch {
		case t.Kind == token.KindChar && !t.IsActive() && unicode.ToLower(t.Char) == kwr[matched]:
			matched++
		case matched == 0 && t.Is(token.CatSpace):
			// skip leading spaces
		default:
			ip.In.PushList(backup)
			return false, nil
		}
	}
	if matched < n {
		ip.In.PushList(backup)
		return false, nil
	}
	return true, nil
}

// ScanOptionalEquals skips spaces and an optional "=" sign.
func (ip *Interpreter) ScanOptionalEquals() error {
	t, err := ip.getXNonSpace()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if !t.IsOther('=') {
		ip.In.Push(t)
	}
	return nil
}

// skipOptionalSpace consumes one space token, if present.
func (ip *Interpreter) skipOptionalSpace() error {
	t, err := ip.GetXToken()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if !t.Is(token.CatSpace) {
		ip.In.Push(t)
	}
	return nil
}

// scanSigns reads optional signs and spaces and returns the first
// token which is neither.
func (ip *Interpreter) scanSigns() (bool, token.Token, error) {
	neg := false
	for {
		t, err := ip.GetXToken()
		if err != nil {
			return false, t, ip.eofError(err, texerr.MissingNumber)
		}
		switch {
		case t.Is(token.CatSpace), t.IsOther('+'):
			// pass
		case t.IsOther('-'):
			neg = !neg
		default:
			return neg, t, nil
		}
	}
}

// ScanInteger reads a signed integer.  Decimal, octal ('17), hex
// ("F) and character (`a) constants are recognised, as well as
// internal quantities.
func (ip *Interpreter) ScanInteger() (int64, error) {
	neg, t, err := ip.scanSigns()
	if err != nil {
		return 0, err
	}
	v, err := ip.scanUnsigned(t)
	if neg {
		v = -v
	}
	return v, err
}

// ScanNumber reads an integer in the range 0, ..., max.
func (ip *Interpreter) ScanNumber(max int64) (int64, error) {
	v, err := ip.ScanInteger()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > max {
		return 0, texerr.New(texerr.BadRegister, v)
	}
	return v, nil
}

func (ip *Interpreter) scanRegisterNumber() (int64, error) {
	return ip.ScanNumber(MaxRegister)
}

// scanCharCode reads a character code.
func (ip *Interpreter) scanCharCode() (rune, error) {
	v, err := ip.ScanInteger()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > unicode.MaxRune {
		return 0, texerr.New(texerr.BadCharCode, v)
	}
	return rune(v), nil
}

func (ip *Interpreter) scanUnsigned(t token.Token) (int64, error) {
	if c, ok := ip.internalOf(t); ok {
		if c.kind() == toksValue {
			ip.In.Push(t)
			return 0, texerr.At(texerr.MissingNumber, t)
		}
		r, err := c.resolve(ip)
		if err != nil {
			return 0, err
		}
		return r.get().asInt(), nil
	}

	switch {
	case t.IsOther('`'):
		c, err := ip.GetToken()
		if err != nil {
			return 0, ip.eofError(err, texerr.MissingNumber)
		}
		var v rune
		if c.IsCS() {
			r := []rune(c.Name)
			if len(r) != 1 {
				return 0, texerr.At(texerr.BadCharCode, c)
			}
			v = r[0]
		} else {
			v = c.Char
		}
		return int64(v), ip.skipOptionalSpace()
	case t.IsOther('\''):
		return ip.scanRadix(8, nil)
	case t.IsOther('"'):
		return ip.scanRadix(16, nil)
	}
	if _, ok := digitValue(t, 10); ok {
		return ip.scanRadix(10, &t)
	}
	ip.In.Push(t)
	return 0, texerr.At(texerr.MissingNumber, t)
}

func (ip *Interpreter) scanRadix(radix int64, first *token.Token) (int64, error) {
	var v int64
	digits := 0
	tooBig := false
	for {
		var t token.Token
		if first != nil {
			t = *first
			first = nil
		} else {
			var err error
			t, err = ip.GetXToken()
			if err == io.EOF {
				break
			} else if err != nil {
				return 0, err
			}
		}
		d, ok := digitValue(t, radix)
		if !ok || ip.dontExpand {
			if !t.Is(token.CatSpace) {
				ip.In.Push(t)
			}
			break
		}
		digits++
		v = v*radix + d
		if v > dimen.MaxInt {
			tooBig = true
			v = dimen.MaxInt
		}
	}
	if digits == 0 {
		return 0, texerr.New(texerr.MissingNumber)
	}
	if tooBig {
		return v, texerr.New(texerr.NumberTooBig)
	}
	return v, nil
}

func digitValue(t token.Token, radix int64) (int64, bool) {
	if t.Kind != token.KindChar {
		return 0, false
	}
	var d int64
	switch {
	case t.Cat == token.CatOther && t.Char >= '0' && t.Char <= '9':
		d = int64(t.Char - '0')
	case radix == 16 && (t.Cat == token.CatOther || t.Cat == token.CatLetter) &&
		t.Char >= 'A' && t.Char <= 'F':
		d = int64(t.Char-'A') + 10
	default:
		return 0, false
	}
	if d >= radix {
		return 0, false
	}
	return d, true
}

func isDecimalStart(t token.Token) bool {
	if t.IsOther('.') || t.IsOther(',') {
		return true
	}
	_, ok := digitValue(t, 10)
	return ok
}

// scanDecimal reads a decimal number with optional fraction, starting
// with the token t.
func (ip *Interpreter) scanDecimal(t token.Token) (int64, int64, error) {
	var integer int64
	var digits []int
	inFrac := false
	for {
		if d, ok := digitValue(t, 10); ok && !ip.dontExpand {
			if inFrac {
				digits = append(digits, int(d))
			} else {
				integer = integer*10 + d
				if integer > dimen.MaxInt {
					return 0, 0, texerr.New(texerr.NumberTooBig)
				}
			}
		} else if !inFrac && (t.IsOther('.') || t.IsOther(',')) {
			inFrac = true
		} else {
			if !t.Is(token.CatSpace) {
				ip.In.Push(t)
			}
			break
		}
		var err error
		t, err = ip.GetXToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, 0, err
		}
	}
	return integer, dimen.RoundDecimals(digits), nil
}

// ScanDimen reads a dimension, like "-1.5pt" or "2\hsize".
func (ip *Interpreter) ScanDimen() (dimen.Dimen, error) {
	neg, t, err := ip.scanSigns()
	if err != nil {
		return 0, err
	}
	c, err := ip.scanDimenFrom(neg, t, false)
	return c.Value, err
}

// scanDimenFrom reads a dimension, starting with the token t.  If inf
// is set, the units fil, fill and filll are allowed.
func (ip *Interpreter) scanDimenFrom(neg bool, t token.Token, inf bool) (dimen.GlueComponent, error) {
	var integer, frac int64
	if c, ok := ip.internalOf(t); ok {
		r, err := c.resolve(ip)
		if err != nil {
			return dimen.GlueComponent{}, err
		}
		v := r.get()
		switch v.kind {
		case dimenValue, glueValue:
			d := dimen.Dimen(v.asInt())
			if neg {
				d = -d
			}
			return dimen.GlueComponent{Value: d}, nil
		case toksValue:
			return dimen.GlueComponent{}, texerr.At(texerr.MissingNumber, t)
		}
		integer = v.i
	} else if isDecimalStart(t) {
		var err error
		integer, frac, err = ip.scanDecimal(t)
		if err != nil {
			return dimen.GlueComponent{}, err
		}
	} else {
		var err error
		integer, err = ip.scanUnsigned(t)
		if err != nil {
			return dimen.GlueComponent{}, err
		}
	}
	if integer < 0 {
		neg = !neg
		integer = -integer
	}
	return ip.scanUnits(neg, integer, frac, inf)
}

func (ip *Interpreter) scanUnits(neg bool, integer, frac int64, inf bool) (dimen.GlueComponent, error) {
	res := dimen.GlueComponent{}
	found := false

	if inf {
		ok, err := ip.ScanKeyword("fil")
		if err != nil {
			return res, err
		}
		if ok {
			res.Order = dimen.Fil
			for res.Order < dimen.Filll {
				ok, err = ip.ScanKeyword("l")
				if err != nil {
					return res, err
				}
				if !ok {
					break
				}
				res.Order++
			}
			if integer >= 1<<14 {
				return res, texerr.New(texerr.DimenTooLarge)
			}
			res.Value = dimen.Dimen(integer*dimen.Unity + frac)
			found = true
		}
	}

	if !found {
		d, ok, err := ip.scanInternalUnit(integer, frac)
		if err != nil {
			return res, err
		}
		if ok {
			res.Value = d
			found = true
		}
	}

	if !found {
		ok, err := ip.ScanKeyword("true")
		if err != nil {
			return res, err
		}
		if ok {
			integer, frac, err = dimen.Magnify(integer, frac, ip.Ctx.Count("mag"))
			if err != nil {
				return res, err
			}
		}
		for _, unit := range dimen.Units {
			ok, err := ip.ScanKeyword(unit)
			if err != nil {
				return res, err
			}
			if ok {
				res.Value, err = dimen.Scale(integer, frac, unit)
				if err != nil {
					return res, err
				}
				found = true
				break
			}
		}
		if !found {
			ok, err := ip.ScanKeyword("sp")
			if err != nil {
				return res, err
			}
			if !ok {
				return res, texerr.New(texerr.IllegalUnit)
			}
			if integer > int64(dimen.MaxDimen) {
				return res, texerr.New(texerr.DimenTooLarge)
			}
			res.Value = dimen.Dimen(integer)
		}
	}

	err := ip.skipOptionalSpace()
	if err != nil {
		return res, err
	}
	if neg {
		res.Value = -res.Value
	}
	if err := res.Value.Check(); err != nil {
		return res, err
	}
	return res, nil
}

// scanInternalUnit handles units given by internal dimensions, like
// "2\hsize", and the font-relative units em and ex.
func (ip *Interpreter) scanInternalUnit(integer, frac int64) (dimen.Dimen, bool, error) {
	t, err := ip.getXNonSpace()
	if err == io.EOF {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	if c, ok := ip.internalOf(t); ok && c.kind() != toksValue {
		r, err := c.resolve(ip)
		if err != nil {
			return 0, false, err
		}
		unit := dimen.Dimen(r.get().asInt())
		d, err := dimen.Fraction(integer, frac, unit)
		return d, true, err
	}
	ip.In.Push(t)

	for _, fu := range []struct {
		kw    string
		param int
	}{{"em", 6}, {"ex", 5}} {
		ok, err := ip.ScanKeyword(fu.kw)
		if err != nil {
			return 0, false, err
		}
		if ok {
			unit := ip.Ctx.Font().Param(fu.param)
			d, err := dimen.Fraction(integer, frac, unit)
			return d, true, err
		}
	}
	return 0, false, nil
}

// ScanGlue reads a glue specification, like "3pt plus 1fil minus 1pt".
func (ip *Interpreter) ScanGlue() (dimen.Glue, error) {
	neg, t, err := ip.scanSigns()
	if err != nil {
		return dimen.Glue{}, err
	}
	if c, ok := ip.internalOf(t); ok && c.kind() == glueValue {
		r, err := c.resolve(ip)
		if err != nil {
			return dimen.Glue{}, err
		}
		g := r.get().g
		if neg {
			g = g.Negate()
		}
		return g, nil
	}

	var res dimen.Glue
	width, err := ip.scanDimenFrom(neg, t, false)
	if err != nil {
		return res, err
	}
	res.Width = width.Value

	ok, err := ip.ScanKeyword("plus")
	if err != nil {
		return res, err
	}
	if ok {
		res.Stretch, err = ip.scanInfDimen()
		if err != nil {
			return res, err
		}
	}
	ok, err = ip.ScanKeyword("minus")
	if err != nil {
		return res, err
	}
	if ok {
		res.Shrink, err = ip.scanInfDimen()
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (ip *Interpreter) scanInfDimen() (dimen.GlueComponent, error) {
	neg, t, err := ip.scanSigns()
	if err != nil {
		return dimen.GlueComponent{}, err
	}
	c, err := ip.scanDimenFrom(neg, t, true)
	if c.Value == 0 {
		c.Order = dimen.Normal
	}
	return c, err
}

// ScanTokens reads a balanced group of raw tokens, starting with the
// opening brace.  The braces are not included in the result.
func (ip *Interpreter) ScanTokens() (token.TokenList, error) {
	t, err := ip.GetToken()
	if err != nil {
		return nil, ip.eofError(err, texerr.MissingLeftBrace)
	}
	if !t.Is(token.CatBeginGroup) {
		ip.In.Push(t)
		return nil, texerr.At(texerr.MissingLeftBrace, t)
	}
	return ip.scanBalanced()
}

// scanBalanced reads raw tokens up to the closing brace matching an
// already consumed opening brace.
func (ip *Interpreter) scanBalanced() (token.TokenList, error) {
	var res token.TokenList
	depth := 0
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.UnterminatedGroup)
		}
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			if depth == 0 {
				return res, nil
			}
			depth--
		}
		res = append(res, t)
	}
}

// scanLeftBrace skips blanks and \relax and reads a begin-group
// character or a control sequence \let to one.
func (ip *Interpreter) scanLeftBrace() error {
	t, err := ip.getXNonBlankNonRelax()
	if err != nil {
		return ip.eofError(err, texerr.MissingLeftBrace)
	}
	if t.Is(token.CatBeginGroup) {
		return nil
	}
	if cm, ok := ip.meaning(t).(*charMeaning); ok && cm.tok.Is(token.CatBeginGroup) {
		return nil
	}
	ip.In.Push(t)
	return texerr.At(texerr.MissingLeftBrace, t)
}

// scanGeneralText reads a balanced group with full expansion, as used
// by \message and \write.  Protected macros and \the results are not
// expanded further.
func (ip *Interpreter) scanGeneralText() (token.TokenList, error) {
	err := ip.scanLeftBrace()
	if err != nil {
		return nil, err
	}
	return ip.expandBalanced()
}

// expandBalanced reads tokens up to the closing brace matching an
// already consumed opening brace, expanding everything which is not
// protected.
func (ip *Interpreter) expandBalanced() (token.TokenList, error) {
	var res token.TokenList
	depth := 0
	for {
		t, err := ip.GetToken()
		if err != nil {
			return nil, ip.eofError(err, texerr.UnterminatedGroup)
		}
		if !ip.dontExpand && t.IsCommand() {
			code := ip.meaning(t)
			if code == ip.primitives["the"] {
				toks, err := ip.theTokens()
				if err != nil {
					return nil, err
				}
				res = append(res, toks...)
				continue
			}
			if exp, ok := code.(Expandable); ok {
				if m, isMacro := exp.(*Macro); !isMacro || !m.Protected {
					err = ip.expand(exp, t)
					if err != nil {
						return nil, err
					}
					continue
				}
			}
		}
		switch {
		case t.Is(token.CatBeginGroup):
			depth++
		case t.Is(token.CatEndGroup):
			if depth == 0 {
				return res, nil
			}
			depth--
		}
		res = append(res, t)
	}
}

// scanToksValue reads the right hand side of a token list assignment:
// either a token register or a balanced text.
func (ip *Interpreter) scanToksValue() (token.TokenList, error) {
	t, err := ip.getXNonBlankNonRelax()
	if err != nil {
		return nil, ip.eofError(err, texerr.MissingLeftBrace)
	}
	if c, ok := ip.internalOf(t); ok && c.kind() == toksValue {
		r, err := c.resolve(ip)
		if err != nil {
			return nil, err
		}
		return r.get().toks, nil
	}
	ip.In.Push(t)
	err = ip.scanLeftBrace()
	if err != nil {
		return nil, err
	}
	return ip.scanBalanced()
}

// getRToken reads the name of a control sequence to be defined.
func (ip *Interpreter) getRToken() (token.Token, error) {
	for {
		t, err := ip.GetToken()
		if err != nil {
			return t, ip.eofError(err, texerr.MissingControlSequence)
		}
		if t.Is(token.CatSpace) {
			continue
		}
		if !t.IsCommand() || t == frozenRelax {
			ip.In.Push(t)
			return t, texerr.At(texerr.MissingControlSequence, t)
		}
		return t, nil
	}
}

// scanFileName reads a file name, either in braces or terminated by
// a space or a non-character token.
func (ip *Interpreter) scanFileName() (string, error) {
	t, err := ip.getXNonSpace()
	if err != nil {
		return "", ip.eofError(err, texerr.FileNotFound)
	}
	if t.Is(token.CatBeginGroup) {
		toks, err := ip.expandBalanced()
		if err != nil {
			return "", err
		}
		return toks.Text(-1), nil
	}
	var name []rune
	for {
		if t.Kind != token.KindChar || t.Is(token.CatSpace) || ip.dontExpand {
			if !t.Is(token.CatSpace) {
				ip.In.Push(t)
			}
			break
		}
		name = append(name, t.Char)
		t, err = ip.GetXToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
	}
	return string(name), nil
}
