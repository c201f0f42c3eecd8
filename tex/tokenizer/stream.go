// stream.go -
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

package tokenizer

import (
	"io"

	"github.com/seehuhn/texmacro/tex/scanner"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

type inputState int

const (
	newLine inputState = iota
	midLine
	skipBlanks
)

// stream is one entry of the input stack.  Streams without a scanner
// only hold pushed-back tokens.
type stream struct {
	scan     *scanner.Scanner
	line     []rune
	pos      int
	state    inputState
	pushback []token.Token // the last element is read first
	endInput bool
}

func (st *stream) name() string {
	if st.scan == nil {
		return "<tokens>"
	}
	return st.scan.Name
}

func (st *stream) isFile() bool {
	return st.scan != nil && st.scan.IsFile()
}

func (st *stream) setLine(line string, endLineChar rune) {
	r := []rune(line)
	n := len(r)
	for n > 0 && r[n-1] == ' ' {
		n--
	}
	r = r[:n]
	if endLineChar >= 0 {
		r = append(r, endLineChar)
	}
	st.line = r
	st.pos = 0
	st.state = newLine
}

// readToken converts the next characters of the current line into a
// token, loading new lines as needed.
func (st *stream) readToken(cat Catcodes) (token.Token, error) {
	for {
		if st.pos >= len(st.line) {
			if st.endInput || st.scan == nil {
				return token.Token{}, io.EOF
			}
			line, err := st.scan.ReadLine()
			if err != nil {
				return token.Token{}, err
			}
			st.setLine(line, cat.EndLineChar())
			continue
		}

		st.reduce(cat)
		c := st.line[st.pos]
		code := cat.Catcode(c)
		st.pos++

		switch code {
		case token.CatEscape:
			return st.readControlSequence(cat), nil
		case token.CatEndOfLine:
			st.pos = len(st.line)
			switch st.state {
			case newLine:
				return token.CS("par"), nil
			case midLine:
				return token.Space, nil
			}
		case token.CatSpace:
			if st.state == midLine {
				st.state = skipBlanks
				return token.Space, nil
			}
		case token.CatIgnore:
			// pass
		case token.CatComment:
			st.pos = len(st.line)
		case token.CatInvalid:
			return token.Token{}, texerr.New(texerr.InvalidCharacter, string(c))
		default:
			st.state = midLine
			return token.Char(c, code), nil
		}
	}
}

func (st *stream) readControlSequence(cat Catcodes) token.Token {
	if st.pos >= len(st.line) {
		st.state = skipBlanks
		return token.CS("")
	}
	st.reduce(cat)
	c := st.line[st.pos]
	code := cat.Catcode(c)
	if code != token.CatLetter {
		st.pos++
		if code == token.CatSpace {
			st.state = skipBlanks
		} else {
			st.state = midLine
		}
		return token.CS(string(c))
	}

	start := st.pos
	for st.pos < len(st.line) {
		st.reduce(cat)
		if cat.Catcode(st.line[st.pos]) != token.CatLetter {
			break
		}
		st.pos++
	}
	st.state = skipBlanks
	return token.CS(string(st.line[start:st.pos]))
}

// reduce replaces ^^ notation at the current position by the
// character it denotes.  Both ^^x (for x < 128) and ^^hh (two
// lower-case hex digits) are recognised.
func (st *stream) reduce(cat Catcodes) {
	for st.pos+2 < len(st.line) {
		c := st.line[st.pos]
		if cat.Catcode(c) != token.CatSuperscript || st.line[st.pos+1] != c {
			return
		}
		c2 := st.line[st.pos+2]
		if st.pos+3 < len(st.line) && isHex(c2) && isHex(st.line[st.pos+3]) {
			val := hexVal(c2)<<4 | hexVal(st.line[st.pos+3])
			st.replace(4, val)
		} else if c2 < 128 {
			st.replace(3, c2^0x40)
		} else {
			return
		}
	}
}

func (st *stream) replace(n int, r rune) {
	st.line[st.pos+n-1] = r
	st.line = append(st.line[:st.pos], st.line[st.pos+n-1:]...)
}

func isHex(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f'
}

func hexVal(r rune) rune {
	if r <= '9' {
		return r - '0'
	}
	return r - 'a' + 10
}

func (st *stream) frame() texerr.Frame {
	f := texerr.Frame{Name: st.name()}
	if st.scan != nil {
		f.Line = st.scan.Line()
		f.Column = st.pos + 1
	}
	if st.pos < len(st.line) {
		rest := st.line[st.pos:]
		if len(rest) > 20 {
			f.Context = string(rest[:17]) + "..."
		} else {
			f.Context = string(rest)
		}
	}
	return f
}
