// tokenizer.go -
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

// Package tokenizer converts TeX input into a stream of tokens.
//
// Input is held on a stack of streams.  Files and strings are read
// line by line and classified using the current category codes, so
// that changes of catcodes take effect immediately.  Every stream has
// a push-back buffer which is read before the stream's own content.
package tokenizer

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"

	"github.com/seehuhn/texmacro/tex/scanner"
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

func tracer() tracing.Trace {
	return tracing.Select("tex.tokenizer")
}

// Catcodes gives the tokenizer access to the category code table and
// to the end of line character.
type Catcodes interface {
	Catcode(r rune) token.Catcode

	// EndLineChar returns the character appended to every input
	// line, or a negative value if no character is appended.
	EndLineChar() rune
}

// Listener is notified when input streams are opened and closed.
type Listener interface {
	StreamOpened(name string, isFile bool)
	StreamClosed(name string, isFile bool)
}

// Source is a stack of input streams.  The zero value is not usable;
// use NewSource.
type Source struct {
	// BaseDir is the base directory for include files.  Filenames
	// passed to the .Include() method are interpreted as being
	// relative to this directory.
	BaseDir string

	// Listener, if set, is notified about opened and closed streams.
	Listener Listener

	cat     Catcodes
	streams []*stream
	pending int
}

// NewSource creates an empty token source which classifies input
// characters using cat.
func NewSource(cat Catcodes) *Source {
	return &Source{cat: cat}
}

// PushString adds the given text to the input stack.  The text is
// read next, followed by all previous inputs.  The argument `name` is
// used to identify the text in error messages.
func (src *Source) PushString(data string, name string) {
	src.open(&stream{scan: scanner.NewString(data, name)})
}

// Include adds the contents of the given file to the input stack.  The
// file contents are read next, followed by all remaining, previously
// registered inputs.
func (src *Source) Include(fileName string) error {
	scan, err := scanner.Open(fileName, src.BaseDir)
	if err != nil {
		return err
	}
	if src.BaseDir == "" {
		tmp, err := filepath.Abs(scan.Path)
		if err != nil {
			scan.Close()
			return err
		}
		src.BaseDir = filepath.Dir(tmp)
	}
	src.open(&stream{scan: scan})
	return nil
}

func (src *Source) open(st *stream) {
	src.streams = append(src.streams, st)
	tracer().Debugf("open %s", st.name())
	if src.Listener != nil {
		src.Listener.StreamOpened(st.name(), st.isFile())
	}
}

func (src *Source) pop() {
	n := len(src.streams) - 1
	st := src.streams[n]
	src.streams[n] = nil
	src.streams = src.streams[:n]
	src.pending -= len(st.pushback)
	if st.scan == nil {
		return
	}
	if err := st.scan.Close(); err != nil {
		tracer().Errorf("closing %s: %s", st.name(), err)
	}
	tracer().Debugf("close %s", st.name())
	if src.Listener != nil {
		src.Listener.StreamClosed(st.name(), st.isFile())
	}
}

// GetToken returns the next raw token, without expansion.  Pushed
// back tokens are returned first.  Exhausted streams are removed from
// the stack; io.EOF is returned once the stack is empty.
func (src *Source) GetToken() (token.Token, error) {
	for len(src.streams) > 0 {
		st := src.streams[len(src.streams)-1]
		if n := len(st.pushback); n > 0 {
			tok := st.pushback[n-1]
			st.pushback = st.pushback[:n-1]
			src.pending--
			return tok, nil
		}
		if st.scan != nil {
			tok, err := st.readToken(src.cat)
			if err == nil {
				return tok, nil
			}
			if err != io.EOF {
				return token.Token{}, src.Annotate(err)
			}
		}
		src.pop()
	}
	return token.Token{}, io.EOF
}

// GetNonSpace returns the next raw token which is not a space token.
func (src *Source) GetNonSpace() (token.Token, error) {
	for {
		tok, err := src.GetToken()
		if err != nil || !tok.Is(token.CatSpace) {
			return tok, err
		}
	}
}

// Push prepends the given tokens to the input.  A following sequence
// of calls to GetToken returns exactly these tokens, in the given
// order.
func (src *Source) Push(toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	if len(src.streams) == 0 {
		src.streams = append(src.streams, &stream{})
	}
	st := src.streams[len(src.streams)-1]
	for i := len(toks) - 1; i >= 0; i-- {
		st.pushback = append(st.pushback, toks[i])
	}
	src.pending += len(toks)
}

// PushList is like Push, but takes a token list.
func (src *Source) PushList(toks token.TokenList) {
	src.Push(toks...)
}

// Pending returns the total number of pushed back tokens which have
// not been read yet.
func (src *Source) Pending() int {
	return src.pending
}

// Depth returns the number of streams on the input stack.
func (src *Source) Depth() int {
	return len(src.streams)
}

// EndInput arranges for the innermost input file to be closed once
// its current line is finished.
func (src *Source) EndInput() {
	for i := len(src.streams) - 1; i >= 0; i-- {
		if src.streams[i].isFile() {
			src.streams[i].endInput = true
			return
		}
	}
}

// Locator returns the current position in the innermost stream which
// reads from a file or a string.
func (src *Source) Locator() token.Locator {
	for i := len(src.streams) - 1; i >= 0; i-- {
		st := src.streams[i]
		if st.scan == nil {
			continue
		}
		return token.Locator{
			Name:   st.name(),
			Line:   st.scan.Line(),
			Column: st.pos + 1,
		}
	}
	return token.Locator{}
}

// Annotate attaches the current input stack to err, if err is a
// *texerr.Error without position information.  Other errors are
// returned unchanged.
func (src *Source) Annotate(err error) error {
	var e *texerr.Error
	if !errors.As(err, &e) || e.Stack != nil {
		return err
	}
	for i := len(src.streams) - 1; i >= 0; i-- {
		st := src.streams[i]
		if st.scan == nil {
			continue
		}
		e.Stack = append(e.Stack, st.frame())
	}
	return err
}

// MakeError returns an error object which includes the given kind
// together with information about the current input position.
func (src *Source) MakeError(kind texerr.Kind, args ...interface{}) *texerr.Error {
	err := texerr.New(kind, args...)
	src.Annotate(err)
	return err
}

// Close closes all input files and discards all buffers.
func (src *Source) Close() (err error) {
	for _, st := range src.streams {
		if st.scan == nil {
			continue
		}
		e2 := st.scan.Close()
		if err == nil {
			err = e2
		}
	}
	src.streams = nil
	src.pending = 0
	return
}
