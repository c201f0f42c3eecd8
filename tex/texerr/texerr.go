// texerr.go -
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

// Package texerr defines the errors raised by the TeX interpreter.
//
// Errors carry a symbolic Kind together with positional arguments.
// Formatting messages for users is left to the caller; the text
// returned by the Error() method is meant for logs and tests.
package texerr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/seehuhn/texmacro/tex/token"
)

// Kind enumerates the different error conditions.
type Kind int

// Scan errors.
const (
	MissingNumber Kind = iota + 1
	NumberTooBig
	IllegalUnit
	DimenTooLarge
	MissingLeftBrace
	MissingControlSequence
	MissingEndcsname
	MissingRelation
	UnterminatedGroup
	InvalidCharacter
	BadCharCode
	BadRegister
	BadCatcode
	FileNotFound

	// expansion errors
	ExtraElse
	ExtraFi
	ExtraOr
	RunawayConditional
	RunawayArgument
	PatternMismatch
	ExtraRightBrace
	ParameterNumber
	IllegalParameter
	RecursionTooDeep
	OuterInArgument

	// assignment errors
	ArithmeticOverflow
	Immutable
	IllegalMag
	TooManyRightBraces
	ExtraEndgroup
	GroupMismatch
	CantUse
	CantUsePrefix
	DumpInGroup
	UserError
)

var kindNames = map[Kind]string{
	MissingNumber:          "missing number",
	NumberTooBig:           "number too big",
	IllegalUnit:            "illegal unit of measure",
	DimenTooLarge:          "dimension too large",
	MissingLeftBrace:       "missing { inserted",
	MissingControlSequence: "missing control sequence",
	MissingEndcsname:       "missing \\endcsname",
	MissingRelation:        "missing = inserted for conditional",
	UnterminatedGroup:      "unterminated group",
	InvalidCharacter:       "text line contains an invalid character",
	BadCharCode:            "bad character code",
	BadRegister:            "bad register code",
	BadCatcode:             "invalid code",
	FileNotFound:           "file not found",
	ExtraElse:              "extra \\else",
	ExtraFi:                "extra \\fi",
	ExtraOr:                "extra \\or",
	RunawayConditional:     "incomplete conditional",
	RunawayArgument:        "runaway argument",
	PatternMismatch:        "use of macro does not match its definition",
	ExtraRightBrace:        "argument has an extra }",
	ParameterNumber:        "parameters must be numbered consecutively",
	IllegalParameter:       "illegal parameter number in definition",
	RecursionTooDeep:       "recursion too deep",
	OuterInArgument:        "forbidden \\outer control sequence",
	ArithmeticOverflow:     "arithmetic overflow",
	Immutable:              "cannot mutate immutable value",
	IllegalMag:             "illegal magnification",
	TooManyRightBraces:     "too many }'s",
	ExtraEndgroup:          "extra \\endgroup",
	GroupMismatch:          "group closed by the wrong delimiter",
	CantUse:                "you can't use this here",
	CantUsePrefix:          "you can't use a prefix with this command",
	DumpInGroup:            "\\dump is not allowed inside a group",
	UserError:              "user error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "error " + strconv.Itoa(int(k))
}

// Frame describes one input source on the input stack at the time
// the error occurred.
type Frame struct {
	Name    string
	Line    int
	Column  int
	Context string
}

// Error is the error type used throughout the interpreter.
type Error struct {
	Kind Kind
	Args []interface{}

	// Token is the offending token, if known.
	Token *token.Token

	// Stack lists the active input sources, innermost first.
	Stack []Frame
}

// New returns an error of the given kind.
func New(kind Kind, args ...interface{}) *Error {
	return &Error{Kind: kind, Args: args}
}

// At returns an error of the given kind, attributed to the token t.
func At(kind Kind, t token.Token, args ...interface{}) *Error {
	return &Error{Kind: kind, Args: args, Token: &t}
}

// Locator returns the position of the innermost input source.
func (err *Error) Locator() token.Locator {
	if len(err.Stack) == 0 {
		return token.Locator{}
	}
	f := err.Stack[0]
	return token.Locator{Name: f.Name, Line: f.Line, Column: f.Column}
}

func (err *Error) Error() string {
	res := []string{err.Kind.String()}
	if err.Token != nil {
		res = append(res, " (", err.Token.String(), ")")
	}
	for _, arg := range err.Args {
		res = append(res, " ", fmt.Sprint(arg))
	}
	for i, frame := range err.Stack {
		if i > 0 {
			res = append(res, ", included from")
		}
		res = append(res, "\n    ",
			frame.Name, ", line ", strconv.Itoa(frame.Line))
		if frame.Context != "" {
			res = append(res, fmt.Sprintf(", before %q", frame.Context))
		}
	}
	return strings.Join(res, "")
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
