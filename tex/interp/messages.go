// messages.go -
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
	"github.com/seehuhn/texmacro/tex/texerr"
	"github.com/seehuhn/texmacro/tex/token"
)

// messageText reads a general text and converts it into a string.
func (ip *Interpreter) messageText() (string, error) {
	toks, err := ip.scanGeneralText()
	if err != nil {
		return "", err
	}
	return toks.Format(ip.Ctx.EscapeChar()), nil
}

func showMessage(ip *Interpreter, t token.Token) error {
	text, err := ip.messageText()
	if err != nil {
		return err
	}
	ip.Listener.Message(text)
	return nil
}

func showMeaning(ip *Interpreter, t token.Token) error {
	next, err := ip.GetToken()
	if err != nil {
		return ip.eofError(err, texerr.MissingControlSequence)
	}
	var text string
	if next.IsCommand() {
		text = "> " + ip.showToken(next) + "=" + ip.meaningText(next) + "."
	} else {
		text = "> " + ip.meaningText(next) + "."
	}
	ip.Listener.Message(text)
	return nil
}

func showThe(ip *Interpreter, t token.Token) error {
	toks, err := ip.theTokens()
	if err != nil {
		return err
	}
	ip.Listener.Message("> " + toks.Format(ip.Ctx.EscapeChar()) + ".")
	return nil
}

// writeStream implements \write.  All writes are performed
// immediately.
func writeStream(ip *Interpreter, t token.Token) error {
	n, err := ip.ScanInteger()
	if err != nil {
		return err
	}
	text, err := ip.messageText()
	if err != nil {
		return err
	}
	ip.Listener.Write(n, text)
	return nil
}

func errMessage(ip *Interpreter, t token.Token) error {
	text, err := ip.messageText()
	if err != nil {
		return err
	}
	return texerr.New(texerr.UserError, text)
}

func (ip *Interpreter) defineMessages() {
	for _, c := range []*command{
		{name: "message", fn: showMessage},
		{name: "show", fn: showMeaning},
		{name: "showthe", fn: showThe},
		{name: "write", fn: writeStream, immediate: true},
		{name: "errmessage", fn: errMessage},
	} {
		ip.primitive(c)
	}
}
