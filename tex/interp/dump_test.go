// dump_test.go -
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
	"bytes"
	"testing"

	"github.com/seehuhn/texmacro/tex/format"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

func TestDumpUndump(t *testing.T) {
	var img *format.Image
	ip := newTest(`\def\x#1{(#1)}\chardef\c=65 \countdef\cnt=7 \cnt=3 `+
		`\font\f=cmr10 at 12pt \f\let\y=\x \dump ignored`, &Options{
		JobName: "fmt",
		OnDump: func(i *format.Image) error {
			img = i
			return nil
		},
	})
	err := ip.Run()
	if err != nil {
		t.Fatal(err)
	}
	if img == nil {
		t.Fatal("no image written")
	}
	if _, ok := img.Codes["def"]; ok {
		t.Error("unchanged primitive \\def was dumped")
	}

	buf := &bytes.Buffer{}
	err = img.Encode(buf)
	if err != nil {
		t.Fatal(err)
	}
	img2, err := format.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}

	rec := typeset.NewRecorder()
	ip2 := New(&Options{Out: rec})
	err = ip2.Undump(img2)
	if err != nil {
		t.Fatal(err)
	}
	if img2.Preset != "plain" || ip2.Ctx.Catcode('{') != token.CatBeginGroup ||
		ip2.Ctx.Catcode('#') != token.CatMacroParam {
		t.Errorf("plain catcodes not restored from preset %q", img2.Preset)
	}
	if ip2.JobName != "fmt" {
		t.Errorf("job name %q not restored", ip2.JobName)
	}
	if name := ip2.Ctx.Font().FullName(); name != "cmr10 at 12.0pt" {
		t.Errorf("wrong current font %q", name)
	}
	ip2.In.PushString(`\x{a}\c\the\cnt\ifx\x\y T\fi`, "test")
	err = ip2.Run()
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.String(); got != "(a)A3T" {
		t.Errorf("expected \"(a)A3T\", got %q", got)
	}
}

func TestUndumpUnknownPrimitive(t *testing.T) {
	img := format.NewImage("bad")
	img.Codes["x"] = format.Binding{Kind: format.Primitive, Name: "nosuchprimitive"}
	ip := New(nil)
	if err := ip.Undump(img); err == nil {
		t.Error("unknown primitive accepted")
	}
}
