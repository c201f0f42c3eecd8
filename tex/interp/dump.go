// dump.go -
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
	"errors"
	"fmt"

	"github.com/seehuhn/texmacro/tex/format"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/typeset"
)

var allTables = []state.Table{
	state.MathCode, state.LcCode, state.UcCode, state.SfCode, state.DelCode,
}

// Dump converts the current state into a format image.  Dump fails
// if a group is open.
func (ip *Interpreter) Dump() (*format.Image, error) {
	snap, err := ip.Ctx.Snapshot()
	if err != nil {
		return nil, err
	}
	img := format.NewImage(ip.JobName)
	img.Preset = snap.Preset
	img.Catcodes = snap.Catcodes
	for _, tab := range allTables {
		img.Tables[tab.String()] = snap.Table(tab)
	}
	img.Counts = snap.Counts
	img.Dimens = snap.Dimens
	img.Glues = snap.Glues
	img.Toks = snap.Toks
	for name, c := range snap.Codes {
		if ip.primitives[name] == c {
			// unchanged primitives are defined by New
			continue
		}
		b, err := ip.binding(c)
		if err != nil {
			return nil, fmt.Errorf("\\%s: %w", name, err)
		}
		img.Codes[name] = b
	}
	for r, c := range snap.Active {
		b, err := ip.binding(c)
		if err != nil {
			return nil, fmt.Errorf("active %q: %w", r, err)
		}
		img.Active[r] = b
	}
	if snap.Font != typeset.NullFont {
		img.CurrentFont = snap.Font.ID
	}
	tracer().Infof("dumped format %s: %d control sequences", img.ID, len(img.Codes))
	return img, nil
}

var errUnknownCode = errors.New("cannot dump this meaning")

func (ip *Interpreter) binding(c state.Code) (format.Binding, error) {
	switch c := c.(type) {
	case *Macro:
		return format.Binding{
			Kind:      format.Macro,
			Name:      c.name,
			Pattern:   c.Pattern,
			Body:      c.Body,
			Long:      c.Long,
			Outer:     c.Outer,
			Protected: c.Protected,
		}, nil
	case *charMeaning:
		return format.Binding{Kind: format.CharToken, Token: c.tok}, nil
	case *charDef:
		return format.Binding{Kind: format.CharDef, Value: int64(c.char)}, nil
	case *registerAlias:
		return format.Binding{Kind: format.Register, Name: c.class.String(), Value: c.index}, nil
	case *fontCode:
		if c.font == typeset.NullFont {
			return format.Binding{Kind: format.Primitive, Name: "nullfont"}, nil
		}
		return format.Binding{
			Kind:       format.Font,
			Name:       c.font.Name,
			FontID:     c.font.ID,
			Size:       c.font.Size,
			FontParams: c.font.Params,
		}, nil
	}
	if ip.primitives[c.Name()] == c {
		return format.Binding{Kind: format.Primitive, Name: c.Name()}, nil
	}
	return format.Binding{}, errUnknownCode
}

// Undump restores the state saved in a format image.  Undump must be
// called before any groups are opened.
func (ip *Interpreter) Undump(img *format.Image) error {
	snap := &state.Snapshot{
		Preset:   img.Preset,
		Catcodes: img.Catcodes,
		Counts:   img.Counts,
		Dimens:   img.Dimens,
		Glues:    img.Glues,
		Toks:     img.Toks,
		Codes:    make(map[string]state.Code, len(img.Codes)),
		Active:   make(map[rune]state.Code, len(img.Active)),
	}
	for _, tab := range allTables {
		snap.SetTable(tab, img.Tables[tab.String()])
	}

	fonts := make(map[string]*typeset.Font)
	for name, b := range img.Codes {
		c, err := ip.unbinding(b, fonts)
		if err != nil {
			return fmt.Errorf("\\%s: %w", name, err)
		}
		snap.Codes[name] = c
	}
	for r, b := range img.Active {
		c, err := ip.unbinding(b, fonts)
		if err != nil {
			return fmt.Errorf("active %q: %w", r, err)
		}
		snap.Active[r] = c
	}
	if img.CurrentFont != "" {
		snap.Font = fonts[img.CurrentFont]
	}

	err := ip.Ctx.Restore(snap)
	if err != nil {
		return err
	}
	if img.JobName != "" && ip.JobName == "texput" {
		ip.JobName = img.JobName
	}
	tracer().Infof("loaded format %s (%s)", img.ID, img.JobName)
	return nil
}

func (ip *Interpreter) unbinding(b format.Binding, fonts map[string]*typeset.Font) (state.Code, error) {
	switch b.Kind {
	case format.Primitive:
		c := ip.primitives[b.Name]
		if c == nil {
			return nil, fmt.Errorf("unknown primitive %q", b.Name)
		}
		return c, nil
	case format.Macro:
		return &Macro{
			name:      b.Name,
			Pattern:   b.Pattern,
			Body:      b.Body,
			Long:      b.Long,
			Outer:     b.Outer,
			Protected: b.Protected,
		}, nil
	case format.CharToken:
		return &charMeaning{tok: b.Token}, nil
	case format.CharDef:
		return &charDef{char: rune(b.Value)}, nil
	case format.Register:
		for _, class := range []regClass{countReg, dimenReg, skipReg, toksReg} {
			if class.String() == b.Name {
				return &registerAlias{class: class, index: b.Value}, nil
			}
		}
		return nil, fmt.Errorf("unknown register class %q", b.Name)
	case format.Font:
		f := fonts[b.FontID]
		if f == nil {
			f = typeset.NewFont(b.FontID, b.Name, b.Size)
			for k, v := range b.FontParams {
				f.Params[k] = v
			}
			fonts[b.FontID] = f
		}
		return &fontCode{font: f}, nil
	}
	return nil, errUnknownCode
}
