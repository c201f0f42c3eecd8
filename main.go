// main.go -
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

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/seehuhn/texmacro/tex/config"
	"github.com/seehuhn/texmacro/tex/format"
	"github.com/seehuhn/texmacro/tex/interp"
	"github.com/seehuhn/texmacro/tex/state"
	"github.com/seehuhn/texmacro/tex/token"
	"github.com/seehuhn/texmacro/tex/typeset"
)

var (
	configFile = flag.String("config", "", "read settings from this YAML file")
	fmtName    = flag.String("fmt", "", "load this format before reading the input")
	jobName    = flag.String("jobname", "", "the job name")
	width      = flag.Int("width", 0, "line width of the text output")
	prune      = flag.Int64("prune", 64<<20, "bytes of old formats to keep in the cache")
)

// logListener reports messages from the interpreter on the log.
type logListener struct {
	undefined int
}

func (l *logListener) Message(text string) {
	log.Println(text)
}

func (l *logListener) Write(stream int64, text string) {
	if stream < 0 || stream > 15 {
		log.Println(text)
		return
	}
	log.Printf("write%d: %s", stream, text)
}

func (l *logListener) Undefined(t token.Token, loc token.Locator) {
	l.undefined++
	log.Printf("%s: undefined control sequence %s", loc, t)
}

func (l *logListener) StreamOpened(name string, isFile bool) {
	if isFile {
		log.Printf("(%s", name)
	}
}

func (l *logListener) StreamClosed(name string, isFile bool) {
	if isFile {
		log.Printf("%s)", name)
	}
}

func outputWidth() int {
	if *width > 0 {
		return *width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w - 1
		}
	}
	return 79
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: texmacro [options] <input.tex>")
	}
	inputName := flag.Arg(0)

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	cfg.ApplyTracing()
	if *fmtName != "" {
		cfg.Format = *fmtName
	}
	if *jobName != "" {
		cfg.JobName = *jobName
	} else if cfg.JobName == "" || cfg.JobName == "texput" {
		cfg.JobName = strings.TrimSuffix(filepath.Base(inputName), ".tex")
	}

	dir := cfg.FormatCache
	if dir == "" {
		var err error
		dir, err = format.DefaultDir()
		if err != nil {
			log.Fatal(err)
		}
	}
	formats, err := format.NewStore(dir)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		err := formats.Close(*prune)
		if err != nil {
			log.Print(err)
		}
	}()

	rec := typeset.NewRecorder()
	lst := &logListener{}
	ip := interp.New(&interp.Options{
		JobName: cfg.JobName,
		State: &state.Options{
			Preset:         cfg.Catcodes,
			UnicodeLetters: cfg.UnicodeLetters,
		},
		Limits: interp.Limits{
			MaxExpansionDepth: cfg.MaxExpansionDepth,
			MaxPushback:       cfg.MaxPushback,
			MaxInputDepth:     cfg.MaxInputDepth,
		},
		Out:      rec,
		Listener: lst,
		OnDump: func(img *format.Image) error {
			log.Printf("writing format %s", img.JobName)
			return formats.Put(img)
		},
	})
	ip.In.BaseDir = cfg.BaseDir
	ip.In.Listener = lst

	if cfg.Format != "" {
		img, err := formats.Get(cfg.Format)
		if err != nil {
			log.Fatalf("format %s: %v", cfg.Format, err)
		}
		err = ip.Undump(img)
		if err != nil {
			log.Fatalf("format %s: %v", cfg.Format, err)
		}
	}
	ip.Ctx.SetCount("endlinechar", cfg.EndLineChar, true)
	ip.Ctx.SetCount("mag", cfg.Mag, true)
	for name, val := range cfg.Counts {
		ip.Ctx.SetCount(name, val, true)
	}

	err = ip.In.Include(inputName)
	if err != nil {
		log.Fatal(err)
	}
	err = ip.Run()
	if e2 := ip.In.Close(); err == nil {
		err = e2
	}
	if err != nil {
		log.Fatal(err)
	}
	if lst.undefined > 0 {
		log.Printf("%d undefined control sequences", lst.undefined)
	}

	err = rec.WriteText(os.Stdout, outputWidth())
	if err != nil {
		log.Fatal(err)
	}
}
