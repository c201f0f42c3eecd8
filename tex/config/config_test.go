// config_test.go -
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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "texmacro.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
jobname: story
basedir: src
catcodes: plain
unicode_letters: true
mag: 2000
trace:
  tex.interp: debug
counts:
  tracingmacros: 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JobName != "story" || cfg.Catcodes != "plain" || !cfg.UnicodeLetters {
		t.Errorf("wrong settings %+v", cfg)
	}
	if cfg.Mag != 2000 || cfg.Counts["tracingmacros"] != 1 {
		t.Errorf("wrong numeric settings %+v", cfg)
	}
	if cfg.BaseDir != filepath.Join(filepath.Dir(path), "src") {
		t.Errorf("base directory not resolved: %q", cfg.BaseDir)
	}
	if cfg.MaxPushback != Default().MaxPushback || cfg.EndLineChar != '\r' {
		t.Error("defaults lost")
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []string{
		"unknown_field: 1\n",
		"catcodes: latex\n",
		"mag: 0\n",
		"trace:\n  tex.state: loud\n",
		"max_pushback: -1\n",
		"max_input_depth: 0\n",
	}
	for i, body := range testCases {
		_, err := Load(writeConfig(t, body))
		if err == nil {
			t.Errorf("%d: invalid configuration accepted", i)
		}
	}
	if _, err := Load(""); err == nil {
		t.Error("empty path accepted")
	}
}
