// scanner_test.go -
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

package scanner

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestScannerLines(t *testing.T) {
	scan := NewString("line 1\r\nline 2\n\nlast", "test")
	expected := []string{"line 1", "line 2", "", "last"}
	for i, exp := range expected {
		line, err := scan.ReadLine()
		if err != nil {
			t.Fatalf("line %d: unexpected error: %s", i+1, err)
		}
		if line != exp {
			t.Errorf("expected %q, got %q", exp, line)
		}
		if scan.Line() != i+1 {
			t.Errorf("wrong line number %d, expected %d", scan.Line(), i+1)
		}
	}
	_, err := scan.ReadLine()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	_, err = scan.ReadLine()
	if err != io.EOF {
		t.Errorf("repeated read: expected io.EOF, got %v", err)
	}
}

func TestScannerFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "doc.tex"), []byte("hello\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	scan, err := Open("doc", dir)
	if err != nil {
		t.Fatal(err)
	}
	defer scan.Close()
	if !scan.IsFile() || scan.Name != "doc.tex" {
		t.Errorf("wrong file scanner %q", scan.Name)
	}
	line, err := scan.ReadLine()
	if err != nil || line != "hello" {
		t.Errorf("wrong first line %q (%v)", line, err)
	}

	_, err = Open("missing", dir)
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
