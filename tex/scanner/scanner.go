// scanner.go -
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

// Package scanner reads TeX input files and buffers line by line.
package scanner

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to file names which cannot be found
// as given.
const DefaultExtension = ".tex"

// Scanner reads a single input source, one line at a time.  TeX
// processes its input in lines, so this is the natural unit for the
// tokenizer to request.
type Scanner struct {
	// Name identifies the input in error messages.  For files, this
	// is the base name of the file.
	Name string

	// Path is the full path name for file inputs, and empty otherwise.
	Path string

	fd   io.Closer
	in   *bufio.Reader
	line int
	err  error
}

// NewString creates a Scanner which reads from the given string.  The
// argument `name` is used to identify the input in error messages
// and should be a short, human-readable string.
func NewString(data string, name string) *Scanner {
	return &Scanner{
		Name: name,
		in:   bufio.NewReader(strings.NewReader(data)),
	}
}

// Open creates a Scanner which reads the given file.  Relative file
// names are interpreted relative to baseDir.  If the file does not
// exist and the name has no extension, DefaultExtension is tried.
func Open(fileName, baseDir string) (*Scanner, error) {
	path, err := Find(fileName, baseDir)
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		Name: filepath.Base(path),
		Path: path,
		fd:   fd,
		in:   bufio.NewReader(fd),
	}, nil
}

// Find locates the input file fileName.
func Find(fileName, baseDir string) (string, error) {
	if baseDir != "" && !filepath.IsAbs(fileName) {
		fileName = filepath.Join(baseDir, fileName)
	}
	_, err := os.Stat(fileName)
	if os.IsNotExist(err) && filepath.Ext(fileName) == "" {
		alt := fileName + DefaultExtension
		if _, e2 := os.Stat(alt); e2 == nil {
			return alt, nil
		}
	}
	if err != nil {
		return "", err
	}
	return fileName, nil
}

// IsFile reports whether the scanner reads from a file.
func (scan *Scanner) IsFile() bool {
	return scan.Path != ""
}

// Line returns the number of the line most recently returned by
// ReadLine.  Lines are numbered starting from 1.
func (scan *Scanner) Line() int {
	return scan.line
}

// ReadLine returns the next line of input, without the line
// terminator.  Both "\n" and "\r\n" terminate lines.  At the end of
// input, io.EOF is returned.
func (scan *Scanner) ReadLine() (string, error) {
	if scan.err != nil {
		return "", scan.err
	}
	line, err := scan.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		scan.err = err
		e2 := scan.Close()
		if err == io.EOF && e2 != nil {
			scan.err = e2
		}
		return "", scan.err
	}
	scan.line++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// Close releases the underlying file, if any.
func (scan *Scanner) Close() error {
	if scan.fd == nil {
		return nil
	}
	err := scan.fd.Close()
	scan.fd = nil
	return err
}
