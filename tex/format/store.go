// store.go -
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

package format

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

const (
	fileExt = ".fmt"
	tmpExt  = ".tmp"
)

// ErrMismatch is returned by Store.Get if the file found for a format
// name holds an image for a different job.
var ErrMismatch = errors.New("format file does not match its name")

// DefaultDir returns the directory used for formats if no directory
// is configured.  The environment variable TEXMACRO_FORMATS takes
// precedence over the user's cache directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("TEXMACRO_FORMATS"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "de.seehuhn.texmacro", "formats"), nil
}

// Store keeps the images written by \dump in a directory, one file per
// format name and format version.  Formats which were neither written
// nor loaded in the current session are removed, oldest first, when
// the store is closed and the directory exceeds its size limit.
type Store struct {
	dir    string
	files  map[string]*fileInfo
	opened time.Time
}

type fileInfo struct {
	size int64
	used time.Time
}

// NewStore opens the format store in the given directory, creating
// the directory if needed.
func NewStore(dir string) (*Store, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:    dir,
		files:  make(map[string]*fileInfo),
		opened: time.Now(),
	}
	var total int64
	for _, de := range des {
		name := de.Name()
		if strings.HasSuffix(name, tmpExt) {
			// left behind by an interrupted Put
			_ = os.Remove(filepath.Join(dir, name))
			continue
		}
		if de.IsDir() || !strings.HasSuffix(name, fileExt) {
			log.Printf("formats %s: ignoring %q", dir, name)
			continue
		}
		fi, err := de.Info()
		if err != nil {
			continue
		}
		s.files[strings.TrimSuffix(name, fileExt)] = &fileInfo{
			size: fi.Size(),
			used: fi.ModTime(),
		}
		total += fi.Size()
	}
	log.Printf("formats %s: %s in %d files", dir, byteSize(total), len(s.files))
	return s, nil
}

// Put writes img to the store, under the job name recorded in the
// image.  An older image for the same job is replaced.
func (s *Store) Put(img *Image) error {
	if img.JobName == "" {
		return errors.New("cannot store a format without a job name")
	}
	key := fileKey(img.JobName)

	tmp, err := os.CreateTemp(s.dir, key+"-*"+tmpExt)
	if err != nil {
		return err
	}
	err = img.Encode(tmp)
	if err == nil {
		err = tmp.Sync()
	}
	e2 := tmp.Close()
	if err == nil {
		err = e2
	}
	if err == nil {
		err = os.Rename(tmp.Name(), s.path(key))
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	fi, err := os.Stat(s.path(key))
	if err != nil {
		return err
	}
	s.files[key] = &fileInfo{size: fi.Size(), used: time.Now()}
	return nil
}

// Get loads the format for the given job name.  If no such format
// exists, the returned error satisfies os.IsNotExist.
func (s *Store) Get(name string) (*Image, error) {
	key := fileKey(name)
	fd, err := os.Open(s.path(key))
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, err := Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", name, err)
	}
	if img.JobName != name || img.ID == uuid.Nil {
		return nil, fmt.Errorf("format %q: %w (found job %q)", name, ErrMismatch, img.JobName)
	}
	if fi, ok := s.files[key]; ok {
		fi.used = time.Now()
	}
	return img, nil
}

// Close must be called when the store is no longer needed.  Formats
// not used in this session are removed, least recently used first,
// until at most limit bytes remain.  If limit is negative, all formats
// and the directory itself are removed.
func (s *Store) Close(limit int64) error {
	keys := make([]string, 0, len(s.files))
	var total int64
	for key, fi := range s.files {
		keys = append(keys, key)
		total += fi.size
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.files[keys[i]].used.Before(s.files[keys[j]].used)
	})

	var firstErr error
	removed := 0
	var freed int64
	for _, key := range keys {
		fi := s.files[key]
		if total <= limit || limit >= 0 && !fi.used.Before(s.opened) {
			break
		}
		err := os.Remove(s.path(key))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		removed++
		freed += fi.size
		total -= fi.size
	}
	if removed > 0 {
		log.Printf("formats %s: removed %s in %d files", s.dir, byteSize(freed), removed)
	}
	if limit < 0 {
		_ = os.Remove(s.dir)
	}
	s.files = nil
	return firstErr
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// fileKey maps a job name to a file name.  The format version is part
// of the key, so that images of different versions can coexist.
func fileKey(jobName string) string {
	h := sha3.NewShake128()
	h.Write([]byte(strconv.Itoa(Version)))
	h.Write([]byte{0})
	h.Write([]byte(jobName))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
