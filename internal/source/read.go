// Package source loads text for the reader: files from disk, the text saved
// from the previous session, and change notifications for the open file.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxFileSize is the largest file ReadFile accepts.
const MaxFileSize = 64 << 20

// Errors returned when reading files.
var (
	ErrTooLarge    = errors.New("file too large")
	ErrIsDirectory = errors.New("path is a directory")
)

// Document is text together with where it came from.
type Document struct {
	// Name is the display name, usually the file's base name.
	Name string
	// Path is the absolute path the text was read from, empty for cached text.
	Path string
	// Text is the decoded content.
	Text string
}

// ReadFile reads and decodes a text file.
func ReadFile(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("reading %s: %w", path, ErrIsDirectory)
	}
	if info.Size() > MaxFileSize {
		return Document{}, fmt.Errorf("reading %s: %w", path, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return Document{}, fmt.Errorf("reading %s: %w", path, ErrTooLarge)
	}

	text, err := Decode(data)
	if err != nil {
		return Document{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return Document{Name: filepath.Base(abs), Path: abs, Text: text}, nil
}

// Decode converts file content to a string. A byte order mark selects UTF-8
// or UTF-16 and is stripped; without one the content is read as UTF-8 with
// invalid sequences replaced by U+FFFD.
func Decode(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
