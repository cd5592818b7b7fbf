package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/src-d/enry/v2"
)

var (
	// ErrDirectoryPath indicates a single source file was expected.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrBinarySource indicates the file holds no source text.
	ErrBinarySource = errors.New("file is binary")
)

// maxValueWidth bounds a match value printed on one terminal line.
const maxValueWidth = 120

// sourceFile is one user-named file read for a single-file command.
type sourceFile struct {
	path    string
	content []byte
}

// readSource resolves path to an absolute regular file and reads it as
// source text. Directories and binary files are rejected before parsing.
func readSource(path string) (*sourceFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return nil, fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s (use parse or query for directories)", ErrDirectoryPath, abs)
	}

	//nolint:gosec // abs is cleaned and checked to be a regular path above.
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	if enry.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s", ErrBinarySource, abs)
	}

	return &sourceFile{path: abs, content: content}, nil
}

// oneLine renders a matched string value on a single terminal line. Runs
// of whitespace collapse to one space, control characters are dropped and
// values wider than maxValueWidth are cut with an ellipsis.
func oneLine(value string) string {
	var sb strings.Builder

	space := false
	width := 0

	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			space = width > 0

			continue
		case unicode.IsControl(r):
			continue
		}

		if space {
			sb.WriteByte(' ')

			width++
			space = false
		}

		if width >= maxValueWidth {
			sb.WriteString("…")

			break
		}

		sb.WriteRune(r)

		width++
	}

	return sb.String()
}
