package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

// ErrNoMatch is returned when a glob pattern matches no file.
var ErrNoMatch = errors.New("pattern matches no files")

// Expand turns command line arguments into a sorted, de-duplicated file
// list. Glob patterns are expanded, directories are walked for files that
// supported accepts, skipping hidden and vendored directories. Files named
// explicitly are kept even when supported rejects them, so the caller sees
// their error.
func Expand(args []string, supported func(path string) bool) ([]string, error) {
	seen := make(map[string]struct{})

	var out []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}

	for _, arg := range args {
		matches := []string{arg}

		if strings.ContainsAny(arg, "*?[") {
			var err error

			matches, err = filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", arg, err)
			}

			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
			}
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", m, err)
			}

			if !info.IsDir() {
				add(m)

				continue
			}

			if err := walk(m, supported, add); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(out)

	return out, nil
}

func walk(root string, supported func(string) bool, add func(string)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		// vendoring is judged relative to the walked root
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() && supported(path) && !enry.IsVendor(rel) {
			add(path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	return nil
}
