package rules

import (
	"errors"
	"fmt"
	"sort"
)

// Validation errors.
var (
	ErrNoLanguage       = errors.New("rule table has no language")
	ErrNoGrammar        = errors.New("rule table has no grammar")
	ErrOperatorRenamed  = errors.New("operator kind is also renamed")
	ErrSkipAndFlatten   = errors.New("kind is both skipped and flattened")
	ErrInvalidElement   = errors.New("invalid element name")
	ErrDataWithoutFmt   = errors.New("data table without format")
	ErrFormatWithoutDat = errors.New("format without data table")
	ErrPairConflict     = errors.New("kind is both a pair and a mapping")
)

// Validate checks a table for conflicts the walker cannot resolve. An
// operator kind that is also renamed is reported rather than given a
// precedence: operator lifting always wins at build time.
func Validate(t *Table) error {
	var errs []error

	if t.Language == "" {
		errs = append(errs, ErrNoLanguage)
	}

	if t.Grammar == "" {
		errs = append(errs, fmt.Errorf("%w: %s", ErrNoGrammar, t.Language))
	}

	for _, kind := range sortedKeys(t.Operators) {
		if _, ok := t.Rename[kind]; ok {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrOperatorRenamed, t.Language, kind))
		}
	}

	for _, kind := range sortedKeys(t.Skip) {
		if t.Flatten.Has(kind) {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrSkipAndFlatten, t.Language, kind))
		}
	}

	for _, field := range sortedKeys(t.WrappedFields) {
		if !IsValidName(field) {
			errs = append(errs, fmt.Errorf("%w: %s field %q", ErrInvalidElement, t.Language, field))
		}
	}

	for _, kind := range sortedMapKeys(t.PositionalFields) {
		for _, field := range t.PositionalFields[kind] {
			if !IsValidName(field) {
				errs = append(errs, fmt.Errorf("%w: %s %q field %q", ErrInvalidElement, t.Language, kind, field))
			}
		}
	}

	for _, kind := range sortedMapKeys(t.Rename) {
		if !IsValidName(t.Rename[kind]) {
			errs = append(errs, fmt.Errorf("%w: %s %q -> %q", ErrInvalidElement, t.Language, kind, t.Rename[kind]))
		}
	}

	switch {
	case t.Data != nil && t.Format == "":
		errs = append(errs, fmt.Errorf("%w: %s", ErrDataWithoutFmt, t.Language))
	case t.Data == nil && t.Format != "":
		errs = append(errs, fmt.Errorf("%w: %s", ErrFormatWithoutDat, t.Language))
	case t.Data != nil:
		for _, kind := range sortedMapKeys(t.Data.Pairs) {
			if t.Data.Mappings.Has(kind) {
				errs = append(errs, fmt.Errorf("%w: %s %q", ErrPairConflict, t.Language, kind))
			}
		}
	}

	return errors.Join(errs...)
}

func sortedKeys(s Set) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

func sortedMapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
