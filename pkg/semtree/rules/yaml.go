package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/ruletable.schema.json
var tableSchema []byte

// Schema returns the JSON schema custom rule tables are checked against.
func Schema() []byte {
	return tableSchema
}

// ErrSchema is wrapped by SchemaError.
var ErrSchema = errors.New("rule table does not match schema")

// Problem is one schema violation.
type Problem struct {
	Field       string
	Description string
}

// SchemaError lists every schema violation of a rule table document.
type SchemaError struct {
	Problems []Problem
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Description)
	}

	return ErrSchema.Error() + ": " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// tableFile is the YAML layout of a custom rule table.
type tableFile struct {
	Language         string              `yaml:"language"`
	Grammar          string              `yaml:"grammar"`
	Extensions       []string            `yaml:"extensions"`
	Aliases          []string            `yaml:"aliases"`
	Rename           map[string]string   `yaml:"rename"`
	Skip             []string            `yaml:"skip"`
	Flatten          []string            `yaml:"flatten"`
	Operators        []string            `yaml:"operators"`
	OperatorParents  []string            `yaml:"operator_parents"`
	Modifiers        []string            `yaml:"modifiers"`
	ModifierKinds    []string            `yaml:"modifier_kinds"`
	ModifierWrappers []string            `yaml:"modifier_wrappers"`
	WrappedFields    []string            `yaml:"wrapped_fields"`
	PositionalFields map[string][]string `yaml:"positional_fields"`
	ExtractName      []string            `yaml:"extract_name"`
	Identifiers      []string            `yaml:"identifiers"`
	TypeIdentifiers  []string            `yaml:"type_identifiers"`
	TypeFields       []string            `yaml:"type_fields"`
	Atomic           []string            `yaml:"atomic"`
	Types            map[string]string   `yaml:"types"`
}

// Check validates a YAML rule table document against the schema.
func Check(data []byte) error {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding rule table: %w", err)
	}

	if doc == nil {
		return &SchemaError{Problems: []Problem{{Field: "(root)", Description: "document is empty"}}}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(tableSchema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating rule table: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]Problem, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, Problem{Field: re.Field(), Description: re.Description()})
	}

	return &SchemaError{Problems: problems}
}

// LoadYAML reads, checks and converts a custom rule table.
func LoadYAML(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}

	if err = Check(data); err != nil {
		return nil, err
	}

	var tf tableFile

	if err = yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("decoding rule table: %w", err)
	}

	t := tf.table()

	if err = Validate(t); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadFile loads a custom rule table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule table: %w", err)
	}
	defer f.Close()

	t, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

func (tf *tableFile) table() *Table {
	t := &Table{
		Language:         tf.Language,
		Grammar:          tf.Grammar,
		Extensions:       tf.Extensions,
		Aliases:          tf.Aliases,
		Rename:           tf.Rename,
		Skip:             NewSet(tf.Skip...),
		Flatten:          NewSet(tf.Flatten...),
		Operators:        NewSet(tf.Operators...),
		OperatorParents:  NewSet(tf.OperatorParents...),
		Modifiers:        NewSet(tf.Modifiers...),
		ModifierKinds:    NewSet(tf.ModifierKinds...),
		ModifierWrappers: NewSet(tf.ModifierWrappers...),
		ExtractName:      NewSet(tf.ExtractName...),
		Identifiers:      NewSet(tf.Identifiers...),
		TypeIdentifiers:  NewSet(tf.TypeIdentifiers...),
		TypeFields:       NewSet(tf.TypeFields...),
		Atomic:           NewSet(tf.Atomic...),
		PositionalFields: tf.PositionalFields,
	}

	if tf.WrappedFields != nil {
		t.WrappedFields = NewSet(tf.WrappedFields...)
	}

	if len(tf.Types) > 0 {
		t.Types = make(map[string]Shape, len(tf.Types))

		for kind, name := range tf.Types {
			shape, _ := ParseShape(name)
			t.Types[kind] = shape
		}
	}

	return t
}
