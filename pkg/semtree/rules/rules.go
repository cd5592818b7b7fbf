// Package rules defines the per-language rule tables that drive semantic
// tree construction. A table is data: lookup sets and maps plus two small
// pure classification callbacks. The walker is written once against this
// shape.
package rules

import "strings"

// Element names shared by every language.
const (
	ElementName      = "name"
	ElementType      = "type"
	ElementValue     = "value"
	ElementKey       = "key"
	ElementArguments = "arguments"
	ElementError     = "error"
	ElementItem      = "item"
	ElementAST       = "ast"
	ElementData      = "data"
	ElementFile      = "file"
)

// Attribute names shared by every language.
const (
	AttrOp       = "op"
	AttrKey      = "key"
	AttrPath     = "path"
	AttrLanguage = "language"
	AttrFormat   = "format"
)

// Set is a string set.
type Set map[string]struct{}

// NewSet builds a Set from items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}

	return s
}

// Has reports membership. A nil Set is empty.
func (s Set) Has(item string) bool {
	_, ok := s[item]

	return ok
}

// Role is what an identifier denotes.
type Role uint8

// Identifier roles.
const (
	RoleName Role = iota
	RoleType
)

// Element returns the element name a role is emitted as.
func (r Role) Element() string {
	if r == RoleType {
		return ElementType
	}

	return ElementName
}

func (r Role) String() string {
	return r.Element()
}

// Shape is the form of a type construct.
type Shape uint8

// Type shapes.
const (
	ShapeSimple Shape = iota
	ShapeNullable
	ShapeArray
	ShapeGeneric
	ShapePointer
	ShapeReference
)

var shapeMarkers = [...]string{
	ShapeSimple:    "",
	ShapeNullable:  "nullable",
	ShapeArray:     "array",
	ShapeGeneric:   "generic",
	ShapePointer:   "pointer",
	ShapeReference: "reference",
}

// Marker returns the marker element name for s, or "" for simple types.
func (s Shape) Marker() string {
	if int(s) < len(shapeMarkers) {
		return shapeMarkers[s]
	}

	return ""
}

// ParseShape maps a marker name (or "simple") back to a Shape.
func ParseShape(name string) (Shape, bool) {
	if name == "simple" {
		return ShapeSimple, true
	}

	for i, m := range shapeMarkers {
		if m != "" && m == name {
			return Shape(i), true
		}
	}

	return ShapeSimple, false
}

// Identifier is what the classification callback sees of an identifier.
type Identifier struct {
	Kind  string
	Field string
	Text  string
}

// Frame is one raw ancestor: its kind and the field it occupies.
type Frame struct {
	Kind  string
	Field string
}

// Chain is the raw ancestor chain of a node, root first, ending with the
// node's raw parent. Flattened and skipped ancestors are included.
type Chain []Frame

// Push returns the chain extended by f without aliasing c.
func (c Chain) Push(f Frame) Chain {
	return append(c[:len(c):len(c)], f)
}

// Parent returns the innermost frame, or a zero Frame for an empty chain.
func (c Chain) Parent() Frame {
	if len(c) == 0 {
		return Frame{}
	}

	return c[len(c)-1]
}

// Within reports whether any frame has one of kinds.
func (c Chain) Within(kinds Set) bool {
	for _, f := range c {
		if kinds.Has(f.Kind) {
			return true
		}
	}

	return false
}

// Nearest returns the index of the innermost frame whose kind is in kinds,
// or -1.
func (c Chain) Nearest(kinds Set) int {
	for i := len(c) - 1; i >= 0; i-- {
		if kinds.Has(c[i].Kind) {
			return i
		}
	}

	return -1
}

// Table is the rule table of one language.
type Table struct {
	// Language is the registry name, Grammar the tree-sitter grammar name.
	Language   string
	Grammar    string
	Extensions []string
	// Aliases are other names the language is known by (content detection).
	Aliases []string

	// Rename maps raw kinds to element names.
	Rename map[string]string
	// Skip drops a node and its subtree.
	Skip Set
	// Flatten drops a node but keeps its children.
	Flatten Set
	// Operators are unnamed kinds lifted into the parent's op attribute.
	Operators Set
	// OperatorParents restricts operator lifting to these raw parent kinds;
	// empty means any parent.
	OperatorParents Set
	// Modifiers are keyword texts turned into marker elements.
	Modifiers Set
	// ModifierKinds are named kinds that each hold one modifier.
	ModifierKinds Set
	// ModifierWrappers are kinds grouping modifiers; they are unwrapped.
	ModifierWrappers Set
	// WrappedFields are fields promoted to wrapper elements. Nil means
	// name, value and key.
	WrappedFields Set
	// PositionalFields name the slots of kinds whose grammar leaves its
	// named children without fields: the i-th named child of the kind gets
	// the i-th field, and wrapped fields are wrapped as if the grammar had
	// assigned them.
	PositionalFields map[string][]string
	// ExtractName are compound name kinds collapsed into one element.
	ExtractName Set
	// Identifiers are the bare identifier kinds.
	Identifiers Set
	// TypeIdentifiers are identifier kinds that always denote types. They
	// are identifiers whether or not Identifiers lists them.
	TypeIdentifiers Set
	// TypeFields are fields whose identifiers denote types.
	TypeFields Set
	// Atomic kinds are emitted with their verbatim text, unexplored.
	Atomic Set
	// Types maps type construct kinds to their shape.
	Types map[string]Shape

	// ClassifyIdentifier decides the role of an identifier. Nil uses
	// DefaultRole.
	ClassifyIdentifier func(id Identifier, chain Chain) Role
	// IdentifierContext reports whether an extract-name construct is in a
	// naming context (namespace or declaration) rather than a type
	// reference. Only set by languages that reuse one kind for both.
	IdentifierContext func(chain Chain) bool

	// Format and Data are set for configuration formats built with both an
	// ast and a data branch.
	Format string
	Data   *DataTable
}

// DefaultWrappedFields are the fields wrapped when a table sets none.
var DefaultWrappedFields = NewSet(ElementName, ElementValue, ElementKey) //nolint:gochecknoglobals // shared default.

// Dual reports whether files of this language get ast and data branches.
func (t *Table) Dual() bool {
	return t.Data != nil
}

// Wraps reports whether field is promoted to a wrapper element.
func (t *Table) Wraps(field string) bool {
	if field == "" {
		return false
	}

	if t.WrappedFields == nil {
		return DefaultWrappedFields.Has(field)
	}

	return t.WrappedFields.Has(field)
}

// IsOperator reports whether an unnamed node of kind under parent is an
// operator to lift.
func (t *Table) IsOperator(kind string, parent Frame) bool {
	if !t.Operators.Has(kind) {
		return false
	}

	return len(t.OperatorParents) == 0 || t.OperatorParents.Has(parent.Kind)
}

// Role classifies an identifier or extract-name construct.
func (t *Table) Role(id Identifier, chain Chain) Role {
	if t.ClassifyIdentifier != nil {
		return t.ClassifyIdentifier(id, chain)
	}

	return t.DefaultRole(id, chain)
}

// DefaultRole classifies without the language callback: extract-name
// constructs follow IdentifierContext when the language has one;
// identifiers directly inside a type construct are types; identifiers in
// the name field are names; type identifier kinds and identifiers in type
// fields are types; everything else is a name.
func (t *Table) DefaultRole(id Identifier, chain Chain) Role {
	if t.IdentifierContext != nil && t.ExtractName.Has(id.Kind) {
		if t.IdentifierContext(chain) {
			return RoleName
		}

		return RoleType
	}

	if _, ok := t.Types[chain.Parent().Kind]; ok {
		return RoleType
	}

	// A type identifier in the name slot is the name a declaration
	// introduces, not a reference to a type.
	if id.Field == ElementName {
		return RoleName
	}

	if t.TypeIdentifiers.Has(id.Kind) || t.TypeFields.Has(id.Field) {
		return RoleType
	}

	return RoleName
}

// ElementFor returns the element name for a kind under the default rule.
func (t *Table) ElementFor(kind string) string {
	if name, ok := t.Rename[kind]; ok {
		return name
	}

	return SanitizeName(strings.ToLower(kind))
}
