package rules

// Quote is how a scalar kind is written in the source.
type Quote uint8

// Scalar quoting styles.
const (
	// QuotePlain scalars are taken verbatim, trimmed.
	QuotePlain Quote = iota
	// QuoteDouble scalars are "..." with backslash escapes.
	QuoteDouble
	// QuoteSingle scalars are '...' where '' stands for one quote.
	QuoteSingle
	// QuoteAuto detects basic ("...", """...""") and literal ('...',
	// '''...''') strings from the opening delimiter.
	QuoteAuto
	// QuoteBlock scalars start with an indicator line (| or >) followed by
	// an indented block.
	QuoteBlock
)

// Pair describes how to find the key and value of a pair kind. When
// KeyField is empty the key is the first child whose kind is in the data
// table's KeyKinds and the value is the first named child after it.
type Pair struct {
	KeyField   string
	ValueField string
}

// Section describes a header-introduced block of pairs (TOML tables, INI
// sections). Repeat sections append a new element on every occurrence.
type Section struct {
	Repeat bool
}

// DataTable drives the value-oriented projection of a configuration
// format.
type DataTable struct {
	// Mappings hold pairs and sections.
	Mappings Set
	// Pairs maps pair kinds to their key/value layout.
	Pairs map[string]Pair
	// Sequences hold values.
	Sequences Set
	// Transparent kinds are looked through to their named children.
	Transparent Set
	// Scalars maps scalar kinds to their quoting style.
	Scalars map[string]Quote
	// Nulls are scalar kinds denoting no value.
	Nulls Set
	// Ignore lists kinds that never contribute data (comments, tags).
	Ignore Set
	// Sections maps section kinds to their behavior.
	Sections map[string]Section
	// KeyKinds are the kinds that can hold a key.
	KeyKinds Set
	// DottedKeys are key kinds whose key parts nest.
	DottedKeys Set
}
