package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "json",
		Grammar:    "json",
		Extensions: []string{".json", ".jsonc", ".json5"},
		Aliases:    []string{"JSON", "JSON with Comments"},
		Format:     "json",
		Rename: merge(commonLiterals, map[string]string{
			"object": elObject,
			"pair":   elPair,
			"array":  elArray,
			"string": elString,
			"number": elNumber,
			"null":   elNull,
		}),
		Flatten: set("document"),
		Atomic:  set("string", "comment"),
		Data: &rules.DataTable{
			Transparent: set("document"),
			Mappings:    set("object"),
			Pairs:       map[string]rules.Pair{"pair": {KeyField: "key", ValueField: "value"}},
			Sequences:   set("array"),
			Scalars: map[string]rules.Quote{
				"string": rules.QuoteDouble,
				"number": rules.QuotePlain,
				"true":   rules.QuotePlain,
				"false":  rules.QuotePlain,
			},
			Nulls:  set("null"),
			Ignore: set("comment"),
		},
	})
}
