package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "toml",
		Grammar:    "toml",
		Extensions: []string{".toml"},
		Aliases:    []string{"TOML"},
		Format:     "toml",
		Rename: merge(commonLiterals, map[string]string{
			"document":            elObject,
			"pair":                elPair,
			"table":               elSection,
			"table_array_element": elSection,
			"inline_table":        elObject,
			"bare_key":            elKey,
			"quoted_key":          elKey,
			"dotted_key":          elKey,
			"string":              elString,
			"integer":             elNumber,
			"float":               elNumber,
			"boolean":             elBool,
			"offset_date_time":    "datetime",
			"local_date_time":     "datetime",
			"local_date":          "date",
			"local_time":          "time",
		}),
		// The grammar gives a pair's key and value no fields.
		PositionalFields: map[string][]string{"pair": {elKey, elValue}},
		Atomic:           set("string", "quoted_key", "comment"),
		Data: &rules.DataTable{
			Mappings:   set("document", "inline_table"),
			Pairs:      map[string]rules.Pair{"pair": {}},
			KeyKinds:   set("bare_key", "quoted_key", "dotted_key"),
			DottedKeys: set("dotted_key"),
			Sequences:  set("array"),
			Scalars: map[string]rules.Quote{
				"string":           rules.QuoteAuto,
				"quoted_key":       rules.QuoteAuto,
				"integer":          rules.QuotePlain,
				"float":            rules.QuotePlain,
				"boolean":          rules.QuotePlain,
				"offset_date_time": rules.QuotePlain,
				"local_date_time":  rules.QuotePlain,
				"local_date":       rules.QuotePlain,
				"local_time":       rules.QuotePlain,
			},
			Sections: map[string]rules.Section{
				"table":               {},
				"table_array_element": {Repeat: true},
			},
			Ignore: set("comment"),
		},
	})
}
