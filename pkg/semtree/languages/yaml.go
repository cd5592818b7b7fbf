package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "yaml",
		Grammar:    "yaml",
		Extensions: []string{".yaml", ".yml"},
		Aliases:    []string{"YAML"},
		Format:     "yaml",
		Rename: map[string]string{
			"block_mapping":       elObject,
			"flow_mapping":        elObject,
			"block_mapping_pair":  elPair,
			"flow_pair":           elPair,
			"block_sequence":      elArray,
			"flow_sequence":       elArray,
			"string_scalar":       elString,
			"double_quote_scalar": elString,
			"single_quote_scalar": elString,
			"block_scalar":        elString,
			"integer_scalar":      elNumber,
			"float_scalar":        elNumber,
			"boolean_scalar":      elBool,
			"null_scalar":         elNull,
			"comment":             elComment,
		},
		Flatten: set("stream", "document", "block_node", "flow_node", "plain_scalar", "block_sequence_item"),
		Atomic:  set("double_quote_scalar", "single_quote_scalar", "block_scalar", "comment"),
		Data: &rules.DataTable{
			Transparent: set("stream", "document", "block_node", "flow_node", "plain_scalar", "block_sequence_item"),
			Mappings:    set("block_mapping", "flow_mapping"),
			Pairs: map[string]rules.Pair{
				"block_mapping_pair": {KeyField: "key", ValueField: "value"},
				"flow_pair":          {KeyField: "key", ValueField: "value"},
			},
			Sequences: set("block_sequence", "flow_sequence"),
			Scalars: map[string]rules.Quote{
				"string_scalar":       rules.QuotePlain,
				"integer_scalar":      rules.QuotePlain,
				"float_scalar":        rules.QuotePlain,
				"boolean_scalar":      rules.QuotePlain,
				"alias":               rules.QuotePlain,
				"double_quote_scalar": rules.QuoteDouble,
				"single_quote_scalar": rules.QuoteSingle,
				"block_scalar":        rules.QuoteBlock,
			},
			Nulls:  set("null_scalar"),
			Ignore: set("comment", "anchor", "tag", "yaml_directive", "tag_directive", "reserved_directive"),
		},
	})
}
