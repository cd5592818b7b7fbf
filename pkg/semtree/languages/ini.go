package languages

import "github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"

func init() {
	rules.Register(&rules.Table{
		Language:   "ini",
		Grammar:    "ini",
		Extensions: []string{".ini", ".cfg", ".conf", ".editorconfig"},
		Aliases:    []string{"INI", "EditorConfig"},
		Format:     "ini",
		Rename: map[string]string{
			"document":      elObject,
			"section":       elSection,
			"text":          elKey,
			"setting":       elPair,
			"setting_name":  elKey,
			"setting_value": elValue,
			"comment":       elComment,
		},
		Flatten: set("section_name"),
		Atomic:  set("comment"),
		Data: &rules.DataTable{
			Mappings: set("document"),
			Sections: map[string]rules.Section{"section": {}},
			Pairs:    map[string]rules.Pair{"setting": {}},
			KeyKinds: set("setting_name", "section_name"),
			Scalars:  map[string]rules.Quote{"setting_value": rules.QuotePlain},
			Ignore:   set("comment"),
		},
	})
}
