package build

import (
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/raw"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// BuildDual builds the structural and the data view of a configuration
// document. The raw tree is mirrored into the arena once and cloned; the
// mirror is rewritten with the ast rules and the clone projected with the
// data rules. Both mirrors keep the raw spans, so corresponding values in
// the two branches report the same source positions. The returned ast and
// data elements are detached.
func BuildDual(doc *node.Document, root raw.Node, source []byte, astTable *rules.Table, dataTable *rules.DataTable) (node.ID, node.ID) {
	mirror := raw.Mirror(doc, root)
	clone := doc.Clone(mirror)

	ast := doc.NewElement(rules.ElementAST)
	Into(doc, raw.NewView(doc, mirror), source, astTable, ast)

	data := doc.NewElement(rules.ElementData)
	Project(doc, raw.NewView(doc, clone), source, dataTable, data)

	return ast, data
}

// File builds the complete semantic tree of one file into doc and makes it
// the document root: a file element carrying the path and language, with
// either one content root or, for configuration formats, the format
// attribute and the ast and data branches. The dual path compacts doc
// afterwards so the mirrored raw tree and its clone do not outlive the
// build; the returned ID is the root after compaction.
func File(doc *node.Document, path string, root raw.Node, source []byte, table *rules.Table) node.ID {
	file := doc.NewElement(rules.ElementFile)
	doc.SetAttr(file, rules.AttrPath, path)
	doc.SetAttr(file, rules.AttrLanguage, table.Language)
	doc.SetSpan(file, spanOf(root))
	doc.SetRoot(file)

	if table.Dual() {
		doc.SetAttr(file, rules.AttrFormat, table.Format)

		ast, data := BuildDual(doc, root, source, table, table.Data)
		doc.Append(file, ast)
		doc.Append(file, data)

		return doc.Compact()
	}

	doc.Append(file, Build(doc, root, source, table))

	return file
}
