package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/cache"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
)

// ParseOutput is the structured result of semtree_parse.
type ParseOutput struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Format   string `json:"format,omitempty"`
	Partial  bool   `json:"partial"`
	Tree     string `json:"tree"`
}

type toolSet struct {
	parser  *semtree.Parser
	workers int
	cache   *cache.Trees
	logger  *slog.Logger
}

func (ts *toolSet) handleParse(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ParseInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := checkSource(input.Content, input.Language, input.Path != ""); err != nil {
		return errorResult(err)
	}

	format := input.Format
	if format == "" {
		format = FormatXML
	}

	if format != FormatXML && format != FormatJSON {
		return errorResult(fmt.Errorf("%w: %s", ErrUnknownFormat, format))
	}

	f, err := ts.parse(ctx, input)
	if err != nil {
		return errorResult(err)
	}

	var buf bytes.Buffer

	if format == FormatJSON {
		err = f.Doc.WriteJSON(&buf, f.Root, input.Spans)
	} else {
		err = f.WriteXML(&buf, node.XMLOptions{Indent: "  ", Spans: input.Spans})
	}

	if err != nil {
		return errorResult(fmt.Errorf("render tree: %w", err))
	}

	out := ParseOutput{
		Path:     f.Path,
		Language: f.Language,
		Format:   f.Format,
		Partial:  f.Partial,
		Tree:     buf.String(),
	}

	return textResult(out.Tree, out)
}

func (ts *toolSet) parse(ctx context.Context, input ParseInput) (*semtree.File, error) {
	if input.Content != "" {
		return ts.parser.ParseAs(ctx, input.Language, inlineName, []byte(input.Content))
	}

	content, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input.Path, err)
	}

	if input.Language != "" {
		return ts.parser.ParseAs(ctx, input.Language, input.Path, content)
	}

	return ts.parser.Parse(ctx, input.Path, content)
}
