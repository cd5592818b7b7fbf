package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolNameParse = "semtree_parse"
	ToolNameQuery = "semtree_query"
)

// MaxContentBytes bounds inline content.
const MaxContentBytes = 1 << 20

// Output formats of the parse tool.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

const inlineName = "<input>"

var (
	// ErrNoInput indicates neither inline content nor a path was given.
	ErrNoInput = errors.New("either content or path is required")
	// ErrAmbiguousInput indicates both inline content and a path were given.
	ErrAmbiguousInput = errors.New("content and path are mutually exclusive")
	// ErrEmptyLanguage indicates inline content came without a language.
	ErrEmptyLanguage = errors.New("language is required with inline content")
	// ErrContentTooLarge indicates inline content exceeds MaxContentBytes.
	ErrContentTooLarge = errors.New("content exceeds maximum size")
	// ErrEmptyExpression indicates the xpath parameter is empty.
	ErrEmptyExpression = errors.New("xpath is required")
	// ErrUnknownFormat indicates an output format other than xml or json.
	ErrUnknownFormat = errors.New("unknown output format")

	errToolFailed = errors.New("tool call failed")
)

// ParseInput is the input schema of semtree_parse.
type ParseInput struct {
	Content  string `json:"content,omitempty"  jsonschema:"inline source text; requires language"`
	Path     string `json:"path,omitempty"     jsonschema:"path of a source file to parse"`
	Language string `json:"language,omitempty" jsonschema:"language name or alias (e.g. csharp go yaml); detected from path when empty"`
	Format   string `json:"format,omitempty"   jsonschema:"output format: xml (default) or json"`
	Spans    bool   `json:"spans,omitempty"    jsonschema:"include start/end line:column positions"`
}

// QueryInput is the input schema of semtree_query.
type QueryInput struct {
	XPath    string   `json:"xpath"              jsonschema:"XPath 1.0 expression evaluated against each semantic tree"`
	Paths    []string `json:"paths,omitempty"    jsonschema:"files, directories or glob patterns to query"`
	Content  string   `json:"content,omitempty"  jsonschema:"inline source text queried instead of paths; requires language"`
	Language string   `json:"language,omitempty" jsonschema:"language name or alias; forces the language of every input"`
}

// ToolOutput is the structured output of every tool.
type ToolOutput struct {
	Data any `json:"data"`
}

func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, ToolOutput{}, nil
}

func textResult(text string, data any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}, ToolOutput{Data: data}, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return textResult(string(data), value)
}

// checkSource validates the content/path pair shared by both tools.
func checkSource(content, language string, hasPath bool) error {
	switch {
	case content == "" && !hasPath:
		return ErrNoInput
	case content != "" && hasPath:
		return ErrAmbiguousInput
	case content == "":
		return nil
	case language == "":
		return ErrEmptyLanguage
	case len(content) > MaxContentBytes:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrContentTooLarge, len(content), MaxContentBytes)
	}

	return nil
}

const (
	parseToolDescription = "Parse source code or a configuration file into a semantic XML tree " +
		"(unit/class/method/... elements; data and ast views for JSON, YAML, TOML and INI). " +
		"Accepts a file path or inline content with a language."

	queryToolDescription = "Evaluate an XPath 1.0 expression against the semantic trees of files, " +
		"directories or inline content. Returns matched nodes with positions, or scalar values per file."
)
