// Package grammar binds tree-sitter grammars to the raw syntax tree the
// construction engine consumes.
package grammar

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unsafe"

	forest "github.com/alexaandru/go-sitter-forest"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/bash"
	"github.com/alexaandru/go-sitter-forest/c"
	"github.com/alexaandru/go-sitter-forest/c_sharp"
	"github.com/alexaandru/go-sitter-forest/cpp"
	golang "github.com/alexaandru/go-sitter-forest/go"
	"github.com/alexaandru/go-sitter-forest/ini"
	"github.com/alexaandru/go-sitter-forest/java"
	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/json"
	"github.com/alexaandru/go-sitter-forest/kotlin"
	"github.com/alexaandru/go-sitter-forest/lua"
	"github.com/alexaandru/go-sitter-forest/php"
	"github.com/alexaandru/go-sitter-forest/python"
	"github.com/alexaandru/go-sitter-forest/ruby"
	"github.com/alexaandru/go-sitter-forest/rust"
	"github.com/alexaandru/go-sitter-forest/scala"
	"github.com/alexaandru/go-sitter-forest/swift"
	"github.com/alexaandru/go-sitter-forest/toml"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
	"github.com/alexaandru/go-sitter-forest/yaml"
)

// ErrUnknownGrammar is returned for grammar names no binding provides.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Grammars the built-in rule tables are written against. Anything else is
// resolved through the forest registry.
var languageFuncs = map[string]func() unsafe.Pointer{ //nolint:gochecknoglobals // static grammar registry.
	"bash":       bash.GetLanguage,
	"c":          c.GetLanguage,
	"c_sharp":    c_sharp.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"go":         golang.GetLanguage,
	"ini":        ini.GetLanguage,
	"java":       java.GetLanguage,
	"javascript": javascript.GetLanguage,
	"json":       json.GetLanguage,
	"kotlin":     kotlin.GetLanguage,
	"lua":        lua.GetLanguage,
	"php":        php.GetLanguage,
	"python":     python.GetLanguage,
	"ruby":       ruby.GetLanguage,
	"rust":       rust.GetLanguage,
	"scala":      scala.GetLanguage,
	"swift":      swift.GetLanguage,
	"toml":       toml.GetLanguage,
	"tsx":        tsx.GetLanguage,
	"typescript": typescript.GetLanguage,
	"yaml":       yaml.GetLanguage,
}

var languageCache sync.Map

// Language returns the tree-sitter language for a grammar name. Built-in
// grammars are linked directly; other names go through the forest registry,
// whose lookup panics for names it does not know.
func Language(name string) (*sitter.Language, error) {
	if cached, ok := languageCache.Load(name); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang, nil
		}
	}

	var lang *sitter.Language

	if fn, ok := languageFuncs[name]; ok {
		lang = sitter.NewLanguage(fn())
	} else {
		lang = forestLanguage(name)
	}

	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGrammar, name)
	}

	languageCache.Store(name, lang)

	return lang, nil
}

func forestLanguage(name string) (lang *sitter.Language) {
	defer func() {
		if recover() != nil {
			lang = nil
		}
	}()

	return forest.GetLanguage(name)
}

// Linked lists the grammars compiled into the binary directly, sorted.
func Linked() []string {
	out := make([]string, 0, len(languageFuncs))
	for name := range languageFuncs {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}
