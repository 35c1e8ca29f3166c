// Package gen drives code generation: it turns a finished class registry
// into render contexts and emits every artifact through a pluggable
// per-language backend.
package gen

import (
	"sort"
	"strings"

	"github.com/teranos/treegen/errors"
)

// Backend is the per-language renderer contract. Each target language
// implements this interface; the driver depends only on the interface,
// never on a specific language's template content.
type Backend interface {
	// Language returns the canonical language identifier (e.g. "java")
	Language() string

	// FileExtension returns the extension including the dot (e.g. ".java")
	FileExtension() string

	// ClassPath maps a prefixed qualified name's segments to the relative
	// output path for that class, per the language's namespace convention
	ClassPath(segments []string) string

	// APIPath returns the relative output path of the API artifact
	APIPath(prefix string) string

	// VisitorPath returns the relative output path of the visitor artifact
	VisitorPath(prefix string) string

	// RenderAbstractClass renders the artifact for one abstract class
	RenderAbstractClass(ctx *ClassContext) (string, error)

	// RenderConcreteClass renders the artifact for one concrete class
	RenderConcreteClass(ctx *ClassContext) (string, error)

	// RenderAPI renders the whole-model convenience constructor artifact
	RenderAPI(ctx *APIContext) (string, error)

	// RenderVisitor renders the whole-model visitor artifact
	RenderVisitor(ctx *VisitorContext) (string, error)
}

// backends is the registered-backends table, keyed by canonical language
// identifier. Backends register themselves at program start; lookups are
// read-only afterwards.
var backends = make(map[string]Backend)

// aliases maps short language identifiers to canonical ones.
var aliases = map[string]string{
	"ts": "typescript",
	"py": "python",
}

// Register adds a backend to the table under its canonical identifier.
// Registering two backends for one language is a programming error.
func Register(b Backend) {
	lang := b.Language()
	if _, exists := backends[lang]; exists {
		panic("gen: backend already registered for language " + lang)
	}
	backends[lang] = b
}

// Lookup resolves a language identifier (canonical or alias, case
// insensitive) to its backend.
func Lookup(lang string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	b, ok := backends[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownBackend,
			"language %q (registered: %s)", lang, strings.Join(Languages(), ", "))
	}
	return b, nil
}

// Languages returns the registered canonical identifiers, sorted.
func Languages() []string {
	langs := make([]string, 0, len(backends))
	for lang := range backends {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
