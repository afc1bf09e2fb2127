package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Registry is a read-only view over the process-wide grammar set. It is
// constructed once at startup and offers no registration API afterwards;
// engines receive it by injection rather than reaching for globals.
type Registry struct {
	reg *chroma.LexerRegistry
}

// NewRegistry returns a registry backed by the grammars compiled into the
// binary.
func NewRegistry() *Registry {
	return &Registry{reg: lexers.GlobalLexerRegistry}
}

// Lookup returns the grammar registered under the given id or alias, or nil
// when the id is empty or unknown.
func (r *Registry) Lookup(id string) chroma.Lexer {
	if id == "" {
		return nil
	}
	return r.reg.Get(id)
}

// Analyse scores every grammar against the content and returns the single
// highest-scoring candidate, or nil when nothing matches. Ties are broken by
// the underlying engine's internal ordering.
func (r *Registry) Analyse(code string) chroma.Lexer {
	return r.reg.Analyse(code)
}
