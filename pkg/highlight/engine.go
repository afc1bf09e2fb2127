package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
)

// PlainText is the sentinel language id used when no grammar applies.
const PlainText = "plaintext"

// Result is one highlight outcome: class-annotated HTML markup plus the
// language the engine settled on. Results are produced fresh per call and
// never cached.
type Result struct {
	Markup   string
	Language string
}

// Engine turns raw text into highlighted markup. Grammar lookup goes through
// an immutable Registry; formatting uses chroma's HTML formatter with CSS
// classes so the markup carries no inline styling.
type Engine struct {
	registry  *Registry
	style     *chroma.Style
	formatter *html.Formatter
}

// NewEngine builds an engine over the given registry. Unknown style names
// fall back to chroma's default style.
func NewEngine(registry *Registry, styleName string) *Engine {
	st := styles.Get(styleName)
	if st == nil {
		st = styles.Fallback
	}
	return &Engine{
		registry:  registry,
		style:     st,
		formatter: html.New(html.WithClasses(true), html.ClassPrefix("lp-")),
	}
}

// Highlight renders code. A recognised hint wins over content analysis, and
// content analysis (chroma's relevance scoring, then the enry classifier)
// wins over the escaped-plaintext fallback. Highlight never fails: any
// grammar fault degrades to escaped plain text tagged as plaintext.
func (e *Engine) Highlight(code, hint string) Result {
	if code == "" {
		return Result{Markup: "", Language: PlainText}
	}
	if lx := e.registry.Lookup(hint); lx != nil {
		if res, ok := e.render(lx, code); ok {
			return res
		}
		return e.plain(code)
	}
	if lx := e.registry.Analyse(code); lx != nil {
		if res, ok := e.render(lx, code); ok {
			return res
		}
		return e.plain(code)
	}
	if id := classify(code); id != "" {
		if lx := e.registry.Lookup(id); lx != nil {
			if res, ok := e.render(lx, code); ok {
				return res
			}
		}
	}
	return e.plain(code)
}

// CSS returns the stylesheet matching the engine's class-annotated markup.
func (e *Engine) CSS() string {
	var buf bytes.Buffer
	if err := e.formatter.WriteCSS(&buf, e.style); err != nil {
		return ""
	}
	return buf.String()
}

// render tokenises and formats code with the given grammar. A tokenise or
// format fault reports !ok so the caller can fall back.
func (e *Engine) render(lx chroma.Lexer, code string) (res Result, ok bool) {
	defer func() {
		if recover() != nil {
			res, ok = Result{}, false
		}
	}()
	it, err := lx.Tokenise(nil, code)
	if err != nil {
		return Result{}, false
	}
	var buf bytes.Buffer
	if err := e.formatter.Format(&buf, e.style, it); err != nil {
		return Result{}, false
	}
	return Result{Markup: buf.String(), Language: languageID(lx)}, true
}

func (e *Engine) plain(code string) Result {
	return Result{Markup: EscapePlain(code), Language: PlainText}
}

// languageID returns the grammar's primary alias, lowercased.
func languageID(lx chroma.Lexer) string {
	cfg := lx.Config()
	if cfg == nil {
		return PlainText
	}
	if len(cfg.Aliases) > 0 {
		return strings.ToLower(cfg.Aliases[0])
	}
	if cfg.Name != "" {
		return strings.ToLower(cfg.Name)
	}
	return PlainText
}

// classify asks the enry classifier for a language when chroma's own
// relevance scoring found nothing.
func classify(code string) string {
	name := enry.GetLanguage("", []byte(code))
	if name == "" || name == "Text" {
		return ""
	}
	return strings.ToLower(name)
}

var plainEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapePlain escapes the five HTML-significant characters to their entity
// equivalents. It is total over all string inputs.
func EscapePlain(code string) string {
	return plainEscaper.Replace(code)
}
