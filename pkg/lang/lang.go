package lang

import (
	"path/filepath"
	"strings"
)

// extensions maps a lowercase file extension (with leading dot) to the
// language id understood by the highlight registry. The table is fixed at
// build time and never mutated.
var extensions = map[string]string{
	".js":       "javascript",
	".jsx":      "javascript",
	".mjs":      "javascript",
	".cjs":      "javascript",
	".ts":       "typescript",
	".tsx":      "typescript",
	".py":       "python",
	".html":     "html",
	".htm":      "html",
	".css":      "css",
	".scss":     "css",
	".less":     "css",
	".json":     "json",
	".md":       "markdown",
	".markdown": "markdown",
	".sh":       "bash",
	".bash":     "bash",
	".zsh":      "bash",
	".sql":      "sql",
	".java":     "java",
	".cs":       "csharp",
	".cpp":      "cpp",
	".cc":       "cpp",
	".cxx":      "cpp",
	".h":        "cpp",
	".hpp":      "cpp",
	".c":        "c",
	".go":       "go",
	".rs":       "rust",
	".yaml":     "yaml",
	".yml":      "yaml",
	".rb":       "ruby",
	".php":      "php",
	".toml":     "toml",
	".xml":      "xml",
}

// Resolve maps a file name to a language id by its extension. Names with no
// extension, and extensions outside the table, yield "" (no hint).
func Resolve(fileName string) string {
	ext := Extension(fileName)
	if ext == "" {
		return ""
	}
	return extensions["."+ext]
}

// Extension returns the lowercase extension of fileName without the leading
// dot, or "" when the name has none ("archive.tar.gz" -> "gz", "README" -> "").
func Extension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	ext = strings.TrimPrefix(ext, ".")
	return ext
}
