// Command highlightgen renders a file (or stdin) as a standalone highlighted
// HTML document on stdout. Language is resolved from the file name unless
// overridden with -lang.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"example.com/litepad/pkg/highlight"
	"example.com/litepad/pkg/lang"
)

func main() {
	style := flag.String("style", "monokai", "chroma style name")
	langID := flag.String("lang", "", "language id (default: by file extension)")
	flag.Parse()

	var (
		code []byte
		name string
		err  error
	)
	if flag.NArg() > 0 {
		name = filepath.Base(flag.Arg(0))
		code, err = os.ReadFile(flag.Arg(0))
	} else {
		code, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "highlightgen: %v\n", err)
		os.Exit(1)
	}

	hint := *langID
	if hint == "" {
		hint = lang.Resolve(name)
	}

	engine := highlight.NewEngine(highlight.NewRegistry(), *style)
	res := engine.Highlight(string(code), hint)

	fmt.Print("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	fmt.Print(engine.CSS())
	fmt.Print("</style>\n</head>\n<body>\n")
	fmt.Print(res.Markup)
	fmt.Print("\n</body>\n</html>\n")
	fmt.Fprintf(os.Stderr, "language: %s\n", res.Language)
}
