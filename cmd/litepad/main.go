package main

import (
	"fmt"
	"os"

	"example.com/litepad/internal/app"
	"example.com/litepad/pkg/config"
	"example.com/litepad/pkg/highlight"
	"example.com/litepad/pkg/logs"
	"example.com/litepad/pkg/storage"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "litepad: config: %v\n", err)
		os.Exit(1)
	}
	logger := logs.NewFromEnv()

	registry := highlight.NewRegistry()
	engine := highlight.NewEngine(registry, cfg.Style)
	a := app.New(engine, cfg.Delay(), logger)

	if err := a.InitScreen(); err != nil {
		fmt.Fprintf(os.Stderr, "litepad: screen: %v\n", err)
		os.Exit(1)
	}
	defer a.Fini()

	kind := storage.Detect()
	backend, err := storage.New(kind, os.Getenv(storage.SandboxRootEnv), a.Dialogs())
	if err != nil {
		a.Fini()
		fmt.Fprintf(os.Stderr, "litepad: %v\n", err)
		os.Exit(1)
	}
	a.Backend = backend
	logger.Event("start", map[string]any{"backend": string(kind)})

	if len(os.Args) > 1 {
		a.QueueOpen(os.Args[1])
	}
	a.Run()
}
