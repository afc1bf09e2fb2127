package storage

import (
	"errors"
	"fmt"
	"os"
)

// Kind tags which backend the host supports.
type Kind string

const (
	KindNative  Kind = "native"
	KindSandbox Kind = "sandbox"
)

// SandboxRootEnv is the capability marker a sandboxed host sets. Its value
// is the sandbox root directory.
const SandboxRootEnv = "LITEPAD_SANDBOX_ROOT"

// Detect probes the host for its storage capability. The probe only reads
// the environment, has no side effects, and is deterministic for a given
// host.
func Detect() Kind {
	return DetectEnv(os.Getenv)
}

// DetectEnv is Detect with an injectable environment lookup.
func DetectEnv(getenv func(string) string) Kind {
	if getenv(SandboxRootEnv) != "" {
		return KindSandbox
	}
	return KindNative
}

// New returns the concrete backend for kind. Selecting a kind with no
// implementation, or one missing its required configuration, is an explicit
// error: file operations must never silently no-op.
func New(kind Kind, sandboxRoot string, d Dialogs) (Backend, error) {
	if d.Open == nil || d.Save == nil {
		return nil, errors.New("storage: backend requires both open and save dialogs")
	}
	switch kind {
	case KindNative:
		return NewNative(d.Open, d.Save), nil
	case KindSandbox:
		if sandboxRoot == "" {
			return nil, errors.New("storage: sandbox backend selected but no root configured")
		}
		return NewSandbox(sandboxRoot, d.Open, d.Save), nil
	default:
		return nil, fmt.Errorf("storage: no backend registered for kind %q", kind)
	}
}
