package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SandboxBackend confines all storage to a single root directory, the way a
// sandboxed host exposes files: callers never see a path, only a capability
// token that stays valid for repeated writes without re-prompting. Dialogs
// return names relative to the sandbox root.
type SandboxBackend struct {
	root string
	open OpenDialog
	save SaveDialog

	mu     sync.Mutex
	grants map[string]string // token -> root-relative name
}

type tokenHandle struct {
	token string
}

// NewSandbox builds a backend rooted at root.
func NewSandbox(root string, open OpenDialog, save SaveDialog) *SandboxBackend {
	return &SandboxBackend{
		root:   root,
		open:   open,
		save:   save,
		grants: make(map[string]string),
	}
}

// OpenFile prompts for a name inside the sandbox and reads it. A cancelled
// prompt yields (nil, nil).
func (b *SandboxBackend) OpenFile(ctx context.Context) (*FileRecord, error) {
	if b.open == nil {
		return nil, errors.New("storage: sandbox backend has no open dialog")
	}
	name, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	rel, full, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	h, err := b.grant(rel)
	if err != nil {
		return nil, err
	}
	return &FileRecord{
		Handle:  h,
		Content: normalize(string(data)),
		Name:    filepath.Base(rel),
	}, nil
}

// SaveFile writes content. With a nil handle it prompts for a destination
// inside the sandbox; with a granted token it writes directly to the file
// that token refers to.
func (b *SandboxBackend) SaveFile(ctx context.Context, h Handle, content string) (Handle, error) {
	var rel string
	switch th := h.(type) {
	case nil:
		if b.save == nil {
			return nil, errors.New("storage: sandbox backend has no save dialog")
		}
		name, err := b.save(ctx, "")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, nil
		}
		r, _, err := b.resolve(name)
		if err != nil {
			return nil, err
		}
		rel = r
	case tokenHandle:
		b.mu.Lock()
		r, ok := b.grants[th.token]
		b.mu.Unlock()
		if !ok {
			return nil, errors.New("storage: unknown sandbox handle")
		}
		rel = r
	default:
		return nil, ErrWrongBackend
	}
	full := filepath.Join(b.root, rel)
	if dir := filepath.Dir(full); dir != b.root {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return nil, err
	}
	if th, ok := h.(tokenHandle); ok {
		return th, nil
	}
	return b.grant(rel)
}

// GetExtension implements the shared extension parsing of the contract.
func (b *SandboxBackend) GetExtension(fileName string) string {
	return extension(fileName)
}

// resolve validates a root-relative name and returns its cleaned relative
// and absolute forms. Names escaping the root are rejected.
func (b *SandboxBackend) resolve(name string) (rel, full string, err error) {
	if name == "" {
		return "", "", errors.New("storage: empty sandbox file name")
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("storage: %q escapes the sandbox", name)
	}
	return clean, filepath.Join(b.root, clean), nil
}

// grant issues a fresh capability token for the given relative name.
func (b *SandboxBackend) grant(rel string) (Handle, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(buf)
	b.mu.Lock()
	b.grants[token] = rel
	b.mu.Unlock()
	return tokenHandle{token: token}, nil
}
