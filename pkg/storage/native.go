package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// NativeBackend stores files through ordinary filesystem paths. The handle
// it issues wraps an absolute path, so a save with an existing handle is a
// direct write with no prompt.
type NativeBackend struct {
	open OpenDialog
	save SaveDialog
}

type pathHandle struct {
	path string
}

// NewNative builds the native backend around the host's file dialogs.
func NewNative(open OpenDialog, save SaveDialog) *NativeBackend {
	return &NativeBackend{open: open, save: save}
}

// OpenFile prompts for a path and reads the file. A cancelled prompt yields
// (nil, nil).
func (b *NativeBackend) OpenFile(ctx context.Context) (*FileRecord, error) {
	if b.open == nil {
		return nil, errors.New("storage: native backend has no open dialog")
	}
	path, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &FileRecord{
		Handle:  pathHandle{path: abs},
		Content: normalize(string(data)),
		Name:    filepath.Base(abs),
		Path:    abs,
	}, nil
}

// SaveFile writes content. With a nil handle it prompts for a destination;
// with an existing handle it writes directly to the referenced path.
func (b *NativeBackend) SaveFile(ctx context.Context, h Handle, content string) (Handle, error) {
	var path string
	switch ph := h.(type) {
	case nil:
		if b.save == nil {
			return nil, errors.New("storage: native backend has no save dialog")
		}
		p, err := b.save(ctx, "")
		if err != nil {
			return nil, err
		}
		if p == "" {
			return nil, nil
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		path = abs
	case pathHandle:
		path = ph.path
	default:
		return nil, ErrWrongBackend
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, err
	}
	return pathHandle{path: path}, nil
}

// GetExtension implements the shared extension parsing of the contract.
func (b *NativeBackend) GetExtension(fileName string) string {
	return extension(fileName)
}
