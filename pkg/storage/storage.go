// Package storage abstracts file open/save across the two host backends: a
// native backend working with ordinary paths, and a sandboxed backend that
// confines all access to one root directory and issues capability tokens.
package storage

import (
	"context"
	"errors"
	"strings"

	"example.com/litepad/pkg/lang"
)

// Handle is an opaque reference to a saved file destination. Its concrete
// shape belongs to the backend that issued it; callers pass it back verbatim
// on save and must not inspect it or assume a shape. Passing a handle to a
// backend that did not issue it yields ErrWrongBackend.
type Handle interface{}

// FileRecord is the outcome of a successful open.
type FileRecord struct {
	Handle  Handle
	Content string
	Name    string
	Path    string // absolute path when the backend exposes one
}

// Backend is the storage contract every host implementation satisfies.
// OpenFile and SaveFile return (nil, nil) when the user cancels a prompt;
// callers must treat that as a normal outcome, not a failure.
type Backend interface {
	// OpenFile prompts for a file and reads it.
	OpenFile(ctx context.Context) (*FileRecord, error)
	// SaveFile writes content. A nil handle prompts for a destination
	// ("save as"); a non-nil handle writes directly without prompting.
	SaveFile(ctx context.Context, h Handle, content string) (Handle, error)
	// GetExtension returns the lowercase extension without the leading dot.
	GetExtension(fileName string) string
}

// OpenDialog asks the user to choose an existing file. It returns "" with a
// nil error when the user cancels.
type OpenDialog func(ctx context.Context) (string, error)

// SaveDialog asks the user to choose a destination, suggesting the given
// name. "" with a nil error means the user cancelled.
type SaveDialog func(ctx context.Context, suggested string) (string, error)

// Dialogs carries the host-supplied prompts a backend needs.
type Dialogs struct {
	Open OpenDialog
	Save SaveDialog
}

// ErrWrongBackend is returned when a handle issued by one backend is passed
// to another.
var ErrWrongBackend = errors.New("storage: handle belongs to a different backend")

// normalize converts CRLF line endings to LF for in-memory content.
func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// extension is the default GetExtension implementation shared by backends;
// it is pure string manipulation, not platform behavior.
func extension(fileName string) string {
	return lang.Extension(fileName)
}
