package app

import (
	"context"
	"path/filepath"
	"time"

	"example.com/litepad/pkg/highlight"
	"example.com/litepad/pkg/lang"
	"example.com/litepad/pkg/logs"
	"example.com/litepad/pkg/storage"
	"github.com/gdamore/tcell/v2"
)

// App owns the terminal lifecycle and a minimal event loop around one
// buffer. File access goes through the injected storage backend; highlight
// results arrive through the manager's sink.
type App struct {
	Screen  tcell.Screen
	Backend storage.Backend
	Logger  *logs.Logger

	Engine  *highlight.Engine
	Manager *highlight.Manager

	Buf      *textBuffer
	FileName string
	Handle   storage.Handle
	Cursor   int // cursor position in runes
	TopLine  int
	Dirty    bool

	Language string
	Markup   string
	Status   string

	pendingOpen  string
	lastSaveName string
}

// New creates an app wired to the given engine. The highlight manager pushes
// into the app's own sink.
func New(engine *highlight.Engine, delay time.Duration, logger *logs.Logger) *App {
	a := &App{
		Engine:   engine,
		Logger:   logger,
		Buf:      newTextBuffer(""),
		Language: highlight.PlainText,
	}
	a.Manager = highlight.NewManager(engine, a.onHighlight, delay)
	return a
}

// InitScreen initializes a tcell screen if one is not already set.
func (a *App) InitScreen() error {
	if a.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	a.Screen = s
	return nil
}

// Fini finalizes the screen and tears down the highlight manager.
func (a *App) Fini() {
	a.Manager.Destroy()
	if a.Screen != nil {
		a.Screen.Fini()
		a.Screen = nil
	}
	if a.Logger != nil {
		a.Logger.Close()
	}
}

// QueueOpen makes the first open prompt resolve to path without asking,
// so a file named on the command line opens through the normal backend flow.
func (a *App) QueueOpen(path string) {
	a.pendingOpen = path
}

// Dialogs returns the host prompts backends need, implemented on the app's
// status line.
func (a *App) Dialogs() storage.Dialogs {
	return storage.Dialogs{
		Open: func(ctx context.Context) (string, error) {
			if a.pendingOpen != "" {
				p := a.pendingOpen
				a.pendingOpen = ""
				return p, nil
			}
			v, ok := a.promptInput("Open: ", "")
			if !ok {
				return "", nil
			}
			return v, nil
		},
		Save: func(ctx context.Context, suggested string) (string, error) {
			if suggested == "" {
				suggested = a.FileName
			}
			v, ok := a.promptInput("Save As: ", suggested)
			if !ok {
				return "", nil
			}
			a.lastSaveName = v
			return v, nil
		},
	}
}

// Run executes the event loop until quit.
func (a *App) Run() {
	if a.pendingOpen != "" {
		a.openFile()
	}
	a.draw()
	for {
		if a.handleEvent(a.Screen.PollEvent()) {
			return
		}
	}
}

// handleEvent dispatches one event and reports whether the app should quit.
// Highlight results posted by the manager's sink arrive here as interrupt
// events, so all screen and state access stays on the event loop.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.Screen.Sync()
		a.draw()
	case *tcell.EventInterrupt:
		if res, ok := ev.Data().(highlight.Result); ok {
			a.applyHighlight(res)
		}
	}
	return false
}

// handleKey processes one key event and reports whether the app should quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlQ:
		return true
	case ev.Key() == tcell.KeyCtrlO:
		a.openFile()
	case ev.Key() == tcell.KeyCtrlS:
		a.saveFile()
	case ev.Key() == tcell.KeyCtrlE:
		a.exportHTML()
	case ev.Key() == tcell.KeyUp:
		a.moveVertical(-1)
	case ev.Key() == tcell.KeyDown:
		a.moveVertical(1)
	case ev.Key() == tcell.KeyLeft:
		if a.Cursor > 0 {
			a.Cursor--
		}
	case ev.Key() == tcell.KeyRight:
		if a.Cursor < a.Buf.Len() {
			a.Cursor++
		}
	case ev.Key() == tcell.KeyEnter:
		a.insert("\n")
	case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
		if a.Cursor > 0 {
			a.Buf.Delete(a.Cursor-1, a.Cursor)
			a.Cursor--
			a.edited()
		}
	case ev.Key() == tcell.KeyDelete:
		if a.Cursor < a.Buf.Len() {
			a.Buf.Delete(a.Cursor, a.Cursor+1)
			a.edited()
		}
	case ev.Key() == tcell.KeyRune && ev.Modifiers() == 0:
		a.insert(string(ev.Rune()))
	}
	a.draw()
	return false
}

func (a *App) insert(s string) {
	a.Buf.Insert(a.Cursor, s)
	a.Cursor += len([]rune(s))
	a.edited()
}

// edited marks the buffer dirty and schedules a debounced re-highlight.
func (a *App) edited() {
	a.Dirty = true
	a.Status = ""
	a.Manager.UpdateDebounced(a.Buf.String(), a.FileName)
}

func (a *App) moveVertical(delta int) {
	line, col := a.Buf.LineCol(a.Cursor)
	line += delta
	if line < 0 {
		line = 0
	}
	start := a.Buf.LineStart(line)
	a.Cursor = start
	for i := 0; i < col && a.Cursor < a.Buf.Len(); i++ {
		if a.Buf.runes[a.Cursor] == '\n' {
			break
		}
		a.Cursor++
	}
}

// openFile loads a file through the backend and triggers an immediate
// highlight. Cancellation is a neutral outcome, not a warning.
func (a *App) openFile() {
	if a.Backend == nil {
		a.Status = "No storage backend"
		return
	}
	rec, err := a.Backend.OpenFile(context.Background())
	if err != nil {
		a.Status = "Open failed: " + err.Error()
		a.logEvent("open.error", map[string]any{"error": err.Error()})
		return
	}
	if rec == nil {
		a.Status = "Cancelled"
		return
	}
	a.Buf = newTextBuffer(rec.Content)
	a.FileName = rec.Name
	a.Handle = rec.Handle
	a.Cursor = 0
	a.TopLine = 0
	a.Dirty = false
	a.Status = ""
	a.Manager.UpdateImmediate(rec.Content, rec.Name)
	a.logEvent("open.success", map[string]any{"file": rec.Name, "bytes": len(rec.Content)})
}

// saveFile writes the buffer through the backend. A nil handle makes the
// backend prompt for a destination.
func (a *App) saveFile() {
	if a.Backend == nil {
		a.Status = "No storage backend"
		return
	}
	h, err := a.Backend.SaveFile(context.Background(), a.Handle, a.Buf.String())
	if err != nil {
		a.Status = "Save failed: " + err.Error()
		a.logEvent("save.error", map[string]any{"error": err.Error()})
		return
	}
	if h == nil {
		a.Status = "Cancelled"
		return
	}
	a.Handle = h
	a.Dirty = false
	a.Status = "Saved"
	if a.FileName == "" && a.lastSaveName != "" {
		a.FileName = filepath.Base(a.lastSaveName)
		a.Manager.SetFileName(a.FileName)
	}
	a.logEvent("save.success", map[string]any{"file": a.FileName, "bytes": len(a.Buf.String())})
}

// exportHTML writes the current highlighted markup as a standalone HTML
// document through the backend's save-as flow. The markup is recomputed
// here rather than read from the last sink push, which may lag behind.
func (a *App) exportHTML() {
	if a.Backend == nil {
		a.Status = "No storage backend"
		return
	}
	res := a.Engine.Highlight(a.Buf.String(), lang.Resolve(a.FileName))
	doc := htmlDocument(a.Engine.CSS(), res.Markup)
	h, err := a.Backend.SaveFile(context.Background(), nil, doc)
	if err != nil {
		a.Status = "Export failed: " + err.Error()
		return
	}
	if h == nil {
		a.Status = "Cancelled"
		return
	}
	a.Status = "Exported"
	a.logEvent("export.success", map[string]any{"file": a.FileName, "language": res.Language})
}

// onHighlight is the manager's sink. Debounced results arrive on the timer
// goroutine, so with a screen attached they are handed to the event loop as
// interrupt events instead of touching app state here. A failed post only
// drops one repaint; the next update redraws.
func (a *App) onHighlight(res highlight.Result) {
	s := a.Screen
	if s == nil {
		a.applyHighlight(res)
		return
	}
	_ = s.PostEvent(tcell.NewEventInterrupt(res))
}

// applyHighlight records a highlight result and repaints. Event-loop only.
func (a *App) applyHighlight(res highlight.Result) {
	a.Language = res.Language
	a.Markup = res.Markup
	a.draw()
}

func (a *App) logEvent(event string, fields map[string]any) {
	if a.Logger != nil {
		a.Logger.Event(event, fields)
	}
}

func htmlDocument(css, markup string) string {
	return "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n" +
		css + "</style>\n</head>\n<body>\n" + markup + "\n</body>\n</html>\n"
}
