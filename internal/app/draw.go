package app

import "github.com/gdamore/tcell/v2"

// draw renders the buffer and the status bar. Safe to call with no screen.
func (a *App) draw() {
	s := a.Screen
	if s == nil {
		return
	}
	s.Clear()
	width, height := s.Size()
	if height < 2 {
		s.Show()
		return
	}
	a.ensureCursorVisible(height - 1)

	lines := a.Buf.Lines()
	for row := 0; row < height-1; row++ {
		idx := a.TopLine + row
		if idx >= len(lines) {
			break
		}
		col := 0
		for _, r := range lines[idx] {
			if col >= width {
				break
			}
			s.SetContent(col, row, r, nil, tcell.StyleDefault)
			col++
		}
	}

	a.drawStatusBar(s, width, height)

	line, col := a.Buf.LineCol(a.Cursor)
	if row := line - a.TopLine; row >= 0 && row < height-1 && col < width {
		s.ShowCursor(col, row)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (a *App) drawStatusBar(s tcell.Screen, width, height int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	for i := 0; i < width; i++ {
		s.SetContent(i, height-1, ' ', nil, style)
	}
	name := a.FileName
	if name == "" {
		name = "[No Name]"
	}
	status := name
	if a.Dirty {
		status += " [+]"
	}
	status += "  " + a.Language
	if a.Status != "" {
		status += "  " + a.Status
	}
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		s.SetContent(col, height-1, r, nil, style)
		col++
	}
}

// ensureCursorVisible scrolls TopLine so the cursor stays on screen.
func (a *App) ensureCursorVisible(rows int) {
	if rows <= 0 {
		return
	}
	line, _ := a.Buf.LineCol(a.Cursor)
	if line < a.TopLine {
		a.TopLine = line
	}
	if line >= a.TopLine+rows {
		a.TopLine = line - rows + 1
	}
	if a.TopLine < 0 {
		a.TopLine = 0
	}
}
