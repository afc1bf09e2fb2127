package app

import "github.com/gdamore/tcell/v2"

// promptInput asks for a line of input on the status line. Esc cancels;
// Enter accepts. Returns ok=false on cancellation. With no screen attached
// (headless use) the prompt cancels immediately.
func (a *App) promptInput(label, initial string) (string, bool) {
	s := a.Screen
	if s == nil {
		return "", false
	}
	input := initial
	for {
		a.draw()
		width, height := s.Size()
		style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
		for i := 0; i < width; i++ {
			s.SetContent(i, height-1, ' ', nil, style)
		}
		col := 0
		for _, r := range label + input {
			if col >= width {
				break
			}
			s.SetContent(col, height-1, r, nil, style)
			col++
		}
		if col < width {
			s.ShowCursor(col, height-1)
		}
		s.Show()

		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEsc:
				a.draw()
				return "", false
			case ev.Key() == tcell.KeyEnter:
				a.draw()
				return input, input != ""
			case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
				if len(input) > 0 {
					rs := []rune(input)
					input = string(rs[:len(rs)-1])
				}
			case ev.Key() == tcell.KeyRune && ev.Modifiers() == 0:
				input += string(ev.Rune())
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}
