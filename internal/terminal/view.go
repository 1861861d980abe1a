package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// Status is the tracked state shown on screen.
type Status struct {
	Input   whatinput.Method
	Intent  whatinput.Method
	Element string
	Classes []string
	Events  int
}

var methodStyles = map[whatinput.Method]tcell.Style{
	whatinput.MethodKeyboard: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	whatinput.MethodMouse:    tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true),
	whatinput.MethodTouch:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
}

func styleFor(m whatinput.Method) tcell.Style {
	if st, ok := methodStyles[m]; ok {
		return st
	}
	return tcell.StyleDefault.Dim(true)
}

// Lines returns the label/value rows of the status view.
func (s Status) Lines() [][2]string {
	element := s.Element
	if element == "" {
		element = "-"
	}
	classes := "-"
	if len(s.Classes) > 0 {
		classes = strings.Join(s.Classes, ",")
	}
	return [][2]string{
		{"input", s.Input.String()},
		{"intent", s.Intent.String()},
		{"element", element},
		{"classes", classes},
		{"events", fmt.Sprintf("%d", s.Events)},
	}
}

// Draw renders s onto screen.
func Draw(screen tcell.Screen, s Status) {
	screen.Clear()

	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row, line := range s.Lines() {
		y := row + 1
		drawText(screen, 2, y, label, line[0]+":")

		style := tcell.StyleDefault
		switch line[0] {
		case "input":
			style = styleFor(s.Input)
		case "intent":
			style = styleFor(s.Intent)
		}
		drawText(screen, 12, y, style, line[1])
	}

	_, h := screen.Size()
	drawText(screen, 2, h-1, label, "type, click, scroll or refocus the terminal; ctrl-c or esc quits")
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	w, h := screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
