// Package terminal renders the virtual machine display as text.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/term"
)

// cursorHome moves the cursor to the top left corner of the terminal.
const cursorHome = "\x1b[H"

// FrameWidth is the number of columns of a rendered frame including its border.
const FrameWidth = vm.DisplayWidth + 2

// Renderer writes display frames to a writer. Every output line combines two
// display rows using half block characters.
type Renderer struct {
	writer   io.Writer
	terminal bool
}

type fileDescriptor interface {
	Fd() uintptr
}

// New returns a renderer for the writer. Cursor control sequences are only
// emitted if the writer is a terminal.
func New(writer io.Writer) *Renderer {
	return &Renderer{
		writer:   writer,
		terminal: IsTerminal(writer),
	}
}

// IsTerminal returns whether the writer is connected to a terminal.
func IsTerminal(writer io.Writer) bool {
	f, ok := writer.(fileDescriptor)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Fits returns whether a rendered frame fits into the width of the terminal.
// Writers that are not a terminal can hold frames of any width.
func Fits(writer io.Writer) bool {
	f, ok := writer.(fileDescriptor)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return true
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true
	}
	return width >= FrameWidth
}

// Render writes the current frame of the display.
func (r *Renderer) Render(display *vm.Display) error {
	frame := Frame(display)
	if r.terminal {
		frame = cursorHome + frame
	}

	if _, err := io.WriteString(r.writer, frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Frame returns the display content surrounded by a border.
func Frame(display *vm.Display) string {
	border := "+" + strings.Repeat("-", vm.DisplayWidth) + "+\n"

	var sb strings.Builder
	sb.WriteString(border)
	for y := 0; y < vm.DisplayHeight; y += 2 {
		sb.WriteByte('|')
		for x := range vm.DisplayWidth {
			sb.WriteRune(cell(display.Pixel(x, y) != 0, display.Pixel(x, y+1) != 0))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
