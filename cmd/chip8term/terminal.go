package main

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// terminal is the controlling terminal in raw mode.
type terminal struct {
	fd    int
	out   io.Writer
	state *term.State
}

// openTerminal switches in to raw mode so single key presses arrive
// without echo.
func openTerminal(in, out *os.File) (*terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("standard input is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	t := &terminal{fd: fd, out: out, state: state}

	if w, h, err := term.GetSize(int(out.Fd())); err == nil && (w < ScreenColumns || h < ScreenRows) {
		t.Close()
		return nil, errors.New("terminal too small for the CHIP-8 screen")
	}

	if err := initScreen(out, t.restore); err != nil {
		return nil, err
	}

	return t, nil
}

// initScreen clears out and hides the cursor, calling restore if that
// fails so the terminal doesn't stay in raw mode.
func initScreen(out io.Writer, restore func() error) error {
	if _, err := io.WriteString(out, hideCursor+clearScreen); err != nil {
		_ = restore()
		return err
	}

	return nil
}

func (t *terminal) restore() error {
	return term.Restore(t.fd, t.state)
}

// draw replaces the screen contents.
func (t *terminal) draw(frame string) error {
	_, err := io.WriteString(t.out, cursorHome+frame)
	return err
}

// Close restores the terminal.
func (t *terminal) Close() error {
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	return t.restore()
}

// readKeys sends every byte read from r on keys until r fails. Escape
// sequences sent by arrow and function keys are dropped; only a lone ESC
// is passed on.
func readKeys(r io.Reader, keys chan<- byte) {
	buf := make([]byte, 64)

	for {
		n, err := r.Read(buf)
		for i := 0; i < n; {
			if buf[i] != keyEscape {
				keys <- buf[i]
				i++
				continue
			}

			seq := escapeLen(buf[i:n])
			if seq == 1 {
				keys <- keyEscape
			}
			i += seq
		}

		if err != nil {
			close(keys)
			return
		}
	}
}

// escapeLen returns the length of the escape sequence at the start of b,
// which is 1 for a lone ESC.
func escapeLen(b []byte) int {
	if len(b) < 2 {
		return 1
	}

	switch b[1] {
	case '[':
		// CSI: parameters up to a final byte in @..~
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7E {
				return i + 1
			}
		}
		return len(b)
	case 'O':
		return min(3, len(b))
	}

	// alt+key
	return 2
}
