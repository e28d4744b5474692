// Package vterm implements a minimal in-memory terminal that understands
// the cursor-control sequences taskline emits (cursor-up-N, erase-line,
// erase-to-end-of-screen). It backs the renderer tests and the bubbletea
// display, which needs the post-diff screen contents as a plain string.
package vterm

import (
	"strings"
	"unicode/utf8"
)

// Screen is an in-memory terminal. It implements io.Writer; feed it the
// renderer's output and read the resulting screen back with String.
// Not safe for concurrent use.
type Screen struct {
	lines []string
	row   int
	col   int
	// esc buffers a partially-received escape sequence across writes.
	esc []byte
	// mb buffers the bytes of a partially-received multi-byte rune.
	mb []byte
}

// New returns an empty screen with a single blank line.
func New() *Screen {
	return &Screen{lines: []string{""}}
}

// Write interprets p, applying printable characters and the supported
// control sequences to the screen. Always succeeds.
func (s *Screen) Write(p []byte) (int, error) {
	for _, b := range p {
		s.consume(b)
	}
	return len(p), nil
}

// Flush is a no-op; Screen applies bytes as they arrive. It exists so the
// renderer's flush calls reach a valid sink.
func (s *Screen) Flush() error {
	return nil
}

// String returns the screen contents, lines joined with "\n".
func (s *Screen) String() string {
	return strings.Join(s.lines, "\n")
}

// Lines returns a copy of the screen's lines.
func (s *Screen) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Screen) consume(b byte) {
	if s.esc != nil {
		s.esc = append(s.esc, b)
		// CSI sequences terminate on the first alphabetic final byte.
		if b >= 'A' && b <= 'z' && b != '[' {
			s.applyEscape(string(s.esc))
			s.esc = nil
		}
		return
	}
	switch b {
	case 0x1b:
		s.esc = []byte{b}
	case '\n':
		s.row++
		s.col = 0
		s.ensureRow(s.row)
	case '\r':
		s.col = 0
	default:
		if b < utf8.RuneSelf {
			s.putRune(rune(b))
			return
		}
		s.mb = append(s.mb, b)
		if utf8.FullRune(s.mb) {
			r, _ := utf8.DecodeRune(s.mb)
			s.mb = s.mb[:0]
			s.putRune(r)
		}
	}
}

func (s *Screen) putRune(r rune) {
	s.ensureRow(s.row)
	line := []rune(s.lines[s.row])
	if s.col < len(line) {
		line[s.col] = r
		s.lines[s.row] = string(line)
	} else {
		s.lines[s.row] += string(r)
	}
	s.col++
}

func (s *Screen) applyEscape(seq string) {
	switch {
	case strings.HasSuffix(seq, "A"):
		// Cursor up by N.
		n := parseNum(seq)
		if n > s.row {
			n = s.row
		}
		s.row -= n
	case seq == "\x1b[2K":
		// Erase the current line.
		s.ensureRow(s.row)
		s.lines[s.row] = ""
		s.col = 0
	case seq == "\x1b[J":
		// Erase from cursor to end of screen.
		s.lines = s.lines[:s.row+1]
	}
}

func (s *Screen) ensureRow(row int) {
	for len(s.lines) <= row {
		s.lines = append(s.lines, "")
	}
}

func parseNum(seq string) int {
	n := 0
	for _, r := range seq {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}
