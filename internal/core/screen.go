package core

import (
	"strings"
)

// Screen is the rune buffer the runner draws a frame into. Everything
// the game shows (terrain, avatar, HUD, message boxes) goes through it;
// the platform layer turns it into a string once per tick.
type Screen struct {
	width  int
	height int
	cells  []rune // row-major, len width*height
}

// NewScreen returns a cleared buffer of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
	}
	s.Clear()
	return s
}

// Width returns the buffer width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the buffer height in cells.
func (s *Screen) Height() int { return s.height }

// Resize reallocates the buffer for a new terminal size. Content is not
// preserved; the runner redraws the whole frame every tick anyway.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.cells = make([]rune, width*height)
	s.Clear()
}

// Clear fills the buffer with spaces.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = ' '
	}
}

// Set places a rune at (x, y). Out-of-bounds writes are dropped, so the
// runner can draw blocks that are partly scrolled off without clipping
// them itself.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = r
}

// DrawText writes text left to right starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) {
	for i, r := range text {
		s.Set(x+i, y, r)
	}
}

// DrawRect fills r with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// String renders the buffer as newline-joined rows.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(s.cells[y*s.width : (y+1)*s.width]))
	}
	return sb.String()
}
