// Package program implements the stored-program line list and the
// FOR/NEXT and GOSUB/RETURN control-flow stacks of base spec §3.
//
// Lines, FOR frames, and GOSUB frames are each modeled as ordered,
// contiguous, growable slices rather than linked lists: the "pointers"
// of the original reference source become indices into these arenas,
// matching the LIFO and in-order lifetimes the spec describes (base
// spec §9, "Singly-linked storage -> indexed arenas").
package program

import (
	"sort"

	"github.com/go-msbasic/gobasic/internal/basicerr"
)

// Line is one stored program line: its number and untokenized text
// (base spec §3).
type Line struct {
	Number int
	Text   string
}

// Program is the sorted, duplicate-free list of stored lines (base spec
// §3 invariant).
type Program struct {
	lines []Line
}

// New creates an empty Program.
func New() *Program { return &Program{} }

// Put inserts or replaces a line. Inserting with empty text deletes the
// line if present (base spec §3).
func (p *Program) Put(number int, text string) {
	i := p.search(number)
	if text == "" {
		if i < len(p.lines) && p.lines[i].Number == number {
			p.lines = append(p.lines[:i], p.lines[i+1:]...)
		}
		return
	}
	if i < len(p.lines) && p.lines[i].Number == number {
		p.lines[i].Text = text
		return
	}
	p.lines = append(p.lines, Line{})
	copy(p.lines[i+1:], p.lines[i:])
	p.lines[i] = Line{Number: number, Text: text}
}

// search returns the index of number in the sorted line list, or the
// index where it would be inserted.
func (p *Program) search(number int) int {
	return sort.Search(len(p.lines), func(i int) bool { return p.lines[i].Number >= number })
}

// Reset drops all program text, as NEW requires (base spec §4.5).
func (p *Program) Reset() {
	p.lines = nil
}

// Lines returns the stored lines in ascending order; the slice must not
// be mutated by the caller.
func (p *Program) Lines() []Line {
	return p.lines
}

// First returns the first stored line and true, or the zero Line and
// false if the program is empty.
func (p *Program) First() (Line, bool) {
	if len(p.lines) == 0 {
		return Line{}, false
	}
	return p.lines[0], true
}

// Find returns the line with the given number.
func (p *Program) Find(number int) (Line, bool) {
	i := p.search(number)
	if i < len(p.lines) && p.lines[i].Number == number {
		return p.lines[i], true
	}
	return Line{}, false
}

// Next returns the stored line immediately after number, or false if
// number is the last line.
func (p *Program) Next(number int) (Line, bool) {
	i := p.search(number)
	if i < len(p.lines) && p.lines[i].Number == number {
		i++
	}
	if i < len(p.lines) {
		return p.lines[i], true
	}
	return Line{}, false
}

// ForFrame is a FOR/NEXT loop frame (base spec §3): the loop variable,
// its limit and step, and the line+byte-position to resume at when the
// loop continues.
type ForFrame struct {
	Var   string
	Limit float64
	Step  float64
	Line  int
	Pos   int
}

// GosubFrame is a GOSUB/RETURN frame (base spec §3): the line and
// byte-position to resume at on RETURN.
type GosubFrame struct {
	Line int
	Pos  int
}

// Stacks holds the interpreter's FOR and GOSUB frame stacks, both LIFO
// (base spec §3).
type Stacks struct {
	forFrames   []ForFrame
	gosubFrames []GosubFrame
}

// NewStacks creates empty FOR/GOSUB stacks.
func NewStacks() *Stacks { return &Stacks{} }

// Reset drops all frames, as CLEAR/NEW require.
func (s *Stacks) Reset() {
	s.forFrames = nil
	s.gosubFrames = nil
}

// PushFor pushes a new FOR frame.
func (s *Stacks) PushFor(f ForFrame) {
	s.forFrames = append(s.forFrames, f)
}

// FindFor resolves NEXT's matching frame: with a variable name, scans
// from the top for the first frame whose Var matches, popping any
// frames above it; without one (name == ""), uses the top-most frame.
// Returns the matching frame and true, or false with NEXT_WITHOUT_FOR
// latched by the caller.
func (s *Stacks) FindFor(name string) (ForFrame, bool) {
	if len(s.forFrames) == 0 {
		return ForFrame{}, false
	}
	if name == "" {
		i := len(s.forFrames) - 1
		f := s.forFrames[i]
		s.forFrames = s.forFrames[:i]
		return f, true
	}
	for i := len(s.forFrames) - 1; i >= 0; i-- {
		if s.forFrames[i].Var == name {
			f := s.forFrames[i]
			s.forFrames = s.forFrames[:i]
			return f, true
		}
	}
	return ForFrame{}, false
}

// RepushFor restores a frame NEXT decided to keep looping (base spec
// §4.5 NEXT semantics: increment, and if still in range, jump back
// without popping for good).
func (s *Stacks) RepushFor(f ForFrame) {
	s.forFrames = append(s.forFrames, f)
}

// PushGosub pushes a new GOSUB frame.
func (s *Stacks) PushGosub(f GosubFrame) {
	s.gosubFrames = append(s.gosubFrames, f)
}

// PopGosub pops the top-most GOSUB frame for RETURN. Returns
// RETURN_WITHOUT_GOSUB if the stack is empty.
func (s *Stacks) PopGosub() (GosubFrame, error) {
	if len(s.gosubFrames) == 0 {
		return GosubFrame{}, basicerr.New(basicerr.ReturnWithoutGosub)
	}
	i := len(s.gosubFrames) - 1
	f := s.gosubFrames[i]
	s.gosubFrames = s.gosubFrames[:i]
	return f, nil
}
