package eval

import "github.com/go-msbasic/gobasic/internal/value"

// Context is the evaluator's view of interpreter state: everything a
// variable read, array subscript, or built-in function needs. interp.Interpreter
// implements this, in the same spirit as the teacher's evaluator.Context
// interface decoupling expression evaluation from the full interpreter.
type Context interface {
	GetVar(name string) value.Value
	SetVar(name string, v value.Value) error
	HasArray(name string) bool
	GetArrayElement(name string, indices []int) (value.Value, error)

	// Peek reads one byte of virtual memory (PEEK built-in).
	Peek(addr int) byte
	// Rnd implements the RND built-in's three-way seeding/replay/draw
	// contract (base spec §4.3).
	Rnd(x float64) float64
	// FreeBytes and CursorColumn back the FRE and POS placeholders
	// (base spec §4.3): implementation-chosen but stable values.
	FreeBytes() int
	CursorColumn() int
}
