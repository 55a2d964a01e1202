// Package data implements the DATA pool of base spec §3: an
// append-ordered sequence of literal tokens, shared by the whole
// program, drained by READ and rewound by RESTORE.
package data

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
)

// Item is one literal token contributed by a DATA statement.
type Item struct {
	IsString bool
	Str      string
	Num      float64
	Raw      string // original text, used when a numeric target reads a string-shaped literal
}

// Pool is the interpreter's DATA store: an append-ordered list plus a
// single read cursor (base spec §3).
type Pool struct {
	items  []Item
	cursor int
}

// New creates an empty Pool.
func New() *Pool { return &Pool{} }

// Reset drops all items and rewinds the cursor, as CLEAR/NEW require.
func (p *Pool) Reset() {
	p.items = nil
	p.cursor = 0
}

// Append adds one literal to the pool in source order.
func (p *Pool) Append(item Item) {
	p.items = append(p.items, item)
}

// Restore resets the read cursor to the head of the pool.
func (p *Pool) Restore() {
	p.cursor = 0
}

// Len reports how many items are in the pool.
func (p *Pool) Len() int { return len(p.items) }

// Next consumes and returns the next item. An exhausted pool raises
// OUT_OF_DATA (base spec §4.5).
func (p *Pool) Next() (Item, error) {
	if p.cursor >= len(p.items) {
		return Item{}, basicerr.New(basicerr.OutOfData)
	}
	item := p.items[p.cursor]
	p.cursor++
	return item, nil
}
