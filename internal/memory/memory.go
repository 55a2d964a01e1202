// Package memory implements the flat virtual byte array of base spec
// §6: a 65,536-byte buffer backing PEEK/POKE/WAIT, with no semantics
// beyond read and write, and addresses reduced modulo 2^16.
package memory

// Size is the virtual memory's fixed byte width.
const Size = 65536

// Memory is a zero-initialized flat byte buffer.
type Memory struct {
	bytes [Size]byte
}

// New creates a zero-initialized Memory.
func New() *Memory { return &Memory{} }

// Peek reads the byte at addr (wrapped modulo Size).
func (m *Memory) Peek(addr int) byte {
	return m.bytes[addr&(Size-1)]
}

// Poke writes v (masked to one byte) at addr (wrapped modulo Size),
// matching base spec §4.5: "write v & 0xFF".
func (m *Memory) Poke(addr int, v int) {
	m.bytes[addr&(Size-1)] = byte(v & 0xFF)
}

// Wait computes (mem[addr] XOR x) AND mask, base spec §4.5's WAIT
// formula.
func (m *Memory) Wait(addr, mask, x int) int {
	return (int(m.Peek(addr)) ^ x) & mask
}
