// Package vars implements the variable and array store of base spec §3:
// a name-keyed table of scalars plus separately dimensioned arrays with
// row-major indexing, preserving BASIC's 2-significant-letter name
// aliasing (COUNTER and CO denote the same variable).
package vars

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/value"
)

// Array holds a dimensioned numeric or string array: a dimension vector
// and flat, row-major storage of size ∏(d[i]+1) (base spec §3, indices
// are 0-based and inclusive).
type Array struct {
	IsString bool
	Dims     []int // d[0..k), 0 < k <= 8
	Data     []value.Value
}

// Store is the interpreter's variable and array table. Create one with
// New: a zero Store has nil maps and cannot be assigned to.
type Store struct {
	scalars map[string]value.Value
	arrays  map[string]*Array
}

// New creates an empty Store.
func New() *Store {
	return &Store{scalars: make(map[string]value.Value), arrays: make(map[string]*Array)}
}

// Reset drops all scalars and arrays, as CLEAR/NEW require (base spec
// §4.5).
func (s *Store) Reset() {
	s.scalars = make(map[string]value.Value)
	s.arrays = make(map[string]*Array)
}

// Get reads a scalar by its (already-aliased) name. An undefined scalar
// reads as 0 or "" without creating the variable (base spec §4.2).
func (s *Store) Get(name string) value.Value {
	if v, ok := s.scalars[name]; ok {
		return v
	}
	if isStringName(name) {
		return value.Str("")
	}
	return value.Num(0)
}

// Set assigns a scalar, creating it if undefined (base spec §4.5).
func (s *Store) Set(name string, v value.Value) error {
	if v.IsString() != isStringName(name) {
		return basicerr.New(basicerr.TypeMismatch)
	}
	s.scalars[name] = v
	return nil
}

// isStringName reports whether a variable name's trailing '$' marks it
// as string-typed (base spec §3).
func isStringName(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '$'
}

// IsStringName exposes isStringName for callers outside this package
// (the interpreter's READ, INPUT and GET handlers use it to pick a
// target's type).
func IsStringName(name string) bool { return isStringName(name) }

// Dim allocates a new array. Re-DIM of an existing name is an error
// (base spec §3 invariant, §4.5).
func (s *Store) Dim(name string, dims []int) error {
	if _, exists := s.arrays[name]; exists {
		return basicerr.New(basicerr.RedimensionedArray)
	}
	for _, d := range dims {
		if d < 0 {
			return basicerr.New(basicerr.IllegalQuantity)
		}
	}
	size := 1
	for _, d := range dims {
		size *= d + 1
	}
	data := make([]value.Value, size)
	isStr := isStringName(name)
	if isStr {
		for i := range data {
			data[i] = value.Str("")
		}
	}
	s.arrays[name] = &Array{IsString: isStr, Dims: append([]int(nil), dims...), Data: data}
	return nil
}

// autoDim implicitly allocates a DIM-less array the first time it is
// indexed, with default dimension 10 per each subscript (classic
// Microsoft BASIC behavior for arrays referenced without a prior DIM).
func (s *Store) autoDim(name string, dims []int) (*Array, error) {
	bounds := make([]int, len(dims))
	for i := range dims {
		bounds[i] = 10
	}
	if err := s.Dim(name, bounds); err != nil {
		return nil, err
	}
	return s.arrays[name], nil
}

// array looks up or auto-creates the array for name, validating the
// subscript count and range.
func (s *Store) array(name string, indices []int, forWrite bool) (*Array, int, error) {
	arr, ok := s.arrays[name]
	if !ok {
		var err error
		arr, err = s.autoDim(name, indices)
		if err != nil {
			return nil, 0, err
		}
	}
	if len(indices) != len(arr.Dims) {
		return nil, 0, basicerr.New(basicerr.SubscriptOutOfRange)
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx > arr.Dims[i] {
			return nil, 0, basicerr.New(basicerr.SubscriptOutOfRange)
		}
		offset = offset*(arr.Dims[i]+1) + idx
	}
	_ = forWrite
	return arr, offset, nil
}

// GetElement reads an array element.
func (s *Store) GetElement(name string, indices []int) (value.Value, error) {
	arr, offset, err := s.array(name, indices, false)
	if err != nil {
		return value.Value{}, err
	}
	return arr.Data[offset], nil
}

// SetElement writes an array element.
func (s *Store) SetElement(name string, indices []int, v value.Value) error {
	arr, offset, err := s.array(name, indices, true)
	if err != nil {
		return err
	}
	if v.IsString() != arr.IsString {
		return basicerr.New(basicerr.TypeMismatch)
	}
	arr.Data[offset] = v
	return nil
}

// HasArray reports whether name has been DIM'd (explicitly or
// implicitly).
func (s *Store) HasArray(name string) bool {
	_, ok := s.arrays[name]
	return ok
}
