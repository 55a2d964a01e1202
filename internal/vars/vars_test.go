package vars

import (
	"testing"

	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/value"
)

func TestUndefinedScalarDefaults(t *testing.T) {
	s := New()
	if got := s.Get("X"); got.NumVal() != 0 {
		t.Fatalf("got %v", got)
	}
	if got := s.Get("NM$"); got.StrVal() != "" {
		t.Fatalf("got %v", got)
	}
}

func TestSetAndGetScalar(t *testing.T) {
	s := New()
	if err := s.Set("X", value.Num(42)); err != nil {
		t.Fatal(err)
	}
	if got := s.Get("X"); got.NumVal() != 42 {
		t.Fatalf("got %v", got)
	}
}

func TestSetScalarTypeMismatch(t *testing.T) {
	s := New()
	err := s.Set("X", value.Str("hi"))
	if !isErr(err, basicerr.TypeMismatch) {
		t.Fatalf("got %v, want TypeMismatch", err)
	}
}

func TestDimAndGetSetElement(t *testing.T) {
	s := New()
	if err := s.Dim("A", []int{5}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetElement("A", []int{3}, value.Num(99)); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetElement("A", []int{3})
	if err != nil || v.NumVal() != 99 {
		t.Fatalf("got %v, %v", v, err)
	}
	// unset elements default to 0
	v, err = s.GetElement("A", []int{0})
	if err != nil || v.NumVal() != 0 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestRedimensionedArray(t *testing.T) {
	s := New()
	if err := s.Dim("A", []int{5}); err != nil {
		t.Fatal(err)
	}
	err := s.Dim("A", []int{10})
	if !isErr(err, basicerr.RedimensionedArray) {
		t.Fatalf("got %v, want RedimensionedArray", err)
	}
}

func TestSubscriptOutOfRange(t *testing.T) {
	s := New()
	if err := s.Dim("A", []int{5}); err != nil {
		t.Fatal(err)
	}
	_, err := s.GetElement("A", []int{6})
	if !isErr(err, basicerr.SubscriptOutOfRange) {
		t.Fatalf("got %v, want SubscriptOutOfRange", err)
	}
	_, err = s.GetElement("A", []int{0, 0})
	if !isErr(err, basicerr.SubscriptOutOfRange) {
		t.Fatalf("got %v, want SubscriptOutOfRange for wrong subscript count", err)
	}
}

func TestAutoDimDefaultsToBound10(t *testing.T) {
	s := New()
	v, err := s.GetElement("B", []int{10})
	if err != nil || v.NumVal() != 0 {
		t.Fatalf("got %v, %v", v, err)
	}
	_, err = s.GetElement("B", []int{11})
	if !isErr(err, basicerr.SubscriptOutOfRange) {
		t.Fatalf("got %v, want SubscriptOutOfRange beyond auto-dim bound", err)
	}
	if !s.HasArray("B") {
		t.Fatal("expected B to be auto-dimensioned")
	}
}

func TestStringArrayElementTypeMismatch(t *testing.T) {
	s := New()
	if err := s.Dim("N$", []int{3}); err != nil {
		t.Fatal(err)
	}
	err := s.SetElement("N$", []int{1}, value.Num(5))
	if !isErr(err, basicerr.TypeMismatch) {
		t.Fatalf("got %v, want TypeMismatch", err)
	}
}

func TestIsStringName(t *testing.T) {
	if !IsStringName("NM$") {
		t.Fatal("NM$ should be a string name")
	}
	if IsStringName("X") {
		t.Fatal("X should not be a string name")
	}
}

func TestReset(t *testing.T) {
	s := New()
	_ = s.Set("X", value.Num(1))
	_ = s.Dim("A", []int{3})
	s.Reset()
	if got := s.Get("X"); got.NumVal() != 0 {
		t.Fatalf("got %v after reset", got)
	}
	if s.HasArray("A") {
		t.Fatal("expected A to be gone after reset")
	}
}

func isErr(err error, code basicerr.Code) bool {
	be, ok := basicerr.As(err)
	return ok && be.Code == code
}
