package eval

import (
	"testing"

	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/value"
)

// fakeCtx is a minimal Context for exercising the evaluator in isolation,
// without pulling in the interp package.
type fakeCtx struct {
	scalars map[string]value.Value
	arrays  map[string][]value.Value
	mem     map[int]byte
	freeVal int
	col     int
	rnd     float64
}

func newFakeCtx() *fakeCtx {
	return &fakeCtx{
		scalars: make(map[string]value.Value),
		arrays:  make(map[string][]value.Value),
		mem:     make(map[int]byte),
	}
}

func (f *fakeCtx) GetVar(name string) value.Value {
	if v, ok := f.scalars[name]; ok {
		return v
	}
	if len(name) > 0 && name[len(name)-1] == '$' {
		return value.Str("")
	}
	return value.Num(0)
}

func (f *fakeCtx) SetVar(name string, v value.Value) error {
	f.scalars[name] = v
	return nil
}

func (f *fakeCtx) HasArray(name string) bool {
	_, ok := f.arrays[name]
	return ok
}

func (f *fakeCtx) GetArrayElement(name string, indices []int) (value.Value, error) {
	arr := f.arrays[name]
	idx := indices[0]
	if idx < len(arr) {
		return arr[idx], nil
	}
	return value.Num(0), nil
}

func (f *fakeCtx) Peek(addr int) byte     { return f.mem[addr] }
func (f *fakeCtx) Rnd(x float64) float64  { return f.rnd }
func (f *fakeCtx) FreeBytes() int         { return f.freeVal }
func (f *fakeCtx) CursorColumn() int      { return f.col }

func evalString(t *testing.T, src string) value.Value {
	t.Helper()
	ctx := newFakeCtx()
	lx := lexer.New(src, 1)
	v, err := New(lx, ctx).Eval()
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return v
}

func TestPrecedenceExamples(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"2+3*4", 14},
		{"2^3^2", 512},
		{"-3^2", -9},
		{"NOT 0", -1},
		{"(2+3)*4", 20},
		{"10-2-3", 5},
	}
	for _, tt := range tests {
		v := evalString(t, tt.src)
		if v.NumVal() != tt.want {
			t.Errorf("eval(%q) = %v, want %v", tt.src, v.NumVal(), tt.want)
		}
	}
}

func TestStringConcatenation(t *testing.T) {
	v := evalString(t, `"AB"+"CD"`)
	if v.StrVal() != "ABCD" {
		t.Fatalf("got %q", v.StrVal())
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1<2", true},
		{"2<=2", true},
		{"3<>3", false},
		{"3>=4", false},
	}
	for _, tt := range tests {
		v := evalString(t, tt.src)
		if v.Truthy() != tt.want {
			t.Errorf("eval(%q) = %v, want %v", tt.src, v.Truthy(), tt.want)
		}
	}
}

func TestBuiltinFunctions(t *testing.T) {
	if v := evalString(t, "SGN(-5)"); v.NumVal() != -1 {
		t.Errorf("SGN(-5) = %v", v.NumVal())
	}
	if v := evalString(t, "INT(3.7)"); v.NumVal() != 3 {
		t.Errorf("INT(3.7) = %v", v.NumVal())
	}
	if v := evalString(t, "ABS(-9)"); v.NumVal() != 9 {
		t.Errorf("ABS(-9) = %v", v.NumVal())
	}
	if v := evalString(t, "LEN(\"HELLO\")"); v.NumVal() != 5 {
		t.Errorf("LEN = %v", v.NumVal())
	}
	if v := evalString(t, `LEFT$("HELLO",2)`); v.StrVal() != "HE" {
		t.Errorf("LEFT$ = %q", v.StrVal())
	}
	if v := evalString(t, `MID$("HELLO",2,3)`); v.StrVal() != "ELL" {
		t.Errorf("MID$ = %q", v.StrVal())
	}
	if v := evalString(t, `VAL("  -3.5XYZ")`); v.NumVal() != -3.5 {
		t.Errorf("VAL = %v", v.NumVal())
	}
	if v := evalString(t, `VAL("ABC")`); v.NumVal() != 0 {
		t.Errorf("VAL(non-numeric) = %v", v.NumVal())
	}
}

func TestSqrNegativeIsIllegalQuantity(t *testing.T) {
	ctx := newFakeCtx()
	lx := lexer.New("SQR(-1)", 1)
	_, err := New(lx, ctx).Eval()
	be, ok := basicerr.As(err)
	if !ok || be.Code != basicerr.IllegalQuantity {
		t.Fatalf("got %v, want IllegalQuantity", err)
	}
}

func TestVariableRead(t *testing.T) {
	ctx := newFakeCtx()
	ctx.scalars["X"] = value.Num(7)
	lx := lexer.New("X+1", 1)
	v, err := New(lx, ctx).Eval()
	if err != nil || v.NumVal() != 8 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestArrayElementRead(t *testing.T) {
	ctx := newFakeCtx()
	ctx.arrays["A"] = []value.Value{value.Num(1), value.Num(2), value.Num(3)}
	lx := lexer.New("A(1)+A(2)", 1)
	v, err := New(lx, ctx).Eval()
	if err != nil || v.NumVal() != 5 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestMixedTypeComparisonError(t *testing.T) {
	ctx := newFakeCtx()
	lx := lexer.New(`1="A"`, 1)
	_, err := New(lx, ctx).Eval()
	be, ok := basicerr.As(err)
	if !ok || be.Code != basicerr.TypeMismatch {
		t.Fatalf("got %v, want TypeMismatch", err)
	}
}
