// Package eval implements the precedence-climbing expression evaluator
// of base spec §4.2 and the built-in functions of §4.3.
//
// There is no persistent expression tree: each call to Eval walks the
// lexer's token stream directly, the way the reference BASIC re-scans a
// line's text on every execution (base spec §2, item 5). The shape of
// the climb — a main loop consuming left-associative binary operators
// by precedence, with unary prefixes binding tighter than multiplication
// but looser than '^' — follows the teacher's evaluator package in structure,
// generalized from DWScript's operator set to BASIC's.
package eval

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/token"
	"github.com/go-msbasic/gobasic/internal/value"
)

// Evaluator walks a Lexer's token stream to produce Values, consulting
// Context for variable/array reads and built-in function state.
type Evaluator struct {
	lx    *lexer.Lexer
	ctx   Context
	depth int
}

// maxDepth guards against runaway recursion on pathological input
// (e.g. thousands of nested parentheses), raising FORMULA_TOO_COMPLEX
// rather than overflowing the Go call stack (base spec §6 error list).
const maxDepth = 200

// New creates an Evaluator reading from lx and resolving names via ctx.
func New(lx *lexer.Lexer, ctx Context) *Evaluator {
	return &Evaluator{lx: lx, ctx: ctx}
}

// Precedence levels from base spec §4.2. Higher binds tighter.
const (
	precOr      = 80
	precAnd     = 90
	precCompare = 100
	precAddSub  = 121
	precMulDiv  = 123
	precPow     = 127
)

// Eval parses and evaluates one expression starting at the current
// cursor position, stopping at the first token that cannot extend it
// (a delimiter, keyword statement, or EOL).
func (e *Evaluator) Eval() (value.Value, error) {
	return e.parseExpr(precOr)
}

type opInfo struct {
	prec       int
	rightAssoc bool
	width      int // bytes the lexer cursor must advance past whitespace
	literal    string
}

// peekOperator inspects the upcoming token(s) without consuming them and
// reports the binary operator found, if any.
func (e *Evaluator) peekOperator() (opInfo, bool) {
	save := e.lx.Pos()
	tok := e.lx.Peek()
	e.lx.SetPos(save)

	switch tok.Type {
	case token.OPERATOR:
		switch tok.Literal {
		case "^":
			return opInfo{precPow, true, 0, "^"}, true
		case "*", "/":
			return opInfo{precMulDiv, false, 0, tok.Literal}, true
		case "+", "-":
			return opInfo{precAddSub, false, 0, tok.Literal}, true
		case "=", "<", ">":
			lit, width := e.lx.PeekCompoundOperator()
			return opInfo{precCompare, false, width, lit}, true
		}
	case token.KEYWORD:
		switch tok.Kw {
		case token.AND:
			return opInfo{precAnd, false, 0, "AND"}, true
		case token.OR:
			return opInfo{precOr, false, 0, "OR"}, true
		}
	}
	return opInfo{}, false
}

// consumeOperator advances the cursor past the operator peekOperator
// identified.
func (e *Evaluator) consumeOperator(op opInfo) {
	if op.width > 0 {
		e.lx.Advance(op.width)
		return
	}
	e.lx.Next()
}

func (e *Evaluator) parseExpr(minPrec int) (value.Value, error) {
	e.depth++
	if e.depth > maxDepth {
		return value.Value{}, basicerr.New(basicerr.FormulaTooComplex)
	}
	defer func() { e.depth-- }()

	left, err := e.parseUnary()
	if err != nil {
		return value.Value{}, err
	}

	for {
		op, ok := e.peekOperator()
		if !ok || op.prec < minPrec {
			break
		}
		e.consumeOperator(op)

		nextMin := op.prec + 1
		if op.rightAssoc {
			nextMin = op.prec
		}
		right, err := e.parseExpr(nextMin)
		if err != nil {
			return value.Value{}, err
		}
		left, err = applyBinary(op.literal, left, right)
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func applyBinary(op string, a, b value.Value) (value.Value, error) {
	switch op {
	case "+":
		return value.Add(a, b)
	case "-":
		return value.Sub(a, b)
	case "*":
		return value.Mul(a, b)
	case "/":
		return value.Div(a, b)
	case "^":
		return value.Pow(a, b)
	case "=", "<", ">", "<=", ">=", "<>":
		return value.Compare(op, a, b)
	case "AND":
		return value.BitAnd(a, b)
	case "OR":
		return value.BitOr(a, b)
	default:
		return value.Value{}, basicerr.Newf(basicerr.Syntax, "unknown operator %q", op)
	}
}

// parseUnary handles the prefix productions of base spec §4.2: unary
// '+', '-', and NOT apply to the following primary, binding tighter
// than '*'/'/ ' but looser than '^' — so "-3^2" parses as -(3^2).
func (e *Evaluator) parseUnary() (value.Value, error) {
	save := e.lx.Pos()
	tok := e.lx.Next()

	switch {
	case tok.Type == token.OPERATOR && tok.Literal == "+":
		return e.parseExpr(precPow)
	case tok.Type == token.OPERATOR && tok.Literal == "-":
		v, err := e.parseExpr(precPow)
		if err != nil {
			return value.Value{}, err
		}
		return value.Neg(v)
	case tok.Type == token.KEYWORD && tok.Kw == token.NOT:
		v, err := e.parseExpr(precPow)
		if err != nil {
			return value.Value{}, err
		}
		return value.BitNot(v)
	default:
		e.lx.SetPos(save)
		return e.parsePrimary()
	}
}

func (e *Evaluator) parsePrimary() (value.Value, error) {
	tok := e.lx.Next()
	switch tok.Type {
	case token.NUMBER:
		return value.Num(tok.Num), nil
	case token.STRING:
		return value.Str(tok.Literal), nil
	case token.VARIABLE:
		return e.parseVariableOrArray(tok.Literal)
	case token.KEYWORD:
		if isFunctionID(tok.Kw) {
			return e.callBuiltin(tok.Kw)
		}
		return value.Value{}, basicerr.New(basicerr.Syntax)
	case token.DELIM:
		if tok.Literal == "(" {
			v, err := e.parseExpr(precOr)
			if err != nil {
				return value.Value{}, err
			}
			if close := e.lx.Next(); close.Type != token.DELIM || close.Literal != ")" {
				return value.Value{}, basicerr.New(basicerr.Syntax)
			}
			return v, nil
		}
		return value.Value{}, basicerr.New(basicerr.Syntax)
	default:
		return value.Value{}, basicerr.New(basicerr.Syntax)
	}
}

func (e *Evaluator) parseVariableOrArray(name string) (value.Value, error) {
	save := e.lx.Pos()
	tok := e.lx.Next()
	if tok.Type != token.DELIM || tok.Literal != "(" {
		e.lx.SetPos(save)
		return e.ctx.GetVar(name), nil
	}

	indices, err := e.parseIndexList()
	if err != nil {
		return value.Value{}, err
	}
	return e.getArrayOrVar(name, indices)
}

// getArrayOrVar resolves name(indices): if name has never been DIM'd
// and carries exactly one index, base spec's function-call grammar and
// array-subscript grammar are ambiguous only in spelling, not
// semantics — a bare "A(1)" always means an array element (auto-DIM'd
// to bound 10 on first use per classic Microsoft BASIC), since function
// names are reserved keywords and can never collide with a VARIABLE
// token.
func (e *Evaluator) getArrayOrVar(name string, indices []int) (value.Value, error) {
	return e.ctx.GetArrayElement(name, indices)
}

// parseIndexList parses a parenthesized, comma-separated list of
// integer subscript expressions, consuming the already-seen '(' and the
// closing ')'.
func (e *Evaluator) parseIndexList() ([]int, error) {
	var indices []int
	for {
		v, err := e.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		if v.IsString() {
			return nil, basicerr.New(basicerr.TypeMismatch)
		}
		indices = append(indices, int(v.NumVal()))

		tok := e.lx.Next()
		if tok.Type == token.DELIM && tok.Literal == "," {
			continue
		}
		if tok.Type == token.DELIM && tok.Literal == ")" {
			return indices, nil
		}
		return nil, basicerr.New(basicerr.Syntax)
	}
}

func isFunctionID(id token.ID) bool {
	return id >= token.SGN && id <= token.POS
}
