package interp

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/token"
	"github.com/go-msbasic/gobasic/internal/value"
)

// parseLValue parses an assignment/READ/INPUT target: a variable name,
// optionally followed by a parenthesized subscript list (base spec §3,
// §4.5). The subscripts are full expressions, evaluated against ip.
func (ip *Interpreter) parseLValue(lx *lexer.Lexer) (name string, indices []int, isArray bool, err error) {
	tok := lx.Next()
	if tok.Type != token.VARIABLE {
		return "", nil, false, basicerr.New(basicerr.Syntax)
	}
	name = tok.Literal

	save := lx.Pos()
	next := lx.Next()
	if next.Type != token.DELIM || next.Literal != "(" {
		lx.SetPos(save)
		return name, nil, false, nil
	}
	indices, err = ip.parseSubscripts(lx)
	if err != nil {
		return "", nil, false, err
	}
	return name, indices, true, nil
}

// parseSubscripts parses a comma-separated list of integer subscript
// expressions, with the opening '(' already consumed by the caller, up
// to and including the closing ')'.
func (ip *Interpreter) parseSubscripts(lx *lexer.Lexer) ([]int, error) {
	var indices []int
	for {
		v, err := ip.evalExpr(lx)
		if err != nil {
			return nil, err
		}
		if v.IsString() {
			return nil, basicerr.New(basicerr.TypeMismatch)
		}
		indices = append(indices, int(v.NumVal()))

		t := lx.Next()
		if t.Type == token.DELIM && t.Literal == "," {
			continue
		}
		if t.Type == token.DELIM && t.Literal == ")" {
			return indices, nil
		}
		return nil, basicerr.New(basicerr.Syntax)
	}
}

// setLValue writes v to the scalar or array element parseLValue
// identified.
func (ip *Interpreter) setLValue(name string, indices []int, isArray bool, v value.Value) error {
	if isArray {
		return ip.Vars.SetElement(name, indices, v)
	}
	return ip.Vars.Set(name, v)
}
