package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/token"
	"github.com/go-msbasic/gobasic/internal/value"
)

// callBuiltin parses a built-in function's parenthesized argument list
// and evaluates it, per base spec §4.3.
func (e *Evaluator) callBuiltin(id token.ID) (value.Value, error) {
	open := e.lx.Next()
	if open.Type != token.DELIM || open.Literal != "(" {
		return value.Value{}, basicerr.New(basicerr.Syntax)
	}

	args, err := e.parseArgList()
	if err != nil {
		return value.Value{}, err
	}

	switch id {
	case token.SGN, token.INT, token.ABS, token.SQR, token.LOG, token.EXP,
		token.COS, token.SIN, token.TAN, token.ATN, token.RND:
		return e.numericFn(id, args)
	case token.LEN, token.ASC, token.VAL:
		return e.stringToNumberFn(id, args)
	case token.CHRS, token.STRS:
		return e.numberToStringFn(id, args)
	case token.LEFTS, token.RIGHTS, token.MIDS:
		return e.substringFn(id, args)
	case token.PEEK:
		return e.peekFn(args)
	case token.FRE:
		return value.Num(float64(e.ctx.FreeBytes())), nil
	case token.POS:
		return value.Num(float64(e.ctx.CursorColumn())), nil
	default:
		return value.Value{}, basicerr.New(basicerr.UndefFunction)
	}
}

func (e *Evaluator) parseArgList() ([]value.Value, error) {
	var args []value.Value
	tok := e.lx.Peek()
	if tok.Type == token.DELIM && tok.Literal == ")" {
		e.lx.Next()
		return args, nil
	}
	for {
		v, err := e.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		next := e.lx.Next()
		if next.Type == token.DELIM && next.Literal == "," {
			continue
		}
		if next.Type == token.DELIM && next.Literal == ")" {
			return args, nil
		}
		return nil, basicerr.New(basicerr.Syntax)
	}
}

func wantNumeric(args []value.Value, n int) error {
	if len(args) != n {
		return basicerr.New(basicerr.Syntax)
	}
	for _, a := range args {
		if a.IsString() {
			return basicerr.New(basicerr.TypeMismatch)
		}
	}
	return nil
}

func (e *Evaluator) numericFn(id token.ID, args []value.Value) (value.Value, error) {
	if id == token.RND {
		if err := wantNumeric(args, 1); err != nil {
			return value.Value{}, err
		}
		return value.Num(e.ctx.Rnd(args[0].NumVal())), nil
	}
	if err := wantNumeric(args, 1); err != nil {
		return value.Value{}, err
	}
	x := args[0].NumVal()
	switch id {
	case token.SGN:
		switch {
		case x > 0:
			return value.Num(1), nil
		case x < 0:
			return value.Num(-1), nil
		default:
			return value.Num(0), nil
		}
	case token.INT:
		return value.Num(math.Floor(x)), nil
	case token.ABS:
		return value.Num(math.Abs(x)), nil
	case token.SQR:
		if x < 0 {
			return value.Value{}, basicerr.New(basicerr.IllegalQuantity)
		}
		return value.Num(math.Sqrt(x)), nil
	case token.LOG:
		if x <= 0 {
			return value.Value{}, basicerr.New(basicerr.IllegalQuantity)
		}
		return value.Num(math.Log(x)), nil
	case token.EXP:
		r := math.Exp(x)
		if math.IsInf(r, 1) {
			return value.Value{}, basicerr.New(basicerr.IllegalQuantity)
		}
		return value.Num(r), nil
	case token.COS:
		return value.Num(math.Cos(x)), nil
	case token.SIN:
		return value.Num(math.Sin(x)), nil
	case token.TAN:
		return value.Num(math.Tan(x)), nil
	case token.ATN:
		return value.Num(math.Atan(x)), nil
	default:
		return value.Value{}, basicerr.New(basicerr.UndefFunction)
	}
}

func (e *Evaluator) stringToNumberFn(id token.ID, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsString() {
		return value.Value{}, basicerr.New(basicerr.TypeMismatch)
	}
	s := args[0].StrVal()
	switch id {
	case token.LEN:
		return value.Num(float64(len(s))), nil
	case token.ASC:
		if s == "" {
			return value.Num(0), nil
		}
		return value.Num(float64(s[0])), nil
	case token.VAL:
		return value.Num(ParseLeadingNumber(s)), nil
	default:
		return value.Value{}, basicerr.New(basicerr.UndefFunction)
	}
}

// ParseLeadingNumber tolerantly parses the leading numeric substring of
// s, as VAL requires (base spec §4.3) and as READ coerces a non-numeric
// DATA item into a numeric target: stops at the first character that
// cannot extend a number, returning 0 if none parses. Grounded on
// original_source/20250905/utility_functions.c's string_to_number
// (strtod over the raw text, no error on a non-numeric prefix).
func ParseLeadingNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	sawDigit := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0
	}
	if i < len(s) && (s[i] == 'E' || s[i] == 'e') {
		save := i
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		} else {
			i = save
		}
	}
	_ = start
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return n
}

func (e *Evaluator) numberToStringFn(id token.ID, args []value.Value) (value.Value, error) {
	if err := wantNumeric(args, 1); err != nil {
		return value.Value{}, err
	}
	x := args[0].NumVal()
	switch id {
	case token.CHRS:
		n := int(x)
		if n < 0 || n > 255 {
			return value.Str(""), nil
		}
		return value.Str(string([]byte{byte(n)})), nil
	case token.STRS:
		s := value.FormatNumber(x)
		if x >= 0 && !strings.HasPrefix(s, "-") {
			s = " " + s
		}
		return value.Str(s), nil
	default:
		return value.Value{}, basicerr.New(basicerr.UndefFunction)
	}
}

func (e *Evaluator) substringFn(id token.ID, args []value.Value) (value.Value, error) {
	switch id {
	case token.LEFTS, token.RIGHTS:
		if len(args) != 2 || !args[0].IsString() || args[1].IsString() {
			return value.Value{}, basicerr.New(basicerr.TypeMismatch)
		}
		s := args[0].StrVal()
		n := clamp(int(args[1].NumVal()), 0, len(s))
		if id == token.LEFTS {
			return value.Str(s[:n]), nil
		}
		return value.Str(s[len(s)-n:]), nil
	case token.MIDS:
		if len(args) < 2 || len(args) > 3 || !args[0].IsString() {
			return value.Value{}, basicerr.New(basicerr.TypeMismatch)
		}
		s := args[0].StrVal()
		start := int(args[1].NumVal()) - 1 // 1-based per base spec §4.3
		if start < 0 {
			start = 0
		}
		if start > len(s) {
			start = len(s)
		}
		length := len(s) - start
		if len(args) == 3 {
			length = clamp(int(args[2].NumVal()), 0, len(s)-start)
		}
		return value.Str(s[start : start+length]), nil
	default:
		return value.Value{}, basicerr.New(basicerr.UndefFunction)
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func (e *Evaluator) peekFn(args []value.Value) (value.Value, error) {
	if err := wantNumeric(args, 1); err != nil {
		return value.Value{}, err
	}
	return value.Num(float64(e.ctx.Peek(int(args[0].NumVal())))), nil
}
