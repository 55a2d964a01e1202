package interp

import (
	"strconv"
	"strings"

	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/data"
	"github.com/go-msbasic/gobasic/internal/eval"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/token"
	"github.com/go-msbasic/gobasic/internal/value"
	"github.com/go-msbasic/gobasic/internal/vars"
)

// stmtDim implements DIM var(d1,...) [,var(d1,...)]... (base spec §3,
// §4.5). Re-DIM of an existing array is rejected by vars.Store.Dim.
func (ip *Interpreter) stmtDim(lx *lexer.Lexer, lineNumber int) error {
	for {
		nameTok := lx.Next()
		if nameTok.Type != token.VARIABLE {
			return basicerr.New(basicerr.Syntax)
		}
		open := lx.Next()
		if open.Type != token.DELIM || open.Literal != "(" {
			return basicerr.New(basicerr.Syntax)
		}

		var dims []int
		for {
			v, err := ip.evalExpr(lx)
			if err != nil {
				return err
			}
			if v.IsString() {
				return basicerr.New(basicerr.TypeMismatch)
			}
			dims = append(dims, int(v.NumVal()))
			t := lx.Next()
			if t.Type == token.DELIM && t.Literal == "," {
				continue
			}
			if t.Type == token.DELIM && t.Literal == ")" {
				break
			}
			return basicerr.New(basicerr.Syntax)
		}
		if len(dims) > 8 {
			return basicerr.New(basicerr.IllegalQuantity)
		}
		if err := ip.Vars.Dim(nameTok.Literal, dims); err != nil {
			return err
		}

		next := lx.Peek()
		if next.Type == token.DELIM && next.Literal == "," {
			lx.Next()
			continue
		}
		return nil
	}
}

// stmtData is a no-op at execution time: the RUN handler pre-scans every
// DATA statement into the pool before line 1 runs, so reaching one
// during normal dispatch only needs to skip its literal text.
func (ip *Interpreter) stmtData(lx *lexer.Lexer, lineNumber int) error {
	_, newPos := parseDataItems(lx.Text(), lx.Pos())
	lx.SetPos(newPos)
	return nil
}

// parseDataItems scans comma-separated DATA literals starting at
// text[pos:] up to the next unquoted ':' or end of line. DATA items are
// raw text, not expressions (base spec §4.5): a quoted string keeps its
// contents, anything else is kept verbatim and only coerced to a number
// by READ, if the target variable is numeric.
func parseDataItems(text string, pos int) ([]data.Item, int) {
	var items []data.Item
	i, n := pos, len(text)
	for {
		for i < n && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i >= n || text[i] == ':' {
			break
		}

		var raw string
		if text[i] == '"' {
			i++
			start := i
			for i < n && text[i] != '"' {
				i++
			}
			raw = text[start:i]
			if i < n {
				i++
			}
		} else {
			start := i
			for i < n && text[i] != ',' && text[i] != ':' {
				i++
			}
			raw = strings.TrimRight(text[start:i], " \t")
		}
		items = append(items, makeDataItem(raw))

		for i < n && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i < n && text[i] == ',' {
			i++
			continue
		}
		break
	}
	return items, i
}

func makeDataItem(raw string) data.Item {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return data.Item{Num: n, Raw: raw}
	}
	return data.Item{IsString: true, Str: raw, Raw: raw}
}

// stmtRead implements READ var[,var...] (base spec §4.5).
func (ip *Interpreter) stmtRead(lx *lexer.Lexer, lineNumber int) error {
	for {
		name, indices, isArray, err := ip.parseLValue(lx)
		if err != nil {
			return err
		}
		item, err := ip.Data.Next()
		if err != nil {
			return err
		}
		v, err := itemToValue(name, item)
		if err != nil {
			return err
		}
		if err := ip.setLValue(name, indices, isArray, v); err != nil {
			return err
		}

		next := lx.Peek()
		if next.Type == token.DELIM && next.Literal == "," {
			lx.Next()
			continue
		}
		return nil
	}
}

// itemToValue coerces a DATA item to the target variable's type. A
// numeric target never errors on a non-numeric-shaped item: it
// tolerantly parses the item's raw text and falls back to 0, the same
// coercion eval.ParseLeadingNumber gives VAL(), grounded on
// original_source/20250905/utility_functions.c's string_to_number (used
// by cmd_read in arrays_and_data.c:354 for exactly this assignment).
func itemToValue(name string, item data.Item) (value.Value, error) {
	if vars.IsStringName(name) {
		return value.Str(item.Raw), nil
	}
	if item.IsString {
		return value.Num(eval.ParseLeadingNumber(item.Raw)), nil
	}
	return value.Num(item.Num), nil
}

// stmtRestore implements RESTORE, rewinding the DATA pool's read cursor
// to the start (base spec §4.5).
func (ip *Interpreter) stmtRestore(lx *lexer.Lexer, lineNumber int) error {
	ip.Data.Restore()
	return nil
}

// inputTarget is one lvalue named by an INPUT statement's variable list.
type inputTarget struct {
	name    string
	indices []int
	isArray bool
}

// stmtInput implements INPUT ["prompt"{;|,}] var[,var...] (base spec
// §4.5), grounded on original_source/input_ex.c's cmd_input_ex: the
// whole statement reads a single line, splits it into comma-separated
// fields with quote-aware parsing (parseInputFields, a port of
// input_ex.c's parse_field_quoted), and assigns every field to every
// target in one shot. Any field that doesn't fit its target — a
// numeric variable paired with a non-numeric field, including a field
// missing outright — discards the whole attempt, prints "?Redo from
// start", and reprompts the entire statement rather than accepting a
// partial line.
func (ip *Interpreter) stmtInput(lx *lexer.Lexer, lineNumber int) error {
	prompt := ""
	promptWithQuestion := false
	save := lx.Pos()
	if tok := lx.Peek(); tok.Type == token.STRING {
		lx.Next()
		sep := lx.Peek()
		if sep.Type == token.DELIM && (sep.Literal == ";" || sep.Literal == ",") {
			lx.Next()
			prompt = tok.Literal
			promptWithQuestion = sep.Literal == ","
		} else {
			lx.SetPos(save)
		}
	}

	var targets []inputTarget
	for {
		name, indices, isArray, err := ip.parseLValue(lx)
		if err != nil {
			return err
		}
		targets = append(targets, inputTarget{name, indices, isArray})
		next := lx.Peek()
		if next.Type == token.DELIM && next.Literal == "," {
			lx.Next()
			continue
		}
		break
	}

	for {
		switch {
		case prompt != "" && promptWithQuestion:
			ip.Out.Printf("%s? ", prompt)
		case prompt != "":
			ip.Out.WriteString(prompt)
		default:
			ip.Out.WriteString("? ")
		}

		line, rerr := ip.In.ReadString('\n')
		if rerr != nil && line == "" {
			return basicerr.New(basicerr.Syntax)
		}
		line = strings.TrimRight(line, "\r\n")
		fields := parseInputFields(line)

		values := make([]value.Value, len(targets))
		redo := false
		for i, tgt := range targets {
			field := ""
			if i < len(fields) {
				field = fields[i]
			}
			v, ok := parseInputField(tgt.name, field)
			if !ok {
				redo = true
				break
			}
			values[i] = v
		}
		if redo {
			ip.Out.WriteString("?Redo from start\n")
			continue
		}

		for i, tgt := range targets {
			if err := ip.setLValue(tgt.name, tgt.indices, tgt.isArray, values[i]); err != nil {
				return err
			}
		}
		return nil
	}
}

// parseInputFields splits one line of INPUT response text into fields.
// Ported from original_source/input_ex.c's parse_field_quoted: a quoted
// field runs to the next unescaped '"' and may contain commas
// verbatim, with "" inside the quotes collapsing to a literal quote; an
// unquoted field runs to the next comma with surrounding whitespace
// trimmed.
func parseInputFields(line string) []string {
	var fields []string
	i, n := 0, len(line)
	for {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i < n && line[i] == '"' {
			i++
			var sb strings.Builder
			for i < n {
				if line[i] == '"' {
					if i+1 < n && line[i+1] == '"' {
						sb.WriteByte('"')
						i += 2
						continue
					}
					i++
					break
				}
				sb.WriteByte(line[i])
				i++
			}
			fields = append(fields, sb.String())
			for i < n && (line[i] == ' ' || line[i] == '\t') {
				i++
			}
		} else {
			start := i
			for i < n && line[i] != ',' {
				i++
			}
			fields = append(fields, strings.TrimRight(line[start:i], " \t"))
		}
		if i < n && line[i] == ',' {
			i++
			continue
		}
		break
	}
	return fields
}

// parseInputField validates one INPUT field against its target's type.
// A string target accepts any field, including an empty one. A numeric
// target requires the whole field to parse as a number (unlike VAL(),
// which tolerates trailing garbage); a missing or non-numeric field
// fails and triggers the statement's "Redo from start" retry.
func parseInputField(name, field string) (value.Value, bool) {
	if vars.IsStringName(name) {
		return value.Str(field), true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return value.Value{}, false
	}
	return value.Num(n), true
}

// stmtGet implements GET var (base spec §4.5): reads a single byte
// without waiting for a newline. At end of input, reads as "" or 0
// rather than erroring.
func (ip *Interpreter) stmtGet(lx *lexer.Lexer, lineNumber int) error {
	name, indices, isArray, err := ip.parseLValue(lx)
	if err != nil {
		return err
	}
	b, rerr := ip.In.ReadByte()

	var v value.Value
	switch {
	case rerr != nil:
		if vars.IsStringName(name) {
			v = value.Str("")
		} else {
			v = value.Num(0)
		}
	case vars.IsStringName(name):
		v = value.Str(string([]byte{b}))
	default:
		v = value.Num(float64(b))
	}
	return ip.setLValue(name, indices, isArray, v)
}

// stmtPoke implements POKE addr, value (base spec §4.3).
func (ip *Interpreter) stmtPoke(lx *lexer.Lexer, lineNumber int) error {
	addr, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	if c := lx.Next(); c.Type != token.DELIM || c.Literal != "," {
		return basicerr.New(basicerr.Syntax)
	}
	val, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	if addr.IsString() || val.IsString() {
		return basicerr.New(basicerr.TypeMismatch)
	}
	ip.Mem.Poke(int(addr.NumVal()), int(val.NumVal()))
	return nil
}

// stmtWait implements WAIT addr, mask[, xor] (base spec §4.3). The
// reference machine blocks until an external device changes the polled
// byte; this interpreter has no such device, so WAIT evaluates its
// condition once for its side effect on parsing and returns immediately
// rather than spinning forever.
func (ip *Interpreter) stmtWait(lx *lexer.Lexer, lineNumber int) error {
	addr, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	if c := lx.Next(); c.Type != token.DELIM || c.Literal != "," {
		return basicerr.New(basicerr.Syntax)
	}
	mask, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	xorVal := 0.0
	save := lx.Pos()
	if tok := lx.Peek(); tok.Type == token.DELIM && tok.Literal == "," {
		lx.Next()
		v, err := ip.evalExpr(lx)
		if err != nil {
			return err
		}
		xorVal = v.NumVal()
	} else {
		lx.SetPos(save)
	}
	ip.Mem.Wait(int(addr.NumVal()), int(mask.NumVal()), int(xorVal))
	return nil
}
