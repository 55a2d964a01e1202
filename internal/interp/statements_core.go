package interp

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/program"
	"github.com/go-msbasic/gobasic/internal/token"
	"github.com/go-msbasic/gobasic/internal/value"
)

// stmtLet handles the explicit form: LET var = expr, or var(i,...) = expr
// (base spec §4.5).
func (ip *Interpreter) stmtLet(lx *lexer.Lexer, lineNumber int) error {
	name, indices, isArray, err := ip.parseLValue(lx)
	if err != nil {
		return err
	}
	return ip.finishAssignment(lx, name, indices, isArray)
}

// handleImplicitLet handles a statement that opens with a bare variable
// name rather than the LET keyword (base spec §4.4: "a variable name
// also dispatches, as an implicit LET").
func (ip *Interpreter) handleImplicitLet(lx *lexer.Lexer, lineNumber int, varName string) error {
	var indices []int
	isArray := false

	save := lx.Pos()
	next := lx.Next()
	if next.Type == token.DELIM && next.Literal == "(" {
		isArray = true
		var err error
		indices, err = ip.parseSubscripts(lx)
		if err != nil {
			return err
		}
	} else {
		lx.SetPos(save)
	}
	return ip.finishAssignment(lx, varName, indices, isArray)
}

func (ip *Interpreter) finishAssignment(lx *lexer.Lexer, name string, indices []int, isArray bool) error {
	eq := lx.Next()
	if eq.Type != token.OPERATOR || eq.Literal != "=" {
		return basicerr.New(basicerr.Syntax)
	}
	v, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	return ip.setLValue(name, indices, isArray, v)
}

// stmtPrint handles PRINT's comma/semicolon zone formatting and the
// TAB(n)/SPC(n) pseudo-items (base spec §4.5).
func (ip *Interpreter) stmtPrint(lx *lexer.Lexer, lineNumber int) error {
	trailingSep := true
	for !lx.AtEOL() {
		tok := lx.Peek()
		if tok.Type == token.DELIM && tok.Literal == ":" {
			break
		}
		switch {
		case tok.Type == token.DELIM && tok.Literal == ";":
			lx.Next()
			trailingSep = true
			continue
		case tok.Type == token.DELIM && tok.Literal == ",":
			lx.Next()
			ip.Out.PadToColumn(nextPrintZone(ip.Out.col))
			trailingSep = true
			continue
		case tok.Type == token.KEYWORD && tok.Kw == token.TAB:
			lx.Next()
			if err := ip.printTab(lx); err != nil {
				return err
			}
			trailingSep = false
			continue
		case tok.Type == token.KEYWORD && tok.Kw == token.SPC:
			lx.Next()
			if err := ip.printSpc(lx); err != nil {
				return err
			}
			trailingSep = false
			continue
		}

		v, err := ip.evalExpr(lx)
		if err != nil {
			return err
		}
		ip.Out.WriteString(v.Format())
		trailingSep = false
	}
	if !trailingSep {
		ip.Out.WriteString("\n")
	}
	return nil
}

// nextPrintZone rounds col up to the next 14-column print zone boundary,
// the classic Microsoft BASIC comma-separator width.
func nextPrintZone(col int) int {
	const zoneWidth = 14
	return ((col / zoneWidth) + 1) * zoneWidth
}

func (ip *Interpreter) printTab(lx *lexer.Lexer) error {
	n, err := ip.evalParenArg(lx)
	if err != nil {
		return err
	}
	ip.Out.PadToColumn(int(n.NumVal()))
	return nil
}

func (ip *Interpreter) printSpc(lx *lexer.Lexer) error {
	n, err := ip.evalParenArg(lx)
	if err != nil {
		return err
	}
	for i := 0; i < int(n.NumVal()); i++ {
		ip.Out.WriteString(" ")
	}
	return nil
}

// evalParenArg parses "(expr)" as used by TAB and SPC.
func (ip *Interpreter) evalParenArg(lx *lexer.Lexer) (value.Value, error) {
	open := lx.Next()
	if open.Type != token.DELIM || open.Literal != "(" {
		return value.Value{}, basicerr.New(basicerr.Syntax)
	}
	v, err := ip.evalExpr(lx)
	if err != nil {
		return value.Value{}, err
	}
	close := lx.Next()
	if close.Type != token.DELIM || close.Literal != ")" {
		return value.Value{}, basicerr.New(basicerr.Syntax)
	}
	return v, nil
}

// stmtIf implements IF <expr> THEN <stmt-or-linenumber> (base spec
// §4.5). A false condition discards the remainder of the physical
// line, per the worked example in base spec §8 (not just up to the
// next ':', despite §4.5's looser wording).
func (ip *Interpreter) stmtIf(lx *lexer.Lexer, lineNumber int) error {
	cond, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	then := lx.Next()
	if then.Type != token.KEYWORD || then.Kw != token.THEN {
		return basicerr.New(basicerr.Syntax)
	}
	if !cond.Truthy() {
		lx.SetPos(len(lx.Text()))
		return nil
	}

	save := lx.Pos()
	tok := lx.Peek()
	if tok.Type == token.NUMBER {
		lx.Next()
		return ip.jumpToLineStart(int(tok.Num))
	}
	lx.SetPos(save)
	return ip.dispatchStatement(lx, lineNumber)
}

// stmtGoto implements GOTO <expr> (base spec §4.5).
func (ip *Interpreter) stmtGoto(lx *lexer.Lexer, lineNumber int) error {
	v, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	return ip.jumpToLineStart(int(v.NumVal()))
}

// stmtGosub implements GOSUB <expr>, pushing a resumption frame before
// jumping (base spec §3, §4.5).
func (ip *Interpreter) stmtGosub(lx *lexer.Lexer, lineNumber int) error {
	v, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	ip.Stacks.PushGosub(program.GosubFrame{Line: lineNumber, Pos: lx.Pos()})
	return ip.jumpToLineStart(int(v.NumVal()))
}

// stmtReturn implements RETURN (base spec §4.5).
func (ip *Interpreter) stmtReturn(lx *lexer.Lexer, lineNumber int) error {
	frame, err := ip.Stacks.PopGosub()
	if err != nil {
		return err
	}
	ip.jumpTo(frame.Line, frame.Pos)
	return nil
}

// stmtFor implements FOR var = start TO limit [STEP step] (base spec
// §4.5). A loop whose initial value is already out of range never
// executes its body: control skips straight to the statement after the
// matching NEXT.
func (ip *Interpreter) stmtFor(lx *lexer.Lexer, lineNumber int) error {
	nameTok := lx.Next()
	if nameTok.Type != token.VARIABLE {
		return basicerr.New(basicerr.Syntax)
	}
	eq := lx.Next()
	if eq.Type != token.OPERATOR || eq.Literal != "=" {
		return basicerr.New(basicerr.Syntax)
	}
	start, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	if err := ip.Vars.Set(nameTok.Literal, start); err != nil {
		return err
	}

	toTok := lx.Next()
	if toTok.Type != token.KEYWORD || toTok.Kw != token.TO {
		return basicerr.New(basicerr.Syntax)
	}
	limit, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}

	step := 1.0
	save := lx.Pos()
	tok := lx.Peek()
	if tok.Type == token.KEYWORD && tok.Kw == token.STEP {
		lx.Next()
		sv, err := ip.evalExpr(lx)
		if err != nil {
			return err
		}
		step = sv.NumVal()
	} else {
		lx.SetPos(save)
	}

	frame := program.ForFrame{
		Var:   nameTok.Literal,
		Limit: limit.NumVal(),
		Step:  step,
		Line:  lineNumber,
		Pos:   lx.Pos(),
	}
	if !forInRange(start.NumVal(), frame.Limit, frame.Step) {
		return ip.skipForBody(lx, nameTok.Literal)
	}
	ip.Stacks.PushFor(frame)
	return nil
}

func forInRange(v, limit, step float64) bool {
	if step >= 0 {
		return v <= limit
	}
	return v >= limit
}

// skipForBody locates the NEXT matching a FOR whose body never runs,
// tracking nested FOR/NEXT depth so an inner loop's NEXT is not mistaken
// for the outer one, and resumes just past it.
func (ip *Interpreter) skipForBody(lx *lexer.Lexer, forVar string) error {
	_ = forVar
	lineNumber := ip.CurrentLine
	text := lx.Text()
	pos := lx.Pos()
	depth := 0

	for {
		scan := lexer.NewAt(text, lineNumber, pos)
		for !scan.AtEOL() {
			tok := scan.Next()
			if tok.Type != token.KEYWORD {
				continue
			}
			switch tok.Kw {
			case token.FOR:
				depth++
			case token.NEXT:
				if depth > 0 {
					depth--
					continue
				}
				if peek := scan.Peek(); peek.Type == token.VARIABLE {
					scan.Next()
				}
				ip.jumpTo(lineNumber, scan.Pos())
				return nil
			}
		}
		next, ok := ip.Prog.Next(lineNumber)
		if !ok {
			return basicerr.New(basicerr.NextWithoutFor)
		}
		lineNumber = next.Number
		text = next.Text
		pos = 0
	}
}

// stmtNext implements NEXT [var[,var...]] (base spec §4.5): advances the
// matching FOR frame's loop variable by its step and either jumps back
// into the loop body or falls through, continuing to the next listed
// variable only if the previous one fell through.
func (ip *Interpreter) stmtNext(lx *lexer.Lexer, lineNumber int) error {
	for {
		varName := ""
		save := lx.Pos()
		tok := lx.Peek()
		if tok.Type == token.VARIABLE {
			lx.Next()
			varName = tok.Literal
		} else {
			lx.SetPos(save)
		}

		if err := ip.advanceFor(varName); err != nil {
			return err
		}
		if ip.jumped {
			return nil
		}

		comma := lx.Peek()
		if comma.Type == token.DELIM && comma.Literal == "," {
			lx.Next()
			continue
		}
		return nil
	}
}

func (ip *Interpreter) advanceFor(varName string) error {
	frame, ok := ip.Stacks.FindFor(varName)
	if !ok {
		return basicerr.New(basicerr.NextWithoutFor)
	}
	cur := ip.Vars.Get(frame.Var).NumVal() + frame.Step
	if err := ip.Vars.Set(frame.Var, value.Num(cur)); err != nil {
		return err
	}
	if forInRange(cur, frame.Limit, frame.Step) {
		ip.Stacks.RepushFor(frame)
		ip.jumpTo(frame.Line, frame.Pos)
	}
	return nil
}

// stmtOn implements ON <expr> GOTO/GOSUB l1,l2,... (base spec §4.5). A
// selector outside the target list's range falls through to the next
// statement rather than erroring (classic Microsoft BASIC behavior).
func (ip *Interpreter) stmtOn(lx *lexer.Lexer, lineNumber int) error {
	v, err := ip.evalExpr(lx)
	if err != nil {
		return err
	}
	action := lx.Next()
	if action.Type != token.KEYWORD || (action.Kw != token.GOTO && action.Kw != token.GOSUB) {
		return basicerr.New(basicerr.Syntax)
	}

	var targets []int
	for {
		t, err := ip.evalExpr(lx)
		if err != nil {
			return err
		}
		targets = append(targets, int(t.NumVal()))
		comma := lx.Peek()
		if comma.Type == token.DELIM && comma.Literal == "," {
			lx.Next()
			continue
		}
		break
	}

	n := int(v.NumVal())
	if n < 1 || n > len(targets) {
		return nil
	}
	target := targets[n-1]
	if action.Kw == token.GOSUB {
		ip.Stacks.PushGosub(program.GosubFrame{Line: lineNumber, Pos: lx.Pos()})
	}
	return ip.jumpToLineStart(target)
}
