package interp

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/token"
)

// runLineFrom executes one program line starting at byte offset pos,
// implementing base spec §4.4's per-line loop: consume the next token;
// if it's a keyword naming a statement, dispatch to its handler; if
// it's a variable, treat as an implicit LET; if it's ':', consume and
// continue; at EOL stop.
func (ip *Interpreter) runLineFrom(text string, lineNumber, pos int) error {
	lx := lexer.NewAt(text, lineNumber, pos)
	for {
		if lx.AtEOL() {
			return nil
		}
		tok := lx.Peek()
		if tok.Type == token.DELIM && tok.Literal == ":" {
			lx.Next()
			continue
		}

		ip.jumped = false
		if err := ip.dispatchStatement(lx, lineNumber); err != nil {
			return err
		}
		if ip.jumped {
			// Resumption protocol (base spec §4.4): the handler moved
			// CurrentLine/CurrentPos; the runner re-enters there rather
			// than continuing this line.
			return nil
		}
	}
}

// dispatchStatement consumes and executes exactly one statement at the
// lexer's current position.
func (ip *Interpreter) dispatchStatement(lx *lexer.Lexer, lineNumber int) error {
	tok := lx.Next()

	switch tok.Type {
	case token.VARIABLE:
		return ip.handleImplicitLet(lx, lineNumber, tok.Literal)
	case token.KEYWORD:
		return ip.dispatchKeyword(lx, lineNumber, tok.Kw)
	case token.EOL:
		return nil
	default:
		return basicerr.New(basicerr.Syntax)
	}
}

// dispatchKeyword routes a leading statement keyword to its handler
// (base spec §4.4-§4.5).
func (ip *Interpreter) dispatchKeyword(lx *lexer.Lexer, lineNumber int, kw token.ID) error {
	switch kw {
	case token.PRINT:
		return ip.stmtPrint(lx, lineNumber)
	case token.LET:
		return ip.stmtLet(lx, lineNumber)
	case token.IF:
		return ip.stmtIf(lx, lineNumber)
	case token.GOTO:
		return ip.stmtGoto(lx, lineNumber)
	case token.GOSUB:
		return ip.stmtGosub(lx, lineNumber)
	case token.RETURN:
		return ip.stmtReturn(lx, lineNumber)
	case token.FOR:
		return ip.stmtFor(lx, lineNumber)
	case token.NEXT:
		return ip.stmtNext(lx, lineNumber)
	case token.ON:
		return ip.stmtOn(lx, lineNumber)
	case token.DIM:
		return ip.stmtDim(lx, lineNumber)
	case token.DATA:
		return ip.stmtData(lx, lineNumber)
	case token.READ:
		return ip.stmtRead(lx, lineNumber)
	case token.RESTORE:
		return ip.stmtRestore(lx, lineNumber)
	case token.INPUT:
		return ip.stmtInput(lx, lineNumber)
	case token.GET:
		return ip.stmtGet(lx, lineNumber)
	case token.POKE:
		return ip.stmtPoke(lx, lineNumber)
	case token.WAIT:
		return ip.stmtWait(lx, lineNumber)
	case token.REM:
		return ip.stmtRem(lx, lineNumber)
	case token.STOP:
		return ip.stmtStop(lx, lineNumber)
	case token.END:
		return ip.stmtEnd(lx, lineNumber)
	case token.CONT:
		return ip.stmtCont(lx, lineNumber)
	case token.CLEAR:
		return ip.stmtClear(lx, lineNumber)
	case token.NEW:
		return ip.stmtNew(lx, lineNumber)
	case token.LIST:
		return ip.stmtList(lx, lineNumber)
	case token.RUN:
		return ip.stmtRun(lx, lineNumber)
	default:
		// Reserved-but-unimplemented keywords (LOAD/SAVE/DEF/USR) report
		// undefined statement, matching original_source/system_functions.c's
		// cmd_def precedent (ERR_UNDEF_STATEMENT), not a syntax error.
		return basicerr.New(basicerr.UndefStatement)
	}
}
