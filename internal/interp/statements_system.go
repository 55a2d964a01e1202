package interp

import "github.com/go-msbasic/gobasic/internal/lexer"

// stmtRem implements REM: discard the rest of the physical line.
func (ip *Interpreter) stmtRem(lx *lexer.Lexer, lineNumber int) error {
	lx.SetPos(len(lx.Text()))
	return nil
}

// stmtStop implements STOP (base spec §4.5): halts the program, prints
// "BREAK IN <line>", and leaves enough state for CONT to resume.
func (ip *Interpreter) stmtStop(lx *lexer.Lexer, lineNumber int) error {
	ip.CurrentPos = lx.Pos()
	return controlSignal{stop: true}
}

// stmtEnd implements END (base spec §4.5): halts the program silently.
func (ip *Interpreter) stmtEnd(lx *lexer.Lexer, lineNumber int) error {
	ip.CurrentPos = lx.Pos()
	return controlSignal{stop: false}
}

// stmtCont implements CONT: resumes a program halted by STOP from
// exactly where it left off (base spec §4.5).
func (ip *Interpreter) stmtCont(lx *lexer.Lexer, lineNumber int) error {
	ip.jumped = true
	return (Runner{}).Resume(ip)
}

// stmtClear implements CLEAR (base spec §4.5): resets variables, the
// DATA pool, and the FOR/GOSUB stacks. Virtual memory and the stored
// program survive.
func (ip *Interpreter) stmtClear(lx *lexer.Lexer, lineNumber int) error {
	ip.Vars.Reset()
	ip.Data.Reset()
	ip.Stacks.Reset()
	return nil
}

// stmtNew implements NEW (base spec §4.5): like CLEAR, but also discards
// the stored program. Virtual memory survives.
func (ip *Interpreter) stmtNew(lx *lexer.Lexer, lineNumber int) error {
	ip.Prog.Reset()
	ip.Vars.Reset()
	ip.Data.Reset()
	ip.Stacks.Reset()
	ip.CurrentLine = NoCurrentLine
	ip.Running = false
	return nil
}

// stmtList implements LIST: print every stored line in order.
func (ip *Interpreter) stmtList(lx *lexer.Lexer, lineNumber int) error {
	for _, line := range ip.Prog.Lines() {
		ip.Out.Printf("%d %s\n", line.Number, line.Text)
	}
	return nil
}

// stmtRun implements RUN (base spec §4.5, §4.6): resets variables and
// control-flow stacks, pre-scans the DATA pool, and drives the stored
// program from its first line.
func (ip *Interpreter) stmtRun(lx *lexer.Lexer, lineNumber int) error {
	ip.Vars.Reset()
	ip.Stacks.Reset()
	ip.Err = nil
	ip.ScanData()
	(Runner{}).Drive(ip)
	// RUN always ends the calling line, however Drive left CurrentLine:
	// at a STOP point (CONT-able), or at NoCurrentLine after END, an
	// error, or falling off the end. From immediate mode a STOP point is
	// not flagged as a jump, so RunImmediate leaves it halted for CONT.
	lx.SetPos(len(lx.Text()))
	ip.jumped = lineNumber != NoCurrentLine || ip.CurrentLine == NoCurrentLine
	return nil
}
