package interp

import (
	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/lexer"
	"github.com/go-msbasic/gobasic/internal/token"
)

// controlSignal is a non-error control-flow exit from a statement: STOP
// and END halt the runner without latching a basicerr.Error.
type controlSignal struct {
	stop bool // true for STOP (BREAK IN <line>, resumable by CONT); false for END
}

func (controlSignal) Error() string { return "control signal" }

// Runner drives a stored program, implementing the per-line resumption
// protocol of base spec §4.4 and the overall run loop of §4.6.
type Runner struct{}

// Drive starts ip's stored program at its first line. The caller (the
// RUN handler) is responsible for resetting variables/stacks and
// pre-scanning the DATA pool first.
func (r Runner) Drive(ip *Interpreter) error {
	first, ok := ip.Prog.First()
	if !ok {
		ip.Running = false
		ip.CurrentLine = NoCurrentLine
		return nil
	}
	ip.CurrentLine = first.Number
	ip.CurrentPos = 0
	ip.Running = true
	return r.resumeLoop(ip)
}

// Resume continues a program previously halted by STOP, from exactly
// where it left off (the CONT handler).
func (r Runner) Resume(ip *Interpreter) error {
	if ip.CurrentLine == NoCurrentLine {
		return basicerr.New(basicerr.CantContinue)
	}
	ip.Running = true
	return r.resumeLoop(ip)
}

func (r Runner) resumeLoop(ip *Interpreter) error {
	for ip.Running {
		line, ok := ip.Prog.Find(ip.CurrentLine)
		if !ok {
			errLine := ip.CurrentLine
			err := basicerr.New(basicerr.UndefStatement)
			ip.Running = false
			ip.Err = err
			ip.CurrentLine = NoCurrentLine
			ip.Out.Printf("%s\n", err.Report(errLine))
			return err
		}

		ip.jumped = false
		stoppedLine := ip.CurrentLine
		err := ip.runLineFrom(line.Text, line.Number, ip.CurrentPos)
		if err != nil {
			if sig, ok := err.(controlSignal); ok {
				ip.Running = false
				if sig.stop {
					ip.Out.Printf("BREAK IN %d\n", stoppedLine)
				} else {
					ip.CurrentLine = NoCurrentLine
				}
				return nil
			}
			ip.Running = false
			if be, ok := basicerr.As(err); ok {
				ip.Err = be
				ip.Out.Printf("%s\n", be.Report(stoppedLine))
			}
			ip.CurrentLine = NoCurrentLine
			return err
		}

		if ip.jumped {
			continue
		}
		next, ok := ip.Prog.Next(ip.CurrentLine)
		if !ok {
			ip.Running = false
			ip.CurrentLine = NoCurrentLine
			return nil
		}
		ip.CurrentLine = next.Number
		ip.CurrentPos = 0
	}
	return nil
}

// ScanData implements RUN's DATA pre-scan (base spec §7's open question,
// resolved in favor of the reference interpreter's documented
// preference): every DATA statement in the program is tokenized into
// the pool before line 1 executes, regardless of whether control ever
// reaches it.
func (ip *Interpreter) ScanData() {
	ip.Data.Reset()
	for _, line := range ip.Prog.Lines() {
		scanDataLine(ip, line.Text, line.Number)
	}
}

func scanDataLine(ip *Interpreter, text string, lineNumber int) {
	lx := lexer.New(text, lineNumber)
	for !lx.AtEOL() {
		tok := lx.Peek()
		if tok.Type == token.DELIM && tok.Literal == ":" {
			lx.Next()
			continue
		}
		if tok.Type == token.KEYWORD && tok.Kw == token.DATA {
			lx.Next()
			items, newPos := parseDataItems(text, lx.Pos())
			for _, item := range items {
				ip.Data.Append(item)
			}
			lx.SetPos(newPos)
			continue
		}
		skipToStatementEnd(lx)
	}
}

// skipToStatementEnd advances lx past everything up to the next ':' or
// end of line, without evaluating it: the DATA pre-scan only cares about
// literal DATA text, not the rest of the program's statements.
func skipToStatementEnd(lx *lexer.Lexer) {
	for !lx.AtEOL() {
		tok := lx.Peek()
		if tok.Type == token.DELIM && tok.Literal == ":" {
			return
		}
		lx.Next()
	}
}
