package interp

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	for _, line := range strings.Split(strings.TrimSpace(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		var n int
		for _, c := range line[:sp] {
			n = n*10 + int(c-'0')
		}
		ip.Prog.Put(n, strings.TrimSpace(line[sp+1:]))
	}
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	return out.String()
}

func TestPrintCommaZones(t *testing.T) {
	got := run(t, `
10 PRINT "A","B"
`)
	if got != "A             B\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintSemicolonSuppressesNewlineMidStatement(t *testing.T) {
	got := run(t, `
10 PRINT "A";
20 PRINT "B"
`)
	if got != "AB\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTabAndSpc(t *testing.T) {
	got := run(t, `
10 PRINT "A";TAB(5);"B";SPC(2);"C"
`)
	if got != "A    B  C\n" {
		t.Fatalf("got %q", got)
	}
}

func TestImplicitLetAndPrint(t *testing.T) {
	got := run(t, `
10 X = 41
20 X = X + 1
30 PRINT X
`)
	if got != "42\n" {
		t.Fatalf("got %q", got)
	}
}

func TestIfThenDiscardsRestOfLine(t *testing.T) {
	got := run(t, `
10 X = 0
20 IF X = 1 THEN PRINT "Y" : PRINT "Z"
30 PRINT "DONE"
`)
	if got != "DONE\n" {
		t.Fatalf("got %q", got)
	}
}

func TestIfThenTrueRunsStatement(t *testing.T) {
	got := run(t, `
10 IF 1 = 1 THEN PRINT "YES"
`)
	if got != "YES\n" {
		t.Fatalf("got %q", got)
	}
}

func TestIfThenLineNumber(t *testing.T) {
	got := run(t, `
10 IF 1 = 1 THEN 30
20 PRINT "SKIPPED"
30 PRINT "JUMPED"
`)
	if got != "JUMPED\n" {
		t.Fatalf("got %q", got)
	}
}

func TestGotoLoop(t *testing.T) {
	got := run(t, `
10 X = 0
20 X = X + 1
30 PRINT X
40 IF X < 3 THEN 20
`)
	if got != "1\n2\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestGosubReturn(t *testing.T) {
	got := run(t, `
10 GOSUB 100
20 PRINT "AFTER"
30 GOTO 9999
100 PRINT "IN SUB"
110 RETURN
9999 END
`)
	if got != "IN SUB\nAFTER\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForNextBasic(t *testing.T) {
	got := run(t, `
10 FOR I = 1 TO 3
20 PRINT I
30 NEXT I
`)
	if got != "1\n2\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForNextOutOfRangeSkipsBody(t *testing.T) {
	got := run(t, `
10 FOR I = 5 TO 1
20 PRINT "NEVER"
30 NEXT I
40 PRINT "AFTER"
`)
	if got != "AFTER\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForNextStep(t *testing.T) {
	got := run(t, `
10 FOR I = 10 TO 0 STEP -5
20 PRINT I
30 NEXT I
`)
	if got != "10\n5\n0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedForCommaNext(t *testing.T) {
	got := run(t, `
10 FOR I = 1 TO 2
20 FOR J = 1 TO 2
30 PRINT I*10+J
40 NEXT J,I
`)
	if got != "11\n12\n21\n22\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOnGoto(t *testing.T) {
	got := run(t, `
10 X = 2
20 ON X GOTO 100,200,300
30 PRINT "FALLTHROUGH"
100 PRINT "ONE"
110 GOTO 9999
200 PRINT "TWO"
210 GOTO 9999
300 PRINT "THREE"
9999 END
`)
	if got != "TWO\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOnGotoOutOfRangeFallsThrough(t *testing.T) {
	got := run(t, `
10 X = 9
20 ON X GOTO 100,200
30 PRINT "FELLTHROUGH"
100 END
200 END
`)
	if got != "FELLTHROUGH\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDimDataReadRestore(t *testing.T) {
	got := run(t, `
10 DIM A(3)
20 DATA 10,20,30
30 FOR I = 0 TO 2
40 READ A(I)
50 NEXT I
60 PRINT A(0);" ";A(1);" ";A(2)
70 RESTORE
80 READ X
90 PRINT X
`)
	if got != "10 20 30\n10\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadStringData(t *testing.T) {
	got := run(t, `
10 DATA "HELLO",5
20 READ N$
30 READ X
40 PRINT N$;X
`)
	if got != "HELLO5\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPokeAndPeekViaExpression(t *testing.T) {
	got := run(t, `
10 POKE 100,200
20 PRINT PEEK(100)
`)
	if got != "200\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStopAndCont(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	ip.Prog.Put(10, `PRINT "BEFORE"`)
	ip.Prog.Put(20, "STOP")
	ip.Prog.Put(30, `PRINT "AFTER"`)
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	if !strings.Contains(out.String(), "BEFORE") || !strings.Contains(out.String(), "BREAK IN 20") {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	_ = ip.RunImmediate("CONT")
	if out.String() != "AFTER\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestEndHaltsSilently(t *testing.T) {
	got := run(t, `
10 PRINT "A"
20 END
30 PRINT "B"
`)
	if got != "A\n" {
		t.Fatalf("got %q", got)
	}
}

func TestClearResetsVarsKeepsProgram(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	ip.Prog.Put(10, "X = 5")
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	_ = ip.RunImmediate("CLEAR")
	if got := ip.Vars.Get("X").NumVal(); got != 0 {
		t.Fatalf("got %v, want 0 after CLEAR", got)
	}
	if len(ip.Prog.Lines()) != 1 {
		t.Fatal("expected program to survive CLEAR")
	}
}

func TestNewResetsEverything(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	ip.Prog.Put(10, "X = 5")
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	_ = ip.RunImmediate("NEW")
	if len(ip.Prog.Lines()) != 0 {
		t.Fatal("expected program to be gone after NEW")
	}
}

func TestImmediateGotoEntersStoredProgram(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	ip.Prog.Put(100, `PRINT "HIT"`)
	ip.ScanData()
	if err := ip.RunImmediate("GOTO 100"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "HIT\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestInputReadsFromReader(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader("7\n"))
	ip.Prog.Put(10, "INPUT X")
	ip.Prog.Put(20, "PRINT X+1")
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	if !strings.Contains(out.String(), "8") {
		t.Fatalf("got %q", out.String())
	}
}

// TestInputMultiVariableOneLine exercises the base spec's "one line per
// INPUT statement" contract: INPUT X,Y must read a single line and
// split it, not read twice.
func TestInputMultiVariableOneLine(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader("3,4\n"))
	ip.Prog.Put(10, "INPUT X,Y")
	ip.Prog.Put(20, "PRINT X+Y")
	ip.ScanData()
	if err := (Runner{}).Drive(ip); err != nil {
		t.Fatalf("drive: %v", err)
	}
	if !strings.Contains(out.String(), "7") {
		t.Fatalf("got %q", out.String())
	}
}

// TestInputQuotedFieldWithEmbeddedComma checks the quote-aware field
// splitter: a quoted field may contain a literal comma, and a doubled
// quote inside one collapses to a literal quote.
func TestInputQuotedFieldWithEmbeddedComma(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(`"HI, ""THERE""",5`+"\n"))
	ip.Prog.Put(10, "INPUT A$,B")
	ip.Prog.Put(20, `PRINT A$`)
	ip.Prog.Put(30, "PRINT B+1")
	ip.ScanData()
	if err := (Runner{}).Drive(ip); err != nil {
		t.Fatalf("drive: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `HI, "THERE"`) {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "6") {
		t.Fatalf("got %q", got)
	}
}

// TestInputRedoFromStartOnTypeMismatch checks that a field which can't
// parse as the target's numeric type prints "?Redo from start" and
// reprompts the whole statement, rather than raising a latched runtime
// error or accepting a partial assignment.
func TestInputRedoFromStartOnTypeMismatch(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader("ABC\n3\n"))
	ip.Prog.Put(10, "INPUT X")
	ip.Prog.Put(20, "PRINT X+1")
	ip.ScanData()
	if err := (Runner{}).Drive(ip); err != nil {
		t.Fatalf("drive: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "?Redo from start") {
		t.Fatalf("missing redo prompt: %q", got)
	}
	if !strings.Contains(got, "4") {
		t.Fatalf("got %q", got)
	}
}

// TestInputCustomPromptSeparators checks the two prompt forms base spec
// §4.5 distinguishes: a comma separator appends "? " after the custom
// text, a semicolon separator prints the text as-is.
func TestInputCustomPromptSeparators(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader("1\n"))
	ip.Prog.Put(10, `INPUT "N", X`)
	ip.ScanData()
	if err := (Runner{}).Drive(ip); err != nil {
		t.Fatalf("drive: %v", err)
	}
	if got := out.String(); got != "N? " {
		t.Fatalf("got %q", got)
	}

	out.Reset()
	ip2 := New(&out, strings.NewReader("1\n"))
	ip2.Prog.Put(10, `INPUT "N"; X`)
	ip2.ScanData()
	if err := (Runner{}).Drive(ip2); err != nil {
		t.Fatalf("drive: %v", err)
	}
	if got := out.String(); got != "N" {
		t.Fatalf("got %q", got)
	}
}

func TestDivisionByZeroReportsErrorInLine(t *testing.T) {
	got := run(t, `
10 PRINT 1/0
`)
	if !strings.Contains(got, "?DIVISION BY ZERO ERROR IN 10") {
		t.Fatalf("got %q", got)
	}
}

func TestUndefinedStatementError(t *testing.T) {
	got := run(t, `
10 GOTO 999
`)
	if !strings.Contains(got, "?UNDEFINED STATEMENT ERROR") {
		t.Fatalf("got %q", got)
	}
}

func TestReturnWithoutGosub(t *testing.T) {
	got := run(t, `
10 RETURN
`)
	if !strings.Contains(got, "?RETURN WITHOUT GOSUB ERROR IN 10") {
		t.Fatalf("got %q", got)
	}
}

func TestRunStatementRestartsProgram(t *testing.T) {
	var out bytes.Buffer
	ip := New(&out, strings.NewReader(""))
	ip.Prog.Put(10, "X = 1")
	ip.Prog.Put(20, "PRINT X")
	ip.ScanData()
	_ = (Runner{}).Drive(ip)
	out.Reset()
	if err := ip.RunImmediate("RUN"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q", out.String())
	}
}
