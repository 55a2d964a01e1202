package basicerr

import (
	"strings"
	"testing"
)

func TestReportImmediateMode(t *testing.T) {
	err := New(Syntax)
	got := err.Report(-1)
	if got != "?SYNTAX ERROR" {
		t.Fatalf("got %q", got)
	}
}

func TestReportProgramMode(t *testing.T) {
	err := New(DivisionByZero)
	got := err.Report(100)
	if got != "?DIVISION BY ZERO ERROR IN 100" {
		t.Fatalf("got %q", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(UndefFunction, "FOO at line %d", 5)
	if !strings.Contains(err.Error(), "UNDEFINED FUNCTION") {
		t.Fatalf("got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "FOO at line 5") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestAs(t *testing.T) {
	var err error = New(OutOfData)
	be, ok := As(err)
	if !ok || be.Code != OutOfData {
		t.Fatalf("got %v, %v", be, ok)
	}

	_, ok = As(strErr("plain error"))
	if ok {
		t.Fatal("expected ok=false for a non-*Error")
	}
}

type strErr string

func (e strErr) Error() string { return string(e) }
