// Package basic is the embeddable public API for the interpreter: a
// small Engine wrapping internal/interp, configured with functional
// options in the same style as the teacher's engine construction.
package basic

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/go-msbasic/gobasic/internal/basicerr"
	"github.com/go-msbasic/gobasic/internal/interp"
	"github.com/go-msbasic/gobasic/internal/program"
)

// Engine is a ready-to-run interpreter instance: stored program,
// variables, DATA pool, and virtual memory, all owned by one
// interp.Interpreter.
type Engine struct {
	ip *interp.Interpreter
}

// Option configures an Engine at construction time.
type Option func(*config)

type config struct {
	stdout   io.Writer
	stdin    io.Reader
	randSeed *int64
}

// WithStdout directs PRINT/LIST/diagnostic output to w instead of
// os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStdin directs INPUT/GET reads to r instead of os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithRandSeed seeds RND deterministically, for reproducible runs and
// tests.
func WithRandSeed(seed int64) Option {
	return func(c *config) { c.randSeed = &seed }
}

// New creates an Engine, applying opts in order. With no options, output
// goes to os.Stdout and input comes from os.Stdin.
func New(opts ...Option) *Engine {
	c := &config{stdout: os.Stdout, stdin: os.Stdin}
	for _, opt := range opts {
		opt(c)
	}
	ip := interp.New(c.stdout, c.stdin)
	if c.randSeed != nil {
		ip.SeedRand(*c.randSeed)
	}
	return &Engine{ip: ip}
}

// Config is the shape of an optional YAML configuration file (base spec
// SPEC_FULL.md AMBIENT STACK): an alternative to functional options for
// callers driving the engine from a config file rather than Go code.
type Config struct {
	RandSeed *int64 `yaml:"rand_seed"`
}

// LoadConfig parses a YAML configuration document into a set of Options.
func LoadConfig(r io.Reader) ([]Option, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	var opts []Option
	if cfg.RandSeed != nil {
		opts = append(opts, WithRandSeed(*cfg.RandSeed))
	}
	return opts, nil
}

// LoadProgram splits src line-by-line and stores each line's untokenized
// text in the Engine's program. Each line must begin with a line number (base spec §3); blank
// lines and lines consisting only of leading/trailing whitespace are
// skipped.
func (e *Engine) LoadProgram(src string) error {
	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		number, text, err := splitLineNumber(line)
		if err != nil {
			return err
		}
		e.ip.Prog.Put(number, text)
	}
	return nil
}

// SplitLineNumber parses a leading line number off one line of REPL
// input, reporting ok=false if the line has no leading digits (an
// immediate-mode statement rather than a stored program line).
func SplitLineNumber(line string) (number int, text string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9' {
		return 0, "", false
	}
	n, t, err := splitLineNumber(line)
	if err != nil {
		return 0, "", false
	}
	return n, t, true
}

// PutLine stores or replaces a single program line, as the REPL does
// when given input with a leading line number.
func (e *Engine) PutLine(number int, text string) {
	e.ip.Prog.Put(number, text)
}

// Immediate executes one line of immediate-mode input (base spec §4.4):
// a direct statement, or a GOTO/GOSUB/RUN that starts executing the
// stored program.
func (e *Engine) Immediate(line string) error {
	return e.ip.RunImmediate(line)
}

func splitLineNumber(line string) (int, string, error) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == start {
		return 0, "", basicerr.New(basicerr.Syntax)
	}
	number := 0
	for _, c := range line[start:i] {
		number = number*10 + int(c-'0')
	}
	return number, strings.TrimLeft(line[i:], " "), nil
}

// Run pre-scans DATA and drives the stored program from its first line,
// the same as typing RUN at the prompt.
func (e *Engine) Run() error {
	e.ip.Vars.Reset()
	e.ip.Stacks.Reset()
	e.ip.Err = nil
	e.ip.ScanData()
	return (interp.Runner{}).Drive(e.ip)
}

// RunString loads and immediately runs a complete program given as text,
// a convenience for short-lived callers (tests, an "eval" CLI flag).
func RunString(src string, opts ...Option) (string, error) {
	var out bytes.Buffer
	opts = append(opts, WithStdout(&out))
	e := New(opts...)
	if err := e.LoadProgram(src); err != nil {
		return out.String(), err
	}
	err := e.Run()
	return out.String(), err
}

// Program exposes the stored line list, for LIST-like tooling.
func (e *Engine) Program() []program.Line {
	return e.ip.Prog.Lines()
}

// LastError returns the latched runtime error from the most recent Run,
// or nil.
func (e *Engine) LastError() *basicerr.Error {
	return e.ip.Err
}
