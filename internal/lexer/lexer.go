// Package lexer implements the single-pass scanner described in base
// spec §4.1: given a mutable cursor over one program line's text, it
// yields one Token per call to Next.
//
// Unlike the teacher's DWScript lexer, a BASIC line is re-lexed every
// time it executes (there is no persistent AST), so the Lexer is
// intentionally small and cheap to construct: it owns nothing but the
// line text and a byte cursor.
package lexer

import (
	"strconv"
	"strings"

	"github.com/go-msbasic/gobasic/internal/token"
)

// Lexer scans one line of BASIC source text.
type Lexer struct {
	input string
	line  int // program line number, -1 for immediate mode in the interpreter; carried into Position only
	pos   int // current byte offset
}

// New creates a Lexer over text, starting at byte offset 0.
func New(text string, line int) *Lexer {
	return &Lexer{input: text, line: line}
}

// NewAt creates a Lexer that starts scanning text at byte offset pos,
// used to resume mid-line after a FOR/GOSUB/IF jump (base spec §4.4).
func NewAt(text string, line, pos int) *Lexer {
	return &Lexer{input: text, line: line, pos: pos}
}

// Pos returns the current byte cursor, suitable for stashing in a
// FOR/GOSUB frame or for later resumption via NewAt.
func (l *Lexer) Pos() int { return l.pos }

// SetPos rewinds or advances the cursor to an arbitrary byte offset.
func (l *Lexer) SetPos(pos int) { l.pos = pos }

// Text returns the full line text the Lexer was constructed over.
func (l *Lexer) Text() string { return l.input }

// AtEOL reports whether the cursor has reached the end of the line,
// ignoring trailing whitespace.
func (l *Lexer) AtEOL() bool {
	save := l.pos
	defer func() { l.pos = save }()
	l.skipSpace()
	return l.pos >= len(l.input)
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

// Next scans and returns the next token, advancing the cursor past it.
func (l *Lexer) Next() token.Token {
	l.skipSpace()
	start := l.pos
	pos := token.Position{Line: l.line, Column: start}

	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOL, Pos: pos}
	}

	ch := l.input[l.pos]
	switch {
	case isDigit(ch) || (ch == '.' && isDigit(l.peekByteAt(1))):
		return l.scanNumber(pos)
	case ch == '"':
		return l.scanString(pos)
	case isLetter(ch):
		return l.scanWord(pos)
	case strings.IndexByte("+-*/^=<>", ch) >= 0:
		l.pos++
		return token.Token{Type: token.OPERATOR, Literal: string(ch), Pos: pos}
	case strings.IndexByte("(),;:", ch) >= 0:
		l.pos++
		return token.Token{Type: token.DELIM, Literal: string(ch), Pos: pos}
	default:
		l.pos++
		return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	save := l.pos
	tok := l.Next()
	l.pos = save
	return tok
}

// PeekCompoundOperator inspects the raw text starting at the cursor and
// reports whether the upcoming relational operator is two characters
// (<=, >=, <>) rather than one, per base spec §4.1: "the lexer yields
// the first character as an operator token and the caller may peek
// ahead at the raw text". Returns the combined literal and its byte
// width (1 or 2).
func (l *Lexer) PeekCompoundOperator() (string, int) {
	save := l.pos
	l.skipSpace()
	a := l.peekByte()
	b := l.peekByteAt(1)
	l.pos = save
	switch {
	case a == '<' && b == '=':
		return "<=", 2
	case a == '>' && b == '=':
		return ">=", 2
	case a == '<' && b == '>':
		return "<>", 2
	default:
		return string(a), 1
	}
}

// Advance moves the cursor forward n bytes past whitespace already
// skipped by a prior Peek/PeekCompoundOperator call; used by the
// evaluator once it has decided how many characters a relational
// operator actually consumes.
func (l *Lexer) Advance(n int) {
	l.skipSpace()
	l.pos += n
}

func (l *Lexer) scanNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.peekByte()) {
		l.pos++
	}
	if l.peekByte() == '.' {
		l.pos++
		for isDigit(l.peekByte()) {
			l.pos++
		}
	}
	if l.peekByte() == 'E' || l.peekByte() == 'e' {
		save := l.pos
		l.pos++
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.pos++
		}
		if isDigit(l.peekByte()) {
			for isDigit(l.peekByte()) {
				l.pos++
			}
		} else {
			l.pos = save // bare 'E' with no digits isn't an exponent
		}
	}
	lit := l.input[start:l.pos]
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.NUMBER, Literal: lit, Num: n, Pos: pos}
}

func (l *Lexer) scanString(pos token.Position) token.Token {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	lit := l.input[start:l.pos]
	if l.pos < len(l.input) {
		l.pos++ // closing quote
	} else {
		// Unterminated string literal: base spec §4.1 calls this a
		// syntax error; the caller (evaluator) maps ILLEGAL to SYNTAX.
		return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.STRING, Literal: lit, Pos: pos}
}

func (l *Lexer) scanWord(pos token.Position) token.Token {
	start := l.pos
	l.pos++
	for isLetter(l.peekByte()) || isDigit(l.peekByte()) {
		l.pos++
	}
	hasDollar := l.peekByte() == '$'
	if hasDollar {
		l.pos++
	}
	raw := l.input[start:l.pos]
	upper := strings.ToUpper(raw)

	if id, ok := token.Lookup(upper); ok {
		return token.Token{Type: token.KEYWORD, Literal: upper, Kw: id, Pos: pos}
	}

	// Variable names alias to 2 significant letters plus an optional
	// trailing '$' (base spec §3, §9 "variable-name aliasing"): COUNTER
	// and CO denote the same variable.
	name := truncateName(upper, hasDollar)
	return token.Token{Type: token.VARIABLE, Literal: name, Pos: pos}
}

// truncateName applies BASIC's 2-significant-letter variable name
// aliasing rule: the first two letters (digits in the 3rd+ position are
// dropped along with any extra letters), plus the trailing '$' if the
// name is a string variable.
func truncateName(upper string, hasDollar bool) string {
	body := upper
	if hasDollar {
		body = upper[:len(upper)-1]
	}
	letters := make([]byte, 0, 2)
	for i := 0; i < len(body) && len(letters) < 2; i++ {
		c := body[i]
		if isLetter(c) || isDigit(c) {
			letters = append(letters, c)
		}
	}
	name := string(letters)
	if hasDollar {
		name += "$"
	}
	return name
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
