// Package lexer runs compiled lexer programs: it scans input text with the
// combined minimal DFA produced from a definition file, yielding one token
// per maximal-munch match.
package lexer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/willieowens/lexgen/automata"
)

// Rule describes one token rule of a compiled program, in declaration
// order. Skip rules match and are swallowed without producing tokens.
type Rule struct {
	Name string
	Skip bool
}

// Program is an immutable compiled lexer. It is safe to share between
// concurrently running Lexer instances.
type Program struct {
	DFA   *automata.DFA
	Rules []Rule
}

// Token is one matched lexeme.
type Token struct {
	Rule   string
	Lexeme string
	Line   int
	Col    int
}

// ScanError reports input that no rule matches.
type ScanError struct {
	Line int
	Col  int
	Rune rune
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("Line %d (col %d): no rule matches %q", e.Line, e.Col, e.Rune)
}

// Lexer scans one input string against a program. Not safe for concurrent
// use; create one per input.
type Lexer struct {
	prog  *Program
	input string
	pos   int
	line  int
	col   int
}

func New(prog *Program, input string) *Lexer {
	return &Lexer{prog: prog, input: input, line: 1, col: 1}
}

// Next returns the next token. It applies maximal munch: the longest match
// wins, and among rules matching that length the first-declared one. At end
// of input it returns io.EOF.
func (l *Lexer) Next() (Token, error) {
	for {
		if l.pos >= len(l.input) {
			return Token{}, io.EOF
		}

		matchEnd := -1
		matchRule := -1
		st := l.prog.DFA.Start
		for i := l.pos; i < len(l.input); {
			r, size := utf8.DecodeRuneInString(l.input[i:])
			st = st.Step(r)
			if st == nil {
				break
			}
			i += size
			if st.Accept {
				matchEnd = i
				matchRule = st.Rule
			}
		}

		if matchEnd < 0 {
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			return Token{}, &ScanError{Line: l.line, Col: l.col, Rune: r}
		}

		rule := l.prog.Rules[matchRule]
		tok := Token{
			Rule:   rule.Name,
			Lexeme: l.input[l.pos:matchEnd],
			Line:   l.line,
			Col:    l.col,
		}
		l.advance(matchEnd)
		if rule.Skip {
			continue
		}
		return tok, nil
	}
}

// Tokens drains the input, returning every non-skipped token.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
}

func (l *Lexer) advance(to int) {
	for l.pos < to {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
}
