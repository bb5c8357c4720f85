package regex

import "unicode/utf8"

// Mode selects how the scanner classifies raw characters. The parser owns
// the mode: it is switched to ModeSet for the inside of bracketed sets and
// back to ModeNormal after the matching close bracket.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSet
)

// Scanner turns one regular-expression definition into tokens, one at a
// time. It never looks ahead on its own; lookahead caching belongs to the
// parser.
type Scanner struct {
	input string
	pos   int
	line  int
	col   int // 1-based rune position within the expression

	mode          Mode
	wsSignificant bool
	setLeading    bool // next set-mode token is the first after '['

	classNames map[string]struct{}
}

// NewScanner creates a scanner for one expression. classNames is the
// snapshot of defined class names used to classify $name references; line is
// the source line the expression was defined on.
func NewScanner(expr string, classNames []string, line int) *Scanner {
	names := make(map[string]struct{}, len(classNames))
	for _, n := range classNames {
		names[n] = struct{}{}
	}
	return &Scanner{input: expr, line: line, col: 1, classNames: names}
}

// SetMode switches the lexical mode. Entering set mode arms the leading
// position so that a '^' directly after '[' lexes as Negate.
func (s *Scanner) SetMode(m Mode) {
	if m == ModeSet && s.mode != ModeSet {
		s.setLeading = true
	}
	s.mode = m
}

func (s *Scanner) Mode() Mode { return s.mode }

// SetWhitespaceSignificant controls whether blanks produce tokens. Inside
// brackets a literal space is a set member, outside they separate tokens.
func (s *Scanner) SetWhitespaceSignificant(b bool) { s.wsSignificant = b }

func (s *Scanner) WhitespaceSignificant() bool { return s.wsSignificant }

func (s *Scanner) peekRune() (rune, int) {
	if s.pos >= len(s.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.input[s.pos:])
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	s.col++
	return r
}

// Next produces the next token under the current mode and whitespace
// settings.
func (s *Scanner) Next() Token {
	if !s.wsSignificant {
		for {
			r, _ := s.peekRune()
			if r != ' ' && r != '\t' {
				break
			}
			s.advance()
		}
	}

	col := s.col
	if s.pos >= len(s.input) {
		return Token{Kind: EOS, Line: s.line, Col: col}
	}
	r := s.advance()

	if s.mode == ModeSet {
		leading := s.setLeading
		s.setLeading = false
		switch r {
		case ']':
			return Token{Kind: RBracket, Line: s.line, Col: col}
		case '-':
			return Token{Kind: Range, Line: s.line, Col: col}
		case '^':
			if leading {
				return Token{Kind: Negate, Line: s.line, Col: col}
			}
			return Token{Kind: SetChar, Text: string(r), Line: s.line, Col: col}
		case '\\':
			if s.pos >= len(s.input) {
				return Token{Kind: SetChar, Text: string(r), Line: s.line, Col: col}
			}
			return Token{Kind: SetChar, Text: string(s.advance()), Line: s.line, Col: col}
		default:
			return Token{Kind: SetChar, Text: string(r), Line: s.line, Col: col}
		}
	}

	switch r {
	case '|':
		return Token{Kind: Union, Line: s.line, Col: col}
	case '*':
		return Token{Kind: Star, Line: s.line, Col: col}
	case '+':
		return Token{Kind: Plus, Line: s.line, Col: col}
	case '(':
		return Token{Kind: LParen, Line: s.line, Col: col}
	case ')':
		return Token{Kind: RParen, Line: s.line, Col: col}
	case '[':
		return Token{Kind: LBracket, Line: s.line, Col: col}
	case ']':
		return Token{Kind: RBracket, Line: s.line, Col: col}
	case '.':
		return Token{Kind: Any, Line: s.line, Col: col}
	case '\\':
		if s.pos >= len(s.input) {
			return Token{Kind: Char, Text: string(r), Line: s.line, Col: col}
		}
		return Token{Kind: Char, Text: string(s.advance()), Line: s.line, Col: col}
	case '$':
		name := s.scanClassName()
		if name == "" {
			return Token{Kind: Char, Text: string(r), Line: s.line, Col: col}
		}
		kind := Class
		if _, ok := s.classNames[name]; !ok {
			kind = InvalidClass
		}
		return Token{Kind: kind, Text: name, Line: s.line, Col: col}
	case 'i':
		if s.isInKeyword() {
			s.advance() // 'n'
			return Token{Kind: In, Line: s.line, Col: col}
		}
		return Token{Kind: Char, Text: string(r), Line: s.line, Col: col}
	default:
		return Token{Kind: Char, Text: string(r), Line: s.line, Col: col}
	}
}

// isInKeyword reports whether the scanner sits on "n" completing an "in"
// keyword: the keyword is only recognized at a boundary, so a literal "in"
// elsewhere still lexes as two characters.
func (s *Scanner) isInKeyword() bool {
	if r, _ := s.peekRune(); r != 'n' {
		return false
	}
	rest := s.input[s.pos:]
	_, size := utf8.DecodeRuneInString(rest)
	if len(rest) == size {
		return true // "in" at end of expression
	}
	next, _ := utf8.DecodeRuneInString(rest[size:])
	switch next {
	case ' ', '\t', '[', '$':
		return true
	}
	return false
}

func isClassNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}

func (s *Scanner) scanClassName() string {
	start := s.pos
	for {
		r, _ := s.peekRune()
		if !isClassNameRune(r) {
			break
		}
		s.advance()
	}
	return s.input[start:s.pos]
}
