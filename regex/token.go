package regex

// Kind classifies the tokens the expression scanner produces. The same raw
// character can lex to different kinds depending on the scanner's mode.
type Kind int

const (
	EOS          Kind = iota // end of expression
	Union                    // |
	Star                     // *
	Plus                     // +
	LParen                   // (
	RParen                   // )
	LBracket                 // [
	RBracket                 // ]
	Any                      // .
	Char                     // ordinary character outside brackets
	SetChar                  // ordinary character inside brackets
	Range                    // - inside brackets
	Negate                   // ^ opening a negative set
	In                       // the "in" keyword of negative sets
	Class                    // $name with a known class name
	InvalidClass             // $name with an unknown class name
)

var kindNames = map[Kind]string{
	EOS:          "end of expression",
	Union:        "'|'",
	Star:         "'*'",
	Plus:         "'+'",
	LParen:       "'('",
	RParen:       "')'",
	LBracket:     "'['",
	RBracket:     "']'",
	Any:          "'.'",
	Char:         "character",
	SetChar:      "set character",
	Range:        "'-'",
	Negate:       "'^'",
	In:           "'in'",
	Class:        "character class",
	InvalidClass: "invalid character class",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown token"
}

// Token is one lexeme of a regular expression, immutable once produced.
// Text holds the literal character for Char/SetChar and the class name for
// Class/InvalidClass; it is empty for pure operator tokens.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

// Rune returns the single character a Char or SetChar token carries.
func (t Token) Rune() rune {
	for _, r := range t.Text {
		return r
	}
	return 0
}
