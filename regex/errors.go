package regex

import "fmt"

// SyntaxError reports an unexpected token. The first one aborts the parse;
// there is no recovery.
type SyntaxError struct {
	Line     int
	Col      int
	Expected string
	Actual   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d (col %d): expecting %s, not %s", e.Line, e.Col, e.Expected, e.Actual)
}

// UnknownClassError reports a $name reference whose name is not in the
// registry snapshot.
type UnknownClassError struct {
	Line int
	Col  int
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("Line %d (col %d): invalid character class name %q", e.Line, e.Col, e.Name)
}

// MalformedRangeError reports a set range whose start exceeds its end, such
// as [z-a]. The reference behavior silently produced an empty range; this
// implementation rejects it.
type MalformedRangeError struct {
	Line int
	Col  int
	Lo   rune
	Hi   rune
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("Line %d (col %d): malformed range %q-%q", e.Line, e.Col, e.Lo, e.Hi)
}

func syntaxError(tok Token, expected string) *SyntaxError {
	return &SyntaxError{Line: tok.Line, Col: tok.Col, Expected: expected, Actual: tok.Kind.String()}
}
