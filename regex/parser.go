// Package regex compiles textual regular-expression definitions into syntax
// trees and NFA fragments for the lexer generator. The grammar is LL(1);
// the parser drives the scanner's lexical mode around bracketed sets and
// resolves $name class references against a registry snapshot.
package regex

import (
	"github.com/willieowens/lexgen/automata"
	"github.com/willieowens/lexgen/charset"
)

// Parser performs a single top-to-bottom descent over one expression. One
// instance parses one expression and is then discarded.
type Parser struct {
	expr    string
	scanner *Scanner
	classes *charset.Collection
	look    *Token // single lookahead slot
}

// NewParser creates a parser for expr. classes may be nil; line is the
// source line the expression was defined on, used in error positions.
func NewParser(expr string, classes *charset.Collection, line int) *Parser {
	if classes == nil {
		classes = charset.NewCollection()
	}
	return &Parser{
		expr:    expr,
		scanner: NewScanner(expr, classes.Names(), line),
		classes: classes,
	}
}

// Parse parses expr into a syntax tree, requiring the whole expression to
// be consumed.
func Parse(expr string, classes *charset.Collection, line int) (*Node, error) {
	return NewParser(expr, classes, line).Parse()
}

// Compile parses expr and materializes the automaton for it.
func Compile(expr string, classes *charset.Collection, line int) (*automata.NFA, error) {
	root, err := Parse(expr, classes, line)
	if err != nil {
		return nil, err
	}
	return automata.Close(root.Fragment()), nil
}

func (p *Parser) Parse() (*Node, error) {
	root, err := p.re()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(EOS); err != nil {
		return nil, err
	}
	return root, nil
}

// re handles: RE -> SIMPLE_RE RE'
func (p *Parser) re() (*Node, error) {
	left, err := p.simpleRE()
	if err != nil {
		return nil, err
	}
	return p.rePrime(left)
}

// rePrime handles: RE' -> '|' SIMPLE_RE RE' | ε
// Folding into the accumulator keeps union left-associative.
func (p *Parser) rePrime(left *Node) (*Node, error) {
	if p.peek() != Union {
		return left, nil
	}
	if _, err := p.match(Union); err != nil {
		return nil, err
	}
	right, err := p.simpleRE()
	if err != nil {
		return nil, err
	}
	return p.rePrime(unionNode(left, right))
}

// simpleRE handles: SIMPLE_RE -> BASIC_RE SIMPLE_RE' | ε
// The follow set (union, close paren, end) resolves to epsilon without
// consuming a token, which is what allows empty union branches.
func (p *Parser) simpleRE() (*Node, error) {
	switch p.peek() {
	case Union, RParen, EOS:
		return epsilonNode(), nil
	}
	node, err := p.basicRE()
	if err != nil {
		return nil, err
	}
	return p.simpleREPrime(node)
}

// simpleREPrime handles: SIMPLE_RE' -> BASIC_RE SIMPLE_RE' | ε
func (p *Parser) simpleREPrime(left *Node) (*Node, error) {
	switch p.peek() {
	case Union, RParen, EOS:
		return left, nil
	}
	right, err := p.basicRE()
	if err != nil {
		return nil, err
	}
	return p.simpleREPrime(concatNode(left, right))
}

// basicRE handles: BASIC_RE -> ELEMENTARY_RE REPEAT
func (p *Parser) basicRE() (*Node, error) {
	node, err := p.elementaryRE()
	if err != nil {
		return nil, err
	}
	return p.repetition(node)
}

// repetition handles: REPEAT -> '*' | '+' | ε
func (p *Parser) repetition(node *Node) (*Node, error) {
	switch p.peek() {
	case Star:
		if _, err := p.match(Star); err != nil {
			return nil, err
		}
		return starNode(node), nil
	case Plus:
		if _, err := p.match(Plus); err != nil {
			return nil, err
		}
		return plusNode(node), nil
	}
	return node, nil
}

// elementaryRE handles: ELEMENTARY_RE -> '(' RE ')' | '.' | CHAR | CLASS | '[' SET
func (p *Parser) elementaryRE() (*Node, error) {
	switch p.peek() {
	case LParen:
		if _, err := p.match(LParen); err != nil {
			return nil, err
		}
		node, err := p.re()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(RParen); err != nil {
			return nil, err
		}
		return node, nil
	case Char:
		tok, err := p.match(Char)
		if err != nil {
			return nil, err
		}
		return charNode(tok.Rune()), nil
	case Any:
		if _, err := p.match(Any); err != nil {
			return nil, err
		}
		return anyNode(), nil
	case Class:
		tok, err := p.match(Class)
		if err != nil {
			return nil, err
		}
		set, ok := p.classes.Resolve(tok.Text)
		if !ok {
			return nil, &UnknownClassError{Line: tok.Line, Col: tok.Col, Name: tok.Text}
		}
		return classNode(set), nil
	case LBracket:
		if _, err := p.match(LBracket); err != nil {
			return nil, err
		}
		// bracket contents lex under set mode with significant blanks
		p.scanner.SetMode(ModeSet)
		p.scanner.SetWhitespaceSignificant(true)
		return p.set()
	case InvalidClass:
		tok := *p.look
		return nil, &UnknownClassError{Line: tok.Line, Col: tok.Col, Name: tok.Text}
	default:
		return nil, syntaxError(*p.look, "start of an expression")
	}
}

// set handles: SET -> SET_ITEMS ']' | '^' NEG_SET
func (p *Parser) set() (*Node, error) {
	if p.peek() == Negate {
		if _, err := p.match(Negate); err != nil {
			return nil, err
		}
		return p.negativeSet()
	}
	node, err := p.setItems()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(RBracket); err != nil {
		return nil, err
	}
	p.scanner.SetMode(ModeNormal)
	p.scanner.SetWhitespaceSignificant(false)
	return node, nil
}

// negativeSet handles: NEG_SET -> SET_ITEMS ']' 'in' NEG_TAIL
// The result matches the tail's set minus the excluded items, not the
// complement of the items over the whole alphabet.
func (p *Parser) negativeSet() (*Node, error) {
	excl, err := p.setItems()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(RBracket); err != nil {
		return nil, err
	}
	p.scanner.SetMode(ModeNormal)
	p.scanner.SetWhitespaceSignificant(false)

	if _, err := p.match(In); err != nil {
		return nil, err
	}
	base, err := p.negativeSetTail()
	if err != nil {
		return nil, err
	}
	return negSetNode(excl, base), nil
}

// negativeSetTail handles: NEG_TAIL -> CLASS | '[' SET_ITEMS ']'
func (p *Parser) negativeSetTail() (*Node, error) {
	switch p.peek() {
	case Class:
		tok, err := p.match(Class)
		if err != nil {
			return nil, err
		}
		set, ok := p.classes.Resolve(tok.Text)
		if !ok {
			return nil, &UnknownClassError{Line: tok.Line, Col: tok.Col, Name: tok.Text}
		}
		return classNode(set), nil
	case LBracket:
		if _, err := p.match(LBracket); err != nil {
			return nil, err
		}
		p.scanner.SetMode(ModeSet)
		p.scanner.SetWhitespaceSignificant(true)
		node, err := p.setItems()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(RBracket); err != nil {
			return nil, err
		}
		p.scanner.SetMode(ModeNormal)
		p.scanner.SetWhitespaceSignificant(false)
		return node, nil
	case InvalidClass:
		tok := *p.look
		return nil, &UnknownClassError{Line: tok.Line, Col: tok.Col, Name: tok.Text}
	default:
		return nil, syntaxError(*p.look, "character class or '['")
	}
}

// setItems handles: SET_ITEMS -> SET_ITEM*
// The mode toggle here is deliberately redundant with the callers': every
// path into set items must leave the scanner in set mode, and every path
// out must restore normal mode before the next lookahead is pulled.
func (p *Parser) setItems() (*Node, error) {
	p.scanner.SetMode(ModeSet)
	p.scanner.SetWhitespaceSignificant(true)
	node := setNode()
	for p.peek() == SetChar {
		if err := p.setItem(node); err != nil {
			return nil, err
		}
	}
	p.scanner.SetMode(ModeNormal)
	p.scanner.SetWhitespaceSignificant(false)
	return node, nil
}

// setItem handles: SET_ITEM -> CHAR ('-' CHAR)?
func (p *Parser) setItem(node *Node) error {
	first, err := p.match(SetChar)
	if err != nil {
		return err
	}
	lo := first.Rune()
	if p.peek() != Range {
		node.set.Add(lo)
		return nil
	}
	if _, err := p.match(Range); err != nil {
		return err
	}
	second, err := p.match(SetChar)
	if err != nil {
		return err
	}
	hi := second.Rune()
	if err := node.set.AddRange(lo, hi); err != nil {
		return &MalformedRangeError{Line: first.Line, Col: first.Col, Lo: lo, Hi: hi}
	}
	return nil
}

// peek returns the kind of the lookahead token, pulling one if the slot is
// empty.
func (p *Parser) peek() Kind {
	if p.look == nil {
		tok := p.scanner.Next()
		p.look = &tok
	}
	return p.look.Kind
}

// match consumes the lookahead token if its kind matches, clearing the slot.
func (p *Parser) match(kind Kind) (Token, error) {
	p.peek()
	if p.look.Kind != kind {
		return Token{}, syntaxError(*p.look, kind.String())
	}
	tok := *p.look
	p.look = nil
	return tok, nil
}
