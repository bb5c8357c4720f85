// Package lexspec reads lexer definition files and compiles them into
// runnable lexer programs.
//
// A definition file is a sequence of statements:
//
//	class DIGIT "[0-9]"
//	class ALNUM "[a-z0-9]"
//	token NUMBER "$DIGIT+"
//	token WORD   "[a-z]$ALNUM*"
//	skip  WS     "[ \t\n]+"
//
// Classes resolve strictly top to bottom: a class or rule pattern may
// reference any class defined above it. Patterns are quoted with Go string
// syntax, so a backslash escape reaching the regex engine is written \\.
package lexspec

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/willieowens/lexgen/automata"
	"github.com/willieowens/lexgen/charset"
	"github.com/willieowens/lexgen/lexer"
	"github.com/willieowens/lexgen/regex"
)

type File struct {
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Class *ClassDef `parser:"@@"`
	Token *TokenDef `parser:"| @@"`
	Skip  *SkipDef  `parser:"| @@"`
}

// ClassDef names a character set usable as $Name in later patterns.
type ClassDef struct {
	Pos     plexer.Position
	Name    string `parser:"'class' @Ident"`
	Pattern string `parser:"@String"`
}

// TokenDef declares a token rule. Declaration order is match priority.
type TokenDef struct {
	Pos     plexer.Position
	Name    string `parser:"'token' @Ident"`
	Pattern string `parser:"@String"`
}

// SkipDef declares a rule whose matches are discarded.
type SkipDef struct {
	Pos     plexer.Position
	Name    string `parser:"'skip' @Ident"`
	Pattern string `parser:"@String"`
}

var fileParser = participle.MustBuild[File](participle.Unquote("String"))

// ParseString parses definition-file source. name is used in parse errors.
func ParseString(name, src string) (*File, error) {
	return fileParser.ParseString(name, src)
}

// ParseFile reads and parses a definition file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseString(path, string(data))
}

// Compile resolves the file's classes and compiles its rules into a lexer
// program. classes may be preloaded (see LoadClasses) and may be nil; it is
// extended in place with the file's class definitions.
func Compile(file *File, classes *charset.Collection) (*lexer.Program, error) {
	if classes == nil {
		classes = charset.NewCollection()
	}

	var rules []lexer.Rule
	var nfas []*automata.NFA
	seen := map[string]bool{}

	addRule := func(name, pattern string, skip bool, line int) error {
		if seen[name] {
			return fmt.Errorf("rule %s: already defined", name)
		}
		seen[name] = true
		nfa, err := regex.Compile(pattern, classes, line)
		if err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
		nfa.SetRule(len(rules))
		rules = append(rules, lexer.Rule{Name: name, Skip: skip})
		nfas = append(nfas, nfa)
		return nil
	}

	for _, stmt := range file.Statements {
		switch {
		case stmt.Class != nil:
			def := stmt.Class
			node, err := regex.Parse(def.Pattern, classes, def.Pos.Line)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", def.Name, err)
			}
			set, ok := node.CharSet()
			if !ok {
				return nil, fmt.Errorf("class %s: pattern %q does not define a character set", def.Name, def.Pattern)
			}
			classes.Define(def.Name, set)
		case stmt.Token != nil:
			if err := addRule(stmt.Token.Name, stmt.Token.Pattern, false, stmt.Token.Pos.Line); err != nil {
				return nil, err
			}
		case stmt.Skip != nil:
			if err := addRule(stmt.Skip.Name, stmt.Skip.Pattern, true, stmt.Skip.Pos.Line); err != nil {
				return nil, err
			}
		}
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("definition file declares no token rules")
	}

	dfa := automata.Minimize(automata.Determinize(automata.Combine(nfas)))
	return &lexer.Program{DFA: dfa, Rules: rules}, nil
}

// CompileString parses and compiles definition-file source in one step.
func CompileString(name, src string, classes *charset.Collection) (*lexer.Program, error) {
	file, err := ParseString(name, src)
	if err != nil {
		return nil, err
	}
	return Compile(file, classes)
}
