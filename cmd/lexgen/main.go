// Command lexgen compiles lexer definition files and runs them: it can
// tokenize input text and export the compiled automata as Graphviz.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/willieowens/lexgen/automata"
	"github.com/willieowens/lexgen/charset"
	"github.com/willieowens/lexgen/lexer"
	"github.com/willieowens/lexgen/lexspec"
	"github.com/willieowens/lexgen/regex"
)

var rootCmd = &cobra.Command{
	Use:           "lexgen",
	Short:         "Lexical-analyzer generator",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var scanCmd = &cobra.Command{
	Use:   "scan <spec.lex> <input>",
	Short: "Tokenize an input file with a lexer definition",
	Args:  cobra.ExactArgs(2),
	RunE:  runScan,
}

var dotCmd = &cobra.Command{
	Use:   "dot [spec.lex]",
	Short: "Export a compiled automaton as Graphviz",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDot,
}

func init() {
	scanCmd.Flags().String("classes", "", "YAML file of predefined character classes")

	dotCmd.Flags().String("classes", "", "YAML file of predefined character classes")
	dotCmd.Flags().StringP("expr", "e", "", "render a single pattern instead of a spec file")
	dotCmd.Flags().Bool("nfa", false, "export the Thompson NFA instead of the minimal DFA")
	dotCmd.Flags().StringP("out", "o", "-", "output file ('-' for stdout)")

	rootCmd.AddCommand(scanCmd, dotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadClasses(cmd *cobra.Command) (*charset.Collection, error) {
	classes := charset.NewCollection()
	path, _ := cmd.Flags().GetString("classes")
	if path == "" {
		return classes, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := lexspec.LoadClasses(data, classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func compileSpec(cmd *cobra.Command, path string) (*lexer.Program, error) {
	classes, err := loadClasses(cmd)
	if err != nil {
		return nil, err
	}
	file, err := lexspec.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return lexspec.Compile(file, classes)
}

func runScan(cmd *cobra.Command, args []string) error {
	prog, err := compileSpec(cmd, args[0])
	if err != nil {
		return err
	}
	input, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	l := lexer.New(prog, string(input))
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Rule, tok.Lexeme)
	}
}

func runDot(cmd *cobra.Command, args []string) error {
	expr, _ := cmd.Flags().GetString("expr")
	nfaFlag, _ := cmd.Flags().GetBool("nfa")
	outFile, _ := cmd.Flags().GetString("out")

	var render func(io.Writer)
	switch {
	case expr != "":
		classes, err := loadClasses(cmd)
		if err != nil {
			return err
		}
		nfa, err := regex.Compile(expr, classes, 1)
		if err != nil {
			return err
		}
		if nfaFlag {
			render = nfa.DOT
		} else {
			dfa := automata.Minimize(automata.Determinize(nfa))
			render = dfa.DOT
		}
	case len(args) == 1:
		if nfaFlag {
			return fmt.Errorf("--nfa requires --expr; spec files export the combined DFA")
		}
		prog, err := compileSpec(cmd, args[0])
		if err != nil {
			return err
		}
		render = prog.DFA.DOT
	default:
		return fmt.Errorf("either a spec file or --expr is required")
	}

	w := io.Writer(os.Stdout)
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	render(w)
	return nil
}
