package cmd

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/reader"
	"github.com/orbitlang/orbitc/internal/token"
	"github.com/spf13/cobra"
)

var (
	showPos  bool
	showKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Orbit file and print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(reader.NewString(src))
	for {
		tok := l.Consume()
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if l.HadError() {
		for _, e := range l.Errors() {
			fmt.Println(e.String())
		}
		return fmt.Errorf("lexing produced %d error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if showKind {
		out = fmt.Sprintf("[%-14s]", tok.Kind)
	}
	if tok.Lexeme == "" {
		out += fmt.Sprintf(" %s", tok.Kind)
	} else {
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	if tok.Invalid {
		out += " (invalid)"
	}
	fmt.Println(out)
}
