package cmd

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/parser"
	"github.com/orbitlang/orbitc/internal/reader"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Orbit file and print the canonical AST string form",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(reader.NewString(src))
	p := parser.New(l)
	file := p.ParseFile()

	if p.HadError() {
		fmt.Printf("Parse errors in %s:\n", filename)
		for _, e := range p.Errors() {
			fmt.Println("  " + e.String())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if file.ModuleName != "" {
		fmt.Printf("module %s;\n", file.ModuleName)
	}
	fmt.Println(file.Program.String())
	return nil
}
