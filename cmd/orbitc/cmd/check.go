package cmd

import (
	"fmt"
	"os"

	"github.com/orbitlang/orbitc/internal/diag"
	"github.com/orbitlang/orbitc/internal/lexer"
	"github.com/orbitlang/orbitc/internal/parser"
	"github.com/orbitlang/orbitc/internal/reader"
	"github.com/orbitlang/orbitc/internal/semantic"
	"github.com/orbitlang/orbitc/internal/token"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse, and semantically check an Orbit file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "render diagnostics as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	log := diag.WriterLogger{W: os.Stderr}
	if verbose {
		log.Log(diag.Info, token.Position{}, fmt.Sprintf("lexing %s", filename))
	}
	l := lexer.New(reader.NewString(src))
	p := parser.New(l)
	if verbose {
		log.Log(diag.Info, token.Position{}, "parsing")
	}
	file := p.ParseFile()

	var diags []semantic.Diagnostic
	for _, e := range l.Errors() {
		diags = append(diags, semantic.Diagnostic{
			Kind:     "lex error",
			Severity: severityFor(e.Critical),
			Message:  e.Message,
			Pos:      e.Pos,
		})
	}
	for _, e := range p.Errors() {
		diags = append(diags, semantic.Diagnostic{
			Kind:     "parse error",
			Severity: semantic.Error,
			Message:  e.Message,
			Pos:      e.Pos,
		})
	}

	if verbose {
		log.Log(diag.Info, token.Position{}, "running semantic analysis")
	}
	analyzer := semantic.NewAnalyzer()
	analyzer.Analyze(file)
	diags = append(diags, analyzer.Diagnostics()...)

	if len(diags) > 0 && cfg != nil && cfg.MaxErrors > 0 {
		errCount := 0
		truncated := diags[:0]
		for _, d := range diags {
			if d.Severity != semantic.Warning {
				errCount++
			}
			if errCount > cfg.MaxErrors {
				break
			}
			truncated = append(truncated, d)
		}
		diags = truncated
	}

	useJSON := jsonOutput || (cfg != nil && cfg.Format == "json")
	if useJSON {
		out, err := diag.ToJSON(diags)
		if err != nil {
			return fmt.Errorf("rendering diagnostics as JSON: %w", err)
		}
		fmt.Println(string(out))
	} else {
		color := cfg != nil && cfg.Color
		fmt.Print(diag.FormatAll(diags, src, filename, color))
		if len(diags) > 0 {
			fmt.Println()
		}
	}

	if analyzer.HadCriticalError() || l.HadCriticalError() {
		return fmt.Errorf("check halted by a critical error")
	}
	if analyzer.HadError() || p.HadError() {
		return fmt.Errorf("check found errors")
	}
	return nil
}

func severityFor(critical bool) semantic.Severity {
	if critical {
		return semantic.Critical
	}
	return semantic.Error
}
