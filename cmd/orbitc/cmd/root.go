package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/orbitlang/orbitc/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	cfgPath string
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "orbitc",
	Short:   "Orbit compiler front end",
	Long:    `orbitc lexes, parses, and semantically checks Orbit source files.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", cfgPath, err)
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".orbitc.yaml", "path to a project config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "narrate each phase as it runs")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readSource reads the positional source argument, falling back to
// stdin when omitted.
func readSource(args []string) (src, filename string, err error) {
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("reading stdin: %w", readErr)
	}
	return string(data), "<stdin>", nil
}
