// Command orbitc is the Orbit compiler front end's driver: lex, parse,
// and check phases over a source file.
package main

import (
	"fmt"
	"os"

	"github.com/orbitlang/orbitc/cmd/orbitc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
