// Command gobasic is the CLI front end for the interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/go-msbasic/gobasic/cmd/gobasic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
