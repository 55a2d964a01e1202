package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-msbasic/gobasic/pkg/basic"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive BASIC prompt",
	Long: `Start an interactive prompt: lines beginning with a number are
stored into the program; anything else executes immediately, the same
as typing at a classic BASIC's "READY." prompt.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	e := basic.New(basic.WithStdout(os.Stdout), basic.WithStdin(os.Stdin))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()

		if number, text, ok := basic.SplitLineNumber(line); ok {
			e.PutLine(number, text)
			continue
		}
		if err := e.Immediate(line); err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		}
	}
}
