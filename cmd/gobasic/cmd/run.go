package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gberrors "github.com/go-msbasic/gobasic/internal/errors"
	"github.com/go-msbasic/gobasic/pkg/basic"
)

var (
	evalSrc    string
	randSeed   int64
	useSeed    bool
	prettyDiag bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a BASIC program",
	Long: `Execute a stored BASIC program from a file or inline source.

Examples:
  # Run a program file
  gobasic run game.bas

  # Evaluate inline source
  gobasic run -e "10 PRINT \"HELLO\"" -e "20 END"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalSrc, "eval", "e", "", "inline program source instead of reading a file")
	runCmd.Flags().Int64Var(&randSeed, "seed", 0, "seed RND deterministically")
	runCmd.Flags().BoolVar(&useSeed, "use-seed", false, "apply --seed (unset: RND seeds itself)")
	runCmd.Flags().BoolVar(&prettyDiag, "pretty", false, "show a caret-style diagnostic alongside the BASIC error message")
	runCmd.Flags().StringVar(&configPath, "config", "", "load engine options from a YAML config file")
}

func runProgram(_ *cobra.Command, args []string) error {
	var src string
	switch {
	case evalSrc != "":
		src = evalSrc
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		src = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	var opts []basic.Option
	opts = append(opts, basic.WithStdout(os.Stdout), basic.WithStdin(os.Stdin))
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("failed to open config %s: %w", configPath, err)
		}
		cfgOpts, err := basic.LoadConfig(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		opts = append(opts, cfgOpts...)
	}
	if useSeed {
		opts = append(opts, basic.WithRandSeed(randSeed))
	}

	e := basic.New(opts...)
	if err := e.LoadProgram(src); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %d stored line(s)]\n", len(e.Program()))
	}

	runErr := e.Run()
	if runErr != nil && prettyDiag {
		if be := e.LastError(); be != nil {
			diag := gberrors.New(-1, 0, be.Error(), "")
			fmt.Fprintln(os.Stderr, diag.Format(true))
		}
	}
	return runErr
}
