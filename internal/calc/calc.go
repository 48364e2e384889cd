// Package calc provides the integer adder and the command behind the calc CLI.
package calc

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}

// errUsage marks a wrong invocation; main maps it to exit code 1.
var errUsage = errors.New("usage")

// IsUsageError reports whether err came from a bad invocation.
func IsUsageError(err error) bool {
	return errors.Is(err, errUsage)
}

// NewCommand builds the calc root command writing results to stdout and
// usage messages to stderr. Flag parsing is off so negative operands such
// as -5 reach Args untouched; -h and --help are recognised by hand.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "calc <number1> <number2>",
		Short:              "Add two integers",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if isHelp(args) {
				return nil
			}
			if len(args) != 2 {
				fmt.Fprintf(stderr, "Usage: %s <number1> <number2>\n", cmd.Root().Name())
				return fmt.Errorf("%w: expected 2 arguments, got %d", errUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isHelp(args) {
				return cmd.Help()
			}
			a, err := parseOperand(args[0])
			if err != nil {
				fmt.Fprintf(stderr, "Usage: %s <number1> <number2>\n", cmd.Root().Name())
				return err
			}
			b, err := parseOperand(args[1])
			if err != nil {
				fmt.Fprintf(stderr, "Usage: %s <number1> <number2>\n", cmd.Root().Name())
				return err
			}
			fmt.Fprintf(stdout, "The sum is: %d\n", Add(a, b))
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func isHelp(args []string) bool {
	return len(args) == 1 && (args[0] == "-h" || args[0] == "--help")
}

func parseOperand(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errUsage, s)
	}
	return n, nil
}

// Run executes the calc command with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if !IsUsageError(err) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}
