package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fixcheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fixcheck <output-file> <annotated-file>",
	Short: "Check tool output against CHECK-FIXES annotations",
	Long: `fixcheck verifies that the output of a code-transformation tool contains
every fix fragment an annotated source file declares with CHECK-FIXES and
CHECK-FIXES-NEXT comments, each the expected number of times.`,
	Args:          rootArgs,
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootArgs keeps the bare two-argument form working next to subcommands;
// without arguments the help is shown.
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return cobra.ExactArgs(2)(cmd, args)
}

func init() {
	addCheckFlags(rootCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "path to fixcheck.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "write a trace to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// main executes the root command. Any error, including a strict-mode
// mismatch, exits with status 1.
func main() {
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of f, or 0 when it is not a terminal.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
