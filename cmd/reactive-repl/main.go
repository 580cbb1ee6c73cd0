package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┬┐┬┬  ┬┌─┐
  ├┬┘├┤ ├─┤│   │ │└┐┌┘├┤
  ┴└─└─┘┴ ┴└─┘ ┴ ┴ └┘ └─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactive-repl",
		Short: "Interactive console for the reactive dependency graph",
		Long: `reactive-repl drives the reactive package from the command line.

Run scripted scenarios against refs, computeds, and watchers, inspect
the live dependency graph, and stream devtools events — all without
embedding the reactive runtime in a larger program.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		runCmd(),
		graphCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
