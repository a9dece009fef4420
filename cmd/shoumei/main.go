package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shoumei/internal/version"
)

// errDiagnostics means the command already printed the errors it found.
var errDiagnostics = errors.New("errors reported")

const defaultMaxDiagnostics = 100

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shoumei",
		Short:         "Shoumei proof language front end",
		Long:          `Shoumei loads proof modules, runs the front-end passes and reports diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newTokensCmd())
	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := cmd.PersistentFlags()
	flags.StringP("dir", "C", "", "look for shoumei.toml starting in this directory (default: working directory)")
	flags.String("root", "", "module root directory (overrides [project].root)")
	flags.String("ext", "", "module file extension (overrides [project].ext)")
	flags.Int("max-diagnostics", defaultMaxDiagnostics, "maximum number of diagnostics to show (0 = unlimited)")
	flags.Bool("timings", false, "report per-pass timings for every module")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("trace", "", "write trace events to file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "text", "trace output format (text|ndjson)")
	flags.IntP("jobs", "j", 0, "number of root modules checked in parallel (0 = GOMAXPROCS)")
	flags.Bool("reload", false, "re-read modules that were already loaded")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime execution trace to file")

	return cmd
}

// main runs the root command. Any error, including reported diagnostics,
// exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "shoumei: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
