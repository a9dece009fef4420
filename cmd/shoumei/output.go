package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shoumei/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.FgBlue)
)

// setupColor resolves --color and switches fatih/color globally.
func setupColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var useColor bool
	switch colorFlag {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto":
		useColor = isTerminal(os.Stdout)
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", colorFlag)
	}
	color.NoColor = !useColor
	return useColor, nil
}

// collectMessages merges per-root messages in root order. Modules shared by
// several roots report the same problem more than once; those are dropped.
func collectMessages(batches [][]diag.Message, warningsAsErrors bool) *diag.Bag {
	all := diag.NewBag(0)
	for _, msgs := range batches {
		for _, m := range msgs {
			all.Add(m)
		}
	}
	return settleMessages(all, warningsAsErrors)
}

// settleMessages drops duplicates and applies --warnings-as-errors in place.
func settleMessages(all *diag.Bag, warningsAsErrors bool) *diag.Bag {
	all.Dedup()
	if warningsAsErrors {
		all.Transform(func(m *diag.Message) {
			if m.Severity == diag.SevWarning {
				m.Severity = diag.SevError
			}
		})
	}
	return all
}

// limitMessages keeps the first limit messages (all for limit 0) and
// returns how many were cut.
func limitMessages(all *diag.Bag, limit int) ([]diag.Message, int) {
	limited := diag.NewBag(limit)
	for _, m := range all.Items() {
		if !limited.Add(m) {
			break
		}
	}
	return limited.Items(), all.Len() - limited.Len()
}

func severityColor(label string) *color.Color {
	switch label {
	case "error":
		return errorColor
	case "warning":
		return warningColor
	case "note":
		return noteColor
	default:
		return infoColor
	}
}

// printShort writes one line per message (and per note), colouring the
// severity label.
func printShort(w io.Writer, msgs []diag.Message, notes bool) {
	for i := range msgs {
		text := diag.FormatShort(msgs[i:i+1], notes)
		for _, line := range strings.Split(text, "\n") {
			label, rest, _ := strings.Cut(line, " ")
			fmt.Fprintf(w, "%s %s\n", severityColor(label).Sprint(label), rest)
		}
	}
}

func printSummary(w io.Writer, all *diag.Bag, omitted, modules int) {
	errs, warns := 0, 0
	for _, m := range all.Items() {
		switch m.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if omitted > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (--max-diagnostics)\n", omitted)
	}
	status := color.New(color.FgGreen, color.Bold).Sprint("ok")
	if errs > 0 {
		status = errorColor.Sprint("failed")
	}
	fmt.Fprintf(w, "%s: %d modules, %d errors, %d warnings\n", status, modules, errs, warns)
}
