package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoumei/internal/diag"
	"shoumei/internal/driver"
	"shoumei/internal/source"
)

const checkLongDescription = `Check loads every given module together with everything it imports and
prints the diagnostics of all passes. Without arguments every module file
under the module root is checked.

Modules are named by their path relative to the root, without extension:
  shoumei check logic/core main`

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [module...]",
		Short: "Load modules and report diagnostics",
		Long:  checkLongDescription,
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "short", "output format (short|json)")
	cmd.Flags().Bool("notes", true, "print notes under each diagnostic")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "short", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be short or json)", format)
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}

	cleanup, err := beginRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("warnings-as-errors") {
		if s.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
			return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if _, err := setupColor(cmd); err != nil {
		return err
	}

	roots, err := resolveModules(s, args)
	if err != nil {
		return err
	}

	results, err := driver.CheckRoots(cmd.Context(), s.driverOptions(), roots, s.jobs)
	if err != nil {
		return err
	}
	batches := make([][]diag.Message, len(results))
	for i, r := range results {
		batches[i] = r.Messages
	}
	all := collectMessages(batches, s.warningsAsErrors)
	shown, omitted := limitMessages(all, s.maxDiagnostics)

	if format == "json" {
		if err := diag.WriteJSON(cmd.OutOrStdout(), shown); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	} else {
		printShort(cmd.OutOrStdout(), shown, notes)
		printSummary(cmd.ErrOrStderr(), all, omitted, len(roots))
	}

	if all.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// resolveModules turns arguments into module paths. A trailing extension is
// accepted, so shell completion of file names works.
func resolveModules(s *settings, args []string) ([]source.ModulePath, error) {
	if len(args) == 0 {
		paths, err := driver.ListModules(s.root, s.ext)
		if err != nil {
			return nil, fmt.Errorf("failed to list modules: %w", err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no *%s modules under %s", s.ext, s.root)
		}
		return paths, nil
	}
	paths := make([]source.ModulePath, 0, len(args))
	for _, arg := range args {
		if s.ext != "" {
			arg = strings.TrimSuffix(arg, s.ext)
		}
		path, err := source.ParseModulePath(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid module path %q: %w", arg, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
