package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shoumei/internal/driver"
	"shoumei/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] module",
		Short: "Dump the lexer tokens of a module",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("layout", false, "include indent and newline tokens")
	return cmd
}

type tokenJSON struct {
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	EndLine uint32 `json:"end_line"`
	EndCol  uint32 `json:"end_col"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	layout, err := cmd.Flags().GetBool("layout")
	if err != nil {
		return fmt.Errorf("failed to get layout flag: %w", err)
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
	if _, err := setupColor(cmd); err != nil {
		return err
	}
	paths, err := resolveModules(s, args)
	if err != nil {
		return err
	}

	res := driver.New(s.driverOptions()).Tokens(cmd.Context(), paths[0])
	if res.Len() > 0 {
		printShort(cmd.ErrOrStderr(), res.Diagnostics(), true)
	}
	toks, ok := res.Value()
	if !ok {
		return errDiagnostics
	}

	switch format {
	case "pretty":
		return writeTokensPretty(cmd.OutOrStdout(), toks, layout)
	case "json":
		return writeTokensJSON(cmd.OutOrStdout(), toks, layout)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTokensPretty(w io.Writer, toks lexer.Tokens, layout bool) error {
	for _, tok := range toks.Items {
		if tok.IsLayout() && !layout {
			continue
		}
		start, end := tok.Range.Start, tok.Range.End
		if _, err := fmt.Fprintf(w, "%d:%d-%d:%d\t%s\t%q\n",
			start.Line+1, start.Col+1, end.Line+1, end.Col+1, tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeTokensJSON(w io.Writer, toks lexer.Tokens, layout bool) error {
	out := make([]tokenJSON, 0, toks.Len())
	for _, tok := range toks.Items {
		if tok.IsLayout() && !layout {
			continue
		}
		out = append(out, tokenJSON{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    tok.Range.Start.Line + 1,
			Col:     tok.Range.Start.Col + 1,
			EndLine: tok.Range.End.Line + 1,
			EndCol:  tok.Range.End.Col + 1,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
