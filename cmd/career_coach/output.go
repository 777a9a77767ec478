package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/career-coach/internal/observability"
	"github.com/spf13/cobra"
)

// emit writes a command result to path, or to the command's stdout when path is
// empty. Text mode renders it with text; JSON mode writes v indented.
func (o *rootOptions) emit(cmd *cobra.Command, v any, path string, text func(*observability.Printer)) error {
	var out io.Writer = cmd.OutOrStdout()
	if path != "" {
		// Ensure output directory exists
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if o.format == formatText {
		text(observability.NewPrinter(out))
		return nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readText(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file %s: %w", what, path, err)
	}
	return string(data), nil
}
