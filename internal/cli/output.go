package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatHuman = "human"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", formatHuman, "output format: human, json or yaml")
}

func checkFormat(format string) error {
	switch format {
	case formatHuman, formatJSON, formatYAML:
		return nil
	}
	return UsageError{Message: fmt.Sprintf("invalid output format %q (want human, json or yaml)", format)}
}

// writeStructured prints v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unsupported structured format %q", format)
}

func severityColor(s catalog.Severity) *color.Color {
	switch s {
	case catalog.SeverityIAL:
		return color.New(color.FgRed, color.Bold)
	case catalog.SeverityIL:
		return color.New(color.FgYellow, color.Bold)
	case catalog.SeverityAL:
		return color.New(color.FgCyan)
	}
	return color.New(color.Reset)
}

func printSuccess(w io.Writer, msg string) {
	color.New(color.FgGreen).Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	color.New(color.FgYellow).Fprintf(w, "! %s\n", msg)
}

func heading(w io.Writer, title string) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, title)
}
