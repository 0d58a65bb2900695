package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// encode writes data to w as indented JSON or YAML.
func encode(w io.Writer, format string, data any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// writeResult encodes data to the --output file when one is given, else to
// the command's stdout.
func writeResult(cmd *cobra.Command, output, format string, data any) error {
	return withOutput(cmd, output, func(w io.Writer) error {
		return encode(w, format, data)
	})
}

// writeText writes text verbatim, honoring --output like writeResult.
func writeText(cmd *cobra.Command, output, text string) error {
	return withOutput(cmd, output, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func withOutput(cmd *cobra.Command, output string, fn func(io.Writer) error) error {
	if output == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
