package main

import (
	"errors"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/svast/codec"
)

var fmtFlags struct {
	format string
	write  bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <document>",
	Short: "Print a document in canonical form",
	Long:  `Decode a document and print its canonical rendering.

Canonical documents have fields in grammar order, absent optional fields as
null and every literal quoted, so equal trees always print identically.

Examples:
  # Canonical JSON on stdout
  svast fmt design.json

  # Convert to YAML in place
  svast fmt --format yaml --write design.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: formatDocument,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().StringVarP(&fmtFlags.format, "format", "f", "", "output format: json, yaml (uses codec.format if not specified)")
	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "rewrite the document file instead of printing")
}

func formatDocument(cmd *cobra.Command, args []string) error {
	path := args[0]
	if fmtFlags.write && path == stdinPath {
		return errors.New("--write needs a document file, not standard input")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}
	if fmtFlags.format != "" {
		format, err := codec.ParseFormat(fmtFlags.format)
		if err != nil {
			return err
		}
		c = c.WithFormat(format)
	}

	tree, _, err := decodeFile(cmd, c, path)
	if err != nil {
		return err
	}
	doc, err := c.Encode(tree)
	if err != nil {
		return err
	}

	if fmtFlags.write {
		return writeOutput(cmd, path, doc)
	}
	return writeOutput(cmd, "", doc)
}
