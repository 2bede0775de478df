package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/svast/codec"
)

var diffFlags struct {
	context  int
	exitCode bool
}

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two documents",
	Long:  `Compare the canonical renderings of two documents.

Both documents are decoded first, so formatting and field order never show
up as differences. Identical trees print nothing.

Examples:
  svast diff before.json after.yaml
  svast diff --exit-code golden.json out.json`,
	Args: cobra.ExactArgs(2),
	RunE: diffDocuments,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().IntVarP(&diffFlags.context, "unified", "U", 3, "lines of context")
	diffCmd.Flags().BoolVar(&diffFlags.exitCode, "exit-code", false, "exit with status 1 when the documents differ")
}

func diffDocuments(cmd *cobra.Command, args []string) error {
	if args[0] == stdinPath && args[1] == stdinPath {
		return errors.New("at most one document can be read from standard input")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	docs := make([]codec.Document, 2)
	for i, path := range args {
		tree, _, err := decodeFile(cmd, c, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if docs[i], err = c.Encode(tree); err != nil {
			return err
		}
	}

	diff := codec.UnifiedDiff(docs[0], docs[1], args[0], args[1], diffFlags.context)
	if diff == "" {
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), diff)

	if diffFlags.exitCode {
		return &cli.CommandError{
			Command: "diff",
			Err:     errors.New("documents differ"),
			Code:    cli.ExitFailure,
		}
	}
	return nil
}
