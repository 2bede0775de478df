package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

var checkFlags struct {
	progress bool
	quiet    bool
}

var checkCmd = &cobra.Command{
	Use:   "check <document>...",
	Short: "Validate documents",
	Long:  `Decode each document and report every error with its location.

A document passes when it decodes into a tree. All documents are checked
even after a failure; the command exits with status 2 when any failed.

Examples:
  # Check one document
  svast check design.json

  # Check a batch with a progress bar
  svast check --progress build/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkDocuments,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show a progress bar on stderr")
	checkCmd.Flags().BoolVarP(&checkFlags.quiet, "quiet", "q", false, "only report failures")
}

func checkDocuments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var progress cli.ProgressReporter
	if checkFlags.progress {
		progress = cli.NewProgressReporter(errOut)
		progress.Start(int64(len(args)))
	}

	failed := 0
	for i, path := range args {
		tree, data, err := decodeFile(cmd, c, path)
		switch {
		case err == nil:
			if !checkFlags.quiet {
				fmt.Fprintf(out, "ok    %s (%s, %d nodes)\n", path, humanize.Bytes(uint64(len(data))), countNodes(tree))
			}
		case len(sverrors.All(err)) > 0:
			failed++
			fmt.Fprintf(out, "FAIL  %s\n", path)
			for _, de := range sverrors.All(err) {
				fmt.Fprint(errOut, de.Error())
			}
		default:
			// Unreadable file.
			failed++
			fmt.Fprintf(out, "FAIL  %s\n", path)
			if progress != nil {
				progress.Error(err)
			} else {
				fmt.Fprintf(errOut, "%v\n", err)
			}
		}
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if failed > 0 {
		return &cli.CommandError{
			Command: "check",
			Err:     fmt.Errorf("%d of %d documents failed", failed, len(args)),
			Code:    cli.ExitInvalid,
		}
	}
	return nil
}

func countNodes(tree concrete.Node) int {
	n := 0
	concrete.Walk(tree, func(concrete.Node) bool {
		n++
		return true
	})
	return n
}
