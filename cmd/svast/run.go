package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/pass"
)

var runFlags struct {
	out    string
	format string
	dryRun bool
}

var runCmd = &cobra.Command{
	Use:   "run <document>",
	Short: "Run the configured pass pipeline over a document",
	Long:  `Run the passes listed under pipeline.passes over a document and write the
final tree.

Passes run in order. The first failing pass stops the run; nothing is
written then and the command exits with status 3. With snapshots enabled
every intermediate state is recorded, so the last good tree of a failed
run can be recovered with "svast snapshots show".

Examples:
  # Print the result on stdout
  svast run --config svast.yaml design.json

  # Write the result as YAML
  svast run --out build/design.yaml --format yaml design.json

  # Validate the pipeline configuration without running it
  svast run --dry-run design.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.out, "out", "o", "", "output file (stdout if not specified)")
	runCmd.Flags().StringVarP(&runFlags.format, "format", "f", "", "output format: json, yaml (uses codec.format if not specified)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "build the pipeline and decode the document without running it")
}

func runPipeline(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}
	out := c
	if runFlags.format != "" {
		format, err := codec.ParseFormat(runFlags.format)
		if err != nil {
			return err
		}
		out = codec.New().WithFormat(format)
	}

	tree, _, err := decodeFile(cmd, c, args[0])
	if err != nil {
		return err
	}

	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	pipeline, err := svc.pipeline(cfg, c)
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		names := make([]string, 0, len(pipeline.Passes()))
		for _, p := range pipeline.Passes() {
			names = append(names, fmt.Sprintf("%s (%s)", p.Name(), p.Kind()))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "pipeline ok: %d passes\n", len(names))
		for i, n := range names {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %d. %s\n", i+1, n)
		}
		return nil
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	res, err := pipeline.Run(ctx, tree)
	if err != nil {
		var failure *pass.PassFailure
		if errors.As(err, &failure) && res != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "run %s stopped at pass %d (%s) after applying [%s]\n",
				res.RunID, failure.Index, failure.Pass, strings.Join(res.Applied, ", "))
		}
		return err
	}

	doc, err := out.Encode(res.Last())
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, runFlags.out, doc); err != nil {
		return err
	}

	logger.Debug("run output written",
		"run_id", res.RunID,
		"applied", len(res.Applied),
		"bytes", doc.Len(),
		"duration", res.Duration,
	)
	return nil
}
