package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/svast"
	"svdata-hq/svast/pkg/svast/abstract"
)

var rangesFlags struct {
	output string
}

var rangesCmd = &cobra.Command{
	Use:   "ranges <document>",
	Short: "Show the value range of every integer type",
	Long:  `Derive the width and the minimum and maximum value of every integer
type in a document.

A range depending on something the document does not settle, such as a
parameter, is indeterminate and shown as "?".

Examples:
  svast ranges design.json
  svast ranges --output csv design.json > ranges.csv`,
	Args: cobra.ExactArgs(1),
	RunE: showRanges,
}

func init() {
	rootCmd.AddCommand(rangesCmd)

	rangesCmd.Flags().StringVarP(&rangesFlags.output, "output", "o", "text", "output format: text, json, csv")
}

// rangeTable renders integer ranges as rows.
type rangeTable []svast.IntegerRange

func (t rangeTable) Header() []string {
	return []string{"PATH", "TYPE", "SIGNED", "STATES", "WIDTH", "MIN", "MAX"}
}

func (t rangeTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		states := "2"
		if r.FourState {
			states = "4"
		}
		rows = append(rows, []string{
			r.Path,
			r.Type,
			strconv.FormatBool(r.Signed),
			states,
			bound(r.Width),
			bound(r.Min),
			bound(r.Max),
		})
	}
	return rows
}

func bound(b abstract.Bound) string {
	if !b.IsDeterminate() {
		return "?"
	}
	return b.String()
}

func showRanges(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(rangesFlags.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	tree, _, err := decodeFile(cmd, c, args[0])
	if err != nil {
		return err
	}

	ranges := svast.IntegerRanges(tree, nil)
	if format == cli.FormatJSON {
		if ranges == nil {
			ranges = []svast.IntegerRange{}
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), ranges)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), rangeTable(ranges))
}
