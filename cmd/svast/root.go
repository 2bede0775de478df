package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "svast",
	Short: "svast - SystemVerilog syntax tree documents",
	Long:  `svast reads, checks and transforms SystemVerilog syntax trees stored as
JSON or YAML documents.

Documents are decoded into grammar-shaped trees and rejected with located
errors when they do not fit the grammar. Pipelines of passes rewrite a tree
step by step; passes run in-process or as external commands exchanging
documents over stdin and stdout.

A path of "-" reads the document from standard input.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
