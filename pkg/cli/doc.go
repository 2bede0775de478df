/*
Package cli provides the helpers shared by the svast command: exit codes,
result formatting, progress reporting and signal handling.

Exit codes:

ExitCode maps a command error to the process status. Decode errors exit
with ExitInvalid, pass failures with ExitPass and configuration problems
with ExitConfig:

	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}

Output formatting:

Results implementing Table render as aligned text or CSV; every result
renders as JSON:

	formatter := cli.NewFormatter(cli.FormatCSV)
	if err := formatter.FormatTo(os.Stdout, ranges); err != nil {
		return err
	}

Signal handling:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
