// Package logging provides structured logging for svast on top of log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	log := logger.WithComponent("pipeline")
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithPass(ctx, 0, "rename-clk")
//	log.InfoContext(ctx, "pass applied", "duration", d)
//	// {"level":"INFO","msg":"pass applied","component":"pipeline",
//	//  "run_id":"...","pass":"rename-clk","pass_index":0,"duration":...}
//
// The console format is text without timestamps and is what the CLI uses
// on a terminal.
//
// Environment entries of command passes go through RedactEnv before they
// are logged.
package logging
