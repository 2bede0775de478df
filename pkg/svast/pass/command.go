package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/telemetry/logging"
	"svdata-hq/svast/pkg/telemetry/tracing"
)

// maxStderr bounds the stderr text carried in a failure message.
const maxStderr = 4 << 10

// CommandOptions configures a command pass.
type CommandOptions struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=VALUE entries appended to the process
	// environment.
	Env []string

	// Timeout bounds one invocation. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// Logger receives the invocation log. Credential-like environment
	// values are redacted. Defaults to slog.Default().
	Logger *logging.Logger
}

// Command creates an external pass that runs argv as a subprocess. The
// document is written to stdin; stdout must hold the output document or
// a failure envelope. A non-zero exit fails the pass with the process's
// stderr. The W3C trace context of the run is passed as TRACEPARENT.
func Command(name string, argv []string, opts CommandOptions) Pass {
	argv = append([]string(nil), argv...)
	logger := opts.Logger
	if logger == nil {
		logger = logging.Wrap(slog.Default())
	}
	logger = logger.WithComponent("pass.command")

	return External(name, func(ctx context.Context, in codec.Document) (codec.Document, error) {
		if len(argv) == 0 {
			return codec.Document{}, errors.New("empty command")
		}
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
		cmd.Dir = opts.Dir
		extra := append(append([]string(nil), opts.Env...), tracing.EnvCarrier(ctx)...)
		cmd.Env = append(os.Environ(), extra...)
		cmd.Stdin = bytes.NewReader(in.Bytes())
		cmd.WaitDelay = 5 * time.Second

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		logger.DebugContext(ctx, "running command pass",
			"argv", argv,
			"dir", opts.Dir,
			"env", logging.RedactEnv(extra),
			"input_bytes", in.Len(),
		)

		start := time.Now()
		err := cmd.Run()
		if err != nil {
			if ctx.Err() != nil {
				return codec.Document{}, fmt.Errorf("command %s: %w", argv[0], ctx.Err())
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return codec.Document{}, fmt.Errorf("command %s exited with status %d: %s",
					argv[0], exitErr.ExitCode(), stderrText(stderr.Bytes()))
			}
			return codec.Document{}, fmt.Errorf("command %s: %w", argv[0], err)
		}

		logger.DebugContext(ctx, "command pass finished",
			"output_bytes", stdout.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return codec.NewDocument(stdout.Bytes()), nil
	})
}

func stderrText(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "(no stderr output)"
	}
	if len(s) > maxStderr {
		s = s[:maxStderr] + "..."
	}
	return s
}
