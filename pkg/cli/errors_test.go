package cli

import (
	"errors"
	"fmt"
	"testing"

	"svdata-hq/svast/pkg/config"
	sverrors "svdata-hq/svast/pkg/svast/errors"
	"svdata-hq/svast/pkg/svast/pass"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "with field",
			err:  NewConfigError("codec.format", "must be json or yaml"),
			want: "config error in codec.format: must be json or yaml",
		},
		{
			name: "without field",
			err:  NewConfigError("", "failed to load config"),
			want: "config error: failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewCommandError("run", underlying)

	if got, want := err.Error(), "command run failed: underlying error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is(err, underlying) = false, want true")
	}
}

func TestExitCode(t *testing.T) {
	decodeErr := &sverrors.DecodeError{Kind: sverrors.KindUnknownKind, Message: "unknown kind \"Modul\""}
	failure := &pass.PassFailure{Index: 1, Pass: "lint", Kind: pass.KindExternal, Message: "boom"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"config error", NewConfigError("", "bad"), ExitConfig},
		{"validation error", fmt.Errorf("load: %w", config.ValidationError{}), ExitConfig},
		{"decode error", fmt.Errorf("read a.json: %w", decodeErr), ExitInvalid},
		{"pass failure", failure, ExitPass},
		{"pass failure wrapping decode error", &pass.PassFailure{Message: "invalid output document", Err: decodeErr}, ExitPass},
		{"explicit code", &CommandError{Command: "diff", Err: errors.New("documents differ"), Code: ExitFailure}, ExitFailure},
		{"command error without code", NewCommandError("check", decodeErr), ExitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
