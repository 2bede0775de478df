package cli

import (
	"errors"
	"fmt"

	"svdata-hq/svast/pkg/config"
	sverrors "svdata-hq/svast/pkg/svast/errors"
	"svdata-hq/svast/pkg/svast/pass"
)

// Exit codes of the svast command.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2 // a document failed to decode
	ExitPass    = 3 // a pipeline pass failed
	ExitConfig  = 4
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution. A non-zero
// Code overrides the exit code derived from Err.
type CommandError struct {
	Command string
	Err     error
	Code    int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return cmdErr.Code
	}

	var cfgErr *ConfigError
	var validation config.ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &validation) {
		return ExitConfig
	}

	var failure *pass.PassFailure
	if errors.As(err, &failure) {
		return ExitPass
	}

	if len(sverrors.All(err)) > 0 {
		return ExitInvalid
	}
	return ExitFailure
}
