package logging

import (
	"regexp"
	"strings"
)

// Redacted replaces secret values in log output.
const Redacted = "***"

// secretKey matches environment variable names that usually hold
// credentials.
var secretKey = regexp.MustCompile(`(?i)(token|secret|passw(or)?d|api[-_]?key|credential|private[-_]?key)`)

// RedactEnv returns a copy of env (KEY=VALUE entries) with the values of
// credential-like keys replaced by Redacted. Command passes log their
// environment through it.
func RedactEnv(env []string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, len(env))
	for i, kv := range env {
		key, _, found := strings.Cut(kv, "=")
		if found && secretKey.MatchString(key) {
			out[i] = key + "=" + Redacted
			continue
		}
		out[i] = kv
	}
	return out
}
