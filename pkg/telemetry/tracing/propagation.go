package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Command passes receive the W3C trace context of their pass span as
// environment variables, following the OpenTelemetry convention for
// process environment carriers:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//	TRACESTATE=...
//
// An instrumented pass process can continue the trace from them.

// Propagator returns the global text map propagator.
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// EnvCarrier returns KEY=VALUE entries carrying the trace context of ctx.
// It is empty when ctx has no sampled span or no propagator is installed.
func EnvCarrier(ctx context.Context) []string {
	carrier := propagation.MapCarrier{}
	Propagator().Inject(ctx, carrier)

	var env []string
	for _, key := range carrier.Keys() {
		env = append(env, strings.ToUpper(key)+"="+carrier.Get(key))
	}
	return env
}

// ExtractEnv returns ctx extended with the trace context found in env
// (KEY=VALUE entries such as os.Environ()). A svast process started as a
// command pass uses it to join the caller's trace.
func ExtractEnv(ctx context.Context, env []string) context.Context {
	carrier := propagation.MapCarrier{}
	for _, kv := range env {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch k := strings.ToLower(key); k {
		case "traceparent", "tracestate", "baggage":
			carrier.Set(k, val)
		}
	}
	return Propagator().Extract(ctx, carrier)
}

// ValidateTraceParent reports whether traceparent is a well-formed W3C
// version 00 traceparent value.
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}
	if parts[0] != "00" || !isHex(parts[1], 32) || !isHex(parts[2], 16) || !isHex(parts[3], 2) {
		return false
	}
	return strings.Trim(parts[1], "0") != "" && strings.Trim(parts[2], "0") != ""
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
