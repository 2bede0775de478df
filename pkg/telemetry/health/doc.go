// Package health serves liveness and readiness probes for long-running
// svast processes (`svast watch --metrics-addr`).
//
//	checker := health.New(0)
//	checker.RegisterCheck("snapshots", store.Ping)
//	checker.Mount(mux, version, commit)
//
// GET /readyz answers 503 with the failing checks while any check fails.
package health
