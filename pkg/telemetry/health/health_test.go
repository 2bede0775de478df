package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{"no checks", nil, StatusReady},
		{"all ok", map[string]CheckFunc{
			"watcher":   func(context.Context) error { return nil },
			"snapshots": func(context.Context) error { return nil },
		}, StatusReady},
		{"one failing", map[string]CheckFunc{
			"watcher":   func(context.Context) error { return nil },
			"snapshots": func(context.Context) error { return errors.New("database is closed") },
		}, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, check := range tt.checks {
				c.RegisterCheck(name, check)
			}
			status := c.CheckReadiness(context.Background())
			if status.Status != tt.want {
				t.Errorf("Status = %q, want %q", status.Status, tt.want)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("got %d results, want %d", len(status.Checks), len(tt.checks))
			}
		})
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return nil
	})

	status := c.CheckReadiness(context.Background())
	if r := status.Checks["slow"]; r.Status != StatusUnhealthy || r.Message != "health check timeout" {
		t.Errorf("slow check = %+v", r)
	}
}

func TestRegisterUnregister(t *testing.T) {
	c := New(0)
	c.RegisterCheck("b", func(context.Context) error { return nil })
	c.RegisterCheck("a", func(context.Context) error { return nil })
	if got := c.ListChecks(); len(got) != 2 || got[0] != "a" {
		t.Errorf("ListChecks() = %v", got)
	}
	c.UnregisterCheck("a")
	if got := c.ListChecks(); len(got) != 1 || got[0] != "b" {
		t.Errorf("after unregister ListChecks() = %v", got)
	}
}

func TestHandlers(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("snapshots", func(context.Context) error { return errors.New("down") })

	mux := http.NewServeMux()
	c.Mount(mux, "1.2.3", "abc")

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, LivenessPath, http.StatusOK},
		{http.MethodGet, ReadinessPath, http.StatusServiceUnavailable},
		{http.MethodGet, VersionPath, http.StatusOK},
		{http.MethodHead, LivenessPath, http.StatusOK},
		{http.MethodPost, LivenessPath, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.code {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.code)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, VersionPath, nil))
	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc" || info.GoVersion == "" {
		t.Errorf("version info = %+v", info)
	}
}
