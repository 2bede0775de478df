package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"svdata-hq/svast/internal/svtest"
	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgFile, verbose = "", false
	checkFlags.progress, checkFlags.quiet = false, false
	fmtFlags.format, fmtFlags.write = "", false
	rangesFlags.output = "text"
	diffFlags.context, diffFlags.exitCode = 3, false
	runFlags.out, runFlags.format, runFlags.dryRun = "", "", false
	snapshotsFlags.run, snapshotsFlags.output, snapshotsFlags.latest = "", "text", false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// writeTree writes tree as a document under dir.
func writeTree(t *testing.T, dir, name string, tree concrete.Node, format codec.Format) string {
	t.Helper()
	doc, err := codec.New().WithFormat(format).Encode(tree)
	svtest.AssertNoError(t, err)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	svtest.AssertNoError(t, err)

	svtest.AssertContains(t, out, "svast "+Version)
	svtest.AssertContains(t, out, "Go Version: "+runtime.Version())
	svtest.AssertContains(t, out, "OS/Arch: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTree(t, dir, "counter.json", svtest.Counter(), codec.FormatJSON)
	yamlDoc := writeTree(t, dir, "counter.yaml", svtest.Counter(), codec.FormatYAML)
	bad := writeFile(t, dir, "bad.json", `{"kind": "SourceTxt", "descriptions": []}`)
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
		wantErr  []string
	}{
		{
			name:     "valid documents",
			args:     []string{"check", good, yamlDoc},
			wantCode: cli.ExitOK,
			wantOut:  []string{"ok    " + good, "ok    " + yamlDoc},
		},
		{
			name:     "unknown kind",
			args:     []string{"check", good, bad},
			wantCode: cli.ExitInvalid,
			wantOut:  []string{"ok    " + good, "FAIL  " + bad},
			wantErr:  []string{"unknown_kind", "SourceText"},
		},
		{
			name:     "unreadable file",
			args:     []string{"check", missing},
			wantCode: cli.ExitInvalid,
			wantOut:  []string{"FAIL  " + missing},
			wantErr:  []string{"failed to read document"},
		},
		{
			name:     "progress",
			args:     []string{"check", "--progress", "--quiet", good, yamlDoc},
			wantCode: cli.ExitOK,
			wantErr:  []string{"2/2 documents"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := execute(t, "", tt.args...)
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
			for _, s := range tt.wantOut {
				svtest.AssertContains(t, out, s)
			}
			for _, s := range tt.wantErr {
				svtest.AssertContains(t, errOut, s)
			}
		})
	}
}

func TestCheckStdin(t *testing.T) {
	doc, err := codec.Encode(svtest.Int32())
	svtest.AssertNoError(t, err)

	out, _, err := execute(t, doc.String(), "check", "-")
	svtest.AssertNoError(t, err)
	svtest.AssertContains(t, out, "ok    -")
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeTree(t, dir, "counter.yaml", svtest.Counter(), codec.FormatYAML)

	out, _, err := execute(t, "", "fmt", path)
	svtest.AssertNoError(t, err)
	want, err := codec.Encode(svtest.Counter())
	svtest.AssertNoError(t, err)
	if out != want.String() {
		t.Errorf("fmt output differs from canonical JSON:\n%s", out)
	}

	_, _, err = execute(t, "", "fmt", "--format", "json", "--write", path)
	svtest.AssertNoError(t, err)
	written, err := os.ReadFile(path)
	svtest.AssertNoError(t, err)
	if string(written) != want.String() {
		t.Errorf("rewritten file is not canonical JSON:\n%s", written)
	}

	if _, _, err := execute(t, "", "fmt", "--write", "-"); err == nil {
		t.Error("expected error for --write on standard input")
	}
	if _, _, err := execute(t, "", "fmt", "--format", "xml", path); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRangesCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeTree(t, dir, "counter.json", svtest.Counter(), codec.FormatJSON)

	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "", "ranges", path)
		svtest.AssertNoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 7 {
			t.Fatalf("got %d lines, want header and 6 ranges:\n%s", len(lines), out)
		}
		svtest.AssertContains(t, lines[0], "PATH")
		svtest.AssertContains(t, out, "-2147483648")
		svtest.AssertContains(t, out, "?")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "", "ranges", "--output", "json", path)
		svtest.AssertNoError(t, err)

		var ranges []map[string]any
		if err := json.Unmarshal([]byte(out), &ranges); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if len(ranges) != 6 {
			t.Errorf("got %d ranges, want 6", len(ranges))
		}
	})

	t.Run("csv", func(t *testing.T) {
		out, _, err := execute(t, "", "ranges", "-o", "csv", path)
		svtest.AssertNoError(t, err)
		if !strings.HasPrefix(out, "PATH,TYPE,SIGNED,STATES,WIDTH,MIN,MAX\n") {
			t.Errorf("unexpected csv header:\n%s", out)
		}
	})

	t.Run("bad output", func(t *testing.T) {
		if _, _, err := execute(t, "", "ranges", "-o", "xml", path); err == nil {
			t.Error("expected error for unknown output format")
		}
	})
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	jsonDoc := writeTree(t, dir, "a.json", svtest.Counter(), codec.FormatJSON)
	yamlDoc := writeTree(t, dir, "a.yaml", svtest.Counter(), codec.FormatYAML)
	other := writeTree(t, dir, "b.json", svtest.Int32(), codec.FormatJSON)

	out, _, err := execute(t, "", "diff", "--exit-code", jsonDoc, yamlDoc)
	svtest.AssertNoError(t, err)
	if out != "" {
		t.Errorf("equal trees produced a diff:\n%s", out)
	}

	out, _, err = execute(t, "", "diff", jsonDoc, other)
	svtest.AssertNoError(t, err)
	svtest.AssertContains(t, out, "--- "+jsonDoc)
	svtest.AssertContains(t, out, "+++ "+other)

	_, _, err = execute(t, "", "diff", "--exit-code", jsonDoc, other)
	if got := cli.ExitCode(err); got != cli.ExitFailure {
		t.Errorf("exit code = %d, want %d", got, cli.ExitFailure)
	}

	if _, _, err := execute(t, "", "diff", "-", "-"); err == nil {
		t.Error("expected error when both documents come from standard input")
	}
}
