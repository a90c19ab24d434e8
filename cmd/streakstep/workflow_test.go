package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI compiles the binary into a temp dir
func buildCLI(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	bin := filepath.Join(t.TempDir(), "streakstep")
	build := exec.Command(goBin, "build", "-o", bin, ".")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return bin
}

func testEnv(dataDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "STREAKSTEP_") && !strings.HasPrefix(e, "HOME=") {
			env = append(env, e)
		}
	}
	return append(env,
		fmt.Sprintf("HOME=%s", filepath.Dir(dataDir)),
		fmt.Sprintf("STREAKSTEP_DATA_DIR=%s", dataDir),
		"STREAKSTEP_TIMEZONE=UTC",
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := buildCLI(t)

	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dataDir := filepath.Join(t.TempDir(), "streakstep")
			env := append(testEnv(dataDir), "STREAKSTEP_BACKEND="+backend)

			runCmd(t, cliPath, env, "init")

			out := runCmd(t, cliPath, env, "status")
			if !strings.Contains(out, "Left:    1 Day left") {
				t.Errorf("unexpected status:\n%s", out)
			}

			runCmd(t, cliPath, env, "journal", "add", "Ran 5k", "--type", "victory", "-d", "first run")
			runCmd(t, cliPath, env, "journal", "add", "Skipped gym", "--type", "setback")

			out = runCmd(t, cliPath, env, "journal", "list")
			if strings.Index(out, "Skipped gym") > strings.Index(out, "Ran 5k") {
				t.Errorf("expected newest first:\n%s", out)
			}

			runCmd(t, cliPath, env, "rewind", "--days", "1")
			out = runCmd(t, cliPath, env, "status", "--no-prompt")
			if !strings.Contains(out, "0 Days") {
				t.Errorf("expected completed status after rewind:\n%s", out)
			}

			runCmd(t, cliPath, env, "fail", "--yes")
			out = runCmd(t, cliPath, env, "debug", "dump-streak")
			var dump map[string]interface{}
			if err := json.Unmarshal([]byte(out), &dump); err != nil {
				t.Fatalf("dump-streak output is not JSON: %v\n%s", err, out)
			}
			if dump["streak"] != float64(0) || dump["phase"] != "running" {
				t.Errorf("unexpected streak after fail: %v", dump)
			}

			runCmd(t, cliPath, env, "settings", "--precise-timer=true")
			out = runCmd(t, cliPath, env, "settings", "--list")
			if !strings.Contains(out, "Precise Timer:   true") {
				t.Errorf("setting not persisted:\n%s", out)
			}

			runCmd(t, cliPath, env, "backup", "create")
			out = runCmd(t, cliPath, env, "backup", "list")
			if !strings.Contains(out, "1 total") {
				t.Errorf("expected one backup:\n%s", out)
			}

			out = runCmd(t, cliPath, env, "doctor")
			if !strings.Contains(out, "All diagnostics passed!") {
				t.Errorf("doctor reported problems:\n%s", out)
			}
		})
	}
}

func TestSQLiteRequiresInit(t *testing.T) {
	cliPath := buildCLI(t)
	dataDir := filepath.Join(t.TempDir(), "streakstep")
	env := append(testEnv(dataDir), "STREAKSTEP_BACKEND=sqlite")

	cmd := exec.Command(cliPath, "status")
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected status to fail before init, got:\n%s", out)
	}
	if !strings.Contains(string(out), "init --backend sqlite") {
		t.Errorf("unexpected error output:\n%s", out)
	}
}
