package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OTEL_ENABLED", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeChart(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "Chart.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestUpdateCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeChart(t, dir, "name: billing\nappVersion: 2.4.9\nversion: 0.3.1\n")
	outputs := filepath.Join(dir, "github_output")

	stdout, err := runCLI(t,
		"update",
		"--helm-repo-dir", dir,
		"--chart-file", "Chart.yaml",
		"--release-tag", "v2.5.0",
		"--app-name", "My App!",
		"--github-output", outputs,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("stdout is not a JSON payload: %v\n%s", err, stdout)
	}
	if payload["release_type"] != "minor" {
		t.Errorf("release_type = %v, want minor", payload["release_type"])
	}
	if payload["new_chart_version"] != "0.4.0" {
		t.Errorf("new_chart_version = %v, want 0.4.0", payload["new_chart_version"])
	}
	if payload["branch_name"] != "update-my-app-2.5.0" {
		t.Errorf("branch_name = %v", payload["branch_name"])
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "version: 0.4.0") {
		t.Errorf("chart file not updated:\n%s", raw)
	}

	lines, err := os.ReadFile(outputs)
	if err != nil {
		t.Fatalf("read outputs: %v", err)
	}
	if !strings.Contains(string(lines), "new_app_version=2.5.0") {
		t.Errorf("outputs file missing new_app_version:\n%s", lines)
	}
}

func TestUpdateCommandResultFile(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "appVersion: 1.0.0\nversion: 0.1.0\n")
	resultFile := filepath.Join(dir, "results", "update.json")
	t.Setenv("GITHUB_OUTPUT", "")

	_, err := runCLI(t,
		"update",
		"--helm-repo-dir", dir,
		"--chart-file", "Chart.yaml",
		"--release-tag", "v1.0.1",
		"--result-file", resultFile,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(resultFile)
	if err != nil {
		t.Fatalf("read result file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("result file is not valid JSON: %v", err)
	}
	if payload["release_type"] != "patch" {
		t.Errorf("release_type = %v, want patch", payload["release_type"])
	}
}

func TestUpdateCommandGithubOutputEnvFallback(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "appVersion: 1.0.0\nversion: 0.1.0\n")
	outputs := filepath.Join(dir, "github_output")
	t.Setenv("GITHUB_OUTPUT", outputs)

	_, err := runCLI(t,
		"update",
		"--helm-repo-dir", dir,
		"--chart-file", "Chart.yaml",
		"--release-tag", "v1.1.0",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, err := os.ReadFile(outputs)
	if err != nil {
		t.Fatalf("outputs file not written via GITHUB_OUTPUT: %v", err)
	}
	if !strings.Contains(string(lines), "release_type=minor") {
		t.Errorf("outputs file missing release_type:\n%s", lines)
	}
}

func TestUpdateCommandDowngradeFails(t *testing.T) {
	dir := t.TempDir()
	fixture := "appVersion: 2.0.0\nversion: 0.9.0\n"
	path := writeChart(t, dir, fixture)

	_, err := runCLI(t,
		"update",
		"--helm-repo-dir", dir,
		"--chart-file", "Chart.yaml",
		"--release-tag", "v1.0.0",
	)
	if err == nil {
		t.Fatal("expected the downgrade to fail")
	}
	if !strings.Contains(err.Error(), "older than existing appVersion") {
		t.Errorf("unexpected error message: %v", err)
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}
	if string(raw) != fixture {
		t.Errorf("file changed despite the failure:\n%s", raw)
	}
}

func TestUpdateCommandMissingRequiredFlags(t *testing.T) {
	_, err := runCLI(t, "update", "--chart-file", "Chart.yaml")
	if err == nil {
		t.Fatal("expected missing required flags to fail")
	}
}

func TestUpdateCommandDryRunPrintsDiff(t *testing.T) {
	dir := t.TempDir()
	fixture := "name: billing\nappVersion: 2.4.9\nversion: 0.3.1\n"
	path := writeChart(t, dir, fixture)
	t.Setenv("GITHUB_OUTPUT", "")

	stdout, err := runCLI(t,
		"update",
		"--helm-repo-dir", dir,
		"--chart-file", "Chart.yaml",
		"--release-tag", "v2.5.0",
		"--dry-run",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout, "+version: 0.4.0") {
		t.Errorf("dry run diff missing:\n%s", stdout)
	}
	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}
	if string(raw) != fixture {
		t.Errorf("dry run wrote to the file:\n%s", raw)
	}
}
