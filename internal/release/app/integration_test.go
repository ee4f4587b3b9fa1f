package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathantilsley/chart-release/internal/platform/logger"
	chartstore "github.com/nathantilsley/chart-release/internal/release/adapters/chart_store"
	linediff "github.com/nathantilsley/chart-release/internal/release/adapters/line_diff"
	"github.com/nathantilsley/chart-release/internal/release/domain"
)

// Integration tests exercising the service against the real filesystem
// store and diff adapters.

const chartFixture = `apiVersion: v2
name: billing
description: Billing service chart
type: application
appVersion: 2.4.9
version: 0.3.1
dependencies:
  - name: postgresql
    version: 12.1.0
`

func writeChart(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func realService() *UpdateService {
	return NewUpdateService(chartstore.New(), linediff.New(), logger.New("error"))
}

func TestIntegrationMinorBumpPreservesLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeChart(t, dir, "charts/billing/Chart.yaml", chartFixture)

	report, err := realService().Execute(context.Background(), domain.UpdateRequest{
		RepoDir:    dir,
		ChartFile:  "charts/billing/Chart.yaml",
		ReleaseTag: "v2.5.0",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Chart.Type != domain.ReleaseMinor {
		t.Errorf("type = %s, want minor", report.Chart.Type)
	}
	if report.Chart.NewChartVersion != "0.4.0" {
		t.Errorf("chart version = %s, want 0.4.0", report.Chart.NewChartVersion)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(raw)

	if !strings.Contains(content, "appVersion: 2.5.0") {
		t.Errorf("appVersion not updated:\n%s", content)
	}
	if !strings.Contains(content, "version: 0.4.0") {
		t.Errorf("version not bumped:\n%s", content)
	}
	if !strings.Contains(content, "name: postgresql") {
		t.Errorf("dependency block lost:\n%s", content)
	}

	// Key order must survive the round trip.
	var keys []string
	for _, line := range strings.Split(content, "\n") {
		if len(line) > 0 && line[0] != ' ' && line[0] != '-' && strings.Contains(line, ":") {
			keys = append(keys, strings.SplitN(line, ":", 2)[0])
		}
	}
	want := []string{"apiVersion", "name", "description", "type", "appVersion", "version", "dependencies"}
	if len(keys) != len(want) {
		t.Fatalf("top-level keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key order changed: got %v, want %v", keys, want)
		}
	}
}

func TestIntegrationParentCascade(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "charts/billing/Chart.yaml", chartFixture)
	writeChart(t, dir, "Chart.yaml", "apiVersion: v2\nname: umbrella\nappVersion: 2.4.9\nversion: 1.2.3\n")

	report, err := realService().Execute(context.Background(), domain.UpdateRequest{
		RepoDir:         dir,
		ChartFile:       "charts/billing/Chart.yaml",
		ParentChartFile: "Chart.yaml",
		ReleaseTag:      "v2.5.0",
		AppName:         "Billing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Parent == nil {
		t.Fatal("expected a parent update")
	}
	if report.Parent.NewVersion != "1.3.0" {
		t.Errorf("parent version = %s, want 1.3.0", report.Parent.NewVersion)
	}
	if report.BranchName != "update-billing-2.5.0" {
		t.Errorf("branch name = %q, want update-billing-2.5.0", report.BranchName)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "Chart.yaml"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "version: 1.3.0") {
		t.Errorf("parent file not updated:\n%s", raw)
	}
}

func TestIntegrationDowngradeLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	fixture := "appVersion: 2.0.0\nversion: 0.9.0\n"
	path := writeChart(t, dir, "Chart.yaml", fixture)

	_, err := realService().Execute(context.Background(), domain.UpdateRequest{
		RepoDir:    dir,
		ChartFile:  "Chart.yaml",
		ReleaseTag: "v1.0.0",
	})
	if !domain.IsDowngrade(err) {
		t.Fatalf("expected DowngradeError, got %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != fixture {
		t.Errorf("file changed despite the rejected downgrade:\n%s", raw)
	}
}

func TestIntegrationDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeChart(t, dir, "Chart.yaml", chartFixture)

	report, err := realService().Execute(context.Background(), domain.UpdateRequest{
		RepoDir:    dir,
		ChartFile:  "Chart.yaml",
		ReleaseTag: "v2.5.0",
		DryRun:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != chartFixture {
		t.Errorf("dry run wrote to the file:\n%s", raw)
	}

	if len(report.Diffs) != 1 {
		t.Fatalf("diff count = %d, want 1", len(report.Diffs))
	}
	diff := report.Diffs[0]
	if !strings.Contains(diff, "-version: 0.3.1") || !strings.Contains(diff, "+version: 0.4.0") {
		t.Errorf("diff missing version change:\n%s", diff)
	}
}
