// Package actionout emits update results as JSON payloads and as GitHub
// Actions key=value output variables.
package actionout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathantilsley/chart-release/internal/release/domain"
)

// payload mirrors the JSON contract consumed by the composite action.
type payload struct {
	OldAppVersion     string             `json:"old_app_version"`
	NewAppVersion     string             `json:"new_app_version"`
	OldChartVersion   string             `json:"old_chart_version"`
	NewChartVersion   string             `json:"new_chart_version"`
	ReleaseType       string             `json:"release_type"`
	ChartModified     bool               `json:"chart_modified"`
	ParentChartUpdate *parentChartUpdate `json:"parent_chart_update"`
	BranchName        string             `json:"branch_name"`
	HasChanges        bool               `json:"has_changes"`
}

type parentChartUpdate struct {
	Path       string `json:"path"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
}

// Adapter implements ports.ReportingPort.
type Adapter struct{}

// New creates a new action output adapter.
func New() *Adapter {
	return &Adapter{}
}

func buildPayload(report domain.UpdateReport) payload {
	p := payload{
		OldAppVersion:   report.Chart.OldAppVersion,
		NewAppVersion:   report.Chart.NewAppVersion,
		OldChartVersion: report.Chart.OldChartVersion,
		NewChartVersion: report.Chart.NewChartVersion,
		ReleaseType:     report.Chart.Type.String(),
		ChartModified:   report.Chart.Modified,
		BranchName:      report.BranchName,
		HasChanges:      report.HasChanges,
	}
	if report.Parent != nil {
		p.ParentChartUpdate = &parentChartUpdate{
			Path:       report.Parent.Path,
			OldVersion: report.Parent.OldVersion,
			NewVersion: report.Parent.NewVersion,
		}
	}
	return p
}

// WriteJSON writes the report payload as a JSON document to w.
func (a *Adapter) WriteJSON(w io.Writer, report domain.UpdateReport, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(buildPayload(report)); err != nil {
		return fmt.Errorf("encoding result payload: %w", err)
	}
	return nil
}

// WriteResultFile writes the compact JSON payload to path, creating parent
// directories as needed.
func (a *Adapter) WriteResultFile(path string, report domain.UpdateReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating result directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	if err := a.WriteJSON(f, report, false); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AppendOutputs appends key=value lines to the outputs file at path (the
// GITHUB_OUTPUT contract): booleans as the literals true/false, objects as
// compact JSON, absent values (an untouched parent) omitted entirely.
func (a *Adapter) AppendOutputs(path string, report domain.UpdateReport) error {
	p := buildPayload(report)

	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("new_app_version", p.NewAppVersion)
	line("release_type", p.ReleaseType)
	line("new_chart_version", p.NewChartVersion)
	if p.ParentChartUpdate != nil {
		encoded, err := json.Marshal(p.ParentChartUpdate)
		if err != nil {
			return fmt.Errorf("encoding parent chart update: %w", err)
		}
		line("parent_chart_update", string(encoded))
	}
	line("chart_modified", strconv.FormatBool(p.ChartModified))
	line("branch_name", p.BranchName)
	line("has_changes", strconv.FormatBool(p.HasChanges))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening outputs file: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("appending outputs: %w", err)
	}
	return f.Close()
}
