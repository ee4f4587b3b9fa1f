// Package linediff renders unified diffs of chart document snapshots.
package linediff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Adapter implements ports.DiffPort with a line-based unified diff.
type Adapter struct{}

// New creates a new line diff adapter.
func New() *Adapter {
	return &Adapter{}
}

// ComputeDiff returns the unified diff between the before and after
// snapshots of a document. Identical snapshots yield an empty string.
func (a *Adapter) ComputeDiff(fromLabel, toLabel string, before, after []byte) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  2, // chart metadata files are small, a little context suffices
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return fmt.Sprintf("error computing diff: %s", err)
	}
	return strings.TrimSpace(text)
}
