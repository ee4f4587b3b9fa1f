package domain

// UpdateRequest carries the inputs for one chart release update.
type UpdateRequest struct {
	RepoDir         string // working directory containing the chart files
	ChartFile       string // primary chart file path, relative to RepoDir
	ParentChartFile string // optional parent chart file path, relative to RepoDir
	ReleaseTag      string // tag the new application version is extracted from
	AppName         string // optional, drives the branch name output
	DryRun          bool   // compute everything but never write a file
}

// ChartUpdate captures the before/after state of a single chart file.
// Built once per chart and never mutated afterwards.
type ChartUpdate struct {
	OldAppVersion   string
	NewAppVersion   string
	OldChartVersion string
	NewChartVersion string
	Type            ReleaseType
	Basis           Basis
	Modified        bool   // whether the file was written (or would be, in dry-run)
	Diff            string // unified diff of the edit, populated in dry-run only
}

// ParentUpdate describes a cascaded parent chart bump.
type ParentUpdate struct {
	Path       string
	OldVersion string
	NewVersion string
}

// UpdateReport is the full outcome of an update invocation.
type UpdateReport struct {
	Chart      ChartUpdate
	Parent     *ParentUpdate // nil when no parent was modified
	BranchName string        // empty when no app name was supplied
	HasChanges bool
	Diffs      []string // dry-run previews, one per would-be edit
}
