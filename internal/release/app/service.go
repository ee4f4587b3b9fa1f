// Package app orchestrates chart metadata updates driven by release tags.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nathantilsley/chart-release/internal/release/domain"
	"github.com/nathantilsley/chart-release/internal/release/ports"
)

// UpdateService implements ports.UpdateUseCase by composing version
// extraction, release classification, and the chart store: it moves the
// primary chart's appVersion to the tagged release, bumps the chart version
// to match, and cascades the same bump to an optional parent chart.
type UpdateService struct {
	store  ports.ChartStorePort
	differ ports.DiffPort
	logger *slog.Logger
}

// NewUpdateService creates an UpdateService wired with its driven ports.
func NewUpdateService(store ports.ChartStorePort, differ ports.DiffPort, logger *slog.Logger) *UpdateService {
	return &UpdateService{
		store:  store,
		differ: differ,
		logger: logger,
	}
}

// Execute runs the update workflow for one release tag.
func (s *UpdateService) Execute(ctx context.Context, req domain.UpdateRequest) (domain.UpdateReport, error) {
	next, err := domain.ExtractVersion(req.ReleaseTag)
	if err != nil {
		return domain.UpdateReport{}, err
	}

	chartPath := filepath.Join(req.RepoDir, req.ChartFile)
	s.logger.Info("updating chart", "path", chartPath, "newVersion", next.Raw, "dryRun", req.DryRun)

	primary, err := s.updateChart(chartPath, next, domain.Auto(), req.DryRun)
	if err != nil {
		return domain.UpdateReport{}, err
	}

	report := domain.UpdateReport{Chart: primary}
	if primary.Diff != "" {
		report.Diffs = append(report.Diffs, primary.Diff)
	}

	if req.ParentChartFile != "" && primary.Type != domain.ReleaseNone {
		parentPath := filepath.Join(req.RepoDir, req.ParentChartFile)
		s.logger.Info("cascading to parent chart", "path", parentPath, "releaseType", primary.Type)

		// The parent follows the primary's resolved type in lockstep; it is
		// never re-classified against its own appVersion. A failure here is
		// not rolled back: the primary file is already written.
		parent, err := s.updateChart(parentPath, next, domain.Fixed(primary.Type), req.DryRun)
		if err != nil {
			return domain.UpdateReport{}, err
		}
		if parent.Modified {
			report.Parent = &domain.ParentUpdate{
				Path:       req.ParentChartFile,
				OldVersion: parent.OldChartVersion,
				NewVersion: parent.NewChartVersion,
			}
		}
		if parent.Diff != "" {
			report.Diffs = append(report.Diffs, parent.Diff)
		}
	}

	if req.AppName != "" {
		report.BranchName = domain.BranchName(req.AppName, primary.NewAppVersion, req.ReleaseTag)
	}
	report.HasChanges = primary.Modified || report.Parent != nil

	s.logger.Info("update complete",
		"releaseType", primary.Type,
		"basis", primary.Basis,
		"chartVersion", primary.NewChartVersion,
		"hasChanges", report.HasChanges,
	)
	return report, nil
}

// updateChart applies the release to a single chart file and reports its
// before/after state. When the policy resolves to ReleaseNone nothing is
// written and the chart version is returned unchanged. Writes only happen
// after every read and validation succeeded, so a failing update leaves the
// file untouched.
func (s *UpdateService) updateChart(
	path string,
	next domain.Version,
	policy domain.BumpPolicy,
	dryRun bool,
) (domain.ChartUpdate, error) {
	doc, err := s.store.Load(path)
	if err != nil {
		return domain.ChartUpdate{}, err
	}

	oldAppVersion, hasAppVersion := doc.Get("appVersion")
	oldChartVersion, ok := doc.Get("version")
	if !ok {
		return domain.ChartUpdate{}, domain.NewMissingVersionError(path)
	}

	cls, err := policy.Resolve(oldAppVersion, next)
	if err != nil {
		return domain.ChartUpdate{}, err
	}

	update := domain.ChartUpdate{
		OldAppVersion:   oldAppVersion,
		NewAppVersion:   next.Raw,
		OldChartVersion: oldChartVersion,
		NewChartVersion: oldChartVersion,
		Type:            cls.Type,
		Basis:           cls.Basis,
	}

	if cls.Type == domain.ReleaseNone {
		s.logger.Info("chart already up to date", "path", path, "version", oldChartVersion)
		return update, nil
	}

	var before []byte
	if dryRun {
		if before, err = doc.Encode(); err != nil {
			return domain.ChartUpdate{}, fmt.Errorf("encoding %s: %w", path, err)
		}
	}

	// Charts without an appVersion field stay that way; their version
	// tracking is chart-version-only.
	if hasAppVersion {
		doc.Set("appVersion", next.Raw)
	}

	current, err := domain.ExtractVersion(oldChartVersion)
	if err != nil {
		return domain.ChartUpdate{}, err
	}
	bumped, err := current.Bump(cls.Type)
	if err != nil {
		return domain.ChartUpdate{}, err
	}
	doc.Set("version", bumped.String())

	update.NewChartVersion = bumped.String()
	update.Modified = true

	if dryRun {
		after, err := doc.Encode()
		if err != nil {
			return domain.ChartUpdate{}, fmt.Errorf("encoding %s: %w", path, err)
		}
		update.Diff = s.differ.ComputeDiff(path, path+" (updated)", before, after)
		s.logger.Info("dry run, skipping write", "path", path)
		return update, nil
	}

	if err := s.store.Save(path, doc); err != nil {
		return domain.ChartUpdate{}, err
	}
	return update, nil
}
