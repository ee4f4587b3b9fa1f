package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nathantilsley/chart-release/internal/platform/config"
	"github.com/nathantilsley/chart-release/internal/platform/logger"
	"github.com/nathantilsley/chart-release/internal/platform/telemetry"
	actionout "github.com/nathantilsley/chart-release/internal/release/adapters/action_out"
	chartstore "github.com/nathantilsley/chart-release/internal/release/adapters/chart_store"
	linediff "github.com/nathantilsley/chart-release/internal/release/adapters/line_diff"
	"github.com/nathantilsley/chart-release/internal/release/app"
	"github.com/nathantilsley/chart-release/internal/release/domain"
	"github.com/nathantilsley/chart-release/internal/release/ports"
)

type updateOptions struct {
	helmRepoDir     string
	chartFile       string
	parentChartFile string
	releaseTag      string
	resultFile      string
	appName         string
	githubOutput    string
	dryRun          bool
}

func newUpdateCmd() *cobra.Command {
	var opts updateOptions
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Set the chart appVersion from a release tag and bump the chart version to match",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.helmRepoDir, "helm-repo-dir", "", "repository directory containing the chart files")
	flags.StringVar(&opts.chartFile, "chart-file", "", "chart file path, relative to --helm-repo-dir")
	flags.StringVar(&opts.parentChartFile, "parent-chart-file", "", "optional parent chart file to cascade-bump")
	flags.StringVar(&opts.releaseTag, "release-tag", "", "release tag carrying the new application version")
	flags.StringVar(&opts.resultFile, "result-file", "", "optional file to also receive the JSON result")
	flags.StringVar(&opts.appName, "app-name", "", "application name used to derive the branch name output")
	flags.StringVar(&opts.githubOutput, "github-output", "", "key=value outputs file (defaults to $GITHUB_OUTPUT)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the would-be edits as unified diffs without writing any file")
	_ = cmd.MarkFlagRequired("helm-repo-dir")
	_ = cmd.MarkFlagRequired("chart-file")
	_ = cmd.MarkFlagRequired("release-tag")

	return cmd
}

func runUpdate(cmd *cobra.Command, opts updateOptions) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx := cmd.Context()
	tel, err := telemetry.New(ctx, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(ctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	ctx, span := tel.Tracer.Start(ctx, "chart_release.update")
	defer span.End()

	repoDir, err := filepath.Abs(opts.helmRepoDir)
	if err != nil {
		return fmt.Errorf("resolving repo dir: %w", err)
	}

	service := app.NewUpdateService(chartstore.New(), linediff.New(), log)
	report, err := service.Execute(ctx, domain.UpdateRequest{
		RepoDir:         repoDir,
		ChartFile:       opts.chartFile,
		ParentChartFile: opts.parentChartFile,
		ReleaseTag:      opts.releaseTag,
		AppName:         opts.appName,
		DryRun:          opts.dryRun,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("release.type", report.Chart.Type.String()),
		attribute.Bool("release.chart_modified", report.Chart.Modified),
		attribute.Bool("release.has_changes", report.HasChanges),
	)

	for _, diff := range report.Diffs {
		fmt.Fprintln(cmd.OutOrStdout(), diff)
	}

	return emitReport(cmd, opts, cfg, report, actionout.New())
}

// emitReport writes the JSON payload (stdout and, when requested, a result
// file) and appends the action output variables.
func emitReport(
	cmd *cobra.Command,
	opts updateOptions,
	cfg config.Config,
	report domain.UpdateReport,
	reporter ports.ReportingPort,
) error {
	if opts.resultFile != "" {
		if err := reporter.WriteResultFile(opts.resultFile, report); err != nil {
			return err
		}
	}

	if err := reporter.WriteJSON(cmd.OutOrStdout(), report, true); err != nil {
		return err
	}

	outputsPath := opts.githubOutput
	if outputsPath == "" {
		outputsPath = cfg.GitHubOutput
	}
	if outputsPath == "" {
		return nil
	}
	return reporter.AppendOutputs(outputsPath, report)
}
