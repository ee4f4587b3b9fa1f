package domain

import (
	"errors"
	"fmt"
)

// NoSemverError reports an input that carries no major.minor.patch pattern.
type NoSemverError struct {
	Input string
}

// NewNoSemverError creates a NoSemverError for the offending input.
func NewNoSemverError(input string) *NoSemverError {
	return &NoSemverError{Input: input}
}

func (e *NoSemverError) Error() string {
	return fmt.Sprintf("unable to find semantic version inside '%s'", e.Input)
}

// IsNoSemver reports whether err is a NoSemverError.
func IsNoSemver(err error) bool {
	var target *NoSemverError
	return errors.As(err, &target)
}

// DowngradeError reports an attempt to move a version backward.
type DowngradeError struct {
	Old  Version
	Next Version
}

// NewDowngradeError creates a DowngradeError naming both versions.
func NewDowngradeError(old, next Version) *DowngradeError {
	return &DowngradeError{Old: old, Next: next}
}

func (e *DowngradeError) Error() string {
	return fmt.Sprintf("new version %s is older than existing appVersion %s", e.Next, e.Old)
}

// IsDowngrade reports whether err is a DowngradeError.
func IsDowngrade(err error) bool {
	var target *DowngradeError
	return errors.As(err, &target)
}

// ChartNotFoundError reports a chart file path that does not exist.
type ChartNotFoundError struct {
	Path string
}

// NewChartNotFoundError creates a ChartNotFoundError for the missing path.
func NewChartNotFoundError(path string) *ChartNotFoundError {
	return &ChartNotFoundError{Path: path}
}

func (e *ChartNotFoundError) Error() string {
	return fmt.Sprintf("expected chart file at '%s' but the file does not exist", e.Path)
}

// IsChartNotFound reports whether err is a ChartNotFoundError.
func IsChartNotFound(err error) bool {
	var target *ChartNotFoundError
	return errors.As(err, &target)
}

// MissingVersionError reports a chart document without a string 'version' field.
type MissingVersionError struct {
	Path string
}

// NewMissingVersionError creates a MissingVersionError for the chart at path.
func NewMissingVersionError(path string) *MissingVersionError {
	return &MissingVersionError{Path: path}
}

func (e *MissingVersionError) Error() string {
	return fmt.Sprintf("chart file '%s' is missing a string 'version' field", e.Path)
}

// IsMissingVersion reports whether err is a MissingVersionError.
func IsMissingVersion(err error) bool {
	var target *MissingVersionError
	return errors.As(err, &target)
}

// UnsupportedReleaseTypeError reports a bump requested with a release type
// that cannot drive one. Hitting it means a caller broke the contract of
// Version.Bump, not that the input was bad.
type UnsupportedReleaseTypeError struct {
	Type ReleaseType
}

// NewUnsupportedReleaseTypeError creates an UnsupportedReleaseTypeError for t.
func NewUnsupportedReleaseTypeError(t ReleaseType) *UnsupportedReleaseTypeError {
	return &UnsupportedReleaseTypeError{Type: t}
}

func (e *UnsupportedReleaseTypeError) Error() string {
	return fmt.Sprintf("unsupported release type '%s'", e.Type)
}

// IsUnsupportedReleaseType reports whether err is an UnsupportedReleaseTypeError.
func IsUnsupportedReleaseType(err error) bool {
	var target *UnsupportedReleaseTypeError
	return errors.As(err, &target)
}
