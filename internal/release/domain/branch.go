package domain

import (
	"regexp"
	"strings"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// BranchName derives the update branch slug for an application:
// "update-<slug>-<version>". The slug is the lowercased app name with every
// run of non-alphanumeric characters collapsed to a single hyphen, defaulting
// to "app" when nothing survives. The version is appVersion when set,
// otherwise a version extracted from releaseTag, otherwise "latest".
func BranchName(appName, appVersion, releaseTag string) string {
	version := strings.TrimSpace(appVersion)
	if version == "" {
		if v, err := ExtractVersion(releaseTag); err == nil {
			version = v.Raw
		} else {
			version = "latest"
		}
	}

	slug := nonAlnumRuns.ReplaceAllString(strings.ToLower(appName), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "app"
	}
	return "update-" + slug + "-" + version
}
