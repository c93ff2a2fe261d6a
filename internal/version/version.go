// Package version holds the commit-msg release number baked into the binary.
package version

import (
	_ "embed"
	"strings"
)

// VERSION is the release number from the VERSION file next to this source.
// The version command reports it when the build did not inject one.
//
//go:embed VERSION
var VERSION string

// Get returns the embedded release number as a "v"-prefixed tag, e.g. "v0.1.0".
// A VERSION file that already carries the prefix is not prefixed twice.
func Get() string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(VERSION), "v")
}
