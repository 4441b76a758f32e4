// Package version carries build metadata for the depwarn CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
	metaColor    = color.New(color.Faint)
)

// String renders a one-line description of the build, colored when the
// output supports it.
func String() string {
	var b strings.Builder
	b.WriteString(nameColor.Sprint("depwarn"))
	b.WriteString(" ")
	b.WriteString(versionColor.Sprint(Version))

	var meta []string
	if GitCommit != "" {
		meta = append(meta, "commit "+shortHash(GitCommit))
	}
	if BuildDate != "" {
		meta = append(meta, "built "+BuildDate)
	}
	if len(meta) > 0 {
		b.WriteString(" ")
		b.WriteString(metaColor.Sprint(fmt.Sprintf("(%s)", strings.Join(meta, ", "))))
	}
	return b.String()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
