package version

import (
	goversion "github.com/caarlos0/go-version"
)

// Version and build information (set via ldflags at build time)
// Example: go build -ldflags="-X 'github.com/pixie-sh/skills-cli/internal/version.Version=v1.0.0'"
var (
	// Version is the semantic version (from git tags)
	Version = "dev"

	// Commit is the git commit hash (short form)
	Commit = "unknown"

	// Date is the build date
	Date = ""

	// BuiltBy names the builder, e.g. goreleaser
	BuiltBy = ""
)

const (
	appName        = "skills"
	appDescription = "Scaffolding generators for Gin, Bun monorepo, Next.js and React projects"
	appURL         = "https://github.com/pixie-sh/skills-cli"
)

// Info returns formatted version information
func Info() string {
	return Version + " (" + Commit + ")"
}

// Build returns the full build information, falling back to the values
// embedded by the Go toolchain when ldflags were not set.
func Build() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(appName, appDescription, appURL),
		func(i *goversion.Info) {
			if Version != "dev" {
				i.GitVersion = Version
			}
			if Commit != "unknown" {
				i.GitCommit = Commit
			}
			if Date != "" {
				i.BuildDate = Date
			}
			if BuiltBy != "" {
				i.BuiltBy = BuiltBy
			}
		},
	)
}
