// Package version provides information about the build version of the service.
package version

// RulesVersion stamps detection events with the heuristic generation that
// produced them; bump when rules.json semantics change
const RulesVersion = 1

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named service. The version,
// commit, and date variables are intended to be set at build time via -ldflags
func Info(service string) BuildInfo {
	// Set via -ldflags "-X 'codefence/internal/core/version.version=v0.0.1'
	// -X 'codefence/internal/core/version.commit=abcd'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
