// Package version provides information about the build version of the service.
package version

// Service is the name reported by the API and the CLI
const Service = "parachute"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'parachute/internal/core/version.version=v0.1.0'
	// -X 'parachute/internal/core/version.commit=abcd' -X 'parachute/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: Service,
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
