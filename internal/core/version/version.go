// Package version reports build metadata stamped at link time
package version

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named binary
// set via -ldflags "-X cinebot/internal/core/version.version=v0.1.0 -X cinebot/internal/core/version.commit=abcd"
func Info(service string) BuildInfo {
	if service == "" {
		service = "cinebot"
	}
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
