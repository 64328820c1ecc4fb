// Package version provides information about the build version of the service.
package version

// Service is the name the API reports about itself
const Service = "labqc-api"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information, stamped at build time with
// -ldflags "-X 'labqc/internal/core/version.version=v0.1.0' -X 'labqc/internal/core/version.commit=abcd'
// -X 'labqc/internal/core/version.date=2026-10-14'"
func Info() BuildInfo {
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
