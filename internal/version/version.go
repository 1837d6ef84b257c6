// Package version reports build information for districtboard.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the binary name shown in version output.
const Name = "districtboard"

// Info contains build information.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	GoVer   string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// NewInfo creates an Info from the ldflags build variables.
func NewInfo(version, commit, date string) *Info {
	return &Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		GoVer:   runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// String returns the one-line version used by --version.
func (i *Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, i.Version, i.ShortCommit(), i.Date)
}

// FullString returns the multi-line version shown by the version command.
func (i *Info) FullString() string {
	return fmt.Sprintf(`%s %s
  Commit:   %s
  Built:    %s
  Go:       %s
  OS/Arch:  %s/%s`, Name, i.Version, i.Commit, i.Date, i.GoVer, i.OS, i.Arch)
}

// ShortCommit returns the first seven characters of the commit hash.
func (i *Info) ShortCommit() string {
	if len(i.Commit) > 7 && !strings.ContainsAny(i.Commit, " -") {
		return i.Commit[:7]
	}
	return i.Commit
}

// IsDev reports whether this is an unreleased build.
func (i *Info) IsDev() bool {
	return i.Version == "" || i.Version == "dev" || strings.HasSuffix(i.Version, "-dirty")
}

// LogArgs returns key-value pairs for the startup log line.
func (i *Info) LogArgs() []any {
	return []any{"version", i.Version, "commit", i.ShortCommit(), "go", i.GoVer}
}
