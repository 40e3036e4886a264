// Package version reports what build of gotrs-rtl is running.
//
// Release builds set the variables with -ldflags, e.g.
//
//	-X github.com/gotrs-io/gotrs-rtl/internal/version.Version=v0.2.0
//
// Plain `go build` / `go install` builds fall back to the module version
// and VCS stamps the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

var (
	Version   = "dev"
	GitCommit = unknown
	BuildDate = unknown
)

// Info is the build information reported by the CLI and /health.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
}

var readBuildInfo = debug.ReadBuildInfo

// GetInfo merges the -ldflags values with the embedded build info. Values
// set through -ldflags always win.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == unknown {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildDate == unknown {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns "v0.2.0 (abc1234)", with "-dirty" for modified trees.
func (i Info) String() string {
	commit := i.GitCommit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s)", i.Version, commit)
}

// Full adds the build date and Go version.
func (i Info) Full() string {
	return fmt.Sprintf("%s built %s with %s", i.String(), i.BuildDate, i.GoVersion)
}
