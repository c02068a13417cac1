// Package version reports which srccat build is running. The values are stamped at
// link time by the release build, for example:
//
//	go build -ldflags "-X 'srccat/pkg/version.Version=1.2.3' -X 'srccat/pkg/version.Commit=abcdefg' -X 'srccat/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
//
// Development builds report "dev".
package version

import (
	"fmt"
	"runtime"
)

// AppName is the binary name used in logs and version output.
const AppName = "srccat"

// Stamped by -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string // runtime.Version() of the toolchain that built the binary.
	Platform  string // GOOS/GOARCH.
}

// Get collects the stamped values and the runtime's toolchain and platform.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String is the line printed by `srccat version`.
func (i Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s) built at %s with %s on %s",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
