// Package buildinfo reports the contentstack build.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/contentstack/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/contentstack/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Unstamped builds fall back to the VCS data the Go toolchain embeds. The
// version also keys the render-tree cache, so trees resolved by one build are
// never served by another.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Short returns the version with an abbreviated commit, e.g. "v0.3.0 (1a2b3c4)".
func Short() string {
	if len(Commit) > 7 {
		return fmt.Sprintf("%s (%s)", Version, Commit[:7])
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\nbuilt %s\n", Short(), Date)
}
