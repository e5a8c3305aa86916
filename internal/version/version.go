// Package version reports the strive build's identity: release version,
// commit, and build date. Release builds stamp these via ldflags; plain
// `go install` builds fall back to the module's embedded build info.
package version

import "runtime/debug"

// Stamped by the release pipeline:
//
//	-ldflags "-X .../internal/version.Version=v1.2.0 ..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full is what `strive version` prints: version, commit, and build date.
func Full() string {
	return Version + " (" + Commit + ", " + Date + ")"
}

// Short is the bare version string, for scripts and the dashboard footer.
func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(info)
	}
}

// fromBuildInfo fills any variable still holding its default from the
// module's build metadata. Stamped ldflags values always win; a HEAD build
// without a tag reports "(devel)" and keeps "dev".
func fromBuildInfo(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				Commit = rev
			}
		case "vcs.time":
			if Date == "unknown" && s.Value != "" {
				Date = s.Value
			}
		}
	}
}
