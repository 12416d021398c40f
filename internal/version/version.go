// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Leaf package: it must not import other snapgpa packages.

package version

import (
	"runtime/debug"
)

// Version is the module version, or "dev" for local builds.
var Version, Commit = fromBuildInfo(debug.ReadBuildInfo())

func fromBuildInfo(info *debug.BuildInfo, ok bool) (version, commit string) {
	version = "dev"
	if !ok {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			commit = s.Value[:7]
		}
	}
	return
}

// String renders "version (commit)" or just the version.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
