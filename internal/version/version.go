// Package version holds build metadata, overridden at link time with
// -ldflags "-X github.com/MrSnakeDoc/wander/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"     // ex: v0.3.0
	Commit    = "none"    // ex: 4f2a9c1
	BuildDate = "unknown" // ex: 2026-03-02T09:14:00Z
	GoVersion = runtime.Version()
)

// String renders the build line logged at startup.
func String() string {
	return fmt.Sprintf("wander %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
