// Package version holds build information set by the linker.
//
//	go build -ldflags "-X github.com/tsawler/outline/version.GitRelease=v1.2.0 \
//	    -X github.com/tsawler/outline/version.GitCommit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag, or "dev" for local builds
	GitRelease = "dev"

	// GitCommit is the commit hash of the build
	GitCommit = "unknown"

	// GitCommitDate is the commit date of the build
	GitCommitDate = "unknown"

	// GoInfo describes the toolchain and platform
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)
