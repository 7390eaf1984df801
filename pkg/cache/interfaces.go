package cache

import (
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/retention"
)

// Cleaner evaluates and cleans one package directory.
type Cleaner interface {
	CleanPackage(pkgDir string) *retention.PackageResult
}

// Counts tallies what a walk decided and what went wrong.
type Counts struct {
	Decisions map[retention.Reason]int
	Failures  map[deleter.Outcome]int
}

// Result contains information about one walk over the cache.
type Result struct {
	Root     string
	Freed    int64
	Packages []*retention.PackageResult
	Counts   Counts
	// Missing is set when the cache root did not exist.
	Missing bool
}

// Info represents cache information.
type Info struct {
	Directory    string
	TotalSize    int64
	Packages     int
	Versions     int
	ToolPackages int
}
