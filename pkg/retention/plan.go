package retention

import (
	"sort"

	"github.com/glorpus-work/nugetclean/pkg/semver"
)

// BuildPlan decides the fate of every version directory of one package.
// It never touches the filesystem.
//
// Passes run in order and each directory is decided by the first pass that
// claims it:
//  1. prune (when enabled): everything except the newest release and the newest
//     prerelease above it.
//  2. empty: directories without files.
//  3. age: directories last used strictly before the retention window.
//
// Whatever is left is retained.
func BuildPlan(pkgDir string, versions []VersionDir, policy Policy) *Plan {
	working := make([]VersionDir, len(versions))
	copy(working, versions)
	sortVersionDirs(working)

	plan := &Plan{Package: pkgDir, Decisions: make([]Decision, 0, len(working))}

	if policy.Prune {
		var kept []VersionDir
		kept, plan.Decisions = prune(working, plan.Decisions)
		working = kept
	}

	for _, dir := range working {
		switch {
		case dir.Empty():
			plan.Decisions = append(plan.Decisions, Decision{Dir: dir, Reason: ReasonEmpty})
		case policy.Age != nil && policy.Age.Expired(dir.LastUsed):
			plan.Decisions = append(plan.Decisions, Decision{
				Dir:    dir,
				Reason: ReasonAgedOut,
				Age:    policy.Age.Age(dir.LastUsed),
			})
		default:
			plan.Decisions = append(plan.Decisions, Decision{Dir: dir, Reason: ReasonRetained})
		}
	}

	return plan
}

// prune appends a pruned decision for every directory that is neither the newest
// release nor the newest prerelease above it, and returns the survivors.
// Without any release nothing survives.
func prune(dirs []VersionDir, decisions []Decision) ([]VersionDir, []Decision) {
	versions := make([]*semver.Version, 0, len(dirs))
	for _, d := range dirs {
		versions = append(versions, d.Version)
	}

	newestRelease := semver.NewestRelease(versions)
	newestPrerelease := semver.NewestPrereleaseAbove(versions, newestRelease)

	kept := make([]VersionDir, 0, 2)
	for _, d := range dirs {
		if newestRelease.Equal(d.Version) || newestPrerelease.Equal(d.Version) {
			kept = append(kept, d)
			continue
		}
		decisions = append(decisions, Decision{Dir: d, Reason: ReasonPruned})
	}
	return kept, decisions
}

func sortVersionDirs(dirs []VersionDir) {
	sort.SliceStable(dirs, func(i, j int) bool {
		if c := dirs[i].Version.Compare(dirs[j].Version); c != 0 {
			return c < 0
		}
		return dirs[i].Path < dirs[j].Path
	})
}
