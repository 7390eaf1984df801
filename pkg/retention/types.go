package retention

import (
	"time"

	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/semver"
)

// Reason records why a directory is (or is not) removed.
type Reason string

const (
	// ReasonRetained means the directory survives this run.
	ReasonRetained Reason = "retained"
	// ReasonPruned means a newer release or prerelease supersedes it.
	ReasonPruned Reason = "pruned"
	// ReasonEmpty means the version directory holds no files.
	ReasonEmpty Reason = "empty"
	// ReasonAgedOut means it was last used before the retention window.
	ReasonAgedOut Reason = "aged-out"
	// ReasonEmptyPackage means the package directory has no version directories left.
	ReasonEmptyPackage Reason = "empty-package"
)

// Counted reports whether directories removed for this reason add to freed bytes.
func (r Reason) Counted() bool {
	return r == ReasonPruned || r == ReasonAgedOut
}

// lockCheck reports whether removals for this reason rename the directory first.
func (r Reason) lockCheck() bool {
	return r == ReasonPruned || r == ReasonAgedOut
}

// VersionDir is one discovered version directory and what we know about its content.
type VersionDir struct {
	Path      string
	Version   *semver.Version
	Size      int64
	FileCount int
	LastUsed  time.Time
}

// Empty reports whether the directory contains no files at any depth.
func (v VersionDir) Empty() bool {
	return v.FileCount == 0
}

// Decision is the fate of one version directory.
type Decision struct {
	Dir    VersionDir
	Reason Reason
	// Age is only set by the age pass.
	Age time.Duration
}

// Plan is the ordered set of decisions for one package directory.
// Every discovered version directory appears exactly once.
type Plan struct {
	Package   string
	Decisions []Decision
}

// Deletions returns the decisions that remove a directory, in execution order.
func (p *Plan) Deletions() []Decision {
	out := make([]Decision, 0, len(p.Decisions))
	for _, d := range p.Decisions {
		if d.Reason != ReasonRetained {
			out = append(out, d)
		}
	}
	return out
}

// Bytes returns the bytes the plan would free if every deletion succeeded.
func (p *Plan) Bytes() int64 {
	var total int64
	for _, d := range p.Decisions {
		if d.Reason.Counted() {
			total += d.Dir.Size
		}
	}
	return total
}

// ByReason returns the decisions carrying reason r.
func (p *Plan) ByReason(r Reason) []Decision {
	var out []Decision
	for _, d := range p.Decisions {
		if d.Reason == r {
			out = append(out, d)
		}
	}
	return out
}

// Policy selects which retention rules run.
type Policy struct {
	Prune bool
	Age   *age.Evaluator
}

// Skipped is a child directory excluded from retention decisions.
type Skipped struct {
	Path string
	Err  error
}

// PackageResult is the outcome of cleaning one package directory.
type PackageResult struct {
	Path    string
	Plan    *Plan
	Skipped []Skipped
	// Removed holds the counted removals (deleted or simulated).
	Removed []deleter.Result
	// Failures holds removals that were refused or failed.
	Failures []deleter.Result
	// PackageRemoved is set when the emptied package directory itself was removed.
	PackageRemoved bool
	Freed          int64
	Err            error
}

// EventKind identifies an Event.
type EventKind string

const (
	// EventSkipped reports a child directory that is not a version directory.
	EventSkipped EventKind = "skipped"
	// EventMissingRoot reports that the cache root does not exist.
	EventMissingRoot EventKind = "missing-root"
	// EventAged reports a directory past the retention window, before removal.
	EventAged EventKind = "aged"
	// EventRemoving is emitted right before a directory is (or would be) removed.
	EventRemoving EventKind = "removing"
	// EventFailed reports a removal or listing that did not succeed.
	EventFailed EventKind = "failed"
)

// Event is a progress notification for the reporting layer.
type Event struct {
	Kind    EventKind
	Path    string
	Reason  Reason
	Size    int64
	Age     time.Duration
	Outcome deleter.Outcome
	Err     error
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Emit delivers e to the hook, if any.
func (h Hooks) Emit(e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}
