// Package age decides how long a version directory has gone unused.
package age

import (
	"time"

	"github.com/glorpus-work/nugetclean/pkg/fsutil"
)

// DefaultMinAge is the retention window used when none is configured.
const DefaultMinAge = 90 * 24 * time.Hour

// Day is the unit the retention window is configured in.
const Day = 24 * time.Hour

// LastUsed returns the latest access or write time across files.
// Files without a readable access time contribute their write time only.
// It returns the zero time for an empty slice.
func LastUsed(files []fsutil.FileStat) time.Time {
	var last time.Time
	for _, f := range files {
		if t := f.LastTouched(); t.After(last) {
			last = t
		}
	}
	return last
}

// Evaluator compares last-used instants against a retention window.
type Evaluator struct {
	MinAge time.Duration
	Now    func() time.Time
}

// NewEvaluator returns an Evaluator using the wall clock.
func NewEvaluator(minAge time.Duration) *Evaluator {
	return &Evaluator{MinAge: minAge, Now: time.Now}
}

// Age returns how long ago lastUsed was.
func (e *Evaluator) Age(lastUsed time.Time) time.Duration {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().Sub(lastUsed)
}

// Expired reports whether lastUsed lies strictly outside the retention window.
// A directory touched exactly MinAge ago is kept.
func (e *Evaluator) Expired(lastUsed time.Time) bool {
	return e.Age(lastUsed) > e.MinAge
}

// Days returns the whole number of days in d, rounded down.
func Days(d time.Duration) int64 {
	return int64(d / Day)
}
