package coordinator

import "github.com/nrfta/feed-go"

// Resetter is anything whose accumulated state can be dropped.
type Resetter interface {
	Reset()
}

// ResetController watches the query for meaningful changes. A change is any
// difference outside the page cursor. On change the target is reset and the
// new baseline recorded in the same call, so nothing computed under the old
// baseline can be accepted afterwards.
type ResetController struct {
	target   Resetter
	baseline *feed.Query
}

// NewResetController creates a controller with no baseline. The first
// observed query always counts as a change.
func NewResetController(target Resetter) *ResetController {
	return &ResetController{target: target}
}

// Observe compares q against the baseline. It reports whether the baseline
// changed, in which case the target has been reset. Re-observing an
// equivalent query is a no-op.
func (r *ResetController) Observe(q feed.Query) bool {
	if r.baseline != nil && r.baseline.Equivalent(q) {
		return false
	}

	baseline := q.Baseline()
	r.target.Reset()
	r.baseline = &baseline

	return true
}

// IsCurrent reports whether q belongs to the current baseline.
func (r *ResetController) IsCurrent(q feed.Query) bool {
	return r.baseline != nil && r.baseline.Equivalent(q)
}

// Baseline returns the current baseline, if any query was observed.
func (r *ResetController) Baseline() (feed.Query, bool) {
	if r.baseline == nil {
		return feed.Query{}, false
	}
	return *r.baseline, true
}
