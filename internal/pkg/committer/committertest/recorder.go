// Package committertest provides an in-memory committer.Applier for usecase tests.
package committertest

import (
	"context"
	"sync"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
)

// VersionCheck records the arguments of one ApplyWithVersionCheck call.
type VersionCheck struct {
	Table           string
	Key             spanner.Key
	ExpectedVersion int64
}

// Recorder captures applied plans instead of committing them.
// Set Err to make every call fail.
type Recorder struct {
	mu     sync.Mutex
	plans  []*committer.CommitPlan
	checks []VersionCheck

	Err error
}

var _ committer.Applier = (*Recorder)(nil)

// Apply records the plan.
func (r *Recorder) Apply(_ context.Context, plan *committer.CommitPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.plans = append(r.plans, plan)
	return nil
}

// ApplyWithVersionCheck records the plan and the version check.
func (r *Recorder) ApplyWithVersionCheck(_ context.Context, table string, key spanner.Key, expectedVersion int64, plan *committer.CommitPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.checks = append(r.checks, VersionCheck{Table: table, Key: key, ExpectedVersion: expectedVersion})
	r.plans = append(r.plans, plan)
	return nil
}

// Plans returns every recorded plan in order.
func (r *Recorder) Plans() []*committer.CommitPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*committer.CommitPlan(nil), r.plans...)
}

// Checks returns every recorded version check in order.
func (r *Recorder) Checks() []VersionCheck {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]VersionCheck(nil), r.checks...)
}

// Last returns the most recent plan, or nil.
func (r *Recorder) Last() *committer.CommitPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.plans) == 0 {
		return nil
	}
	return r.plans[len(r.plans)-1]
}
