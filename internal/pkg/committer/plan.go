// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Domain aggregates change state in memory, repositories translate those
// changes into Spanner mutations without applying them, usecases collect
// the mutations (including outbox events) into a CommitPlan, and the plan
// is applied atomically at the end:
//
//	// 1. Load aggregate from repository
//	product, err := repo.GetByID(ctx, productID)
//
//	// 2. Call domain methods (pure business logic)
//	if err := product.SetTitle(title); err != nil {
//	    return err
//	}
//
//	// 3. Repository returns mutations (doesn't apply them)
//	plan := committer.NewPlan()
//	plan.Add(repo.UpdateMut(product))
//
//	// 4. Add outbox events to the same plan
//	plan.AddMultiple(outbox.Mutations(product.DomainEvents()))
//
//	// 5. Apply everything atomically
//	return committer.Apply(ctx, plan)
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrOptimisticLockConflict is returned when the stored version differs from the loaded one.
var ErrOptimisticLockConflict = errors.New("optimistic lock conflict")

// ErrRowNotFound is returned by ApplyWithVersionCheck when the versioned row is gone.
var ErrRowNotFound = errors.New("row not found")

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier is the subset of Committer used by usecases.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, table string, key spanner.Key, expectedVersion int64, plan *CommitPlan) error
}

var _ Applier = (*Committer)(nil)

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithReadWriteTransaction executes fn within a read-write transaction.
// This is useful when you need to perform reads before building mutations.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ExecuteUpdate runs a single DML statement in its own read-write
// transaction and returns the number of affected rows.
func (c *Committer) ExecuteUpdate(ctx context.Context, stmt spanner.Statement) (int64, error) {
	var affected int64
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update: %w", err)
	}
	return affected, nil
}

// ApplyWithVersionCheck executes the CommitPlan with optimistic locking.
// It reads the "version" column of the row identified by table/key and
// applies the plan only if it still equals expectedVersion.
//
// Returns ErrOptimisticLockConflict if the version in the database doesn't
// match, and ErrRowNotFound if the row no longer exists.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, table string, key spanner.Key, expectedVersion int64, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, table, key, []string{"version"})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return ErrRowNotFound
			}
			return fmt.Errorf("failed to read %s version: %w", table, err)
		}

		var currentVersion int64
		if err := row.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if currentVersion != expectedVersion {
			return fmt.Errorf("%w: expected version %d, got %d", ErrOptimisticLockConflict, expectedVersion, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrOptimisticLockConflict) || errors.Is(err, ErrRowNotFound) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}
