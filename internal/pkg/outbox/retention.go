package outbox

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// Executor runs a DML statement and reports affected rows.
// *committer.Committer satisfies it.
type Executor interface {
	ExecuteUpdate(ctx context.Context, stmt spanner.Statement) (int64, error)
}

// Retention deletes processed outbox events after their retention window.
// Pending and processing events are never touched.
type Retention struct {
	exec      Executor
	clock     clock.Clock
	logger    *zap.Logger
	completed time.Duration
	failed    time.Duration
}

// NewRetention creates a retention job.
func NewRetention(exec Executor, clk clock.Clock, logger *zap.Logger, completed, failed time.Duration) *Retention {
	return &Retention{
		exec:      exec,
		clock:     clk,
		logger:    logger,
		completed: completed,
		failed:    failed,
	}
}

// Purge deletes completed events older than the completed window and
// failed events older than the failed window.
func (r *Retention) Purge(ctx context.Context) (int64, error) {
	now := r.clock.Now().UTC()
	stmt := RetentionStatement(now.Add(-r.completed), now.Add(-r.failed))

	deleted, err := r.exec.ExecuteUpdate(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to purge outbox events: %w", err)
	}

	if deleted > 0 {
		r.logger.Info("purged outbox events",
			zap.Int64("deleted", deleted),
			zap.Duration("completed_retention", r.completed),
			zap.Duration("failed_retention", r.failed),
		)
	}
	return deleted, nil
}

// RetentionStatement builds the DELETE for the given cutoffs.
func RetentionStatement(completedCutoff, failedCutoff time.Time) spanner.Statement {
	return query.From(m_outbox.TableName).
		Where(query.Or(
			query.And(query.Eq(m_outbox.Status, m_outbox.StatusCompleted), query.Lt(m_outbox.ProcessedAt, completedCutoff)),
			query.And(query.Eq(m_outbox.Status, m_outbox.StatusFailed), query.Lt(m_outbox.ProcessedAt, failedCutoff)),
		)).
		Delete().
		Build()
}
