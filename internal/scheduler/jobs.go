package scheduler

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/models/m_otp"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
	"github.com/light-bringer/fulfillment-service/internal/pkg/query"
)

// Job names as reported in status and metrics.
const (
	JobOTPPurge        = "otp_purge"
	JobOutboxRetention = "outbox_retention"
	JobOutboxRelay     = "outbox_relay"
)

// OTPPurge deletes one-time passwords whose expiry has passed.
type OTPPurge struct {
	exec   outbox.Executor
	clock  clock.Clock
	logger *zap.Logger
}

// NewOTPPurge creates the expired-OTP purge job.
func NewOTPPurge(exec outbox.Executor, clk clock.Clock, logger *zap.Logger) *OTPPurge {
	return &OTPPurge{exec: exec, clock: clk, logger: logger}
}

// Run deletes every OTP that expired before now.
func (j *OTPPurge) Run(ctx context.Context) error {
	deleted, err := j.exec.ExecuteUpdate(ctx, OTPPurgeStatement(j.clock.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to purge expired otps: %w", err)
	}
	if deleted > 0 {
		j.logger.Info("purged expired otps", zap.Int64("deleted", deleted))
	}
	return nil
}

// OTPPurgeStatement builds the DELETE for OTPs expiring before cutoff.
func OTPPurgeStatement(cutoff time.Time) spanner.Statement {
	return query.From(m_otp.TableName).
		Where(query.Lt(m_otp.ExpiresAt, cutoff)).
		Delete().
		Build()
}

// RetentionJob adapts outbox.Retention to a JobFunc.
func RetentionJob(r *outbox.Retention) JobFunc {
	return func(ctx context.Context) error {
		_, err := r.Purge(ctx)
		return err
	}
}

// RelayJob adapts outbox.Relay to a JobFunc.
func RelayJob(r *outbox.Relay) JobFunc {
	return func(ctx context.Context) error {
		_, err := r.Run(ctx)
		return err
	}
}
