package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"wayfarer/internal/ai"
	"wayfarer/internal/metrics"
	"wayfarer/internal/modules/location"
)

// RetryPolicy bounds collaborator calls. Attempt n waits BaseBackoff*2^(n-1)
// before attempt n+1.
type RetryPolicy struct {
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, ai.ErrPermanent),
		errors.Is(err, location.ErrPermanent):
		return false
	}
	return true
}

// call runs fn under the planner's retry policy inside a span named after the
// collaborator.
func call[T any](ctx context.Context, p *TripPlanner, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := p.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("collaborator", name)))
	defer span.End()

	var zero T
	maxAttempts := p.policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		actx, cancel := ctx, context.CancelFunc(func() {})
		if p.policy.Timeout > 0 {
			actx, cancel = context.WithTimeout(ctx, p.policy.Timeout)
		}
		start := time.Now()
		v, err := fn(actx)
		cancel()
		metrics.CollaboratorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.CollaboratorCalls.WithLabelValues(name, "success").Inc()
			span.SetAttributes(attribute.Int("attempts", attempt))
			return v, nil
		}
		metrics.CollaboratorCalls.WithLabelValues(name, "error").Inc()

		if ctx.Err() != nil {
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "cancelled")
			return zero, fmt.Errorf("%s: %w", name, ctx.Err())
		}

		if !retryable(err) || attempt >= maxAttempts {
			span.RecordError(err)
			span.SetStatus(codes.Error, name+" failed")
			return zero, &CollaboratorError{Collaborator: name, Attempts: attempt, Err: err}
		}

		backoff := p.policy.BaseBackoff * time.Duration(1<<(attempt-1))
		p.logger.Warn("collaborator attempt failed, retrying",
			zap.String("collaborator", name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%s: %w", name, ctx.Err())
		case <-timer.C:
		}
	}
}
