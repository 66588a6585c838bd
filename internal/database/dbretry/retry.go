package dbretry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Policy controls how failed database operations are retried.
type Policy struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
	// Retryable classifies failures. IsRetryableError is used when nil.
	Retryable func(error) bool
}

// DefaultPolicy is used by Operation and NoResult.
var DefaultPolicy = Policy{ //nolint:gochecknoglobals // -
	MaxElapsedTime:  30 * time.Second,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
	MaxRetries:      5,
}

// TxPolicy is used by Transaction. Only errors reported by the server are
// retried since a dropped connection may hide a commit that already applied.
var TxPolicy = Policy{ //nolint:gochecknoglobals // -
	MaxElapsedTime:  DefaultPolicy.MaxElapsedTime,
	InitialInterval: DefaultPolicy.InitialInterval,
	MaxInterval:     DefaultPolicy.MaxInterval,
	MaxRetries:      DefaultPolicy.MaxRetries,
	Retryable:       IsRetryableTxError,
}

// retryableClasses are SQLSTATE classes worth retrying as a whole:
// connection exceptions, transaction rollbacks, insufficient resources
// and operator intervention.
var retryableClasses = map[string]struct{}{ //nolint:gochecknoglobals // -
	"08": {},
	"40": {},
	"53": {},
	"57": {},
}

// retryableCodes are individual SQLSTATE codes outside those classes.
var retryableCodes = map[string]struct{}{ //nolint:gochecknoglobals // -
	"55006": {}, // object_in_use
	"55P03": {}, // lock_not_available
}

// transientMessages match network failures surfaced as plain errors.
var transientMessages = []string{ //nolint:gochecknoglobals // -
	"connection reset by peer",
	"broken pipe",
	"connection refused",
	"no connection",
	"i/o timeout",
	"EOF",
}

// IsRetryableError reports whether err is a transient failure.
// Context cancellation is never retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var pgerr pgdriver.Error
	if errors.As(err, &pgerr) {
		code := pgerr.Field('C')
		if len(code) == 5 {
			if _, ok := retryableClasses[code[:2]]; ok {
				return true
			}
		}

		_, ok := retryableCodes[code]

		return ok
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	for _, transient := range transientMessages {
		if strings.Contains(msg, transient) {
			return true
		}
	}

	return false
}

// IsRetryableTxError reports whether a failed transaction can run again without
// risking a duplicate write. Network errors and timeouts are excluded.
func IsRetryableTxError(err error) bool {
	var pgerr pgdriver.Error
	if !errors.As(err, &pgerr) {
		return false
	}

	return IsRetryableError(err)
}

// Operation runs a database operation that returns a result, retrying transient failures.
func Operation[T any](ctx context.Context, operation func(context.Context) (T, error)) (T, error) {
	return OperationWithPolicy(ctx, DefaultPolicy, operation)
}

// OperationWithPolicy is Operation with an explicit retry policy.
func OperationWithPolicy[T any](
	ctx context.Context, policy Policy, operation func(context.Context) (T, error),
) (T, error) {
	var result T

	err := run(ctx, policy, func() error {
		var err error

		result, err = operation(ctx)

		return err
	})

	return result, err
}

// NoResult runs a database operation that only returns an error, retrying transient failures.
func NoResult(ctx context.Context, operation func(context.Context) error) error {
	return run(ctx, DefaultPolicy, func() error {
		return operation(ctx)
	})
}

// Transaction runs fn inside a transaction using TxPolicy.
func Transaction(ctx context.Context, db *bun.DB, fn func(context.Context, bun.Tx) error) error {
	return run(ctx, TxPolicy, func() error {
		return db.RunInTx(ctx, nil, fn)
	})
}

// run drives the backoff loop and unwraps the last database error on failure.
func run(ctx context.Context, policy Policy, attempt func() error) error {
	var lastErr error

	retryable := policy.Retryable
	if retryable == nil {
		retryable = IsRetryableError
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(policy.MaxElapsedTime),
		backoff.WithInitialInterval(policy.InitialInterval),
		backoff.WithMaxInterval(policy.MaxInterval),
	), policy.MaxRetries)

	err := backoff.Retry(func() error {
		err := attempt()
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return backoff.Permanent(fmt.Errorf("non-retryable error: %w", err))
		}

		lastErr = err

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("database operation failed after retries: %w", lastErr)
		}

		return fmt.Errorf("database operation failed: %w", err)
	}

	return nil
}
