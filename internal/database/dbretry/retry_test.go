package dbretry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/casebot/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = dbretry.Policy{
	MaxElapsedTime:  time.Second,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxRetries:      3,
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer"), want: true},
		{name: "wrapped refused", err: errors.Join(errors.New("dial"), errors.New("connection refused")), want: true},
		{name: "plain failure", err: errors.New("duplicate key value"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestOperationRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	attempts := 0
	got, err := dbretry.OperationWithPolicy(t.Context(), fastPolicy, func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("i/o timeout")
		}

		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, attempts)
}

func TestOperationStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	attempts := 0
	permanent := errors.New("syntax error")

	_, err := dbretry.OperationWithPolicy(t.Context(), fastPolicy, func(context.Context) (int, error) {
		attempts++
		return 0, permanent
	})

	require.Error(t, err)
	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "non-retryable error")
}

func TestOperationGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	_, err := dbretry.OperationWithPolicy(t.Context(), fastPolicy, func(context.Context) (string, error) {
		attempts++
		return "", errors.New("broken pipe")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after retries")
	assert.Equal(t, int(fastPolicy.MaxRetries)+1, attempts)
}

func TestIsRetryableTxError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
	}{
		{name: "nil", err: nil},
		{name: "eof after commit", err: errors.New("EOF")},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer")},
		{name: "deadline", err: context.DeadlineExceeded},
		{name: "plain failure", err: errors.New("duplicate key value")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, dbretry.IsRetryableTxError(tt.err))
		})
	}
}

func TestTxPolicyDoesNotRepeatAmbiguousCommits(t *testing.T) {
	t.Parallel()

	policy := fastPolicy
	policy.Retryable = dbretry.TxPolicy.Retryable

	attempts := 0
	_, err := dbretry.OperationWithPolicy(t.Context(), policy, func(context.Context) (int64, error) {
		attempts++
		return 0, errors.New("read tcp: connection reset by peer")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-retryable error")
	assert.Equal(t, 1, attempts)
}
