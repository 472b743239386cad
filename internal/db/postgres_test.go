package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TransactionFn hands the callback the deadline-bounded context alongside
// the transaction; repository closures must accept both.
func TestTransactionFnShape(t *testing.T) {
	var received context.Context
	var fn TransactionFn = func(ctx context.Context, tx pgx.Tx) error {
		received = ctx
		return nil
	}

	ctx := context.Background()
	require.NoError(t, fn(ctx, nil))
	assert.Equal(t, ctx, received)
}

func TestWithTxDeadlineAddsDefault(t *testing.T) {
	ctx, cancel := withTxDeadline(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, time.Second)
}

func TestWithTxDeadlineKeepsExisting(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer parentCancel()
	want, _ := parent.Deadline()

	ctx, cancel := withTxDeadline(parent)
	defer cancel()

	got, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, want, got)
}
