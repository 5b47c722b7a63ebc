package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCancelsPrevious(t *testing.T) {
	var tr Tracker

	first := tr.Start(context.Background(), "a")
	second := tr.Start(context.Background(), "b")

	assert.Equal(t, StateCancelled, first.State())
	assert.False(t, first.Valid())
	assert.ErrorIs(t, first.Context().Err(), context.Canceled)
	assert.True(t, second.Valid())
	assert.Same(t, second, tr.Current())
	assert.Greater(t, second.ID(), first.ID())

	select {
	case <-first.Done():
	default:
		t.Fatal("cancelled task should be done")
	}
}

func TestCommittingTaskCannotBeCancelled(t *testing.T) {
	var tr Tracker

	first := tr.Start(context.Background(), "a")
	require.True(t, first.BeginCommit())

	second := tr.Start(context.Background(), "b")

	assert.Equal(t, StateCommitting, first.State())
	assert.True(t, first.Valid())
	assert.False(t, first.Cancel())
	assert.NoError(t, first.Context().Err())

	require.True(t, first.Finish())
	assert.Equal(t, StateCommitted, first.State())
	assert.Same(t, second, tr.Current())
}

func TestBeginCommitFailsAfterParentCancel(t *testing.T) {
	var tr Tracker
	ctx, cancel := context.WithCancel(context.Background())

	tk := tr.Start(ctx, "a")
	cancel()

	assert.False(t, tk.BeginCommit())
	assert.Equal(t, StateCancelled, tk.State())
	assert.Nil(t, tr.Current())
}

func TestFinishRequiresCommitting(t *testing.T) {
	var tr Tracker
	tk := tr.Start(context.Background(), "a")

	assert.False(t, tk.Finish())
	assert.Equal(t, StateRunning, tk.State())
}

func TestReleaseOnlyForgetsCurrent(t *testing.T) {
	var tr Tracker
	first := tr.Start(context.Background(), "a")
	second := tr.Start(context.Background(), "b")

	tr.Release(first)
	assert.True(t, tr.IsCurrent(second))

	tr.Release(second)
	assert.Nil(t, tr.Current())
}
