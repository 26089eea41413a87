package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/store"
)

var errDiskFull = errors.New("disk full")

// flakyKV fails every Set while failing is true.
type flakyKV struct {
	store.KVRepo
	failing bool
}

func (k *flakyKV) Set(ctx context.Context, key, value string) error {
	if k.failing {
		return errDiskFull
	}
	return k.KVRepo.Set(ctx, key, value)
}

func TestFailedPersistRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kv := &flakyKV{KVRepo: f.store.KV()}
	tr := New(kv, f.store.Attempts(), Options{Clock: f.clock, Location: time.UTC})
	require.NoError(t, tr.SignIn(ctx, user("u1")))

	_, err := tr.Ingest(ctx, "run-1", result("phishing-email", 4, 4))
	require.NoError(t, err)
	before := tr.Progress()

	kv.failing = true
	_, err = tr.Ingest(ctx, "run-2", result("wifi-security", 1, 5))
	require.ErrorIs(t, err, errDiskFull)
	_, err = tr.MarkSectionCompleted(ctx, progress.SectionLaws)
	require.ErrorIs(t, err, errDiskFull)

	after := tr.Progress()
	assert.Equal(t, before.TotalSimulationsCompleted, after.TotalSimulationsCompleted)
	assert.Equal(t, before.AverageScore, after.AverageScore)
	assert.Equal(t, before.TimeSpent, after.TimeSpent)
	assert.Empty(t, after.CompletedSections)
	assert.Zero(t, tr.PriorAttempts("wifi-security"))

	hist, err := tr.History(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, hist, 1, "a rejected run must not reach the history log")

	// Storage recovers: the same run can be recorded.
	kv.failing = false
	out, err := tr.Ingest(ctx, "run-2", result("wifi-security", 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Progress.TotalSimulationsCompleted)
}
