package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsKeepBestAcrossAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tracker.SignIn(ctx, user("u1")))

	first := result("phishing-email", 4, 4)
	_, err := f.tracker.Ingest(ctx, "run-1", first)
	require.NoError(t, err)

	second := result("phishing-email", 1, 4)
	second.Attempts = 2
	_, err = f.tracker.Ingest(ctx, "run-2", second)
	require.NoError(t, err)

	_, err = f.tracker.Ingest(ctx, "run-3", result("wifi-security", 2, 5))
	require.NoError(t, err)

	got, err := f.tracker.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 100, got["phishing-email"].BestPercent)
	assert.Equal(t, 2, got["phishing-email"].Attempts)
	assert.Equal(t, 40, got["wifi-security"].BestPercent)

	// The aggregate only keeps the latest result.
	r, ok := f.tracker.Progress().ResultFor("phishing-email")
	require.True(t, ok)
	assert.Equal(t, 1, r.Score)
}

func TestStandingsNeedSignIn(t *testing.T) {
	f := newFixture(t)
	_, err := f.tracker.Standings(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
