package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"kv", "users", "attempts"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.KV().Set(ctx, "progress_u1", `{"averageScore":90}`))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.KV().Get(ctx, "progress_u1")
	require.NoError(t, err)
	assert.Equal(t, `{"averageScore":90}`, got)
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "k"), "deleting a missing key")
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	u := User{
		UID:          "uid-1",
		Email:        "ada@example.com",
		DisplayName:  "Ada",
		PasswordHash: "hash",
		Provider:     "password",
		CreatedAt:    created,
	}
	require.NoError(t, users.Create(ctx, u))

	dup := u
	dup.UID = "uid-2"
	assert.ErrorIs(t, users.Create(ctx, dup), ErrDuplicate)

	got, err := users.ByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.UID)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.True(t, got.CreatedAt.Equal(created))

	got, err = users.ByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = users.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.ByUID(ctx, "uid-9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	sims := []string{"phishing-email", "wifi-security", "phishing-email", "password-security"}
	for i, sim := range sims {
		_, err := repo.Append(ctx, Attempt{
			UID:            "u1",
			RunID:          "run",
			SimulationID:   sim,
			Score:          i,
			TotalQuestions: 5,
			TimeSpent:      i + 1,
			Attempts:       1,
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := repo.Append(ctx, Attempt{UID: "u2", SimulationID: "wifi-security", TotalQuestions: 5, CompletedAt: base})
	require.NoError(t, err)

	all, err := repo.Recent(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "password-security", all[0].SimulationID, "newest first")
	assert.True(t, all[0].CompletedAt.Equal(base.Add(3*time.Hour)))

	limited, err := repo.Recent(ctx, "u1", QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, 3, limited[0].Score)
	assert.Equal(t, 2, limited[1].Score)

	phishing, err := repo.Recent(ctx, "u1", QueryOpts{SimulationID: "phishing-email"})
	require.NoError(t, err)
	require.Len(t, phishing, 2)
	assert.Equal(t, 2, phishing[0].Score)

	older, err := repo.Recent(ctx, "u1", QueryOpts{Before: limited[1].ID})
	require.NoError(t, err)
	assert.Len(t, older, 2)

	require.NoError(t, repo.DeleteAll(ctx, "u1"))
	all, err = repo.Recent(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, all)

	other, err := repo.Recent(ctx, "u2", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
