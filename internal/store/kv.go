package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const kvTable = "kv"

type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, formatTime(time.Now())).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
