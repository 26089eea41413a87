package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const attemptsTable = "attempts"

var attemptColumns = []string{
	"uid", "run_id", "simulation_id", "score",
	"total_questions", "time_spent", "attempts", "completed_at",
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a Attempt) (int64, error) {
	query, args := builder().Insert(attemptsTable).
		Columns(attemptColumns...).
		Values(a.UID, a.RunID, a.SimulationID, a.Score,
			a.TotalQuestions, a.TimeSpent, a.Attempts, formatTime(a.CompletedAt)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("append attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append attempt: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) Recent(ctx context.Context, uid string, opts QueryOpts) ([]Attempt, error) {
	preds := []*entsql.Predicate{entsql.EQ("uid", uid)}
	if opts.SimulationID != "" {
		preds = append(preds, entsql.EQ("simulation_id", opts.SimulationID))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("id", opts.Before))
	}

	b := builder()
	sel := b.Select(append([]string{"id"}, attemptColumns...)...).
		From(b.Table(attemptsTable)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a         Attempt
			completed string
		)
		if err := rows.Scan(&a.ID, &a.UID, &a.RunID, &a.SimulationID, &a.Score,
			&a.TotalQuestions, &a.TimeSpent, &a.Attempts, &completed); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if a.CompletedAt, err = parseTime(completed); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) DeleteAll(ctx context.Context, uid string) error {
	query, args := builder().Delete(attemptsTable).
		Where(entsql.EQ("uid", uid)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete attempts: %w", err)
	}
	return nil
}
