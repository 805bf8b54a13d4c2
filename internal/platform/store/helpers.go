package store

import (
	"context"

	perr "refstar/internal/platform/errors"
)

// Scanner maps the current row to T
type Scanner[T any] func(Row) (T, error)

// each runs scan over every row of sql, stop ends the walk early without error
func each[T any](ctx context.Context, q RowQuerier, scan Scanner[T], sql string, args []any, yield func(T) (stop bool)) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return err
		}
		if yield(v) {
			return nil
		}
	}
	return rows.Err()
}

// Many maps every row with scan, in result order
func Many[T any](ctx context.Context, q RowQuerier, scan Scanner[T], sql string, args ...any) ([]T, error) {
	var out []T
	err := each(ctx, q, scan, sql, args, func(v T) bool {
		out = append(out, v)
		return false
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// One maps exactly one row, none is perr.ErrNotFound and more than one is ErrorCodeConflict
func One[T any](ctx context.Context, q RowQuerier, scan Scanner[T], sql string, args ...any) (T, error) {
	var (
		first T
		n     int
	)
	err := each(ctx, q, scan, sql, args, func(v T) bool {
		if n == 0 {
			first = v
		}
		n++
		return n > 1
	})
	var zero T
	switch {
	case err != nil:
		return zero, err
	case n == 0:
		return zero, perr.ErrNotFound
	case n > 1:
		return zero, perr.Conflictf("expected one row, got more")
	}
	return first, nil
}

// Scalar reads the first column of the single row sql returns
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
