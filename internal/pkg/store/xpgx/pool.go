// Package xpgx glues squirrel builders to a pgx connection pool.
package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error)
	Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Execer is anything that runs a statement: a pool, a connection or a transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &pool{p}, nil
}

func (p *pool) Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	return Execx(ctx, p, sqlizer)
}

// Execx builds the statement and runs it on e.
func Execx(ctx context.Context, e Execer, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return e.Exec(ctx, sql, args...)
}

func (p *pool) Queryx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}
	return p.Query(ctx, sql, args...)
}

// Getx runs the query and scans exactly one row into T by column name.
func Getx[T any](ctx context.Context, p Pool, sqlizer squirrel.Sqlizer) (*T, error) {
	rows, err := p.Queryx(ctx, sqlizer)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

// Selectx runs the query and scans every row into T by column name.
func Selectx[T any](ctx context.Context, p Pool, sqlizer squirrel.Sqlizer) ([]*T, error) {
	rows, err := p.Queryx(ctx, sqlizer)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}
