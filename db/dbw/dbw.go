// database/sql wrappers that carry a context, a logger and a dialect, and track time spent in the
// database per request.
package dbw

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"fuzzydates/log"

	"github.com/Masterminds/squirrel"
)

type Dialect int

const (
	DialectSqlite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	switch d {
	case DialectSqlite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

func (d Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

type Queryable interface {
	MustBegin() *Tx
	Begin() (*Tx, error)
	MustExec(sql string, args ...any) sql.Result
	Exec(sql string, args ...any) (sql.Result, error)
	Query(sql string, args ...any) (*sql.Rows, error)
	QueryRow(sql string, args ...any) *sql.Row
	Builder() squirrel.StatementBuilderType
	Dialect() Dialect
	Logger() log.Logger
}

type Pool struct {
	impl    *sql.DB
	ctx     context.Context
	logger  log.Logger
	dialect Dialect
	name    string
}

// name identifies the database without credentials, e.g. for advisory lock ids.
func NewPool(ctx context.Context, impl *sql.DB, dialect Dialect, name string, logger log.Logger) *Pool {
	return &Pool{
		impl:    impl,
		ctx:     ctx,
		logger:  logger,
		dialect: dialect,
		name:    name,
	}
}

// Child shares the connections but runs its queries under ctx and logs to logger.
func (pool *Pool) Child(ctx context.Context, logger log.Logger) *Pool {
	return &Pool{
		impl:    pool.impl,
		ctx:     ctx,
		logger:  logger,
		dialect: pool.dialect,
		name:    pool.name,
	}
}

func (pool *Pool) Name() string {
	return pool.name
}

func (pool *Pool) Close() error {
	return pool.impl.Close()
}

func (pool *Pool) Ping() error {
	t1 := time.Now()
	defer addDuration(pool.ctx, t1)()

	return pool.impl.PingContext(pool.ctx)
}

func (pool *Pool) MustBegin() *Tx {
	tx, err := pool.Begin()
	if err != nil {
		panic(err)
	}
	return tx
}

func (pool *Pool) Begin() (*Tx, error) {
	t1 := time.Now()
	defer addDuration(pool.ctx, t1)()

	tx, err := pool.impl.BeginTx(pool.ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{
		impl:          tx,
		ctx:           pool.ctx,
		logger:        pool.logger,
		dialect:       pool.dialect,
		savepoint:     "",
		nextSavepoint: new(atomic.Int64),
		isClosed:      false,
	}, nil
}

func (pool *Pool) MustExec(sql string, args ...any) sql.Result {
	result, err := pool.Exec(sql, args...)
	if err != nil {
		panic(err)
	}
	return result
}

func (pool *Pool) Exec(sql string, args ...any) (sql.Result, error) {
	t1 := time.Now()
	defer addDuration(pool.ctx, t1)()

	return pool.impl.ExecContext(pool.ctx, sql, args...)
}

func (pool *Pool) Query(sql string, args ...any) (*sql.Rows, error) {
	t1 := time.Now()
	defer addDuration(pool.ctx, t1)()

	return pool.impl.QueryContext(pool.ctx, sql, args...)
}

func (pool *Pool) QueryRow(sql string, args ...any) *sql.Row {
	t1 := time.Now()
	defer addDuration(pool.ctx, t1)()

	return pool.impl.QueryRowContext(pool.ctx, sql, args...)
}

func (pool *Pool) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(pool.dialect.PlaceholderFormat())
}

func (pool *Pool) Dialect() Dialect {
	return pool.dialect
}

func (pool *Pool) Logger() log.Logger {
	return pool.logger
}

var ErrTxClosed = errors.New("tx is closed")

type Tx struct {
	impl          *sql.Tx
	ctx           context.Context
	logger        log.Logger
	dialect       Dialect
	savepoint     string
	nextSavepoint *atomic.Int64
	isClosed      bool
}

func (tx *Tx) MustBegin() *Tx {
	nested, err := tx.Begin()
	if err != nil {
		panic(err)
	}
	return nested
}

// Begin starts a pseudo nested transaction backed by a savepoint.
func (tx *Tx) Begin() (*Tx, error) {
	if tx.isClosed {
		return nil, ErrTxClosed
	}
	savepoint := fmt.Sprintf("sp_%d", tx.nextSavepoint.Add(1))
	if _, err := tx.Exec("savepoint " + savepoint); err != nil {
		return nil, err
	}

	return &Tx{
		impl:          tx.impl,
		ctx:           tx.ctx,
		logger:        tx.logger,
		dialect:       tx.dialect,
		savepoint:     savepoint,
		nextSavepoint: tx.nextSavepoint,
		isClosed:      false,
	}, nil
}

// Commit commits the transaction if this is a real transaction or releases the savepoint if this is a pseudo nested
// transaction. Commit returns ErrTxClosed if the Tx is already closed.
func (tx *Tx) Commit() error {
	if tx.isClosed {
		return ErrTxClosed
	}
	t1 := time.Now()
	defer addDuration(tx.ctx, t1)()

	tx.isClosed = true
	if tx.savepoint != "" {
		_, err := tx.impl.ExecContext(tx.ctx, "release savepoint "+tx.savepoint)
		return err
	}
	return tx.impl.Commit()
}

// Rollback rolls back the transaction if this is a real transaction or rolls back to the savepoint if this is a
// pseudo nested transaction. Rollback returns ErrTxClosed if the Tx is already closed, so a deferred Rollback is safe
// even if Commit was called first.
func (tx *Tx) Rollback() error {
	if tx.isClosed {
		return ErrTxClosed
	}
	t1 := time.Now()
	defer addDuration(tx.ctx, t1)()

	tx.isClosed = true
	if tx.savepoint != "" {
		_, err := tx.impl.ExecContext(tx.ctx, "rollback to savepoint "+tx.savepoint)
		return err
	}
	return tx.impl.Rollback()
}

func (tx *Tx) MustExec(sql string, args ...any) sql.Result {
	result, err := tx.Exec(sql, args...)
	if err != nil {
		panic(err)
	}
	return result
}

func (tx *Tx) Exec(sql string, args ...any) (sql.Result, error) {
	t1 := time.Now()
	defer addDuration(tx.ctx, t1)()

	return tx.impl.ExecContext(tx.ctx, sql, args...)
}

func (tx *Tx) Query(sql string, args ...any) (*sql.Rows, error) {
	t1 := time.Now()
	defer addDuration(tx.ctx, t1)()

	return tx.impl.QueryContext(tx.ctx, sql, args...)
}

func (tx *Tx) QueryRow(sql string, args ...any) *sql.Row {
	t1 := time.Now()
	defer addDuration(tx.ctx, t1)()

	return tx.impl.QueryRowContext(tx.ctx, sql, args...)
}

func (tx *Tx) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(tx.dialect.PlaceholderFormat())
}

func (tx *Tx) Dialect() Dialect {
	return tx.dialect
}

func (tx *Tx) Logger() log.Logger {
	return tx.logger
}

type dbDurationKeyType struct{}

var dbDurationKey = &dbDurationKeyType{}

func addDuration(ctx context.Context, t1 time.Time) func() {
	return func() {
		t2 := time.Now()
		dbDurationAny := ctx.Value(dbDurationKey)
		if dbDurationAny != nil {
			dbDuration := dbDurationAny.(*time.Duration)
			*dbDuration += t2.Sub(t1)
		}
	}
}

func DbDuration(ctx context.Context) time.Duration {
	dbDuration := ctx.Value(dbDurationKey)
	if dbDuration == nil {
		panic("Must call dbw.WithDBDuration() first")
	}

	return *dbDuration.(*time.Duration)
}

func WithDBDuration(r *http.Request) *http.Request {
	dbDuration := time.Duration(0)
	r = r.WithContext(context.WithValue(r.Context(), dbDurationKey, &dbDuration))
	return r
}
