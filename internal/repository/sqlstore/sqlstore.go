// Package sqlstore implements the repository interfaces over database/sql.
//
// One *DB value is the single handle to the relational store. It is opened
// explicitly with Open (or OpenMemory in tests) and handed to whoever needs
// it; there is no package-level connection.
//
// TWO DRIVERS, ONE SET OF QUERIES:
//   - "sqlite": modernc.org/sqlite, a pure Go SQLite. The default.
//   - "pgx"   : github.com/jackc/pgx/v5/stdlib, PostgreSQL.
//
// Queries are written once with ? placeholders. The dialect rewrites them to
// $1, $2, ... for PostgreSQL. Inserts use INSERT ... RETURNING id on both, so
// reading the generated id is part of the same statement and cannot interleave
// with another caller's insert.
//
// TABLES ARE A CLOSED SET:
// Every table name and column list lives in a mapping declared in this
// package. Callers pick a store (db.Users(), db.Questions(), ...) and never
// pass a table name, so no caller string is ever interpolated into SQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	// Blank imports register the database/sql drivers "pgx" and "sqlite".
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/xid"
	_ "modernc.org/sqlite"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/config"
)

// DB wraps a sql.DB and owns one store per table.
type DB struct {
	conn    *sql.DB
	dialect dialect
	logger  *slog.Logger

	users     *UserStore
	questions *QuestionStore
	replies   *ReplyStore
	follows   *FollowStore
	likes     *LikeStore
}

// Open connects to the store described by cfg and verifies the connection.
//
// The schema is NOT created here; call CreateSchema when bootstrapping a new
// database. A nil logger discards query logs.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := dialectFor(cfg.Driver)
	dsn := cfg.DSN
	if d.name == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: opening database: %w", err)
	}

	// SINGLE CONNECTION BY DEFAULT:
	// With MaxOpenConns=1 every query runs on the same connection, one after
	// another. It also keeps a shared-cache in-memory SQLite database alive:
	// the database disappears when its last connection closes.
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in flight. It only applies to
	// file databases.
	if d.name == config.DriverSQLite && !isMemoryDSN(dsn) {
		if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlstore: setting WAL mode: %w", err)
		}
	}

	db := &DB{conn: conn, dialect: d, logger: logger}
	db.users = &UserStore{Table: newTable(db, userMapping)}
	db.questions = &QuestionStore{Table: newTable(db, questionMapping)}
	db.replies = &ReplyStore{Table: newTable(db, replyMapping)}
	db.follows = &FollowStore{Table: newTable(db, followMapping)}
	db.likes = &LikeStore{Table: newTable(db, likeMapping)}

	logger.Debug("database opened",
		slog.String("driver", d.name),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return db, nil
}

// OpenMemory opens a private in-memory SQLite database with the schema
// already created. Each call gets a database of its own, named with an xid,
// so parallel tests never see each other's rows.
func OpenMemory(ctx context.Context, logger *slog.Logger) (*DB, error) {
	cfg := config.Default()
	cfg.DSN = fmt.Sprintf("file:qadb-%s?mode=memory&cache=shared", xid.New().String())

	db, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return apperror.Storage("ping", "", err)
	}
	return nil
}

// Driver reports the driver name the database was opened with.
func (db *DB) Driver() string { return db.dialect.name }

func (db *DB) Users() *UserStore         { return db.users }
func (db *DB) Questions() *QuestionStore { return db.questions }
func (db *DB) Replies() *ReplyStore      { return db.replies }
func (db *DB) Follows() *FollowStore     { return db.follows }
func (db *DB) Likes() *LikeStore         { return db.likes }

// sqliteDSN turns on foreign keys for every connection the pool opens.
// modernc.org/sqlite applies _pragma parameters on connect.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// =========================================================================
// QUERY HELPERS
// =========================================================================
//
// Every store method goes through these, so each one issues exactly one
// statement, logs it at debug level and wraps driver failures in
// *apperror.StorageError.

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (db *DB) exec(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	q := db.dialect.rebind(query)
	start := time.Now()
	res, err := db.conn.ExecContext(ctx, q, args...)
	db.logQuery(ctx, op, start, err)
	if err != nil {
		return nil, apperror.Storage(op, q, err)
	}
	return res, nil
}

// queryAll runs query and scans every row with scan. The result is never nil,
// so "no rows" is an empty slice.
func queryAll[T any](ctx context.Context, db *DB, op string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	q := db.dialect.rebind(query)
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		db.logQuery(ctx, op, start, err)
		return nil, apperror.Storage(op, q, err)
	}
	// Rows hold a connection until closed; with a single-connection pool a
	// leaked Rows would block every later query.
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			db.logQuery(ctx, op, start, err)
			return nil, apperror.Storage(op, q, err)
		}
		out = append(out, v)
	}
	err = rows.Err()
	db.logQuery(ctx, op, start, err)
	if err != nil {
		return nil, apperror.Storage(op, q, err)
	}
	return out, nil
}

// queryOne runs query and scans the first row. found is false when the query
// returned no rows.
func queryOne[T any](ctx context.Context, db *DB, op string, scan func(scanner) (T, error), query string, args ...any) (v T, found bool, err error) {
	q := db.dialect.rebind(query)
	start := time.Now()
	v, err = scan(db.conn.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		db.logQuery(ctx, op, start, nil)
		var zero T
		return zero, false, nil
	}
	db.logQuery(ctx, op, start, err)
	if err != nil {
		var zero T
		return zero, false, apperror.Storage(op, q, err)
	}
	return v, true, nil
}

// queryInt64 runs a query returning a single integer, such as COUNT(*).
func queryInt64(ctx context.Context, db *DB, op, query string, args ...any) (int64, error) {
	n, _, err := queryOne(ctx, db, op, scanInt64, query, args...)
	return n, err
}

func scanInt64(s scanner) (int64, error) {
	var n int64
	err := s.Scan(&n)
	return n, err
}

func (db *DB) logQuery(ctx context.Context, op string, start time.Time, err error) {
	if err != nil {
		db.logger.LogAttrs(ctx, slog.LevelDebug, "query failed",
			slog.String("op", op),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "query executed",
		slog.String("op", op),
		slog.Duration("duration", time.Since(start)),
	)
}
