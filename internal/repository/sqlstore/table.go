package sqlstore

import (
	"context"
	"database/sql/driver"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/repository"
)

// mapping describes how one record type is stored: its table, its columns
// and how to move values between a row and the record.
//
// columns lists every persisted column EXCEPT id, in the order values
// returns them. INSERT uses exactly this list so the id is always left to the
// database; UPDATE sets exactly this list WHERE id = ?.
type mapping[T any] struct {
	table    string
	resource string // singular name used in error messages
	columns  []string
	scan     func(scanner) (T, error)
	values   func(*T) []any
	id       func(*T) *int64
}

// selectList is "id, col1, col2, ..." for this table.
func (m mapping[T]) selectList() string {
	return "id, " + strings.Join(m.columns, ", ")
}

// qualifiedList is "table.id, table.col1, ..." for use in joins.
func (m mapping[T]) qualifiedList() string {
	cols := make([]string, 0, len(m.columns)+1)
	cols = append(cols, m.table+".id")
	for _, c := range m.columns {
		cols = append(cols, m.table+"."+c)
	}
	return strings.Join(cols, ", ")
}

func (m mapping[T]) hasColumn(name string) bool {
	return name == "id" || slices.Contains(m.columns, name)
}

// Table is the record base shared by every store: listing, lookup by id or
// by column values, insert, update and delete for one table.
//
// The SQL for the fixed operations is built once, from the mapping, when the
// table is created.
type Table[T any] struct {
	db *DB
	m  mapping[T]

	sqlAll    string
	sqlByID   string
	sqlInsert string
	sqlUpdate string
	sqlDelete string
	sqlCount  string
}

func newTable[T any](db *DB, m mapping[T]) *Table[T] {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(m.columns)), ", ")
	assignments := make([]string, len(m.columns))
	for i, c := range m.columns {
		assignments[i] = c + " = ?"
	}

	return &Table[T]{
		db:      db,
		m:       m,
		sqlAll:  fmt.Sprintf("SELECT %s FROM %s", m.selectList(), m.table),
		sqlByID: fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", m.selectList(), m.table),
		sqlInsert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			m.table, strings.Join(m.columns, ", "), placeholders),
		sqlUpdate: fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
			m.table, strings.Join(assignments, ", ")),
		sqlDelete: fmt.Sprintf("DELETE FROM %s WHERE id = ?", m.table),
		sqlCount:  fmt.Sprintf("SELECT COUNT(*) FROM %s", m.table),
	}
}

func (t *Table[T]) op(name string) string {
	return t.m.table + "." + name
}

// All returns every row of the table, in the store's default order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	return queryAll(ctx, t.db, t.op("all"), t.m.scan, t.sqlAll)
}

// FindByID returns the record with the given id. found is false, with a nil
// error, when there is no such row.
func (t *Table[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	return queryOne(ctx, t.db, t.op("find_by_id"), t.m.scan, t.sqlByID, id)
}

// Get is FindByID for callers that need the record to exist: absence is
// reported as apperror.ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	rec, found, err := t.FindByID(ctx, id)
	if err != nil {
		return rec, err
	}
	if !found {
		return rec, apperror.NotFound(t.m.resource, id)
	}
	return rec, nil
}

// Where returns every row whose columns equal the given criteria.
func (t *Table[T]) Where(ctx context.Context, criteria repository.Criteria) ([]T, error) {
	query, args, err := t.whereSQL(criteria)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, t.db, t.op("where"), t.m.scan, query, args...)
}

// FindBy returns the first row matching criteria.
func (t *Table[T]) FindBy(ctx context.Context, criteria repository.Criteria) (T, bool, error) {
	query, args, err := t.whereSQL(criteria)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return queryOne(ctx, t.db, t.op("find_by"), t.m.scan, query+" LIMIT 1", args...)
}

// whereSQL builds "SELECT ... WHERE a = ? AND b IS NULL". Columns are sorted
// so the same criteria always produce the same text.
func (t *Table[T]) whereSQL(criteria repository.Criteria) (string, []any, error) {
	if len(criteria) == 0 {
		return "", nil, apperror.InvalidQuery("",
			fmt.Sprintf("%s: where criteria must not be empty", t.m.table))
	}

	cols := make([]string, 0, len(criteria))
	for c := range criteria {
		if !t.m.hasColumn(c) {
			return "", nil, apperror.InvalidQuery(c,
				fmt.Sprintf("%s: unknown column %q", t.m.table, c))
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		// Convert first so a nil pointer, such as an unset Reply.ParentID,
		// counts as NULL just like an untyped nil.
		v, err := driver.DefaultParameterConverter.ConvertValue(criteria[c])
		if err != nil {
			return "", nil, apperror.InvalidQuery(c,
				fmt.Sprintf("%s: unsupported value for column %q: %v", t.m.table, c, err))
		}
		if v == nil {
			conds = append(conds, c+" IS NULL")
			continue
		}
		conds = append(conds, c+" = ?")
		args = append(args, v)
	}

	return t.sqlAll + " WHERE " + strings.Join(conds, " AND "), args, nil
}

// Count returns the number of rows in the table.
func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	return queryInt64(ctx, t.db, t.op("count"), t.sqlCount)
}

// Insert stores a new record and sets its id to the one the database
// assigned. Inserting a record that already has an id is an InvalidQuery
// error; use Update or Save.
func (t *Table[T]) Insert(ctx context.Context, rec *T) error {
	id := t.m.id(rec)
	if *id != 0 {
		return apperror.InvalidQuery("id",
			fmt.Sprintf("%s already persisted with id %d", t.m.resource, *id))
	}

	newID, _, err := queryOne(ctx, t.db, t.op("insert"), scanInt64, t.sqlInsert, t.m.values(rec)...)
	if err != nil {
		return err
	}
	*id = newID
	return nil
}

// Update writes every column of a persisted record back to its row. A record
// without an id is an InvalidQuery error; a row that no longer exists is
// apperror.ErrNotFound.
func (t *Table[T]) Update(ctx context.Context, rec *T) error {
	id := *t.m.id(rec)
	if id == 0 {
		return apperror.InvalidQuery("id",
			fmt.Sprintf("%s has not been saved yet; insert it first", t.m.resource))
	}

	args := append(t.m.values(rec), id)
	res, err := t.db.exec(ctx, t.op("update"), t.sqlUpdate, args...)
	if err != nil {
		return err
	}

	// RowsAffected == 0 means the WHERE id = ? matched nothing.
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage(t.op("update"), t.sqlUpdate, err)
	}
	if n == 0 {
		return apperror.NotFound(t.m.resource, id)
	}
	return nil
}

// Save inserts a new record or updates a persisted one, chosen by whether
// the record has an id.
func (t *Table[T]) Save(ctx context.Context, rec *T) error {
	if *t.m.id(rec) == 0 {
		return t.Insert(ctx, rec)
	}
	return t.Update(ctx, rec)
}

// Delete removes the row with the given id.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	res, err := t.db.exec(ctx, t.op("delete"), t.sqlDelete, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage(t.op("delete"), t.sqlDelete, err)
	}
	if n == 0 {
		return apperror.NotFound(t.m.resource, id)
	}
	return nil
}
