package sqlstore

import (
	"context"
	"fmt"
)

// CREATE TABLE IF NOT EXISTS makes schema creation safe to repeat. There is no
// version tracking: the five tables below are the whole schema.
//
// Foreign keys document the relationships. SQLite enforces them because every
// connection is opened with foreign_keys(1), so a question pointing at a
// missing user fails with a StorageError instead of being stored.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		fname TEXT NOT NULL,
		lname TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		title     TEXT NOT NULL,
		body      TEXT NOT NULL,
		author_id INTEGER NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS replies (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		body        TEXT NOT NULL,
		author_id   INTEGER NOT NULL REFERENCES users(id),
		question_id INTEGER NOT NULL REFERENCES questions(id),
		parent_id   INTEGER REFERENCES replies(id)
	)`,
	`CREATE TABLE IF NOT EXISTS questions_follows (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(id),
		question_id INTEGER NOT NULL REFERENCES questions(id)
	)`,
	`CREATE TABLE IF NOT EXISTS question_likes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(id),
		question_id INTEGER NOT NULL REFERENCES questions(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_author_id ON questions(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_replies_question_id ON replies(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_replies_parent_id ON replies(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_follows_question_id ON questions_follows(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_question_likes_question_id ON question_likes(question_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		fname TEXT NOT NULL,
		lname TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id        BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		title     TEXT NOT NULL,
		body      TEXT NOT NULL,
		author_id BIGINT NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS replies (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		body        TEXT NOT NULL,
		author_id   BIGINT NOT NULL REFERENCES users(id),
		question_id BIGINT NOT NULL REFERENCES questions(id),
		parent_id   BIGINT REFERENCES replies(id)
	)`,
	`CREATE TABLE IF NOT EXISTS questions_follows (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id),
		question_id BIGINT NOT NULL REFERENCES questions(id)
	)`,
	`CREATE TABLE IF NOT EXISTS question_likes (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id),
		question_id BIGINT NOT NULL REFERENCES questions(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_author_id ON questions(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_replies_question_id ON replies(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_replies_parent_id ON replies(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_follows_question_id ON questions_follows(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_question_likes_question_id ON question_likes(question_id)`,
}

// CreateSchema creates any missing tables and indexes.
func (db *DB) CreateSchema(ctx context.Context) error {
	for i, stmt := range db.dialect.schema {
		if _, err := db.exec(ctx, "schema.create", stmt); err != nil {
			return fmt.Errorf("sqlstore: creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
