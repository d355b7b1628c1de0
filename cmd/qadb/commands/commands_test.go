package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/model"
)

// runCLI executes a fresh root command against the SQLite file at dsn and
// returns everything it printed.
func runCLI(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QADB_DRIVER", "")
	t.Setenv("QADB_DSN", "")
	t.Setenv("QADB_LOG_LEVEL", "error")

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--dsn", dsn}, args...))

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// seededDB returns the path of a fresh database filled by "qadb seed".
func seededDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "nested", "questions.db")
	out, err := runCLI(t, dsn, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "Seeded 3 users, 2 questions and 3 replies")
	return dsn
}

func TestSchemaCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "questions.db")

	out, err := runCLI(t, dsn, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready (sqlite)")

	// Running it twice is fine.
	_, err = runCLI(t, dsn, "schema")
	require.NoError(t, err)
}

func TestSeedCommand_OnlyOnce(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already has 3 users")

	out, err = runCLI(t, dsn, "--json", "seed")
	require.NoError(t, err)
	var got struct {
		Status string `json:"status"`
		Users  int64  `json:"users"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "skipped", got.Status)
	assert.Equal(t, int64(3), got.Users)
}

func TestVerboseLogsToCommandStderr(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "questions.db")

	out, err := runCLI(t, dsn, "--verbose", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "database opened")
	assert.Contains(t, out, "level=DEBUG")

	out, err = runCLI(t, dsn, "schema")
	require.NoError(t, err)
	assert.NotContains(t, out, "database opened")
}

func TestUserKarmaCommand(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "--json", "user", "karma", "Ada", "Lovelace")
	require.NoError(t, err)

	var got struct {
		User  model.User `json:"user"`
		Karma float64    `json:"karma"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Lovelace", got.User.LName)
	assert.InDelta(t, 0.5, got.Karma, 1e-9)

	_, err = runCLI(t, dsn, "user", "karma", "Nobody", "Here")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserShowCommand(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "--json", "user", "show", "1")
	require.NoError(t, err)

	var p userProfile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Ada", p.User.FName)
	assert.Len(t, p.Questions, 1)
	assert.Len(t, p.Replies, 2)
	assert.Len(t, p.Following, 1)
	assert.Len(t, p.Liked, 1)

	out, err = runCLI(t, dsn, "user", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace (#1)")

	_, err = runCLI(t, dsn, "user", "show", "99")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = runCLI(t, dsn, "user", "show", "ada")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestQuestionShowCommand(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "--json", "question", "show", "--title", "Why?")
	require.NoError(t, err)

	var d questionDetail
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "Why?", d.Question.Title)
	require.NotNil(t, d.Author)
	assert.Equal(t, "Ada", d.Author.FName)
	assert.Equal(t, int64(2), d.Likes)
	assert.Equal(t, int64(2), d.Follows)
	assert.Len(t, d.Followers, 2)
	assert.Len(t, d.Likers, 2)
	assert.Equal(t, 2, d.Replies)

	_, err = runCLI(t, dsn, "question", "show", "--title", "nonexistent")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = runCLI(t, dsn, "question", "show")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestQuestionTopCommand(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "--json", "question", "top", "--by", "follows", "-n", "1")
	require.NoError(t, err)

	var ranked []model.RankedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, "Why?", ranked[0].Title)
	assert.Equal(t, int64(2), ranked[0].Count)

	out, err = runCLI(t, dsn, "question", "top")
	require.NoError(t, err)
	assert.Contains(t, out, "Top 5 by likes")
	assert.Contains(t, out, "What is a bug?")

	_, err = runCLI(t, dsn, "question", "top", "--by", "views")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestThreadCommand(t *testing.T) {
	dsn := seededDB(t)

	out, err := runCLI(t, dsn, "thread", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Why? (#1)")
	assert.Contains(t, out, "Because of the Jacquard cards.")
	assert.Contains(t, out, "As a loom weaves flowers and leaves.")
	assert.Contains(t, out, "Charles Babbage:")
	assert.Contains(t, out, "2 replies")

	_, err = runCLI(t, dsn, "thread", "42")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnknownDriver(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "questions.db")
	_, err := runCLI(t, dsn, "--driver", "mysql", "schema")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
