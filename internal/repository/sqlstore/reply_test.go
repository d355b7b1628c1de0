package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/questions-db/internal/model"
)

// threadFixture builds:
//
//	q
//	├── root
//	│   ├── a
//	│   │   └── a1
//	│   └── b
//	└── other
func threadFixture(t *testing.T) (db *DB, q model.Question, replies map[string]model.Reply) {
	t.Helper()
	db = newTestDB(t)
	ada := createUser(t, db, "Ada", "Lovelace")
	grace := createUser(t, db, "Grace", "Hopper")
	q = createQuestion(t, db, ada.ID, "Why?")

	replies = map[string]model.Reply{}
	replies["root"] = createReply(t, db, grace.ID, q.ID, nil, "root")
	replies["a"] = createReply(t, db, ada.ID, q.ID, model.ParentIDOf(replies["root"].ID), "a")
	replies["b"] = createReply(t, db, grace.ID, q.ID, model.ParentIDOf(replies["root"].ID), "b")
	replies["a1"] = createReply(t, db, grace.ID, q.ID, model.ParentIDOf(replies["a"].ID), "a1")
	replies["other"] = createReply(t, db, ada.ID, q.ID, nil, "other")
	return db, q, replies
}

func TestChildReplies_OneLevel(t *testing.T) {
	ctx := context.Background()
	db, _, r := threadFixture(t)

	children, err := db.Replies().ChildReplies(ctx, r["root"])
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Reply{r["a"], r["b"]}, children, "grandchildren must not be included")

	leaf, err := db.Replies().ChildReplies(ctx, r["b"])
	require.NoError(t, err)
	assert.NotNil(t, leaf)
	assert.Empty(t, leaf)
}

func TestTopLevel(t *testing.T) {
	db, q, r := threadFixture(t)

	roots, err := db.Replies().TopLevel(context.Background(), q.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Reply{r["root"], r["other"]}, roots)
}

func TestParentReply(t *testing.T) {
	ctx := context.Background()
	db, _, r := threadFixture(t)

	parent, ok, err := db.Replies().ParentReply(ctx, r["a1"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r["a"], parent)

	_, ok, err = db.Replies().ParentReply(ctx, r["root"])
	require.NoError(t, err)
	assert.False(t, ok, "a root reply has no parent")
}

func TestReplyLookups(t *testing.T) {
	ctx := context.Background()
	db, q, r := threadFixture(t)

	byQuestion, err := db.Replies().FindByQuestionID(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, byQuestion, 5)

	byAda, err := db.Replies().FindByUserID(ctx, q.AuthorID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Reply{r["a"], r["other"]}, byAda)

	author, ok, err := db.Replies().Author(ctx, r["a"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", author.FName)

	question, ok, err := db.Replies().Question(ctx, r["a1"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, q, question)
}
