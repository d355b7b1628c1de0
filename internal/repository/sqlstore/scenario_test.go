package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/questions-db/internal/model"
)

// TestLovelaceScenario walks the end-to-end example: one author, one
// question, then one and two likes.
func TestLovelaceScenario(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	ada := model.User{FName: "Ada", LName: "Lovelace"}
	require.NoError(t, db.Users().Save(ctx, &ada))
	require.Equal(t, int64(1), ada.ID)

	q := model.Question{Title: "Why?", Body: "...", AuthorID: ada.ID}
	require.NoError(t, db.Questions().Save(ctx, &q))
	require.Equal(t, int64(1), q.ID)

	first := model.QuestionLike{UserID: ada.ID, QuestionID: q.ID}
	require.NoError(t, db.Likes().Save(ctx, &first))

	found, ok, err := db.Questions().FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	n, err := db.Questions().NumLikes(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	author, ok, err := db.Users().FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	karma, err := db.Users().AverageKarma(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, karma)

	// A second like from someone else halves the karma: likes are counted
	// individually, questions only once.
	charles := model.User{FName: "Charles", LName: "Babbage"}
	require.NoError(t, db.Users().Save(ctx, &charles))
	second := model.QuestionLike{UserID: charles.ID, QuestionID: q.ID}
	require.NoError(t, db.Likes().Save(ctx, &second))

	n, err = db.Questions().NumLikes(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	karma, err = db.Users().AverageKarma(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, karma)

	_, ok, err = db.Questions().FindByTitle(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}
