package sqlstore

import (
	"context"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

var userMapping = mapping[model.User]{
	table:    "users",
	resource: "user",
	columns:  []string{"fname", "lname"},
	scan: func(s scanner) (model.User, error) {
		var u model.User
		err := s.Scan(&u.ID, &u.FName, &u.LName)
		return u, err
	},
	values: func(u *model.User) []any { return []any{u.FName, u.LName} },
	id:     func(u *model.User) *int64 { return &u.ID },
}

// UserStore reads and writes the users table.
type UserStore struct {
	*Table[model.User]
}

// FindByName returns the first user with exactly this first and last name.
func (s *UserStore) FindByName(ctx context.Context, fname, lname string) (model.User, bool, error) {
	return s.FindBy(ctx, repository.Criteria{"fname": fname, "lname": lname})
}

// AuthoredQuestions returns the questions the user wrote.
func (s *UserStore) AuthoredQuestions(ctx context.Context, userID int64) ([]model.Question, error) {
	return s.db.questions.FindByAuthorID(ctx, userID)
}

// AuthoredReplies returns the replies the user wrote.
func (s *UserStore) AuthoredReplies(ctx context.Context, userID int64) ([]model.Reply, error) {
	return s.db.replies.FindByUserID(ctx, userID)
}

// FollowedQuestions returns the questions the user follows.
func (s *UserStore) FollowedQuestions(ctx context.Context, userID int64) ([]model.Question, error) {
	return s.db.follows.FollowedQuestionsForUserID(ctx, userID)
}

// LikedQuestions returns the questions the user likes.
func (s *UserStore) LikedQuestions(ctx context.Context, userID int64) ([]model.Question, error) {
	return s.db.likes.LikedQuestionsForUserID(ctx, userID)
}

const sqlKarmaCounts = `
	SELECT COUNT(DISTINCT questions.id), COUNT(question_likes.id)
	FROM questions
	LEFT JOIN question_likes ON question_likes.question_id = questions.id
	WHERE questions.author_id = ?`

// AverageKarma is the number of distinct questions the user authored divided
// by the total number of likes those questions received.
//
// The two counts are not symmetric: questions are counted once each, likes
// are counted every time, so more likes LOWER the value (1 question with 2
// likes gives 0.5). This matches the long-standing definition and is kept
// as is.
//
// A user whose questions have no likes, or who has asked nothing, has a
// karma of 0 rather than a division by zero.
func (s *UserStore) AverageKarma(ctx context.Context, userID int64) (float64, error) {
	type counts struct{ questions, likes int64 }

	c, _, err := queryOne(ctx, s.db, "users.average_karma", func(sc scanner) (counts, error) {
		var c counts
		err := sc.Scan(&c.questions, &c.likes)
		return c, err
	}, sqlKarmaCounts, userID)
	if err != nil {
		return 0, err
	}

	if c.likes == 0 {
		return 0, nil
	}
	return float64(c.questions) / float64(c.likes), nil
}
