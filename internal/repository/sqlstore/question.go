package sqlstore

import (
	"context"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

var _ repository.QuestionRepository = (*QuestionStore)(nil)

var questionMapping = mapping[model.Question]{
	table:    "questions",
	resource: "question",
	columns:  []string{"title", "body", "author_id"},
	scan: func(s scanner) (model.Question, error) {
		var q model.Question
		err := s.Scan(&q.ID, &q.Title, &q.Body, &q.AuthorID)
		return q, err
	},
	values: func(q *model.Question) []any { return []any{q.Title, q.Body, q.AuthorID} },
	id:     func(q *model.Question) *int64 { return &q.ID },
}

// QuestionStore reads and writes the questions table.
type QuestionStore struct {
	*Table[model.Question]
}

// FindByTitle returns the first question with exactly this title.
func (s *QuestionStore) FindByTitle(ctx context.Context, title string) (model.Question, bool, error) {
	return s.FindBy(ctx, repository.Criteria{"title": title})
}

// FindByAuthorID returns every question written by the user.
func (s *QuestionStore) FindByAuthorID(ctx context.Context, authorID int64) ([]model.Question, error) {
	return s.Where(ctx, repository.Criteria{"author_id": authorID})
}

// MostFollowed returns up to n questions ordered by follower count, highest
// first. Questions nobody follows are not included. The order of questions
// with equal counts is whatever the database returns.
func (s *QuestionStore) MostFollowed(ctx context.Context, n int) ([]model.Question, error) {
	ranked, err := s.db.follows.MostFollowedQuestions(ctx, n)
	if err != nil {
		return nil, err
	}
	return unrank(ranked), nil
}

// MostLiked is MostFollowed for likes.
func (s *QuestionStore) MostLiked(ctx context.Context, n int) ([]model.Question, error) {
	ranked, err := s.db.likes.MostLikedQuestions(ctx, n)
	if err != nil {
		return nil, err
	}
	return unrank(ranked), nil
}

// Author returns the question's author, if the user still exists.
func (s *QuestionStore) Author(ctx context.Context, q model.Question) (model.User, bool, error) {
	return s.db.users.FindByID(ctx, q.AuthorID)
}

// Replies returns every reply to the question at any depth.
func (s *QuestionStore) Replies(ctx context.Context, q model.Question) ([]model.Reply, error) {
	return s.db.replies.FindByQuestionID(ctx, q.ID)
}

func (s *QuestionStore) Followers(ctx context.Context, q model.Question) ([]model.User, error) {
	return s.db.follows.FollowersForQuestionID(ctx, q.ID)
}

func (s *QuestionStore) Likers(ctx context.Context, q model.Question) ([]model.User, error) {
	return s.db.likes.LikersForQuestionID(ctx, q.ID)
}

func (s *QuestionStore) NumLikes(ctx context.Context, q model.Question) (int64, error) {
	return s.db.likes.NumLikesForQuestionID(ctx, q.ID)
}

func (s *QuestionStore) NumFollowers(ctx context.Context, q model.Question) (int64, error) {
	return s.db.follows.NumFollowersForQuestionID(ctx, q.ID)
}

func unrank(ranked []model.RankedQuestion) []model.Question {
	out := make([]model.Question, len(ranked))
	for i, r := range ranked {
		out[i] = r.Question
	}
	return out
}
