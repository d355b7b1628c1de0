// Package service holds the application logic that sits on top of the
// repositories: posting, threading replies, karma and leaderboards.
//
//	CLI (cmd/qadb) → ForumService (rules, logging) → repositories (SQL)
//
// ForumService depends on the repository interfaces, not on sqlstore, so
// its tests run against in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

// Ranking selects what a leaderboard counts.
type Ranking string

const (
	ByLikes   Ranking = "likes"
	ByFollows Ranking = "follows"
)

// Repositories bundles the stores ForumService needs.
type Repositories struct {
	Users     repository.UserRepository
	Questions repository.QuestionRepository
	Replies   repository.ReplyRepository
	Follows   repository.FollowRepository
	Likes     repository.LikeRepository
}

// ForumService implements the user-facing operations of the questions
// database.
type ForumService struct {
	repos  Repositories
	logger *slog.Logger
}

// NewForumService creates a ForumService. All repositories must be set.
func NewForumService(repos Repositories, logger *slog.Logger) *ForumService {
	return &ForumService{
		repos:  repos,
		logger: logger,
	}
}

// Register stores a new user.
func (s *ForumService) Register(ctx context.Context, fname, lname string) (model.User, error) {
	u := model.User{FName: fname, LName: lname}
	if err := s.repos.Users.Insert(ctx, &u); err != nil {
		s.logger.Error("failed to register user",
			slog.String("name", u.FullName()),
			slog.String("error", err.Error()),
		)
		return model.User{}, fmt.Errorf("service: registering %s: %w", u.FullName(), err)
	}

	s.logger.Info("user registered", slog.Int64("id", u.ID), slog.String("name", u.FullName()))
	return u, nil
}

// Ask posts a question. The author must exist.
func (s *ForumService) Ask(ctx context.Context, authorID int64, title, body string) (model.Question, error) {
	if err := s.requireUser(ctx, authorID); err != nil {
		return model.Question{}, err
	}

	q := model.Question{Title: title, Body: body, AuthorID: authorID}
	if err := s.repos.Questions.Insert(ctx, &q); err != nil {
		s.logger.Error("failed to post question",
			slog.Int64("author_id", authorID),
			slog.String("error", err.Error()),
		)
		return model.Question{}, fmt.Errorf("service: posting question: %w", err)
	}

	s.logger.Info("question posted", slog.Int64("id", q.ID), slog.Int64("author_id", authorID))
	return q, nil
}

// Answer posts a reply to a question, or to another reply when parentID is
// set. The parent must belong to the same question.
func (s *ForumService) Answer(ctx context.Context, authorID, questionID int64, parentID *int64, body string) (model.Reply, error) {
	if err := s.requireUser(ctx, authorID); err != nil {
		return model.Reply{}, err
	}
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return model.Reply{}, err
	}

	if parentID != nil {
		parent, found, err := s.repos.Replies.FindByID(ctx, *parentID)
		if err != nil {
			return model.Reply{}, fmt.Errorf("service: loading parent reply %d: %w", *parentID, err)
		}
		if !found {
			return model.Reply{}, apperror.NotFound("reply", *parentID)
		}
		if parent.QuestionID != questionID {
			return model.Reply{}, apperror.ValidationFailed("parent_id",
				fmt.Sprintf("reply %d belongs to question %d, not %d", parent.ID, parent.QuestionID, questionID))
		}
	}

	r := model.Reply{Body: body, AuthorID: authorID, QuestionID: questionID, ParentID: parentID}
	if err := s.repos.Replies.Insert(ctx, &r); err != nil {
		s.logger.Error("failed to post reply",
			slog.Int64("question_id", questionID),
			slog.String("error", err.Error()),
		)
		return model.Reply{}, fmt.Errorf("service: posting reply: %w", err)
	}

	s.logger.Info("reply posted", slog.Int64("id", r.ID), slog.Int64("question_id", questionID))
	return r, nil
}

// Follow records that the user follows the question. Following twice stores
// two rows.
func (s *ForumService) Follow(ctx context.Context, userID, questionID int64) (model.QuestionFollow, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.QuestionFollow{}, err
	}
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return model.QuestionFollow{}, err
	}

	f := model.QuestionFollow{UserID: userID, QuestionID: questionID}
	if err := s.repos.Follows.Insert(ctx, &f); err != nil {
		return model.QuestionFollow{}, fmt.Errorf("service: following question %d: %w", questionID, err)
	}
	s.logger.Info("question followed", slog.Int64("user_id", userID), slog.Int64("question_id", questionID))
	return f, nil
}

// Like records that the user likes the question.
func (s *ForumService) Like(ctx context.Context, userID, questionID int64) (model.QuestionLike, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.QuestionLike{}, err
	}
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return model.QuestionLike{}, err
	}

	l := model.QuestionLike{UserID: userID, QuestionID: questionID}
	if err := s.repos.Likes.Insert(ctx, &l); err != nil {
		return model.QuestionLike{}, fmt.Errorf("service: liking question %d: %w", questionID, err)
	}
	s.logger.Info("question liked", slog.Int64("user_id", userID), slog.Int64("question_id", questionID))
	return l, nil
}

// Karma looks a user up by name and returns their average karma.
func (s *ForumService) Karma(ctx context.Context, fname, lname string) (model.User, float64, error) {
	u, found, err := s.repos.Users.FindByName(ctx, fname, lname)
	if err != nil {
		return model.User{}, 0, fmt.Errorf("service: finding user %s %s: %w", fname, lname, err)
	}
	if !found {
		return model.User{}, 0, apperror.NotFoundBy("user", fname+" "+lname)
	}

	karma, err := s.repos.Users.AverageKarma(ctx, u.ID)
	if err != nil {
		return model.User{}, 0, fmt.Errorf("service: computing karma for user %d: %w", u.ID, err)
	}
	return u, karma, nil
}

// Leaderboard returns the top n questions by likes or follows.
func (s *ForumService) Leaderboard(ctx context.Context, by Ranking, n int) ([]model.RankedQuestion, error) {
	var (
		ranked []model.RankedQuestion
		err    error
	)
	switch by {
	case ByLikes:
		ranked, err = s.repos.Likes.MostLikedQuestions(ctx, n)
	case ByFollows:
		ranked, err = s.repos.Follows.MostFollowedQuestions(ctx, n)
	default:
		return nil, apperror.ValidationFailed("by",
			fmt.Sprintf("unknown ranking %q (want %q or %q)", by, ByLikes, ByFollows))
	}
	if err != nil {
		return nil, fmt.Errorf("service: ranking questions by %s: %w", by, err)
	}
	return ranked, nil
}

func (s *ForumService) requireUser(ctx context.Context, id int64) error {
	_, found, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service: loading user %d: %w", id, err)
	}
	if !found {
		return apperror.NotFound("user", id)
	}
	return nil
}

func (s *ForumService) requireQuestion(ctx context.Context, id int64) error {
	_, found, err := s.repos.Questions.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service: loading question %d: %w", id, err)
	}
	if !found {
		return apperror.NotFound("question", id)
	}
	return nil
}
