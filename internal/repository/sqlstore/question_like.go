package sqlstore

import (
	"context"
	"fmt"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

var _ repository.LikeRepository = (*LikeStore)(nil)

var likeMapping = mapping[model.QuestionLike]{
	table:    "question_likes",
	resource: "question like",
	columns:  []string{"user_id", "question_id"},
	scan: func(s scanner) (model.QuestionLike, error) {
		var l model.QuestionLike
		err := s.Scan(&l.ID, &l.UserID, &l.QuestionID)
		return l, err
	},
	values: func(l *model.QuestionLike) []any { return []any{l.UserID, l.QuestionID} },
	id:     func(l *model.QuestionLike) *int64 { return &l.ID },
}

// LikeStore reads and writes question_likes.
type LikeStore struct {
	*Table[model.QuestionLike]
}

var (
	sqlLikersForQuestion = fmt.Sprintf(`
	SELECT %s
	FROM question_likes
	JOIN users ON users.id = question_likes.user_id
	WHERE question_likes.question_id = ?`, userMapping.qualifiedList())

	sqlLikedQuestionsForUser = fmt.Sprintf(`
	SELECT %s
	FROM question_likes
	JOIN questions ON questions.id = question_likes.question_id
	WHERE question_likes.user_id = ?`, questionMapping.qualifiedList())

	sqlMostLiked = rankingSQL("question_likes")
)

// LikersForQuestionID returns the users who liked the question, once per like.
func (s *LikeStore) LikersForQuestionID(ctx context.Context, questionID int64) ([]model.User, error) {
	return queryAll(ctx, s.db, "question_likes.likers_for_question_id",
		userMapping.scan, sqlLikersForQuestion, questionID)
}

// NumLikesForQuestionID counts like rows for the question.
func (s *LikeStore) NumLikesForQuestionID(ctx context.Context, questionID int64) (int64, error) {
	return queryInt64(ctx, s.db, "question_likes.num_likes_for_question_id",
		"SELECT COUNT(*) FROM question_likes WHERE question_id = ?", questionID)
}

// LikedQuestionsForUserID returns the questions the user liked.
func (s *LikeStore) LikedQuestionsForUserID(ctx context.Context, userID int64) ([]model.Question, error) {
	return queryAll(ctx, s.db, "question_likes.liked_questions_for_user_id",
		questionMapping.scan, sqlLikedQuestionsForUser, userID)
}

// MostLikedQuestions returns at most n questions with their like counts,
// highest first. n <= 0 returns nothing.
func (s *LikeStore) MostLikedQuestions(ctx context.Context, n int) ([]model.RankedQuestion, error) {
	if n <= 0 {
		return []model.RankedQuestion{}, nil
	}
	return queryAll(ctx, s.db, "question_likes.most_liked_questions",
		scanRanked, sqlMostLiked, n)
}
