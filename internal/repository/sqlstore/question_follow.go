package sqlstore

import (
	"context"
	"fmt"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

var _ repository.FollowRepository = (*FollowStore)(nil)

var followMapping = mapping[model.QuestionFollow]{
	table:    "questions_follows",
	resource: "question follow",
	columns:  []string{"user_id", "question_id"},
	scan: func(s scanner) (model.QuestionFollow, error) {
		var f model.QuestionFollow
		err := s.Scan(&f.ID, &f.UserID, &f.QuestionID)
		return f, err
	},
	values: func(f *model.QuestionFollow) []any { return []any{f.UserID, f.QuestionID} },
	id:     func(f *model.QuestionFollow) *int64 { return &f.ID },
}

// FollowStore reads and writes questions_follows, the join table between
// users and the questions they follow.
type FollowStore struct {
	*Table[model.QuestionFollow]
}

var (
	sqlFollowersForQuestion = fmt.Sprintf(`
	SELECT %s
	FROM questions_follows
	JOIN users ON users.id = questions_follows.user_id
	WHERE questions_follows.question_id = ?`, userMapping.qualifiedList())

	sqlFollowedQuestionsForUser = fmt.Sprintf(`
	SELECT %s
	FROM questions_follows
	JOIN questions ON questions.id = questions_follows.question_id
	WHERE questions_follows.user_id = ?`, questionMapping.qualifiedList())

	sqlMostFollowed = rankingSQL("questions_follows")
)

// FollowersForQuestionID returns the users following the question. A user
// who followed twice appears twice.
func (s *FollowStore) FollowersForQuestionID(ctx context.Context, questionID int64) ([]model.User, error) {
	return queryAll(ctx, s.db, "questions_follows.followers_for_question_id",
		userMapping.scan, sqlFollowersForQuestion, questionID)
}

// FollowedQuestionsForUserID returns the questions the user follows.
func (s *FollowStore) FollowedQuestionsForUserID(ctx context.Context, userID int64) ([]model.Question, error) {
	return queryAll(ctx, s.db, "questions_follows.followed_questions_for_user_id",
		questionMapping.scan, sqlFollowedQuestionsForUser, userID)
}

// NumFollowersForQuestionID counts follow rows for the question.
func (s *FollowStore) NumFollowersForQuestionID(ctx context.Context, questionID int64) (int64, error) {
	return queryInt64(ctx, s.db, "questions_follows.num_followers_for_question_id",
		"SELECT COUNT(*) FROM questions_follows WHERE question_id = ?", questionID)
}

// MostFollowedQuestions returns at most n questions with their follow counts,
// highest first. n <= 0 returns nothing.
func (s *FollowStore) MostFollowedQuestions(ctx context.Context, n int) ([]model.RankedQuestion, error) {
	if n <= 0 {
		return []model.RankedQuestion{}, nil
	}
	return queryAll(ctx, s.db, "questions_follows.most_followed_questions",
		scanRanked, sqlMostFollowed, n)
}

// rankingSQL groups a join table by question and orders by row count.
//
// The inner join means a question with no rows in joinTable is never ranked,
// so it can never outrank one with at least one. Ties keep the database's
// order, which is not specified.
func rankingSQL(joinTable string) string {
	cols := questionMapping.qualifiedList()
	return fmt.Sprintf(`
	SELECT %[1]s, COUNT(%[2]s.id) AS num
	FROM %[2]s
	JOIN questions ON questions.id = %[2]s.question_id
	GROUP BY %[1]s
	ORDER BY num DESC
	LIMIT ?`, cols, joinTable)
}

func scanRanked(s scanner) (model.RankedQuestion, error) {
	var r model.RankedQuestion
	err := s.Scan(&r.ID, &r.Title, &r.Body, &r.AuthorID, &r.Count)
	return r, err
}
