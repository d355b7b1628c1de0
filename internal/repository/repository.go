// Package repository declares the data-access interfaces the service layer
// depends on. The sqlstore package implements them over database/sql; tests
// substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/questions-db/internal/model"
)

// Criteria maps column names to the values they must equal. All entries are
// ANDed together. A nil value, typed (a nil *int64) or not, matches SQL NULL.
//
// Column names are checked against the table's known columns before any SQL
// is built; an unknown name or an empty Criteria is rejected with
// apperror.ErrInvalidQuery.
type Criteria map[string]any

// Lookups return (record, true, nil) when found and (zero, false, nil) when
// absent. An error always means the query itself failed.

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, bool, error)
	FindByName(ctx context.Context, fname, lname string) (model.User, bool, error)
	Insert(ctx context.Context, user *model.User) error
	AverageKarma(ctx context.Context, userID int64) (float64, error)
}

type QuestionRepository interface {
	FindByID(ctx context.Context, id int64) (model.Question, bool, error)
	Insert(ctx context.Context, question *model.Question) error
}

type ReplyRepository interface {
	FindByID(ctx context.Context, id int64) (model.Reply, bool, error)
	TopLevel(ctx context.Context, questionID int64) ([]model.Reply, error)
	ChildReplies(ctx context.Context, reply model.Reply) ([]model.Reply, error)
	Insert(ctx context.Context, reply *model.Reply) error
}

type FollowRepository interface {
	Insert(ctx context.Context, follow *model.QuestionFollow) error
	MostFollowedQuestions(ctx context.Context, n int) ([]model.RankedQuestion, error)
}

type LikeRepository interface {
	Insert(ctx context.Context, like *model.QuestionLike) error
	MostLikedQuestions(ctx context.Context, n int) ([]model.RankedQuestion, error)
}
