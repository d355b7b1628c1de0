package sqlstore

import (
	"context"
	"database/sql"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/repository"
)

var _ repository.ReplyRepository = (*ReplyStore)(nil)

var replyMapping = mapping[model.Reply]{
	table:    "replies",
	resource: "reply",
	columns:  []string{"body", "author_id", "question_id", "parent_id"},
	scan: func(s scanner) (model.Reply, error) {
		var (
			r      model.Reply
			parent sql.NullInt64
		)
		if err := s.Scan(&r.ID, &r.Body, &r.AuthorID, &r.QuestionID, &parent); err != nil {
			return r, err
		}
		if parent.Valid {
			r.ParentID = &parent.Int64
		}
		return r, nil
	},
	values: func(r *model.Reply) []any {
		// A nil *int64 must reach the driver as NULL, not as a typed nil.
		var parent any
		if r.ParentID != nil {
			parent = *r.ParentID
		}
		return []any{r.Body, r.AuthorID, r.QuestionID, parent}
	},
	id: func(r *model.Reply) *int64 { return &r.ID },
}

// ReplyStore reads and writes the replies table.
//
// Replies form a tree per question through parent_id. The store only ever
// loads one level at a time; ForumService.Thread walks the whole tree.
type ReplyStore struct {
	*Table[model.Reply]
}

// FindByUserID returns every reply written by the user.
func (s *ReplyStore) FindByUserID(ctx context.Context, userID int64) ([]model.Reply, error) {
	return s.Where(ctx, repository.Criteria{"author_id": userID})
}

// FindByQuestionID returns every reply to the question, nested or not.
func (s *ReplyStore) FindByQuestionID(ctx context.Context, questionID int64) ([]model.Reply, error) {
	return s.Where(ctx, repository.Criteria{"question_id": questionID})
}

// TopLevel returns the replies that answer the question directly.
func (s *ReplyStore) TopLevel(ctx context.Context, questionID int64) ([]model.Reply, error) {
	return s.Where(ctx, repository.Criteria{"question_id": questionID, "parent_id": nil})
}

// ChildReplies returns the direct children of r. Grandchildren are not
// included; call ChildReplies again on each child to go deeper.
func (s *ReplyStore) ChildReplies(ctx context.Context, r model.Reply) ([]model.Reply, error) {
	return s.Where(ctx, repository.Criteria{"parent_id": r.ID})
}

func (s *ReplyStore) Author(ctx context.Context, r model.Reply) (model.User, bool, error) {
	return s.db.users.FindByID(ctx, r.AuthorID)
}

func (s *ReplyStore) Question(ctx context.Context, r model.Reply) (model.Question, bool, error) {
	return s.db.questions.FindByID(ctx, r.QuestionID)
}

// ParentReply returns the reply r is nested under. A top-level reply has no
// parent and found is false; no query is issued for it.
func (s *ReplyStore) ParentReply(ctx context.Context, r model.Reply) (model.Reply, bool, error) {
	if r.ParentID == nil {
		return model.Reply{}, false, nil
	}
	return s.FindByID(ctx, *r.ParentID)
}
