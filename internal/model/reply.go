package model

// Reply answers a question, optionally nested under another reply.
//
// WHY ParentID *int64?
// Top-level replies have no parent and the column is NULL. A pointer keeps
// "no parent" distinct from a (never valid) parent id of 0. A parent, when set,
// must belong to the same question. The store does not check this;
// service.ForumService.Answer does.
type Reply struct {
	ID         int64  `json:"id"         db:"id"`
	Body       string `json:"body"       db:"body"`
	AuthorID   int64  `json:"authorId"   db:"author_id"`
	QuestionID int64  `json:"questionId" db:"question_id"`
	ParentID   *int64 `json:"parentId"   db:"parent_id"`
}

func (r Reply) IsPersisted() bool { return r.ID != 0 }

// IsRoot reports whether the reply sits directly under its question.
func (r Reply) IsRoot() bool { return r.ParentID == nil }

// ParentIDOf is a helper for building nested replies: ParentIDOf(parent.ID).
func ParentIDOf(id int64) *int64 { return &id }
