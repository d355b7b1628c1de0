package model

// QuestionLike records that a user likes a question. Duplicates are allowed
// and each one counts toward the question's likes.
type QuestionLike struct {
	ID         int64 `json:"id"         db:"id"`
	UserID     int64 `json:"userId"     db:"user_id"`
	QuestionID int64 `json:"questionId" db:"question_id"`
}

func (l QuestionLike) IsPersisted() bool { return l.ID != 0 }
