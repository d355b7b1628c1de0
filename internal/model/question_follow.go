package model

// QuestionFollow records that a user follows a question. The same pair may be
// stored more than once.
type QuestionFollow struct {
	ID         int64 `json:"id"         db:"id"`
	UserID     int64 `json:"userId"     db:"user_id"`
	QuestionID int64 `json:"questionId" db:"question_id"`
}

func (f QuestionFollow) IsPersisted() bool { return f.ID != 0 }
