package model

// Question is a post authored by one user.
//
// AuthorID should reference an existing user. SQLite enforces it through a
// foreign key, and ForumService.Ask checks it before inserting.
type Question struct {
	ID       int64  `json:"id"       db:"id"`
	Title    string `json:"title"    db:"title"`
	Body     string `json:"body"     db:"body"`
	AuthorID int64  `json:"authorId" db:"author_id"`
}

func (q Question) IsPersisted() bool { return q.ID != 0 }

// RankedQuestion pairs a question with the number of likes or follows it was
// ranked by.
type RankedQuestion struct {
	Question
	Count int64 `json:"count"`
}
