// Package model defines the records stored by the questions database.
//
// Each type is a plain value mirroring one row of one table. Records never
// hold references to related records: a Question knows its AuthorID, not its
// author. Relationships are loaded on demand through the repository layer.
//
// IDENTITY STATE:
// A record is either New (ID == 0, never saved) or Persisted (ID > 0, assigned
// by the database on insert). IsPersisted reports which, and the store picks
// INSERT or UPDATE from it.
package model

// User is a member who asks questions, replies, follows and likes.
type User struct {
	ID    int64  `json:"id"    db:"id"`
	FName string `json:"fname" db:"fname"`
	LName string `json:"lname" db:"lname"`
}

// IsPersisted reports whether the user has been assigned an id by the store.
func (u User) IsPersisted() bool { return u.ID != 0 }

// FullName joins first and last name with a space.
func (u User) FullName() string {
	switch {
	case u.FName == "":
		return u.LName
	case u.LName == "":
		return u.FName
	}
	return u.FName + " " + u.LName
}
