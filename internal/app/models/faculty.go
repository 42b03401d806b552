package models

// Faculty is a member of staff who can teach courses and advise students
type Faculty struct {
	ID   int64  `json:"faculty_id" db:"faculty_id"`
	Name string `json:"name" db:"name"`
}
