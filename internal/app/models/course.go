package models

// CourseListItem is a course joined with its faculty member's name.
// FacultyName is nil when no faculty is assigned.
type CourseListItem struct {
	ID          int64   `json:"course_id" db:"course_id"`
	Title       string  `json:"title" db:"title"`
	FacultyName *string `json:"faculty_name" db:"faculty_name"`
}
