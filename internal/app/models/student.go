package models

// Student defines the student model based on the 'student' table
type Student struct {
	ID        int64  `json:"student_id" db:"student_id"`
	Name      string `json:"name" db:"name"`
	AdvisorID *int64 `json:"advisor_id" db:"advisor_id"` // Nullable FK to faculty
}

// StudentListItem is one row of the student overview: the advisor's name and
// every enrolled course title joined into one display string.
type StudentListItem struct {
	ID          int64   `json:"student_id" db:"student_id"`
	Name        string  `json:"student_name" db:"student_name"`
	AdvisorName *string `json:"advisor_name" db:"advisor_name"`
	Courses     *string `json:"courses" db:"courses"`
}

// StudentDetail is the edit-form view of a student: ids rather than names.
type StudentDetail struct {
	Student
	CourseIDs []int64 `json:"courseIds"`
}

// StudentInput carries the writable fields of a student, used by both
// create and full replace.
type StudentInput struct {
	Name      *string
	AdvisorID *int64
	CourseIDs []int64
}
