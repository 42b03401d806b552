package dto

// MessageResponse is returned by deletes and the student replace
type MessageResponse struct {
	Message string `json:"message" example:"Student updated successfully"`
}

// NewIDResponse carries the generated id of a new faculty member or course
type NewIDResponse struct {
	NewID int64 `json:"newId" example:"1"`
}

// NewStudentIDResponse carries the generated id of a new student
type NewStudentIDResponse struct {
	NewStudentID int64 `json:"newStudentId" example:"1"`
}

// HealthResponse reports whether the store is reachable
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Response messages
const (
	MessageFacultyDeleted = "Faculty deleted"
	MessageCourseDeleted  = "Course deleted"
	MessageStudentDeleted = "Student deleted"
	MessageStudentUpdated = "Student updated successfully"
)
