package dto

import "github.com/yigit/registrar/internal/app/models"

// CreateFacultyRequest represents faculty creation data. A missing name is
// passed through and rejected by the store.
type CreateFacultyRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255" example:"Dr. Lee"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=255" example:"CS101"`
	FacultyID *int64  `json:"facultyId" example:"1"`
}

// StudentRequest is the body of both student create and student replace.
// CourseIDs is the complete enrollment set.
type StudentRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255" example:"Ann"`
	AdvisorID *int64  `json:"advisorId" example:"1"`
	CourseIDs []int64 `json:"courseIds" binding:"omitempty,dive,gt=0" example:"1,2"`
}

// ToInput converts the request into the service input
func (r StudentRequest) ToInput() models.StudentInput {
	return models.StudentInput{
		Name:      r.Name,
		AdvisorID: r.AdvisorID,
		CourseIDs: r.CourseIDs,
	}
}
