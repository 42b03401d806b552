package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/registrar/internal/db"
)

// Table names
const (
	tableFaculty        = "faculty"
	tableCourse         = "course"
	tableStudent        = "student"
	tableStudentCourses = "student_courses"
)

// Repositories holds all the repository instances
type Repositories struct {
	FacultyRepository    *FacultyRepository
	CourseRepository     *CourseRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories over the same handle
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		FacultyRepository:    NewFacultyRepository(conn),
		CourseRepository:     NewCourseRepository(conn),
		StudentRepository:    NewStudentRepository(conn),
		EnrollmentRepository: NewEnrollmentRepository(conn),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
