package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/registrar/internal/app/models"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appServices "github.com/yigit/registrar/internal/app/services"
)

// Result reports what CreateDemoData inserted
type Result struct {
	Skipped   bool
	FacultyID int64
	CourseID  int64
	StudentID int64
}

// CreateDemoData inserts one advisor, one course taught by them and one
// enrolled student. Nothing is written when any faculty row already exists.
func CreateDemoData(
	ctx context.Context,
	repos *appRepos.Repositories,
	students appServices.StudentService,
	lgr zerolog.Logger,
) (*Result, error) {
	n, err := repos.FacultyRepository.CountFaculty(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		lgr.Info().Int64("faculty", n).Msg("Registrar already has data, skipping demo seed")
		return &Result{Skipped: true}, nil
	}

	lgr.Info().Msg("Creating demo data...")

	name := "Dr. Lee"
	facultyID, err := repos.FacultyRepository.CreateFaculty(ctx, &name)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo faculty: %w", err)
	}

	title := "CS101"
	courseID, err := repos.CourseRepository.CreateCourse(ctx, &title, &facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo course: %w", err)
	}

	studentName := "Ann"
	studentID, err := students.CreateStudent(ctx, appModels.StudentInput{
		Name:      &studentName,
		AdvisorID: &facultyID,
		CourseIDs: []int64{courseID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create demo student: %w", err)
	}

	lgr.Info().
		Int64("facultyID", facultyID).
		Int64("courseID", courseID).
		Int64("studentID", studentID).
		Msg("Demo data created")

	return &Result{FacultyID: facultyID, CourseID: courseID, StudentID: studentID}, nil
}
