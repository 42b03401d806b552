package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/helpers"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]*models.StudentListItem, error)
	GetStudentByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	CreateStudent(ctx context.Context, in models.StudentInput) (int64, error)
	UpdateStudent(ctx context.Context, id int64, in models.StudentInput) error
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	tx             db.Transactor
	studentRepo    *repositories.StudentRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewStudentService creates a new student service instance. Writes that touch
// more than one table go through tx.
func NewStudentService(
	tx db.Transactor,
	studentRepo *repositories.StudentRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		tx:             tx,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.StudentListItem, error) {
	students, err := s.studentRepo.GetAllStudents(ctx)
	if err != nil {
		return nil, asStoreError(err, "failed to list students")
	}
	return students, nil
}

// GetStudentByID returns the student with the ids (not titles) of the
// enrolled courses.
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if err := validateID(id, "student"); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, asStoreError(err, "failed to get student")
	}

	courseIDs, err := s.enrollmentRepo.GetCourseIDsByStudentID(ctx, id)
	if err != nil {
		return nil, asStoreError(err, "failed to get student courses")
	}

	return &models.StudentDetail{Student: *student, CourseIDs: courseIDs}, nil
}

// CreateStudent inserts the student and its enrollments in one transaction,
// so a failed enrollment insert leaves no half-created student behind.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, in models.StudentInput) (int64, error) {
	advisorID := helpers.OptionalID(in.AdvisorID)
	courseIDs := helpers.UniqueIDs(in.CourseIDs)

	var newID int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.studentRepo.WithTx(tx).CreateStudent(ctx, in.Name, advisorID)
		if err != nil {
			return err
		}
		if err := s.enrollmentRepo.WithTx(tx).InsertMany(ctx, id, courseIDs); err != nil {
			return err
		}
		newID = id
		return nil
	})
	if err != nil {
		return 0, asStoreError(err, "failed to create student")
	}

	s.logger.Info().Int64("studentID", newID).Int("courses", len(courseIDs)).Msg("Student created")
	return newID, nil
}

// UpdateStudent replaces name, advisor and the whole enrollment set
// atomically: update the row, drop every enrollment, insert the new ones.
// Any failing step rolls back all three.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, in models.StudentInput) error {
	if err := validateID(id, "student"); err != nil {
		return err
	}

	advisorID := helpers.OptionalID(in.AdvisorID)
	courseIDs := helpers.UniqueIDs(in.CourseIDs)

	var removed int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.studentRepo.WithTx(tx)
		enrollments := s.enrollmentRepo.WithTx(tx)

		if err := students.UpdateStudent(ctx, id, in.Name, advisorID); err != nil {
			return err
		}

		n, err := enrollments.DeleteByStudentID(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return enrollments.InsertMany(ctx, id, courseIDs)
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", id).Msg("Student update rolled back")
		return asStoreError(err, "failed to update student")
	}

	s.logger.Info().
		Int64("studentID", id).
		Int64("removedCourses", removed).
		Int("addedCourses", len(courseIDs)).
		Msg("Student updated")
	return nil
}

// DeleteStudent is a single statement; the schema cascades to student_courses.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateID(id, "student"); err != nil {
		return err
	}
	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		return asStoreError(err, "failed to delete student")
	}
	return nil
}
