package services

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/helpers"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	GetAllCourses(ctx context.Context) ([]*models.CourseListItem, error)
	CreateCourse(ctx context.Context, title *string, facultyID *int64) (int64, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.CourseListItem, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, asStoreError(err, "failed to list courses")
	}
	return courses, nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, title *string, facultyID *int64) (int64, error) {
	id, err := s.courseRepo.CreateCourse(ctx, title, helpers.OptionalID(facultyID))
	if err != nil {
		return 0, asStoreError(err, "failed to create course")
	}
	return id, nil
}

// DeleteCourse returns apperrors.ErrCourseInUse while students are enrolled.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := validateID(id, "course"); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return asStoreError(err, "failed to delete course")
	}
	return nil
}
