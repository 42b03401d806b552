package services

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	GetAllFaculty(ctx context.Context) ([]*models.Faculty, error)
	CreateFaculty(ctx context.Context, name *string) (int64, error)
	DeleteFaculty(ctx context.Context, id int64) error
}

type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

func (s *facultyServiceImpl) GetAllFaculty(ctx context.Context) ([]*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetAllFaculty(ctx)
	if err != nil {
		return nil, asStoreError(err, "failed to list faculty")
	}
	return faculty, nil
}

// CreateFaculty does not check names for uniqueness; the store decides
// whether a missing name is acceptable.
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, name *string) (int64, error) {
	id, err := s.facultyRepo.CreateFaculty(ctx, name)
	if err != nil {
		return 0, asStoreError(err, "failed to create faculty")
	}
	return id, nil
}

// DeleteFaculty returns apperrors.ErrFacultyInUse while any course or student
// references the faculty member.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := validateID(id, "faculty"); err != nil {
		return err
	}
	if err := s.facultyRepo.DeleteFaculty(ctx, id); err != nil {
		return asStoreError(err, "failed to delete faculty")
	}
	return nil
}
