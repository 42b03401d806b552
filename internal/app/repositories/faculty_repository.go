package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(conn db.DBTX) *FacultyRepository {
	return &FacultyRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

// GetAllFaculty retrieves every faculty row in id order
func (r *FacultyRepository) GetAllFaculty(ctx context.Context) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select("faculty_id", "name").
		From(tableFaculty).
		OrderBy("faculty_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all faculty query")
		return nil, fmt.Errorf("error querying faculty: %w", err)
	}
	defer rows.Close()

	faculty := []*models.Faculty{}
	for rows.Next() {
		f := &models.Faculty{}
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculty = append(faculty, f)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculty, nil
}

// CreateFaculty inserts a faculty member and returns the generated id.
// A nil name is sent as NULL and left for the schema to reject.
func (r *FacultyRepository) CreateFaculty(ctx context.Context, name *string) (int64, error) {
	sql, args, err := r.sb.Insert(tableFaculty).
		Columns("name").
		Values(name).
		Suffix("RETURNING faculty_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return id, nil
}

// DeleteFaculty deletes a faculty member. The store refuses while a course or
// student still points at the row; that refusal becomes ErrFacultyInUse.
func (r *FacultyRepository) DeleteFaculty(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(tableFaculty).
		Where(squirrel.Eq{"faculty_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrFacultyInUse.WithCause(err)
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
		return fmt.Errorf("error deleting faculty: %w", err)
	}

	return nil
}

// CountFaculty returns the number of faculty rows
func (r *FacultyRepository) CountFaculty(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(tableFaculty).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count faculty query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting faculty: %w", err)
	}
	return n, nil
}
