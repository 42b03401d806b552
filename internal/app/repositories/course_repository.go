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

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

// GetAllCourses lists courses with the assigned faculty member's name.
// Unassigned courses are kept (LEFT JOIN) with a NULL name.
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.CourseListItem, error) {
	sql, args, err := r.sb.Select("c.course_id", "c.title", "f.name AS faculty_name").
		From(tableCourse + " c").
		LeftJoin(tableFaculty + " f ON c.faculty_id = f.faculty_id").
		OrderBy("c.course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.CourseListItem{}
	for rows.Next() {
		c := &models.CourseListItem{}
		if err := rows.Scan(&c.ID, &c.Title, &c.FacultyName); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// CreateCourse inserts a course; facultyID may be nil (unassigned).
func (r *CourseRepository) CreateCourse(ctx context.Context, title *string, facultyID *int64) (int64, error) {
	sql, args, err := r.sb.Insert(tableCourse).
		Columns("title", "faculty_id").
		Values(title, facultyID).
		Suffix("RETURNING course_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// DeleteCourse deletes a course. Existing enrollments block the delete and
// surface as ErrCourseInUse.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(tableCourse).
		Where(squirrel.Eq{"course_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseInUse.WithCause(err)
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}
