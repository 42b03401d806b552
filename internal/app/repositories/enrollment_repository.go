package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// EnrollmentRepository handles the student_courses join table
type EnrollmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(conn db.DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

// WithTx returns a copy of the repository whose statements run on tx
func (r *EnrollmentRepository) WithTx(tx pgx.Tx) *EnrollmentRepository {
	return &EnrollmentRepository{db: tx, sb: r.sb}
}

// GetCourseIDsByStudentID returns the ids of every course the student is
// enrolled in. The result is never nil.
func (r *EnrollmentRepository) GetCourseIDsByStudentID(ctx context.Context, studentID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("course_id").
		From(tableStudentCourses).
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing get enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return ids, nil
}

// DeleteByStudentID removes every enrollment of the student and reports how
// many rows went.
func (r *EnrollmentRepository) DeleteByStudentID(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := r.sb.Delete(tableStudentCourses).
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete enrollments query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing delete enrollments query")
		return 0, fmt.Errorf("error deleting enrollments: %w", err)
	}

	return tag.RowsAffected(), nil
}

// InsertMany enrolls the student in every course of courseIDs with a single
// multi-row INSERT. An empty list is a no-op.
func (r *EnrollmentRepository) InsertMany(ctx context.Context, studentID int64, courseIDs []int64) error {
	if len(courseIDs) == 0 {
		return nil
	}

	q := r.sb.Insert(tableStudentCourses).Columns("student_id", "course_id")
	for _, courseID := range courseIDs {
		q = q.Values(studentID, courseID)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert enrollments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int("courses", len(courseIDs)).Msg("Error executing insert enrollments query")
		return fmt.Errorf("error inserting enrollments: %w", err)
	}

	return nil
}
