package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// CourseTitleSeparator joins course titles in the student overview
const CourseTitleSeparator = ", "

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

// WithTx returns a copy of the repository whose statements run on tx
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

// GetAllStudents returns one row per student with the advisor's name and the
// enrolled course titles aggregated into a single string.
func (r *StudentRepository) GetAllStudents(ctx context.Context) ([]*models.StudentListItem, error) {
	sql, args, err := r.sb.Select(
		"s.student_id",
		"s.name AS student_name",
		"f.name AS advisor_name",
		"string_agg(c.title, '"+CourseTitleSeparator+"' ORDER BY c.course_id) AS courses",
	).
		From(tableStudent+" s").
		LeftJoin(tableFaculty+" f ON s.advisor_id = f.faculty_id").
		LeftJoin(tableStudentCourses+" sc ON s.student_id = sc.student_id").
		LeftJoin(tableCourse+" c ON sc.course_id = c.course_id").
		GroupBy("s.student_id", "s.name", "f.name").
		OrderBy("s.student_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.StudentListItem{}
	for rows.Next() {
		s := &models.StudentListItem{}
		if err := rows.Scan(&s.ID, &s.Name, &s.AdvisorName, &s.Courses); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// GetStudentByID returns the base student row or ErrStudentNotFound
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select("student_id", "name", "advisor_id").
		From(tableStudent).
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s := &models.Student{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.AdvisorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return s, nil
}

// CreateStudent inserts the student row and returns its id
func (r *StudentRepository) CreateStudent(ctx context.Context, name *string, advisorID *int64) (int64, error) {
	sql, args, err := r.sb.Insert(tableStudent).
		Columns("name", "advisor_id").
		Values(name, advisorID).
		Suffix("RETURNING student_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// UpdateStudent overwrites name and advisor. Zero affected rows means the
// student does not exist.
func (r *StudentRepository) UpdateStudent(ctx context.Context, id int64, name *string, advisorID *int64) error {
	sql, args, err := r.sb.Update(tableStudent).
		Set("name", name).
		Set("advisor_id", advisorID).
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent deletes the student row. student_courses rows go with it
// through ON DELETE CASCADE in the same statement.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(tableStudent).
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
