package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

const (
	sqlUpdateStudent     = "UPDATE student SET name = $1, advisor_id = $2 WHERE student_id = $3"
	sqlDeleteEnrollments = "DELETE FROM student_courses WHERE student_id = $1"
	sqlInsertStudent     = "INSERT INTO student (name,advisor_id) VALUES ($1,$2) RETURNING student_id"
)

// mockTransactor runs transactions straight on the pgxmock pool, standing in
// for the acquire/release done by db.PostgresDB.
type mockTransactor struct {
	beginner db.TxBeginner
}

func (m mockTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return db.RunInTx(ctx, m.beginner, fn)
}

// nilArg matches a nil interface or a typed nil pointer
type nilArg struct{}

func (nilArg) Match(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// int64PtrArg matches a *int64 pointing at want
type int64PtrArg int64

func (a int64PtrArg) Match(v interface{}) bool {
	p, ok := v.(*int64)
	return ok && p != nil && *p == int64(a)
}

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }

func newStudentService(t *testing.T) (StudentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewStudentService(
		mockTransactor{beginner: mock},
		repositories.NewStudentRepository(mock),
		repositories.NewEnrollmentRepository(mock),
		zerolog.Nop(),
	)
	return svc, mock
}

func expectInsertEnrollments(mock pgxmock.PgxPoolIface, studentID int64, courseIDs ...int64) *pgxmock.ExpectedExec {
	sql := "INSERT INTO student_courses (student_id,course_id) VALUES "
	args := make([]interface{}, 0, len(courseIDs)*2)
	for i, c := range courseIDs {
		if i > 0 {
			sql += ","
		}
		sql += fmt.Sprintf("($%d,$%d)", 2*i+1, 2*i+2)
		args = append(args, studentID, c)
	}
	return mock.ExpectExec(regexp.QuoteMeta(sql)).WithArgs(args...)
}

func TestStudentService_UpdateStudent_ReplacesEnrollments(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
		WithArgs(pgxmock.AnyArg(), int64PtrArg(4), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(sqlDeleteEnrollments)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	expectInsertEnrollments(mock, 1, 2, 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := svc.UpdateStudent(context.Background(), 1, models.StudentInput{
		Name:      strPtr("Ann"),
		AdvisorID: idPtr(4),
		CourseIDs: []int64{2, 3, 2},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_UpdateStudent_EmptyCoursesClearsEnrollments(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(sqlDeleteEnrollments)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	// advisor 0 means "no advisor", as does null
	err := svc.UpdateStudent(context.Background(), 1, models.StudentInput{
		Name:      strPtr("Ann"),
		AdvisorID: idPtr(0),
		CourseIDs: []int64{},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_UpdateStudent_Idempotent(t *testing.T) {
	svc, mock := newStudentService(t)
	in := models.StudentInput{Name: strPtr("Ann"), CourseIDs: []int64{5}}

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
			WithArgs(pgxmock.AnyArg(), nilArg{}, int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta(sqlDeleteEnrollments)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", int64(i)))
		expectInsertEnrollments(mock, 1, 5).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
	}

	require.NoError(t, svc.UpdateStudent(context.Background(), 1, in))
	require.NoError(t, svc.UpdateStudent(context.Background(), 1, in))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_UpdateStudent_InsertFailureRollsBack(t *testing.T) {
	svc, mock := newStudentService(t)
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "student_courses_course_id_fkey"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(sqlDeleteEnrollments)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	expectInsertEnrollments(mock, 1, 99).WillReturnError(fk)
	mock.ExpectRollback()

	err := svc.UpdateStudent(context.Background(), 1, models.StudentInput{
		Name:      strPtr("Renamed"),
		CourseIDs: []int64{99},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
	assert.ErrorIs(t, err, fk)
	assert.NoError(t, mock.ExpectationsWereMet(), "the transaction must roll back and never commit")
}

func TestStudentService_UpdateStudent_DeleteFailureRollsBack(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(sqlDeleteEnrollments)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := svc.UpdateStudent(context.Background(), 1, models.StudentInput{Name: strPtr("Ann"), CourseIDs: []int64{1}})

	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_UpdateStudent_MissingStudent(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sqlUpdateStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}, int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := svc.UpdateStudent(context.Background(), 8, models.StudentInput{Name: strPtr("Ghost"), CourseIDs: []int64{1}})

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_UpdateStudent_InvalidID(t *testing.T) {
	svc, mock := newStudentService(t)

	err := svc.UpdateStudent(context.Background(), 0, models.StudentInput{})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "no transaction for an invalid id")
}

func TestStudentService_CreateStudent(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(sqlInsertStudent)).
		WithArgs(pgxmock.AnyArg(), int64PtrArg(1)).
		WillReturnRows(pgxmock.NewRows([]string{"student_id"}).AddRow(int64(9)))
	expectInsertEnrollments(mock, 9, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := svc.CreateStudent(context.Background(), models.StudentInput{
		Name:      strPtr("Ann"),
		AdvisorID: idPtr(1),
		CourseIDs: []int64{1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_CreateStudent_WithoutCourses(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(sqlInsertStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}).
		WillReturnRows(pgxmock.NewRows([]string{"student_id"}).AddRow(int64(3)))
	mock.ExpectCommit()

	id, err := svc.CreateStudent(context.Background(), models.StudentInput{Name: strPtr("Ben")})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_CreateStudent_EnrollmentFailureLeavesNoStudent(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(sqlInsertStudent)).
		WithArgs(pgxmock.AnyArg(), nilArg{}).
		WillReturnRows(pgxmock.NewRows([]string{"student_id"}).AddRow(int64(3)))
	expectInsertEnrollments(mock, 3, 42).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	id, err := svc.CreateStudent(context.Background(), models.StudentInput{Name: strPtr("Ben"), CourseIDs: []int64{42}})

	assert.Zero(t, id)
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_GetStudentByID(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, name, advisor_id FROM student WHERE student_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "advisor_id"}).
			AddRow(int64(1), "Ann", idPtr(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_id FROM student_courses WHERE student_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"course_id"}).AddRow(int64(1)).AddRow(int64(4)))

	detail, err := svc.GetStudentByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Ann", detail.Name)
	require.NotNil(t, detail.AdvisorID)
	assert.Equal(t, int64(1), *detail.AdvisorID)
	assert.ElementsMatch(t, []int64{4, 1}, detail.CourseIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_GetStudentByID_NotFound(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectQuery("SELECT student_id, name, advisor_id FROM student").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"student_id", "name", "advisor_id"}))

	detail, err := svc.GetStudentByID(context.Background(), 5)

	assert.Nil(t, detail)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentService_DeleteStudent(t *testing.T) {
	svc, mock := newStudentService(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student WHERE student_id = $1")).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	err := svc.DeleteStudent(context.Background(), 1)

	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
