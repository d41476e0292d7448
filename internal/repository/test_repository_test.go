package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmdev/school-records-api/internal/models"
)

func testRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "course_id", "test_name", "date", "mark", "out_of", "weight", "created_at", "updated_at"})
}

func TestTestRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	rows := testRows().
		AddRow("x1", "s1", "c1", "Quiz 1", "2026-02-10", 8.0, 10.0, 10.0, time.Now(), time.Now()).
		AddRow("x2", "s1", "c1", "Midterm", "2026-03-15", 15.0, 20.0, 30.0, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, course_id, test_name, date, mark, out_of, weight, created_at, updated_at FROM tests WHERE student_id = $1 ORDER BY date, created_at")).
		WithArgs("s1").
		WillReturnRows(rows)

	list, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Quiz 1", list[0].TestName)
	assert.InDelta(t, 75.0, list[1].Percent(), 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestRepositoryListByCourseEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, course_id, test_name, date, mark, out_of, weight, created_at, updated_at FROM tests WHERE course_id = $1 ORDER BY date, created_at")).
		WithArgs("c1").
		WillReturnRows(testRows())

	list, err := repo.ListByCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	mock.ExpectExec("INSERT INTO tests").
		WithArgs(sqlmock.AnyArg(), "s1", "c1", "Quiz 1", "2026-02-10", 8.0, 10.0, 10.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	test := &models.Test{StudentID: "s1", CourseID: "c1", TestName: "Quiz 1", Date: "2026-02-10", Mark: 8, OutOf: 10, Weight: 10}
	require.NoError(t, repo.Create(context.Background(), test))
	assert.NotEmpty(t, test.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestRepositoryExistsByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM tests WHERE student_id = $1 LIMIT 1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM tests WHERE student_id = $1 LIMIT 1")).
		WithArgs("s2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.ExistsByStudent(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByStudent(context.Background(), "s2")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tests WHERE id = $1")).
		WithArgs("x1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "x1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
