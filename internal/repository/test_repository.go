package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kmdev/school-records-api/internal/models"
)

const testColumns = "id, student_id, course_id, test_name, date, mark, out_of, weight, created_at, updated_at"

// TestRepository manages persistence for test records.
type TestRepository struct {
	db *sqlx.DB
}

// NewTestRepository constructs a TestRepository.
func NewTestRepository(db *sqlx.DB) *TestRepository {
	return &TestRepository{db: db}
}

// List returns all test records ordered by creation time.
func (r *TestRepository) List(ctx context.Context) ([]models.Test, error) {
	query := fmt.Sprintf("SELECT %s FROM tests ORDER BY created_at", testColumns)
	tests := []models.Test{}
	if err := r.db.SelectContext(ctx, &tests, query); err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

// FindByID fetches a test record by ID.
func (r *TestRepository) FindByID(ctx context.Context, id string) (*models.Test, error) {
	query := fmt.Sprintf("SELECT %s FROM tests WHERE id = $1", testColumns)
	var test models.Test
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		return nil, err
	}
	return &test, nil
}

// ListByStudent returns all tests referencing the student.
func (r *TestRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Test, error) {
	query := fmt.Sprintf("SELECT %s FROM tests WHERE student_id = $1 ORDER BY date, created_at", testColumns)
	tests := []models.Test{}
	if err := r.db.SelectContext(ctx, &tests, query, studentID); err != nil {
		return nil, fmt.Errorf("list tests for student: %w", err)
	}
	return tests, nil
}

// ListByCourse returns all tests referencing the course.
func (r *TestRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Test, error) {
	query := fmt.Sprintf("SELECT %s FROM tests WHERE course_id = $1 ORDER BY date, created_at", testColumns)
	tests := []models.Test{}
	if err := r.db.SelectContext(ctx, &tests, query, courseID); err != nil {
		return nil, fmt.Errorf("list tests for course: %w", err)
	}
	return tests, nil
}

// ExistsByStudent reports whether any test still references the student.
func (r *TestRepository) ExistsByStudent(ctx context.Context, studentID string) (bool, error) {
	const query = `SELECT 1 FROM tests WHERE student_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check tests for student: %w", err)
	}
	return true, nil
}

// ExistsByCourse reports whether any test still references the course.
func (r *TestRepository) ExistsByCourse(ctx context.Context, courseID string) (bool, error) {
	const query = `SELECT 1 FROM tests WHERE course_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check tests for course: %w", err)
	}
	return true, nil
}

// Create inserts a new test record.
func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if test.CreatedAt.IsZero() {
		test.CreatedAt = now
	}
	test.UpdatedAt = now

	const query = `INSERT INTO tests (id, student_id, course_id, test_name, date, mark, out_of, weight, created_at, updated_at)
		VALUES (:id, :student_id, :course_id, :test_name, :date, :mark, :out_of, :weight, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("create test: %w", err)
	}
	return nil
}

// Update modifies an existing test record.
func (r *TestRepository) Update(ctx context.Context, test *models.Test) error {
	test.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tests SET student_id = :student_id, course_id = :course_id, test_name = :test_name, date = :date, mark = :mark, out_of = :out_of, weight = :weight, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("update test: %w", err)
	}
	return nil
}

// Delete removes a test record permanently.
func (r *TestRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tests WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete test: %w", err)
	}
	return nil
}
