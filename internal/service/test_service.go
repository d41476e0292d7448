package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kmdev/school-records-api/internal/models"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
)

type testRepository interface {
	List(ctx context.Context) ([]models.Test, error)
	FindByID(ctx context.Context, id string) (*models.Test, error)
	Create(ctx context.Context, test *models.Test) error
	Update(ctx context.Context, test *models.Test) error
	Delete(ctx context.Context, id string) error
}

type studentResolver interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type courseResolver interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// CreateTestRequest represents payload for recording a test result.
// Mark, outOf and weight accept JSON numbers or numeric strings.
type CreateTestRequest struct {
	StudentID string         `json:"studentId" validate:"required"`
	CourseID  string         `json:"courseId" validate:"required"`
	TestName  string         `json:"testName" validate:"required"`
	Date      string         `json:"date" validate:"required"`
	Mark      *models.Number `json:"mark" validate:"required"`
	OutOf     *models.Number `json:"outOf" validate:"required"`
	Weight    *models.Number `json:"weight"`
}

// UpdateTestRequest represents a partial update of a test record.
type UpdateTestRequest struct {
	StudentID *string        `json:"studentId"`
	CourseID  *string        `json:"courseId"`
	TestName  *string        `json:"testName"`
	Date      *string        `json:"date"`
	Mark      *models.Number `json:"mark"`
	OutOf     *models.Number `json:"outOf"`
	Weight    *models.Number `json:"weight"`
}

func (r UpdateTestRequest) empty() bool {
	return r.StudentID == nil && r.CourseID == nil && r.TestName == nil && r.Date == nil &&
		r.Mark == nil && r.OutOf == nil && r.Weight == nil
}

// TestService orchestrates test record operations.
type TestService struct {
	repo      testRepository
	students  studentResolver
	courses   courseResolver
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestService constructs a TestService. The cache is optional; when
// present, average reports are invalidated on every test write.
func NewTestService(repo testRepository, students studentResolver, courses courseResolver, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestService{repo: repo, students: students, courses: courses, cache: cache, validator: validate, logger: logger}
}

// List returns all test records.
func (s *TestService) List(ctx context.Context) ([]models.Test, error) {
	tests, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tests")
	}
	return tests, nil
}

// Get returns a test record by id.
func (s *TestService) Get(ctx context.Context, id string) (*models.Test, error) {
	if err := validateID(id, "test id"); err != nil {
		return nil, err
	}
	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "test not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test")
	}
	return test, nil
}

// Create records a new test after resolving both references. Fields are
// trimmed before validation so whitespace-only values fail the required
// checks.
func (s *TestService) Create(ctx context.Context, req CreateTestRequest) (*models.Test, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.CourseID = strings.TrimSpace(req.CourseID)
	req.TestName = strings.TrimSpace(req.TestName)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	if err := s.resolveStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if err := s.resolveCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	test := &models.Test{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		TestName:  req.TestName,
		Date:      req.Date,
		Mark:      req.Mark.Float64(),
		OutOf:     req.OutOf.Float64(),
	}
	if req.Weight != nil {
		test.Weight = req.Weight.Float64()
	}

	if err := s.repo.Create(ctx, test); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create test")
	}
	s.invalidateAverages(ctx)
	return test, nil
}

// Update applies the supplied fields, re-resolving any reference the
// payload changes.
func (s *TestService) Update(ctx context.Context, id string, req UpdateTestRequest) (*models.Test, error) {
	if err := validateID(id, "test id"); err != nil {
		return nil, err
	}
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid fields to update")
	}

	test, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "test not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test")
	}

	if req.StudentID != nil {
		studentID, err := requireValue(*req.StudentID, "studentId")
		if err != nil {
			return nil, err
		}
		if err := s.resolveStudent(ctx, studentID); err != nil {
			return nil, err
		}
		test.StudentID = studentID
	}
	if req.CourseID != nil {
		courseID, err := requireValue(*req.CourseID, "courseId")
		if err != nil {
			return nil, err
		}
		if err := s.resolveCourse(ctx, courseID); err != nil {
			return nil, err
		}
		test.CourseID = courseID
	}
	if req.TestName != nil {
		v, err := requireValue(*req.TestName, "testName")
		if err != nil {
			return nil, err
		}
		test.TestName = v
	}
	if req.Date != nil {
		v, err := requireValue(*req.Date, "date")
		if err != nil {
			return nil, err
		}
		test.Date = v
	}
	if req.Mark != nil {
		test.Mark = req.Mark.Float64()
	}
	if req.OutOf != nil {
		test.OutOf = req.OutOf.Float64()
	}
	if req.Weight != nil {
		test.Weight = req.Weight.Float64()
	}

	if err := s.repo.Update(ctx, test); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update test")
	}
	s.invalidateAverages(ctx)
	return test, nil
}

// Delete removes a test record. Tests have no dependents, so only the
// not-found check gates the delete.
func (s *TestService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "test id"); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "test not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete test")
	}
	s.invalidateAverages(ctx)
	return nil
}

func (s *TestService) resolveStudent(ctx context.Context, studentID string) error {
	exists, err := s.students.ExistsByID(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrReference, "studentId does not match a student")
	}
	return nil
}

func (s *TestService) resolveCourse(ctx context.Context, courseID string) error {
	exists, err := s.courses.ExistsByID(ctx, strings.TrimSpace(courseID))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve course reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrReference, "courseId does not match a course")
	}
	return nil
}

func (s *TestService) invalidateAverages(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "avg:*"); err != nil {
		s.logger.Warn("failed to invalidate average cache", zap.Error(err))
	}
}
