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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByNumber(ctx context.Context, number, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentDependencyChecker interface {
	ExistsByStudent(ctx context.Context, studentID string) (bool, error)
}

// CreateStudentRequest represents payload for creating students. Grade
// accepts a JSON number or a numeric string.
type CreateStudentRequest struct {
	FirstName     string         `json:"firstName" validate:"required"`
	LastName      string         `json:"lastName" validate:"required"`
	Grade         *models.Number `json:"grade" validate:"required"`
	StudentNumber string         `json:"studentNumber" validate:"required"`
	Homeroom      string         `json:"homeroom"`
}

// UpdateStudentRequest represents a partial update of a student.
type UpdateStudentRequest struct {
	FirstName     *string        `json:"firstName"`
	LastName      *string        `json:"lastName"`
	Grade         *models.Number `json:"grade"`
	StudentNumber *string        `json:"studentNumber"`
	Homeroom      *string        `json:"homeroom"`
}

func (r UpdateStudentRequest) empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Grade == nil && r.StudentNumber == nil && r.Homeroom == nil
}

// StudentService orchestrates student operations.
type StudentService struct {
	repo      studentRepository
	tests     studentDependencyChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, tests studentDependencyChecker, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, tests: tests, validator: validate, logger: logger}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	if err := validateID(id, "student id"); err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student record. Fields are trimmed before
// validation so whitespace-only values fail the required checks.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.StudentNumber = strings.TrimSpace(req.StudentNumber)
	req.Homeroom = strings.TrimSpace(req.Homeroom)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	exists, err := s.repo.ExistsByNumber(ctx, req.StudentNumber, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student number uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student number already used")
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Grade:         req.Grade.Int(),
		StudentNumber: req.StudentNumber,
		Homeroom:      req.Homeroom,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update applies the supplied fields to an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := validateID(id, "student id"); err != nil {
		return nil, err
	}
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid fields to update")
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if req.StudentNumber != nil {
		number, err := requireValue(*req.StudentNumber, "studentNumber")
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsByNumber(ctx, number, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student number uniqueness")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student number already used")
		}
		student.StudentNumber = number
	}
	if req.FirstName != nil {
		v, err := requireValue(*req.FirstName, "firstName")
		if err != nil {
			return nil, err
		}
		student.FirstName = v
	}
	if req.LastName != nil {
		v, err := requireValue(*req.LastName, "lastName")
		if err != nil {
			return nil, err
		}
		student.LastName = v
	}
	if req.Grade != nil {
		student.Grade = req.Grade.Int()
	}
	if req.Homeroom != nil {
		student.Homeroom = strings.TrimSpace(*req.Homeroom)
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student, refusing while any test still references it.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "student id"); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	hasTests, err := s.tests.ExistsByStudent(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student dependents")
	}
	if hasTests {
		return appErrors.Clone(appErrors.ErrDependencyConflict, "cannot delete student that still has tests")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
