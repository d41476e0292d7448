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

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type teacherResolver interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type courseDependencyChecker interface {
	ExistsByCourse(ctx context.Context, courseID string) (bool, error)
}

// CreateCourseRequest represents payload for creating courses.
type CreateCourseRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	Room      string `json:"room" validate:"required"`
	Schedule  string `json:"schedule"`
}

// UpdateCourseRequest represents a partial update of a course.
type UpdateCourseRequest struct {
	Code      *string `json:"code"`
	Name      *string `json:"name"`
	TeacherID *string `json:"teacherId"`
	Semester  *string `json:"semester"`
	Room      *string `json:"room"`
	Schedule  *string `json:"schedule"`
}

func (r UpdateCourseRequest) empty() bool {
	return r.Code == nil && r.Name == nil && r.TeacherID == nil && r.Semester == nil && r.Room == nil && r.Schedule == nil
}

// CourseService orchestrates course operations.
type CourseService struct {
	repo      courseRepository
	teachers  teacherResolver
	tests     courseDependencyChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, teachers teacherResolver, tests courseDependencyChecker, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, tests: tests, validator: validate, logger: logger}
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	if err := validateID(id, "course id"); err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create registers a new course after resolving its teacher reference.
// Fields are trimmed before validation so whitespace-only values fail the
// required checks.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	req.Semester = strings.TrimSpace(req.Semester)
	req.Room = strings.TrimSpace(req.Room)
	req.Schedule = strings.TrimSpace(req.Schedule)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	if err := s.resolveTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already used")
	}

	course := &models.Course{
		Code:      req.Code,
		Name:      req.Name,
		TeacherID: req.TeacherID,
		Semester:  req.Semester,
		Room:      req.Room,
		Schedule:  req.Schedule,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update applies the supplied fields, re-resolving the teacher reference
// whenever the payload changes it.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := validateID(id, "course id"); err != nil {
		return nil, err
	}
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid fields to update")
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if req.TeacherID != nil {
		teacherID, err := requireValue(*req.TeacherID, "teacherId")
		if err != nil {
			return nil, err
		}
		if err := s.resolveTeacher(ctx, teacherID); err != nil {
			return nil, err
		}
		course.TeacherID = teacherID
	}
	if req.Code != nil {
		code, err := requireValue(*req.Code, "code")
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.ExistsByCode(ctx, code, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code uniqueness")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already used")
		}
		course.Code = code
	}
	if req.Name != nil {
		v, err := requireValue(*req.Name, "name")
		if err != nil {
			return nil, err
		}
		course.Name = v
	}
	if req.Semester != nil {
		v, err := requireValue(*req.Semester, "semester")
		if err != nil {
			return nil, err
		}
		course.Semester = v
	}
	if req.Room != nil {
		v, err := requireValue(*req.Room, "room")
		if err != nil {
			return nil, err
		}
		course.Room = v
	}
	if req.Schedule != nil {
		course.Schedule = strings.TrimSpace(*req.Schedule)
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course, refusing while any test still references it.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "course id"); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	hasTests, err := s.tests.ExistsByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course dependents")
	}
	if hasTests {
		return appErrors.Clone(appErrors.ErrDependencyConflict, "cannot delete course that has tests")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func (s *CourseService) resolveTeacher(ctx context.Context, teacherID string) error {
	exists, err := s.teachers.ExistsByID(ctx, strings.TrimSpace(teacherID))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teacher reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrReference, "teacherId does not match a teacher")
	}
	return nil
}
