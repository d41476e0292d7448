package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmdev/school-records-api/internal/models"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
)

type testLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Test, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Test, error)
}

// AverageService is the read-only aggregation pipeline: filter tests by
// their owner, map each to a percentage, reduce to the arithmetic mean.
type AverageService struct {
	tests    testLister
	students studentResolver
	courses  courseResolver
	cache    *CacheService
	logger   *zap.Logger
}

// NewAverageService constructs an AverageService. The cache is optional.
func NewAverageService(tests testLister, students studentResolver, courses courseResolver, cache *CacheService, logger *zap.Logger) *AverageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AverageService{tests: tests, students: students, courses: courses, cache: cache, logger: logger}
}

// StudentTests returns all tests referencing the student.
func (s *AverageService) StudentTests(ctx context.Context, studentID string) ([]models.Test, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	tests, err := s.tests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student tests")
	}
	return tests, nil
}

// CourseTests returns all tests referencing the course.
func (s *AverageService) CourseTests(ctx context.Context, courseID string) ([]models.Test, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	tests, err := s.tests.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course tests")
	}
	return tests, nil
}

// StudentAverage computes the student's mean percentage across all tests.
func (s *AverageService) StudentAverage(ctx context.Context, studentID string) (*models.AverageReport, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avg:student:%s", studentID)
	if s.cache != nil {
		var cached models.AverageReport
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	tests, err := s.tests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student tests")
	}

	report := computeAverage(studentID, tests)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, 0); err != nil {
			s.logger.Warn("failed to cache student average", zap.Error(err))
		}
	}
	return report, nil
}

// CourseAverage computes the course's mean percentage across all tests.
func (s *AverageService) CourseAverage(ctx context.Context, courseID string) (*models.AverageReport, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avg:course:%s", courseID)
	if s.cache != nil {
		var cached models.AverageReport
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	tests, err := s.tests.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course tests")
	}

	report := computeAverage(courseID, tests)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, 0); err != nil {
			s.logger.Warn("failed to cache course average", zap.Error(err))
		}
	}
	return report, nil
}

func (s *AverageService) requireStudent(ctx context.Context, studentID string) error {
	if err := validateID(studentID, "student id"); err != nil {
		return err
	}
	exists, err := s.students.ExistsByID(ctx, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}

func (s *AverageService) requireCourse(ctx context.Context, courseID string) error {
	if err := validateID(courseID, "course id"); err != nil {
		return err
	}
	exists, err := s.courses.ExistsByID(ctx, courseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return nil
}

// computeAverage reduces the tests to a mean percentage. An empty set
// yields a zero report rather than an error.
func computeAverage(ownerID string, tests []models.Test) *models.AverageReport {
	report := &models.AverageReport{OwnerID: ownerID, TestCount: len(tests)}
	if len(tests) == 0 {
		return report
	}
	var total float64
	for _, t := range tests {
		total += t.Percent()
	}
	report.AveragePercent = total / float64(len(tests))
	return report
}
