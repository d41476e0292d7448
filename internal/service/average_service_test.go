package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmdev/school-records-api/internal/models"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
)

type mockTestLister struct {
	byStudent map[string][]models.Test
	byCourse  map[string][]models.Test
}

func (m *mockTestLister) ListByStudent(ctx context.Context, studentID string) ([]models.Test, error) {
	return m.byStudent[studentID], nil
}

func (m *mockTestLister) ListByCourse(ctx context.Context, courseID string) ([]models.Test, error) {
	return m.byCourse[courseID], nil
}

func newAverageServiceForTest(lister *mockTestLister) *AverageService {
	students := &mockResolver{ids: map[string]bool{studentID: true}}
	courses := &mockResolver{ids: map[string]bool{courseID: true}}
	return NewAverageService(lister, students, courses, nil, nil)
}

func TestAverageServiceStudentAverage(t *testing.T) {
	lister := &mockTestLister{byStudent: map[string][]models.Test{
		studentID: {
			{Mark: 8, OutOf: 10},
			{Mark: 15, OutOf: 20},
			{Mark: 0, OutOf: 0},
		},
	}}
	svc := newAverageServiceForTest(lister)

	report, err := svc.StudentAverage(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, studentID, report.OwnerID)
	assert.Equal(t, 3, report.TestCount)
	// (80 + 75 + 0) / 3; the zero-denominator test contributes 0
	assert.InDelta(t, 51.666666, report.AveragePercent, 0.0001)
}

func TestAverageServiceStudentAverageNoTests(t *testing.T) {
	svc := newAverageServiceForTest(&mockTestLister{})

	report, err := svc.StudentAverage(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, studentID, report.OwnerID)
	assert.Equal(t, 0, report.TestCount)
	assert.Zero(t, report.AveragePercent)
}

func TestAverageServiceStudentAverageUnknownStudent(t *testing.T) {
	svc := newAverageServiceForTest(&mockTestLister{})

	_, err := svc.StudentAverage(context.Background(), otherStudentID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestAverageServiceCourseAverage(t *testing.T) {
	lister := &mockTestLister{byCourse: map[string][]models.Test{
		courseID: {
			{Mark: 9, OutOf: 10},
			{Mark: 18, OutOf: 20},
		},
	}}
	svc := newAverageServiceForTest(lister)

	report, err := svc.CourseAverage(context.Background(), courseID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TestCount)
	assert.InDelta(t, 90.0, report.AveragePercent, 0.0001)
}

func TestAverageServiceCourseTestsUnknownCourse(t *testing.T) {
	svc := newAverageServiceForTest(&mockTestLister{})

	_, err := svc.CourseTests(context.Background(), otherCourseID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAverageServiceStudentTests(t *testing.T) {
	lister := &mockTestLister{byStudent: map[string][]models.Test{
		studentID: {{ID: testRecordID, StudentID: studentID, CourseID: courseID, TestName: "Quiz 1"}},
	}}
	svc := newAverageServiceForTest(lister)

	tests, err := svc.StudentTests(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "Quiz 1", tests[0].TestName)
}

func TestAverageServiceMalformedID(t *testing.T) {
	svc := newAverageServiceForTest(&mockTestLister{})

	_, err := svc.StudentAverage(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
