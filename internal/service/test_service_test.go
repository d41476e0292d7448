package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmdev/school-records-api/internal/models"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
)

const testRecordID = "e5d4c3b2-a190-4878-9665-111111111111"

type mockTestRepo struct {
	items   map[string]*models.Test
	deleted []string
}

func newMockTestRepo() *mockTestRepo {
	return &mockTestRepo{items: map[string]*models.Test{}}
}

func (m *mockTestRepo) List(ctx context.Context) ([]models.Test, error) {
	out := []models.Test{}
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTestRepo) FindByID(ctx context.Context, id string) (*models.Test, error) {
	if test, ok := m.items[id]; ok {
		cp := *test
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTestRepo) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = testRecordID
	}
	cp := *test
	m.items[test.ID] = &cp
	return nil
}

func (m *mockTestRepo) Update(ctx context.Context, test *models.Test) error {
	cp := *test
	m.items[test.ID] = &cp
	return nil
}

func (m *mockTestRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestServiceForTest(repo *mockTestRepo) *TestService {
	students := &mockResolver{ids: map[string]bool{studentID: true}}
	courses := &mockResolver{ids: map[string]bool{courseID: true}}
	return NewTestService(repo, students, courses, nil, nil, nil)
}

func TestTestServiceCreateCoercesStringNumerics(t *testing.T) {
	repo := newMockTestRepo()
	svc := newTestServiceForTest(repo)

	var req CreateTestRequest
	payload := `{"studentId":"` + studentID + `","courseId":"` + courseID + `","testName":"Quiz 1","date":"2026-02-10","mark":"8","outOf":10,"weight":"12.5"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	test, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8.0, test.Mark)
	assert.Equal(t, 10.0, test.OutOf)
	assert.Equal(t, 12.5, test.Weight)
	assert.InDelta(t, 80.0, test.Percent(), 0.0001)
}

func TestTestServiceCreateUnknownStudent(t *testing.T) {
	svc := newTestServiceForTest(newMockTestRepo())

	mark := models.Number(8)
	outOf := models.Number(10)
	_, err := svc.Create(context.Background(), CreateTestRequest{
		StudentID: otherStudentID,
		CourseID:  courseID,
		TestName:  "Quiz 1",
		Date:      "2026-02-10",
		Mark:      &mark,
		OutOf:     &outOf,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrReference.Code, appErr.Code)
	assert.Equal(t, "studentId does not match a student", appErr.Message)
}

func TestTestServiceCreateUnknownCourse(t *testing.T) {
	svc := newTestServiceForTest(newMockTestRepo())

	mark := models.Number(8)
	outOf := models.Number(10)
	_, err := svc.Create(context.Background(), CreateTestRequest{
		StudentID: studentID,
		CourseID:  otherCourseID,
		TestName:  "Quiz 1",
		Date:      "2026-02-10",
		Mark:      &mark,
		OutOf:     &outOf,
	})
	require.Error(t, err)
	assert.Equal(t, "courseId does not match a course", appErrors.FromError(err).Message)
}

func TestTestServiceCreateMissingFields(t *testing.T) {
	svc := newTestServiceForTest(newMockTestRepo())

	_, err := svc.Create(context.Background(), CreateTestRequest{StudentID: studentID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTestServiceUpdateMarkOnly(t *testing.T) {
	repo := newMockTestRepo()
	repo.items[testRecordID] = &models.Test{ID: testRecordID, StudentID: studentID, CourseID: courseID, TestName: "Quiz 1", Date: "2026-02-10", Mark: 8, OutOf: 10}
	svc := newTestServiceForTest(repo)

	var req UpdateTestRequest
	require.NoError(t, json.Unmarshal([]byte(`{"mark":"9"}`), &req))

	test, err := svc.Update(context.Background(), testRecordID, req)
	require.NoError(t, err)
	assert.Equal(t, 9.0, test.Mark)
	assert.Equal(t, 10.0, test.OutOf)
	assert.Equal(t, "Quiz 1", test.TestName)
}

func TestTestServiceUpdateRejectsUnknownReference(t *testing.T) {
	repo := newMockTestRepo()
	repo.items[testRecordID] = &models.Test{ID: testRecordID, StudentID: studentID, CourseID: courseID, TestName: "Quiz 1", Date: "2026-02-10", Mark: 8, OutOf: 10}
	svc := newTestServiceForTest(repo)

	next := otherStudentID
	_, err := svc.Update(context.Background(), testRecordID, UpdateTestRequest{StudentID: &next})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReference.Code, appErrors.FromError(err).Code)
	assert.Equal(t, studentID, repo.items[testRecordID].StudentID)
}

func TestTestServiceUpdateRejectsEmptyRequiredField(t *testing.T) {
	repo := newMockTestRepo()
	repo.items[testRecordID] = &models.Test{ID: testRecordID, StudentID: studentID, CourseID: courseID, TestName: "Quiz 1", Date: "2026-02-10", Mark: 8, OutOf: 10}
	svc := newTestServiceForTest(repo)

	empty := ""
	_, err := svc.Update(context.Background(), testRecordID, UpdateTestRequest{TestName: &empty})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "testName must not be empty", appErr.Message)
	assert.Equal(t, "Quiz 1", repo.items[testRecordID].TestName)

	blank := "   "
	_, err = svc.Update(context.Background(), testRecordID, UpdateTestRequest{StudentID: &blank})
	require.Error(t, err)
	assert.Equal(t, "studentId must not be empty", appErrors.FromError(err).Message)
	assert.Equal(t, studentID, repo.items[testRecordID].StudentID)
}

func TestTestServiceUpdateEmptyPayload(t *testing.T) {
	repo := newMockTestRepo()
	repo.items[testRecordID] = &models.Test{ID: testRecordID, StudentID: studentID, CourseID: courseID}
	svc := newTestServiceForTest(repo)

	_, err := svc.Update(context.Background(), testRecordID, UpdateTestRequest{})
	require.Error(t, err)
	assert.Equal(t, "no valid fields to update", appErrors.FromError(err).Message)
}

func TestTestServiceDelete(t *testing.T) {
	repo := newMockTestRepo()
	repo.items[testRecordID] = &models.Test{ID: testRecordID, StudentID: studentID, CourseID: courseID}
	svc := newTestServiceForTest(repo)

	require.NoError(t, svc.Delete(context.Background(), testRecordID))
	assert.Equal(t, []string{testRecordID}, repo.deleted)

	err := svc.Delete(context.Background(), testRecordID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
