package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kmdev/school-records-api/internal/models"
	appErrors "github.com/kmdev/school-records-api/pkg/errors"
	"github.com/kmdev/school-records-api/pkg/export"
)

type studentGetter interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type courseGetter interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered report and its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders per-student and per-course score reports as CSV
// or PDF documents.
type ExportService struct {
	students studentGetter
	courses  courseGetter
	tests    testLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students studentGetter, courses courseGetter, tests testLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, courses: courses, tests: tests, csv: csv, pdf: pdf, logger: logger}
}

// StudentReport renders the student's test history.
func (s *ExportService) StudentReport(ctx context.Context, studentID, format string) (*ExportResult, error) {
	if err := validateID(studentID, "student id"); err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	tests, err := s.tests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student tests")
	}

	title := fmt.Sprintf("Score report - %s %s", student.FirstName, student.LastName)
	filename := fmt.Sprintf("student-%s-report", student.StudentNumber)
	return s.render(buildTestDataset(tests), title, filename, format)
}

// CourseReport renders the course's test results.
func (s *ExportService) CourseReport(ctx context.Context, courseID, format string) (*ExportResult, error) {
	if err := validateID(courseID, "course id"); err != nil {
		return nil, err
	}
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	tests, err := s.tests.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course tests")
	}

	title := fmt.Sprintf("Score report - %s %s", course.Code, course.Name)
	filename := fmt.Sprintf("course-%s-report", course.Code)
	return s.render(buildTestDataset(tests), title, filename, format)
}

func (s *ExportService) render(data export.Dataset, title, filename, format string) (*ExportResult, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: filename + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: filename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format: "+format)
	}
}

func buildTestDataset(tests []models.Test) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Test", "Date", "Mark", "Out Of", "Percent", "Weight"},
	}
	for _, t := range tests {
		data.Rows = append(data.Rows, map[string]string{
			"Test":    t.TestName,
			"Date":    t.Date,
			"Mark":    formatScore(t.Mark),
			"Out Of":  formatScore(t.OutOf),
			"Percent": formatScore(t.Percent()),
			"Weight":  formatScore(t.Weight),
		})
	}
	return data
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
