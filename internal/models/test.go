package models

import "time"

// Test represents a single assessment result for a student in a course.
type Test struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"studentId"`
	CourseID  string    `db:"course_id" json:"courseId"`
	TestName  string    `db:"test_name" json:"testName"`
	Date      string    `db:"date" json:"date"`
	Mark      float64   `db:"mark" json:"mark"`
	OutOf     float64   `db:"out_of" json:"outOf"`
	Weight    float64   `db:"weight" json:"weight"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Percent returns the score as a percentage. A zero OutOf contributes 0
// instead of dividing by zero.
func (t Test) Percent() float64 {
	if t.OutOf == 0 {
		return 0
	}
	return t.Mark / t.OutOf * 100
}

// AverageReport summarises test performance for one owner (a student or
// a course).
type AverageReport struct {
	OwnerID        string  `json:"ownerId"`
	TestCount      int     `json:"testCount"`
	AveragePercent float64 `json:"averagePercent"`
}
