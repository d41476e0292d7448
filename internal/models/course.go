package models

import "time"

// Course represents a taught course. TeacherID always points at an
// existing Teacher; writes that would break that go through the
// reference checks in the service layer.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	TeacherID string    `db:"teacher_id" json:"teacherId"`
	Semester  string    `db:"semester" json:"semester"`
	Room      string    `db:"room" json:"room"`
	Schedule  string    `db:"schedule" json:"schedule"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
