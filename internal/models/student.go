package models

import "time"

// Student represents a learner registered in the institution.
type Student struct {
	ID            string    `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"firstName"`
	LastName      string    `db:"last_name" json:"lastName"`
	Grade         int       `db:"grade" json:"grade"`
	StudentNumber string    `db:"student_number" json:"studentNumber"`
	Homeroom      string    `db:"homeroom" json:"homeroom"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
