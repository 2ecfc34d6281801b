package model

import "time"

// Student represents an enrolled student profile. The login credential lives
// in the accounts table and is keyed by the student's email.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Program   string    `json:"program"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student.
// The password seeds the student's login credential.
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Program  string `json:"program" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Program string `json:"program" binding:"required,min=2,max=100"`
}
