package model

import "time"

// Instructor represents a teaching staff profile.
type Instructor struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInstructorRequest is the payload for creating a new instructor.
type CreateInstructorRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email,max=254"`
	Department string `json:"department" binding:"required,min=2,max=100"`
	Password   string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateInstructorRequest is the payload for updating an existing instructor.
type UpdateInstructorRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email,max=254"`
	Department string `json:"department" binding:"required,min=2,max=100"`
}
