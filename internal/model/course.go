package model

import "time"

// Course is a catalog entry. Concrete offerings of a course are Sections.
type Course struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseRequest is the payload for creating or updating a course.
type CourseRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=20"`
	Title   string `json:"title" binding:"required,min=2,max=200"`
	Credits int    `json:"credits" binding:"required,min=1,max=6"`
}
