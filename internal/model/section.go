package model

import "time"

// Section is one scheduled offering of a Course with its own capacity,
// room and timetable. The instructor assignment is optional.
type Section struct {
	ID           int64     `json:"id"`
	CourseID     int64     `json:"course_id"`
	InstructorID *int64    `json:"instructor_id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Room         *string   `json:"room"`
	Timetable    string    `json:"timetable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SectionSeats is the catalog projection of a section with its live seat
// count, joined with the course it offers. Computed fresh on every call.
type SectionSeats struct {
	Section
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	Enrolled    int    `json:"enrolled"`
}

// SectionRequest is the payload for creating or updating a section.
type SectionRequest struct {
	CourseID     int64   `json:"course_id" binding:"required"`
	InstructorID *int64  `json:"instructor_id"`
	Name         string  `json:"name" binding:"required,min=1,max=50"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	Room         *string `json:"room" binding:"omitempty,max=50"`
	Timetable    string  `json:"timetable" binding:"max=200"`
}
