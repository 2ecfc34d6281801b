package model

import "time"

// Enrollment binds one Student to one Section. The (student, section) pair
// is unique; the grade reference is filled in once a score is recorded.
type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	SectionID int64     `json:"section_id"`
	GradeID   *int64    `json:"grade_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptEntry enriches an enrollment with course and grade details for
// the student's transcript view.
type TranscriptEntry struct {
	EnrollmentID int64   `json:"enrollment_id"`
	SectionID    int64   `json:"section_id"`
	SectionName  string  `json:"section_name"`
	CourseCode   string  `json:"course_code"`
	CourseTitle  string  `json:"course_title"`
	Credits      int     `json:"credits"`
	RawScore     *string `json:"raw_score"`
	Letter       string  `json:"letter"`
}

// RosterEntry is one student row on a section roster.
type RosterEntry struct {
	EnrollmentID int64   `json:"enrollment_id"`
	StudentID    int64   `json:"student_id"`
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	RawScore     *string `json:"raw_score"`
	Letter       string  `json:"letter"`
}

// AdmitRequest is the payload for a student admission attempt.
type AdmitRequest struct {
	SectionID int64 `json:"section_id" binding:"required"`
}
