package model

import "time"

// Grade stores the raw numeric score for exactly one enrollment. The score
// is kept as text and parsed to a decimal when a letter grade is derived.
type Grade struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollment_id"`
	RawScore     string    `json:"raw_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordGradeRequest is the payload for recording or replacing a score.
type RecordGradeRequest struct {
	RawScore string `json:"raw_score" binding:"required,numeric,max=10"`
}
