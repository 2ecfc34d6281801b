// Package grading maps raw numeric scores to letter grades.
package grading

import "strconv"

// Absent is returned when no score exists or the stored text does not
// parse as a decimal.
const Absent = "-"

type band struct {
	min    float64
	letter string
}

// Inclusive lower bounds, evaluated highest first. Scores above the top
// band fall into it; anything below the last threshold is an F.
var bands = []band{
	{10.1, "A+"},
	{9.5, "A"},
	{8.5, "B+"},
	{8.0, "B"},
	{7.5, "C"},
	{7.0, "C-"},
	{6.0, "D"},
	{4.0, "D-"},
}

// Letter converts a raw score to its letter grade. A nil pointer means no
// score has been recorded.
func Letter(raw *string) string {
	if raw == nil {
		return Absent
	}
	return LetterFromText(*raw)
}

// LetterFromText converts a textual score to its letter grade. Unparsable
// input maps to Absent; every real number maps to a band.
func LetterFromText(raw string) string {
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Absent
	}
	return letterFromScore(score)
}

func letterFromScore(score float64) string {
	for _, b := range bands {
		if score >= b.min {
			return b.letter
		}
	}
	return "F"
}
