package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cols(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestPlanSectionUpgrade(t *testing.T) {
	tests := []struct {
		name    string
		columns map[string]bool
		want    sectionPlan
	}{
		{"missing table is first run", nil, sectionPlanNone},
		{
			"legacy marker forces rebuild",
			cols("id", "course_id", "semester", "location"),
			sectionPlanRebuild,
		},
		{
			"marker wins even when room already exists",
			cols("id", "course_id", "semester", "room"),
			sectionPlanRebuild,
		},
		{
			"target shape without room gets additive column",
			cols("id", "course_id", "instructor_id", "name", "capacity", "timetable"),
			sectionPlanAddRoom,
		},
		{
			"target shape is a no-op",
			cols("id", "course_id", "instructor_id", "name", "capacity", "room", "timetable"),
			sectionPlanNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planSectionUpgrade(tt.columns))
		})
	}
}

func TestCopyExpr(t *testing.T) {
	legacy := cols("id", "course_id", "semester", "name")

	assert.Equal(t, "COALESCE(name, 'Main')", copyExpr(legacy, "name", "'Main'"))
	assert.Equal(t, "50", copyExpr(legacy, "capacity", "50"))
	assert.Equal(t, "NULL", copyExpr(legacy, "instructor_id", "NULL"))
}

func TestRoomExpr(t *testing.T) {
	assert.Equal(t, "location", roomExpr(cols("semester", "location")))
	assert.Equal(t, "room", roomExpr(cols("semester", "room")))
	assert.Equal(t, "location", roomExpr(cols("semester", "location", "room")),
		"legacy location wins when both exist")
	assert.Equal(t, "NULL", roomExpr(cols("semester")))
}
