package schema

// sectionPlan is the structural action the section table needs.
type sectionPlan int

const (
	// sectionPlanNone: table absent (created fresh) or already target shape.
	sectionPlanNone sectionPlan = iota
	// sectionPlanRebuild: legacy shape detected, shadow-table rebuild required.
	sectionPlanRebuild
	// sectionPlanAddRoom: target shape except the room column is missing.
	sectionPlanAddRoom
)

// legacyMarkerColumn identifies the old section table layout. Its presence
// means the one-time rebuild has not run yet.
const legacyMarkerColumn = "semester"

// legacyRoomColumn held the room in the old layout.
const legacyRoomColumn = "location"

// Defaults applied when copying legacy rows that predate the target columns.
const (
	defaultSectionName     = "Main"
	defaultSectionCapacity = 50
)

// planSectionUpgrade decides what EnsureSchema must do to the section table
// given its current column set. An empty set means the table does not exist
// yet — the first-run case, handled by plain table creation.
func planSectionUpgrade(columns map[string]bool) sectionPlan {
	if len(columns) == 0 {
		return sectionPlanNone
	}
	if columns[legacyMarkerColumn] {
		return sectionPlanRebuild
	}
	if !columns["room"] {
		return sectionPlanAddRoom
	}
	return sectionPlanNone
}

// copyExpr returns the SELECT expression that carries a target column out of
// the legacy table, falling back to a literal when the legacy layout never
// had it. All inputs are compile-time constants, never caller data.
func copyExpr(columns map[string]bool, column, fallback string) string {
	if columns[column] {
		return "COALESCE(" + column + ", " + fallback + ")"
	}
	return fallback
}

// roomExpr resolves where the room value comes from during a rebuild: the
// legacy location column when present, a modern room column if one was
// already added, otherwise NULL.
func roomExpr(columns map[string]bool) string {
	switch {
	case columns[legacyRoomColumn]:
		return legacyRoomColumn
	case columns["room"]:
		return "room"
	default:
		return "NULL"
	}
}
