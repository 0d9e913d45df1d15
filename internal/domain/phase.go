package domain

import "time"

// DayPhase is the coarse clock-derived visibility mode for the whole
// agenda. Mornings before 09:00 expose only a preview; from 09:00 the
// day is active. "review" is a client-side mode layered on top of
// active (a post-09:00 look back), never produced by the clock
// partition here, so it has no constant below.
type DayPhase string

const (
	DayPreview DayPhase = "preview"
	DayActive  DayPhase = "active"
)

// ActivityStatus is the per-activity position relative to now.
type ActivityStatus string

const (
	ActivityUpcoming  ActivityStatus = "upcoming"
	ActivityOngoing   ActivityStatus = "ongoing"
	ActivityCompleted ActivityStatus = "completed"
)

type PhaseInfo struct {
	DayPhase       DayPhase       `json:"day_phase"`
	ActivityStatus ActivityStatus `json:"activity_status"`
	// Eligible is advisory for clients: the server still enforces
	// uniqueness on submit regardless of what the UI offered.
	Eligible bool `json:"eligible"`
}

const dayActiveHour = 9

// ResolveDayPhase partitions the day by hour-of-day in now's location:
// [00:00, 09:00) is preview, the rest is active.
func ResolveDayPhase(now time.Time) DayPhase {
	if now.Hour() < dayActiveHour {
		return DayPreview
	}

	return DayActive
}

// ResolveActivityStatus compares now against the activity's start time
// and the end of its calendar day.
func ResolveActivityStatus(now time.Time, a Activity) ActivityStatus {
	if now.Before(a.StartsAt) {
		return ActivityUpcoming
	}
	if now.After(a.EndOfDay()) {
		return ActivityCompleted
	}

	return ActivityOngoing
}

// ResolvePhase is a pure function of the injected instant; it never
// reads the wall clock itself. hasSubmission is whether the viewing
// student already submitted to this activity.
func ResolvePhase(now time.Time, a Activity, hasSubmission bool) PhaseInfo {
	status := ResolveActivityStatus(now, a)

	return PhaseInfo{
		DayPhase:       ResolveDayPhase(now),
		ActivityStatus: status,
		Eligible:       a.RequiresSubmission && status != ActivityCompleted && !hasSubmission,
	}
}
