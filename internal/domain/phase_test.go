package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campusday/orientation-api/internal/domain"
)

func date(hour, min, sec int) time.Time {
	return time.Date(2024, time.September, 2, hour, min, sec, 0, time.UTC)
}

func TestResolveDayPhase(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want domain.DayPhase
	}{
		{"midnight", date(0, 0, 0), domain.DayPreview},
		{"last preview second", date(8, 59, 59), domain.DayPreview},
		{"nine sharp", date(9, 0, 0), domain.DayActive},
		{"afternoon", date(14, 0, 0), domain.DayActive},
		{"last second of day", date(23, 59, 59), domain.DayActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ResolveDayPhase(tt.now))
		})
	}
}

func TestResolveActivityStatus(t *testing.T) {
	activity := domain.Activity{
		Title:    "Campus tour",
		Date:     date(0, 0, 0),
		StartsAt: date(10, 0, 0),
	}

	tests := []struct {
		name string
		now  time.Time
		want domain.ActivityStatus
	}{
		{"before start", date(9, 59, 59), domain.ActivityUpcoming},
		{"at start", date(10, 0, 0), domain.ActivityOngoing},
		{"during the day", date(18, 30, 0), domain.ActivityOngoing},
		{"last instant of day", activity.EndOfDay(), domain.ActivityOngoing},
		{"next day", date(0, 0, 0).AddDate(0, 0, 1), domain.ActivityCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ResolveActivityStatus(tt.now, activity))
		})
	}
}

func TestResolvePhase(t *testing.T) {
	activity := domain.Activity{
		Date:               date(0, 0, 0),
		StartsAt:           date(10, 0, 0),
		RequiresSubmission: true,
		SubmissionKind:     domain.KindText,
	}

	t.Run("yesterday's activity is completed regardless of day phase", func(t *testing.T) {
		nextMorning := date(8, 0, 0).AddDate(0, 0, 1)

		info := domain.ResolvePhase(nextMorning, activity, false)

		assert.Equal(t, domain.DayPreview, info.DayPhase)
		assert.Equal(t, domain.ActivityCompleted, info.ActivityStatus)
		assert.False(t, info.Eligible)
	})

	t.Run("ongoing without submission is eligible", func(t *testing.T) {
		info := domain.ResolvePhase(date(14, 0, 0), activity, false)

		assert.Equal(t, domain.DayActive, info.DayPhase)
		assert.Equal(t, domain.ActivityOngoing, info.ActivityStatus)
		assert.True(t, info.Eligible)
	})

	t.Run("existing submission removes eligibility", func(t *testing.T) {
		info := domain.ResolvePhase(date(14, 0, 0), activity, true)

		assert.False(t, info.Eligible)
	})

	t.Run("activity without submission contract is never eligible", func(t *testing.T) {
		plain := activity
		plain.RequiresSubmission = false

		info := domain.ResolvePhase(date(14, 0, 0), plain, false)

		assert.False(t, info.Eligible)
	})
}
