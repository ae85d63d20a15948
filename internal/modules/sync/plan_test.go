package sync

import (
	"testing"
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildPlanExternalBookedWinsOverManualBlock(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-01")
	local := []domain.CalendarDay{
		{PropertyID: 1, Date: from, Status: domain.CalendarBlocked, Source: domain.SourceManual, Reason: "owner stay"},
	}
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBooked, ReservationID: "ext-1"},
	}

	p := buildPlan(from, to, local, external, nil)

	require.Len(t, p.Changes, 1)
	assert.Equal(t, domain.CalendarBooked, p.Changes[0].Status)
	assert.Equal(t, domain.SourceExternalPMS, p.Changes[0].Source)
	require.NotNil(t, p.Changes[0].ReservationRef)
	assert.Equal(t, "ext-1", *p.Changes[0].ReservationRef)
}

func TestBuildPlanManualBlockSurvivesExternalAvailable(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-01")
	local := []domain.CalendarDay{
		{PropertyID: 1, Date: from, Status: domain.CalendarBlocked, Source: domain.SourceManual, Reason: "maintenance"},
	}
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusAvailable},
	}

	p := buildPlan(from, to, local, external, nil)

	assert.Empty(t, p.Changes)
	assert.Empty(t, p.Conflicts)
}

func TestBuildPlanManualBlockSurvivesExternalBlocked(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-01")
	local := []domain.CalendarDay{
		{PropertyID: 1, Date: from, Status: domain.CalendarBlocked, Source: domain.SourceManual, Reason: "maintenance"},
	}
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBlocked},
	}

	p := buildPlan(from, to, local, external, nil)

	assert.Empty(t, p.Changes)
}

func TestBuildPlanConflictForUnmatchedExternalBooking(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-02")
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBooked, ReservationID: "ext-9"},
		{Date: "2024-06-02", Status: pms.StatusAvailable},
	}

	p := buildPlan(from, to, nil, external, nil)

	require.Len(t, p.Conflicts, 1)
	assert.Equal(t, "2024-06-01", p.Conflicts[0].Date)
	assert.Equal(t, "ext-9", p.Conflicts[0].ExternalReservationID)
}

func TestBuildPlanNoConflictWhenReservationMatches(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-01")
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBooked, ReservationID: "ext-2"},
	}
	reservations := []domain.Reservation{
		{PropertyID: 1, Status: domain.ReservationConfirmed, CheckIn: day("2024-06-01"), CheckOut: day("2024-06-03")},
	}

	p := buildPlan(from, to, nil, external, reservations)

	assert.Empty(t, p.Conflicts)
	require.Len(t, p.Changes, 1)
	assert.Equal(t, domain.CalendarBooked, p.Changes[0].Status)
}

func TestBuildPlanPreservesInternalBookedDay(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-01")
	local := []domain.CalendarDay{
		{PropertyID: 1, Date: from, Status: domain.CalendarBooked, Source: domain.SourceInternalReservation},
	}
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusAvailable},
	}

	p := buildPlan(from, to, local, external, nil)

	assert.Empty(t, p.Changes)
}

func TestBuildPlanFillsMissingDays(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-03")

	p := buildPlan(from, to, nil, nil, nil)

	require.Len(t, p.Changes, 3)
	for _, c := range p.Changes {
		assert.Equal(t, domain.CalendarAvailable, c.Status)
		assert.Equal(t, domain.SourceExternalPMS, c.Source)
	}
}

func TestBuildPlanIdempotentOnReapply(t *testing.T) {
	from, to := day("2024-06-01"), day("2024-06-05")
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBooked, ReservationID: "ext-1"},
		{Date: "2024-06-02", Status: pms.StatusBlocked},
		{Date: "2024-06-03", Status: pms.StatusAvailable},
	}

	first := buildPlan(from, to, nil, external, nil)
	require.NotEmpty(t, first.Changes)

	// Apply the first plan and rebuild: no external change means no diff.
	applied := make([]domain.CalendarDay, 0, len(first.Changes))
	for _, c := range first.Changes {
		applied = append(applied, domain.CalendarDay{
			PropertyID:     1,
			Date:           c.Date,
			Status:         c.Status,
			Source:         c.Source,
			ReservationRef: c.ReservationRef,
			Reason:         c.Reason,
		})
	}

	second := buildPlan(from, to, applied, external, nil)
	assert.Empty(t, second.Changes)
}

func TestBuildPlanTwoDayScenario(t *testing.T) {
	// Mapped property, horizon 2 days: external reports day 1 booked and
	// day 2 available; local has day 1 available and day 2 manually
	// blocked. Day 1 flips to booked with a conflict, day 2 stays blocked.
	from, to := day("2024-06-01"), day("2024-06-02")
	local := []domain.CalendarDay{
		{PropertyID: 1, Date: day("2024-06-01"), Status: domain.CalendarAvailable, Source: domain.SourceExternalPMS},
		{PropertyID: 1, Date: day("2024-06-02"), Status: domain.CalendarBlocked, Source: domain.SourceManual, Reason: "owner stay"},
	}
	external := []pms.CalendarDay{
		{Date: "2024-06-01", Status: pms.StatusBooked, ReservationID: "ext-7"},
		{Date: "2024-06-02", Status: pms.StatusAvailable},
	}

	p := buildPlan(from, to, local, external, nil)

	require.Len(t, p.Changes, 1)
	assert.Equal(t, day("2024-06-01"), p.Changes[0].Date)
	assert.Equal(t, domain.CalendarBooked, p.Changes[0].Status)

	require.Len(t, p.Conflicts, 1)
	assert.Equal(t, "2024-06-01", p.Conflicts[0].Date)
}
