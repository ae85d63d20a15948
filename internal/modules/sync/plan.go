package sync

import (
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"
)

// DayChange is one pending calendar write: the target state for a date
// whose stored state differs from it.
type DayChange struct {
	Date           time.Time
	Status         domain.CalendarStatus
	Source         domain.CalendarSource
	ReservationRef *string
	Reason         string
}

type plan struct {
	Changes   []DayChange
	Conflicts []Conflict
}

// buildPlan merges the local and external snapshots into the minimal set of
// calendar writes for every date in [from, to]. It performs no I/O.
//
// Precedence, highest first: external booked, local manual block, external
// blocked, available. The PMS is the authority for guest bookings; a manual
// block survives anything short of an external booking. A locally booked day
// written by the booking subsystem is likewise preserved unless the PMS
// reports that day booked.
func buildPlan(from, to time.Time, local []domain.CalendarDay, external []pms.CalendarDay, reservations []domain.Reservation) plan {
	localByDate := make(map[string]domain.CalendarDay, len(local))
	for _, d := range local {
		localByDate[d.Date.Format("2006-01-02")] = d
	}
	externalByDate := make(map[string]pms.CalendarDay, len(external))
	for _, d := range external {
		externalByDate[d.Date] = d
	}

	var p plan
	for d := domain.DateOnly(from); !d.After(domain.DateOnly(to)); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		cur, hasCur := localByDate[key]
		ext, hasExt := externalByDate[key]

		extStatus := pms.StatusAvailable
		if hasExt {
			extStatus = ext.Status
		}

		var target DayChange
		target.Date = d

		switch {
		case extStatus == pms.StatusBooked:
			target.Status = domain.CalendarBooked
			target.Source = domain.SourceExternalPMS
			if ext.ReservationID != "" {
				ref := ext.ReservationID
				target.ReservationRef = &ref
			}
			if !coveredByReservation(reservations, d) {
				p.Conflicts = append(p.Conflicts, Conflict{
					Date:                  key,
					ExternalReservationID: ext.ReservationID,
					Reason:                "external booking has no matching local reservation",
				})
			}

		case hasCur && cur.Status == domain.CalendarBlocked && cur.Source == domain.SourceManual:
			// Host intent wins over an external "available" or "blocked" read.
			target.Status = cur.Status
			target.Source = cur.Source
			target.ReservationRef = cur.ReservationRef
			target.Reason = cur.Reason

		case hasCur && cur.Status == domain.CalendarBooked && cur.Source == domain.SourceInternalReservation:
			// An internal reservation not yet visible in the PMS must not be
			// released back to available.
			target.Status = cur.Status
			target.Source = cur.Source
			target.ReservationRef = cur.ReservationRef

		case extStatus != pms.StatusAvailable:
			target.Status = domain.CalendarBlocked
			target.Source = domain.SourceExternalPMS

		default:
			target.Status = domain.CalendarAvailable
			target.Source = domain.SourceExternalPMS
		}

		if !hasCur || differs(cur, target) {
			p.Changes = append(p.Changes, target)
		}
	}
	return p
}

func differs(cur domain.CalendarDay, target DayChange) bool {
	if cur.Status != target.Status || cur.Source != target.Source {
		return true
	}
	return refOf(cur.ReservationRef) != refOf(target.ReservationRef)
}

func refOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func coveredByReservation(reservations []domain.Reservation, day time.Time) bool {
	for _, r := range reservations {
		if r.Status == domain.ReservationConfirmed && r.Covers(day) {
			return true
		}
	}
	return false
}
