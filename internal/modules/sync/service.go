package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	stdsync "sync"
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"
	"rentora/internal/repository"
)

type Service struct {
	calendar     CalendarRepository
	mappings     MappingRepository
	reservations ReservationRepository
	audit        AuditRepository
	pms          PMSClient
	publisher    EventPublisher

	horizonDays int
	workers     int
}

func NewService(
	calendar CalendarRepository,
	mappings MappingRepository,
	reservations ReservationRepository,
	audit AuditRepository,
	pmsClient PMSClient,
	publisher EventPublisher,
	horizonDays int,
	workers int,
) *Service {
	if horizonDays <= 0 {
		horizonDays = 365
	}
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		calendar:     calendar,
		mappings:     mappings,
		reservations: reservations,
		audit:        audit,
		pms:          pmsClient,
		publisher:    publisher,
		horizonDays:  horizonDays,
		workers:      workers,
	}
}

type syncEventPayload struct {
	WindowFrom  string     `json:"window_from"`
	WindowTo    string     `json:"window_to"`
	DaysUpdated int        `json:"days_updated"`
	Conflicts   []Conflict `json:"conflicts,omitempty"`
	Partial     bool       `json:"partial,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type reservationSyncedPayload struct {
	ReservationID         int64  `json:"reservation_id"`
	ConfirmationCode      string `json:"confirmation_code"`
	ExternalReservationID string `json:"external_reservation_id"`
}

// SyncProperty runs one reconciliation pass for a single property. Expected
// failures come back inside the result; the method never returns an error
// so the orchestrator can aggregate without exception-style control flow.
func (s *Service) SyncProperty(ctx context.Context, propertyID int64) SyncResult {
	res := SyncResult{PropertyID: propertyID}

	mapping, err := s.mappings.GetActiveByPropertyID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			res.ErrorCode = CodeNotMapped
			res.Error = ErrNotMapped.Error()
			return res
		}
		return s.failPass(ctx, res, err)
	}

	from := domain.DateOnly(time.Now())
	to := from.AddDate(0, 0, s.horizonDays)

	// Booked ranges the PMS knows about beyond the horizon extend the
	// window, so a far-future booking is never silently dropped.
	extReservations, err := s.pms.GetListingReservations(ctx, mapping.ExternalListingID, from)
	if err != nil {
		return s.failPass(ctx, res, err)
	}
	for _, r := range extReservations {
		if dep, perr := time.Parse("2006-01-02", r.DepartureDate); perr == nil {
			if last := dep.AddDate(0, 0, -1); last.After(to) {
				to = domain.DateOnly(last)
			}
		}
	}

	external, err := s.pms.GetListingCalendar(ctx, mapping.ExternalListingID, from, to)
	if err != nil {
		return s.failPass(ctx, res, err)
	}

	local, err := s.calendar.GetRange(ctx, propertyID, from, to)
	if err != nil {
		return s.failPass(ctx, res, err)
	}

	localReservations, err := s.reservations.GetConfirmedOverlapping(ctx, propertyID, from, to)
	if err != nil {
		return s.failPass(ctx, res, err)
	}

	p := buildPlan(from, to, local, external, localReservations)

	for _, change := range p.Changes {
		if ctx.Err() != nil {
			return s.failPass(ctx, res, ctx.Err())
		}
		day := domain.CalendarDay{
			PropertyID:     propertyID,
			Date:           change.Date,
			Status:         change.Status,
			Source:         change.Source,
			ReservationRef: change.ReservationRef,
			Reason:         change.Reason,
		}
		if err := s.calendar.UpsertDay(ctx, day); err != nil {
			// Each date write is independently idempotent; a failed date
			// does not invalidate the ones already applied.
			log.Printf("sync: property=%d date=%s write failed: %v", propertyID, change.Date.Format("2006-01-02"), err)
			res.Partial = true
			continue
		}
		res.DaysUpdated++
	}

	res.Conflicts = p.Conflicts
	res.Success = true

	s.markReservationsSynced(ctx, propertyID, localReservations, extReservations)

	payload := syncEventPayload{
		WindowFrom:  from.Format("2006-01-02"),
		WindowTo:    to.Format("2006-01-02"),
		DaysUpdated: res.DaysUpdated,
		Conflicts:   res.Conflicts,
		Partial:     res.Partial,
	}
	s.appendEvent(ctx, domain.EventSyncCompleted, propertyID, payload)

	return res
}

// SyncAll reconciles every mapped property of an organization. Properties
// run on a bounded worker pool; one property's failure never aborts the
// others. The aggregate Success flag is true only when every property
// succeeded.
func (s *Service) SyncAll(ctx context.Context, organizationID int64) (*SyncAllResult, error) {
	mappings, err := s.mappings.ListActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	results := make([]SyncResult, len(mappings))
	sem := make(chan struct{}, s.workers)
	var wg stdsync.WaitGroup

	for i, m := range mappings {
		wg.Add(1)
		go func(i int, propertyID int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.SyncProperty(ctx, propertyID)
		}(i, m.PropertyID)
	}
	wg.Wait()

	out := &SyncAllResult{
		OrganizationID: organizationID,
		Processed:      len(results),
		Results:        results,
	}
	for _, r := range results {
		if r.Success {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	out.Success = out.Failed == 0
	return out, nil
}

// markReservationsSynced records the PMS reference on confirmed local
// reservations that now appear in the PMS. The marker and its audit event
// are written once per reservation.
func (s *Service) markReservationsSynced(ctx context.Context, propertyID int64, local []domain.Reservation, external []pms.Reservation) {
	for _, lr := range local {
		if lr.ExternalRef != nil || lr.Status != domain.ReservationConfirmed {
			continue
		}
		for _, er := range external {
			if er.ArrivalDate != lr.CheckIn.Format("2006-01-02") || er.DepartureDate != lr.CheckOut.Format("2006-01-02") {
				continue
			}
			if err := s.reservations.MarkExternallySynced(ctx, lr.ID, er.ID); err != nil {
				log.Printf("sync: property=%d reservation=%d mark synced failed: %v", propertyID, lr.ID, err)
				break
			}
			s.appendEvent(ctx, domain.EventReservationSynced, propertyID, reservationSyncedPayload{
				ReservationID:         lr.ID,
				ConfirmationCode:      lr.ConfirmationCode,
				ExternalReservationID: er.ID,
			})
			break
		}
	}
}

func (s *Service) failPass(ctx context.Context, res SyncResult, err error) SyncResult {
	res.Success = false
	res.ErrorCode, res.Error = classify(err)

	s.appendEvent(ctx, domain.EventSyncFailed, res.PropertyID, syncEventPayload{Error: res.Error})
	return res
}

// appendEvent writes one audit event and publishes it to live listeners.
// Audit failures are logged, not propagated: the calendar writes already
// applied stay valid and the next pass will record a fresh summary.
func (s *Service) appendEvent(ctx context.Context, eventType string, propertyID int64, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("sync: property=%d marshal %s payload failed: %v", propertyID, eventType, err)
		return
	}

	event := domain.SyncAuditEvent{
		Type:       eventType,
		PropertyID: propertyID,
		Payload:    raw,
	}
	if err := s.audit.Append(ctx, &event); err != nil {
		log.Printf("sync: property=%d append %s event failed: %v", propertyID, eventType, err)
		return
	}
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func classify(err error) (code, message string) {
	switch {
	case errors.Is(err, pms.ErrRemoteUnavailable), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodePMSUnavailable, "PMS unreachable: " + err.Error()
	case errors.Is(err, pms.ErrRemoteRejected):
		return CodePMSRejected, "PMS rejected the request: " + err.Error()
	default:
		return CodeInternal, "sync failed: " + err.Error()
	}
}
