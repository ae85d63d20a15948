package blocks

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type Service struct {
	calendar  CalendarStore
	audit     AuditRepository
	publisher EventPublisher
}

func NewService(calendar CalendarStore, audit AuditRepository, publisher EventPublisher) *Service {
	return &Service{calendar: calendar, audit: audit, publisher: publisher}
}

type blockEventPayload struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Reason       string `json:"reason,omitempty"`
	AffectedDays int    `json:"affected_days"`
}

// BlockDates marks [start, end] as manually blocked and returns the number
// of affected days. The whole range is rejected with ErrConflict if any day
// in it is booked; nothing is mutated in that case.
func (s *Service) BlockDates(ctx context.Context, propertyID int64, start, end time.Time, reason string) (int, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	if reason == "" {
		return 0, ErrValidation
	}

	affected, err := s.calendar.BlockRange(ctx, propertyID, start, end, reason)
	if err != nil {
		if errors.Is(err, repository.ErrBookedDaysInRange) {
			return 0, ErrConflict
		}
		return 0, err
	}

	s.appendEvent(ctx, domain.EventBlockApplied, propertyID, blockEventPayload{
		From:         domain.DateOnly(start).Format("2006-01-02"),
		To:           domain.DateOnly(end).Format("2006-01-02"),
		Reason:       reason,
		AffectedDays: affected,
	})
	return affected, nil
}

// UnblockDates returns manually blocked days in [start, end] to available.
// Days not manually blocked are skipped, so repeating the call is a no-op.
func (s *Service) UnblockDates(ctx context.Context, propertyID int64, start, end time.Time) (int, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}

	affected, err := s.calendar.UnblockRange(ctx, propertyID, start, end)
	if err != nil {
		return 0, err
	}

	s.appendEvent(ctx, domain.EventBlockRemoved, propertyID, blockEventPayload{
		From:         domain.DateOnly(start).Format("2006-01-02"),
		To:           domain.DateOnly(end).Format("2006-01-02"),
		AffectedDays: affected,
	})
	return affected, nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrValidation
	}
	if domain.DateOnly(end).Before(domain.DateOnly(start)) {
		return ErrValidation
	}
	return nil
}

func (s *Service) appendEvent(ctx context.Context, eventType string, propertyID int64, payload blockEventPayload) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("blocks: property=%d marshal %s payload failed: %v", propertyID, eventType, err)
		return
	}

	event := domain.SyncAuditEvent{
		Type:       eventType,
		PropertyID: propertyID,
		Payload:    raw,
	}
	if err := s.audit.Append(ctx, &event); err != nil {
		log.Printf("blocks: property=%d append %s event failed: %v", propertyID, eventType, err)
		return
	}
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
