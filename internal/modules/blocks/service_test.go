package blocks

import (
	"context"
	"testing"
	"time"

	"rentora/internal/domain"
	"rentora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCalendarStore struct {
	mock.Mock
}

func (m *mockCalendarStore) BlockRange(ctx context.Context, propertyID int64, from, to time.Time, reason string) (int, error) {
	args := m.Called(ctx, propertyID, from, to, reason)
	return args.Int(0), args.Error(1)
}

func (m *mockCalendarStore) UnblockRange(ctx context.Context, propertyID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Int(0), args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Append(ctx context.Context, event *domain.SyncAuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBlockDatesRejectsInvertedRange(t *testing.T) {
	svc := NewService(new(mockCalendarStore), new(mockAuditRepo), nil)

	_, err := svc.BlockDates(context.Background(), 1, day("2024-06-05"), day("2024-06-01"), "owner stay")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlockDatesRequiresReason(t *testing.T) {
	store := new(mockCalendarStore)
	svc := NewService(store, new(mockAuditRepo), nil)

	_, err := svc.BlockDates(context.Background(), 1, day("2024-06-01"), day("2024-06-03"), "")

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "BlockRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBlockDatesConflictOnBookedDays(t *testing.T) {
	store := new(mockCalendarStore)
	audit := new(mockAuditRepo)
	store.On("BlockRange", mock.Anything, int64(1), day("2024-06-01"), day("2024-06-03"), "owner stay").
		Return(0, repository.ErrBookedDaysInRange)

	svc := NewService(store, audit, nil)

	_, err := svc.BlockDates(context.Background(), 1, day("2024-06-01"), day("2024-06-03"), "owner stay")

	assert.ErrorIs(t, err, ErrConflict)
	audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestBlockDatesSuccessAppendsAudit(t *testing.T) {
	store := new(mockCalendarStore)
	audit := new(mockAuditRepo)
	store.On("BlockRange", mock.Anything, int64(1), day("2024-06-01"), day("2024-06-03"), "maintenance").
		Return(3, nil)
	audit.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.SyncAuditEvent) bool {
		return e.Type == domain.EventBlockApplied && e.PropertyID == 1
	})).Return(nil)

	svc := NewService(store, audit, nil)

	affected, err := svc.BlockDates(context.Background(), 1, day("2024-06-01"), day("2024-06-03"), "maintenance")

	require.NoError(t, err)
	assert.Equal(t, 3, affected)
	audit.AssertExpectations(t)
}

func TestBlockDatesSingleDayRange(t *testing.T) {
	store := new(mockCalendarStore)
	audit := new(mockAuditRepo)
	store.On("BlockRange", mock.Anything, int64(2), day("2024-06-01"), day("2024-06-01"), "deep clean").
		Return(1, nil)
	audit.On("Append", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, audit, nil)

	affected, err := svc.BlockDates(context.Background(), 2, day("2024-06-01"), day("2024-06-01"), "deep clean")

	require.NoError(t, err)
	assert.Equal(t, 1, affected)
}

func TestUnblockDatesIdempotent(t *testing.T) {
	store := new(mockCalendarStore)
	audit := new(mockAuditRepo)
	store.On("UnblockRange", mock.Anything, int64(1), day("2024-06-01"), day("2024-06-03")).
		Return(0, nil)
	audit.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.SyncAuditEvent) bool {
		return e.Type == domain.EventBlockRemoved
	})).Return(nil)

	svc := NewService(store, audit, nil)

	affected, err := svc.UnblockDates(context.Background(), 1, day("2024-06-01"), day("2024-06-03"))

	require.NoError(t, err)
	assert.Equal(t, 0, affected)
}
