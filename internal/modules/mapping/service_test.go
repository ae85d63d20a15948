package mapping

import (
	"context"
	"testing"

	"rentora/internal/domain"
	"rentora/internal/pms"
	"rentora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMappingRepo struct {
	mock.Mock
}

func (m *mockMappingRepo) Create(ctx context.Context, mapping *domain.PropertyMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *mockMappingRepo) Deactivate(ctx context.Context, propertyID int64) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type mockPMSClient struct {
	mock.Mock
}

func (m *mockPMSClient) ListListings(ctx context.Context) ([]pms.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pms.Listing), args.Error(1)
}

func TestMapUnknownProperty(t *testing.T) {
	props := new(mockPropertyRepo)
	props.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrPropertyNotFound)

	svc := NewService(new(mockMappingRepo), props, new(mockPMSClient))

	_, err := svc.Map(context.Background(), 5, "boom-5")

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestMapUnknownListing(t *testing.T) {
	props := new(mockPropertyRepo)
	client := new(mockPMSClient)
	props.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1, OrganizationID: 1}, nil)
	client.On("ListListings", mock.Anything).Return([]pms.Listing{{ID: "boom-1"}}, nil)

	svc := NewService(new(mockMappingRepo), props, client)

	_, err := svc.Map(context.Background(), 1, "boom-404")

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestMapAlreadyMapped(t *testing.T) {
	props := new(mockPropertyRepo)
	client := new(mockPMSClient)
	maps := new(mockMappingRepo)
	props.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1, OrganizationID: 1}, nil)
	client.On("ListListings", mock.Anything).Return([]pms.Listing{{ID: "boom-1"}}, nil)
	maps.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyMapped)

	svc := NewService(maps, props, client)

	_, err := svc.Map(context.Background(), 1, "boom-1")

	assert.ErrorIs(t, err, ErrAlreadyMapped)
}

func TestMapSuccess(t *testing.T) {
	props := new(mockPropertyRepo)
	client := new(mockPMSClient)
	maps := new(mockMappingRepo)
	props.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1, OrganizationID: 1}, nil)
	client.On("ListListings", mock.Anything).Return([]pms.Listing{{ID: "boom-1", Name: "Seaview Villa"}}, nil)
	maps.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.PropertyMapping) bool {
		return m.PropertyID == 1 && m.ExternalListingID == "boom-1"
	})).Return(nil)

	svc := NewService(maps, props, client)

	m, err := svc.Map(context.Background(), 1, "boom-1")

	require.NoError(t, err)
	assert.Equal(t, "boom-1", m.ExternalListingID)
	maps.AssertExpectations(t)
}

func TestUnmapIsIdempotent(t *testing.T) {
	maps := new(mockMappingRepo)
	maps.On("Deactivate", mock.Anything, int64(3)).Return(nil)

	svc := NewService(maps, new(mockPropertyRepo), new(mockPMSClient))

	require.NoError(t, svc.Unmap(context.Background(), 3))
	require.NoError(t, svc.Unmap(context.Background(), 3))
}
