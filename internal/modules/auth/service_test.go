package auth

import (
	"context"
	"testing"

	"rentora/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID, organizationID int64, role string) (string, error) {
	return "token", nil
}

func TestRegisterNormalizesEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "manager@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "manager@example.com" && u.Role == domain.RoleManager
	})).Return(nil)

	svc := NewService(users, stubJWT{})

	u, err := svc.Register(context.Background(), RegisterRequest{
		OrganizationID: 1,
		Email:          "  Manager@Example.COM ",
		Password:       "secret12345",
		Name:           "Manager",
	})

	require.NoError(t, err)
	assert.Equal(t, "manager@example.com", u.Email)
	users.AssertExpectations(t)
}

func TestRegisterEmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

	svc := NewService(users, stubJWT{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		OrganizationID: 1,
		Email:          "taken@example.com",
		Password:       "secret12345",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret12345"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "manager@example.com").Return(&domain.User{
		ID:             1,
		OrganizationID: 1,
		Email:          "manager@example.com",
		PasswordHash:   string(hash),
		Role:           domain.RoleManager,
	}, nil)

	svc := NewService(users, stubJWT{})

	res, err := svc.Login(context.Background(), LoginRequest{Email: "manager@example.com", Password: "secret12345"})

	require.NoError(t, err)
	assert.Equal(t, "token", res.AccessToken)
	assert.Equal(t, int64(1), res.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret12345"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "manager@example.com").Return(&domain.User{
		ID:           1,
		Email:        "manager@example.com",
		PasswordHash: string(hash),
	}, nil)

	svc := NewService(users, stubJWT{})

	_, err = svc.Login(context.Background(), LoginRequest{Email: "manager@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, stubJWT{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
