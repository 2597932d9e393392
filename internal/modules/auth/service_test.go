package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockTokenIssuer struct{}

func (mockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, mockTokenIssuer{})

	users.On("ExistsByEmail", mock.Anything, "new@test.local").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleTenant && u.Email == "new@test.local"
	})).Return(nil)

	res, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New@Test.Local ",
		Password: "supersecret",
		Name:     "New Tenant",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, mockTokenIssuer{})

	users.On("ExistsByEmail", mock.Anything, "taken@test.local").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@test.local",
		Password: "supersecret",
		Name:     "X",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_WeakPassword(t *testing.T) {
	svc := NewService(new(MockUserRepository), mockTokenIssuer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@test.local",
		Password: "short",
		Name:     "X",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestService_Login(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, mockTokenIssuer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "user@test.local").Return(&domain.User{
		ID:           7,
		Email:        "user@test.local",
		PasswordHash: string(hash),
		Role:         domain.RoleTenant,
	}, nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "user@test.local", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "test-token", res.Token)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "user@test.local", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, mockTokenIssuer{})

	users.On("GetByEmail", mock.Anything, "nobody@test.local").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@test.local", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
