package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/barberos/barbershop-backend/internal/lib/jwt"
	"github.com/barberos/barbershop-backend/internal/lib/password"
	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) EnsureShop(ctx context.Context, ownerUID, name string, expiresAt time.Time) (*models.Barbershop, error) {
	args := m.Called(ctx, ownerUID, name, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barbershop), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role, useruid string) (string, error) {
	args := m.Called(username, role, useruid)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "test@example.com" &&
			user.Username == "testuser" &&
			user.PasswordHash != "" &&
			user.Role == "user"
	})).Return("some-uuid-string", nil).Once()

	svc := auth.New(repo, new(JwtMakerMock), 365)
	uid, err := svc.Register(context.Background(), "test@example.com", "testuser", "password123")

	require.NoError(t, err)
	assert.Equal(t, "some-uuid-string", uid)
	repo.AssertExpectations(t)
}

func TestService_Login_FirstLoginBootstrapsShop(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "owner-1",
		Username:     "testuser",
		PasswordHash: hash,
		Role:         "user",
	}

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil)
	repo.On("EnsureShop", mock.Anything, "owner-1", "Barbershop of testuser",
		mock.MatchedBy(func(expiresAt time.Time) bool {
			// Лицензия первого входа действует год
			want := time.Now().UTC().AddDate(0, 0, 365)
			diff := expiresAt.Sub(want)
			return diff > -time.Minute && diff < time.Minute
		})).Return(&models.Barbershop{ID: 1, OwnerUID: "owner-1"}, nil)

	maker := new(JwtMakerMock)
	maker.On("GenerateToken", "testuser", "user", "owner-1").Return("signed-token", nil)

	svc := auth.New(repo, maker, 365)
	token, err := svc.Login(context.Background(), "testuser", "password123")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	repo.AssertExpectations(t)
	maker.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, err := password.GetHash("correct_password")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(&models.User{
		UID:          "owner-1",
		Username:     "testuser",
		PasswordHash: hash,
	}, nil)

	svc := auth.New(repo, new(JwtMakerMock), 365)
	token, err := svc.Login(context.Background(), "testuser", "wrong_password")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	// Барбершоп при неудачном входе не создаётся
	repo.AssertNotCalled(t, "EnsureShop", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_BootstrapFailure(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(&models.User{
		UID:          "owner-1",
		Username:     "testuser",
		PasswordHash: hash,
	}, nil)
	repo.On("EnsureShop", mock.Anything, "owner-1", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	svc := auth.New(repo, new(JwtMakerMock), 365)
	token, err := svc.Login(context.Background(), "testuser", "password123")

	assert.Empty(t, token)
	assert.Error(t, err)
}

func TestService_ValidateToken(t *testing.T) {
	maker := new(JwtMakerMock)
	maker.On("ParseToken", "good-token").Return(&customjwt.CustomClaims{
		Username: "testuser",
		Role:     "user",
		UserUID:  "owner-1",
	}, nil)
	maker.On("ParseToken", "bad-token").Return(nil, errors.New("invalid token"))

	svc := auth.New(new(UserRepoMock), maker, 365)

	user, valid, err := svc.ValidateToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, "owner-1", user.UID)

	user, valid, err = svc.ValidateToken(context.Background(), "bad-token")
	assert.Error(t, err)
	assert.False(t, valid)
	assert.Nil(t, user)
}
