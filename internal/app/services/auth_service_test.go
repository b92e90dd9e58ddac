package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUserStore struct {
	byEmail     map[string]*models.User
	byID        map[int64]*models.User
	nextID      int64
	lastLogins  []int64
	createCalls int
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
		nextID:  1,
	}
}

func (f *fakeAuthUserStore) Create(_ context.Context, user *models.User) error {
	f.createCalls++
	if _, exists := f.byEmail[user.Email]; exists {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeAuthUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, exists := f.byEmail[email]
	return exists, nil
}

func (f *fakeAuthUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLogins = append(f.lastLogins, userID)
	return nil
}

type fakeAuthProfileStore struct {
	profiles map[int64]*models.SkillProfile
}

func (f *fakeAuthProfileStore) GetByUserID(_ context.Context, userID int64) (*models.SkillProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func newAuthFixture() (*AuthService, *fakeAuthUserStore, *fakeAuthProfileStore) {
	users := newFakeAuthUserStore()
	profiles := &fakeAuthProfileStore{profiles: make(map[int64]*models.SkillProfile)}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	service := NewAuthService(users, profiles, jwtService, zerolog.Nop())
	return service, users, profiles
}

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and returns token", func(t *testing.T) {
		service, users, _ := newAuthFixture()

		result, err := service.Register(ctx, dto.RegisterRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "  Ada@Example.COM ",
			Password:  "password1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, 3600, result.ExpiresIn)
		assert.Equal(t, "ada@example.com", result.User.Email)
		assert.False(t, result.HasSkillProfile)

		// Stored password is hashed
		stored := users.byEmail["ada@example.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "password1", stored.Password)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		service, _, _ := newAuthFixture()

		_, err := service.Register(ctx, dto.RegisterRequest{
			FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Password: "onlyletters",
		})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		service, users, _ := newAuthFixture()

		_, err := service.Register(ctx, dto.RegisterRequest{
			FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Password: "password1",
		})
		require.NoError(t, err)

		_, err = service.Register(ctx, dto.RegisterRequest{
			FirstName: "Other", LastName: "Person",
			Email: "ADA@example.com", Password: "password1",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

		// The existence check fires before the insert is ever attempted
		assert.Equal(t, 1, users.createCalls)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, service *AuthService) {
		_, err := service.Register(ctx, dto.RegisterRequest{
			FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Password: "password1",
		})
		require.NoError(t, err)
	}

	t.Run("unknown account looks like bad credentials", func(t *testing.T) {
		service, _, _ := newAuthFixture()

		_, err := service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "password1"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, _, _ := newAuthFixture()
		register(t, service)

		_, err := service.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "wrongpass1"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("successful login records last login and reports profile", func(t *testing.T) {
		service, users, profiles := newAuthFixture()
		register(t, service)
		profiles.profiles[1] = &models.SkillProfile{ID: 10, UserID: 1}

		result, err := service.Login(ctx, dto.LoginRequest{Email: "Ada@example.com", Password: "password1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.True(t, result.HasSkillProfile)
		assert.Equal(t, []int64{1}, users.lastLogins)
	})
}

func TestAuthGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	service, _, _ := newAuthFixture()
	_, err := service.Register(ctx, dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "password1",
	})
	require.NoError(t, err)

	result, err := service.GetCurrentUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", result.FirstName)

	_, err = service.GetCurrentUser(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
