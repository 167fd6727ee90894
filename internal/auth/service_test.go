package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newTestService() (Service, *fakeUserRepository) {
	repo := newFakeUserRepository()
	svc := NewService(repo, &Config{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         4, // MinCost, keeps the tests fast
	})
	return svc, repo
}

func registerDTO() *RegisterDTO {
	return &RegisterDTO{
		Email:       "vol@example.org",
		Password:    "correct horse battery",
		DisplayName: "Vol",
		Role:        RoleVolunteer,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token pair and stores a hash", func(t *testing.T) {
		svc, repo := newTestService()

		user, tokens, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "correct horse battery", user.PasswordHash)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Contains(t, repo.byEmail, "vol@example.org")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, _, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, registerDTO())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestService()
		registered, _, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)

		user, tokens, err := svc.Login(ctx, &LoginDTO{
			Email:    "vol@example.org",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, &LoginDTO{
			Email:    "vol@example.org",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, _ := newTestService()

		_, _, err := svc.Login(ctx, &LoginDTO{Email: "nobody@example.org", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("access token claims round-trip", func(t *testing.T) {
		svc, _ := newTestService()
		user, tokens, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, RoleVolunteer, claims.Role)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("refresh accepts only refresh tokens", func(t *testing.T) {
		svc, _ := newTestService()
		_, tokens, err := svc.Register(ctx, registerDTO())
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)

		pair, err := svc.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		svc, _ := newTestService()
		other := NewService(newFakeUserRepository(), &Config{
			JWTSecret:          "different-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: time.Hour,
			BCryptCost:         4,
		})

		_, tokens, err := other.Register(ctx, registerDTO())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
