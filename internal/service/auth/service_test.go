package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/domain/user"
	"github.com/profitpulse/profitpulse-api/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	users map[string]user.User // by email
	err   error
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestService(t *testing.T) (auth.AuthService, jwt.Service, user.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	dept := uuid.NewString()
	u := user.User{
		ID:           uuid.NewString(),
		Email:        "head@example.com",
		PasswordHash: string(hash),
		FullName:     "Dept Head",
		Role:         rbac.RoleDepartmentHead,
		DepartmentID: &dept,
		IsActive:     true,
	}
	repo := &fakeUserRepository{users: map[string]user.User{u.Email: u}}
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService), jwtService, u
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService, u := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: u.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "department_head", resp.Role)
	assert.InDelta(t, time.Hour.Seconds(), float64(resp.AccessTokenExpiresIn), 5)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	principal, err := jwt.PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, u.ID, principal.UserID)
	assert.Equal(t, *u.DepartmentID, *principal.DepartmentID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, u := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: u.Email, Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepository{users: map[string]user.User{
		"gone@example.com": {ID: uuid.NewString(), Email: "gone@example.com", PasswordHash: string(hash), Role: rbac.RoleHR},
	}}
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret", time.Hour))

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "gone@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, auth.ErrInactiveUser)
}

func TestLogin_RepositoryError(t *testing.T) {
	svc := NewAuthService(&fakeUserRepository{err: errors.New("db down")}, jwt.NewJWTService("test-secret", time.Hour))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "a@example.com", Password: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _, u := newTestService(t)

	resp, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, resp.Email)
	assert.Equal(t, "department_head", resp.Role)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
