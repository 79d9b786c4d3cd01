package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
)

const TokenTypeAccess = "access"

var ErrInvalidClaims = errors.New("invalid token claims")

type Service interface {
	GenerateAccessToken(principal rbac.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64 // token -> exp
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(principal rbac.Principal) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":       principal.UserID,
		"email":         principal.Email,
		"role":          string(principal.Role),
		"department_id": j.returnValueOrNil(principal.DepartmentID),
		"type":          TokenTypeAccess,
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blacklists token until it would have expired anyway. Expired entries are
// pruned on each call.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// PrincipalFromClaims rebuilds the caller from verified access token claims.
func PrincipalFromClaims(claims map[string]interface{}) (rbac.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeAccess {
		return rbac.Principal{}, ErrInvalidClaims
	}

	userID, _ := claims["user_id"].(string)
	if _, err := uuid.Parse(userID); err != nil {
		return rbac.Principal{}, ErrInvalidClaims
	}

	role, _ := claims["role"].(string)
	if !rbac.Role(role).IsValid() {
		return rbac.Principal{}, ErrInvalidClaims
	}

	principal := rbac.Principal{
		UserID: userID,
		Role:   rbac.Role(role),
	}
	principal.Email, _ = claims["email"].(string)
	if departmentID, ok := claims["department_id"].(string); ok && departmentID != "" {
		principal.DepartmentID = &departmentID
	}

	return principal, nil
}
