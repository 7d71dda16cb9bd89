package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
)

// DefaultTokenTTL is the validity window for issued session tokens.
const DefaultTokenTTL = 2 * time.Hour

// Claims is the JWT payload for a session token. The payload stays small:
// subject id, role, and email only. No PHI, no password material.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager with the given signing secret and
// token lifetime. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the subject. The expiry is now + the configured ttl.
func (tm *TokenManager) Issue(subjectID int64, role Role, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role:  string(role),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string and reconstructs the Identity.
// Verification is all-or-nothing: a malformed token, a bad signature, an
// unexpected signing method, an expired token, or an unparseable subject all
// fail with an Unauthenticated error.
func (tm *TokenManager) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !parsed.Valid {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}
	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &Identity{
		SubjectID: subjectID,
		Role:      role,
		Email:     claims.Email,
		ExpiresAt: expiresAt,
	}, nil
}
