package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
)

func TestTokenManager_IssueVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", 2*time.Hour)

	token, expiresAt, err := tm.Issue(42, RoleProvider, "alice@clinic.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if until := time.Until(expiresAt); until < 119*time.Minute || until > 121*time.Minute {
		t.Errorf("expected ~2h validity, got %v", until)
	}

	ident, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.SubjectID != 42 {
		t.Errorf("expected subject 42, got %d", ident.SubjectID)
	}
	if ident.Role != RoleProvider {
		t.Errorf("expected role provider, got %s", ident.Role)
	}
	if ident.Email != "alice@clinic.test" {
		t.Errorf("unexpected email: %s", ident.Email)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", 2*time.Hour)

	// Sign a token whose expiry is one second in the past.
	claims := &Claims{
		Role: string(RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(token); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Errorf("expected Unauthenticated for expired token, got %v", err)
	}
}

func TestTokenManager_FutureExpiryAccepted(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(7, RoleBiller, "bill@clinic.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Verify(token); err != nil {
		t.Errorf("token with expiry one hour out should verify, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Issue(1, RoleAdmin, "a@b.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Errorf("expected Unauthenticated for bad signature, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Verify(bad); !apperror.Is(err, apperror.KindUnauthenticated) {
			t.Errorf("Verify(%q): expected Unauthenticated, got %v", bad, err)
		}
	}
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Verify(token); !apperror.Is(err, apperror.KindUnauthenticated) {
		t.Errorf("expected Unauthenticated for unknown role, got %v", err)
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword("password123", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected mismatched password to fail")
	}
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("hash with out-of-range cost: %v", err)
	}
	if !CheckPassword("pw", hash) {
		t.Error("expected hash produced with fallback cost to verify")
	}
}
