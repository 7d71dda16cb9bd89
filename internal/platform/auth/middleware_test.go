package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func echoContext(method, target string, header http.Header) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if header != nil {
		req.Header = header
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMiddleware_MissingHeader(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	c, _ := echoContext(http.MethodGet, "/api/patients", nil)

	h := Middleware(tm, nil)(func(c echo.Context) error {
		t.Fatal("handler must not run without credentials")
		return nil
	})

	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_BadScheme(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	header := http.Header{}
	header.Set("Authorization", "Basic abc123")
	c, _ := echoContext(http.MethodGet, "/api/patients", header)

	err := Middleware(tm, nil)(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %v", err)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(7, RoleScribe, "sam@clinic.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	c, _ := echoContext(http.MethodGet, "/api/patients", header)

	var seen *Identity
	h := Middleware(tm, nil)(func(c echo.Context) error {
		seen = IdentityFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == nil {
		t.Fatal("expected identity in request context")
	}
	if seen.SubjectID != 7 || seen.Role != RoleScribe {
		t.Errorf("unexpected identity: %+v", seen)
	}
}

func TestMiddleware_SkipperBypassesAuth(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/auth/login")

	called := false
	h := Middleware(tm, Skipper)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("login endpoint must bypass auth")
	}
}

func TestRequire_EnforcesPolicy(t *testing.T) {
	engine := NewEngine()
	e := echo.New()

	run := func(ident *Identity) error {
		req := httptest.NewRequest(http.MethodDelete, "/api/patients/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if ident != nil {
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), ident)))
		}
		h := Require(engine, ActionDelete, ResourcePatient)(func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		return h(c)
	}

	if err := run(nil); err == nil {
		t.Error("expected 401 without identity")
	} else if he := err.(*echo.HTTPError); he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", he.Code)
	}

	if err := run(ident(3, RoleScribe)); err == nil {
		t.Error("expected 403 for scribe delete")
	} else if he := err.(*echo.HTTPError); he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", he.Code)
	}

	if err := run(ident(1, RoleAdmin)); err != nil {
		t.Errorf("admin delete should pass, got %v", err)
	}
}
