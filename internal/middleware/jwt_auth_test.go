package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/petism/backend/internal/models"
)

const testSecret = "test-signing-key"

func signToken(t *testing.T, secret string, userID uint, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "signer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runMiddleware(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/notes/1/like", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuthMiddleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestJWTAuthRejections(t *testing.T) {
	expired := signToken(t, testSecret, 7, time.Now().Add(-time.Hour))
	wrongKey := signToken(t, "other-key", 7, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed", "Bearer not.a.token"},
		{"wrong key", "Bearer " + wrongKey},
		{"expired", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runMiddleware(t, tt.header)
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", he.Code)
			}
		})
	}
}

func TestJWTAuthValidTokenYieldsStableIdentity(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Now().Add(time.Hour))

	c, err := runMiddleware(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}

	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		t.Fatal("claims not stored in context")
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}

	// A second token for the same account yields the same identity.
	again := signToken(t, testSecret, 42, time.Now().Add(2*time.Hour))
	c, err = runMiddleware(t, "Bearer "+again)
	if err != nil {
		t.Fatalf("second token rejected: %v", err)
	}
	claims2 := c.Get("user").(*models.JwtCustomClaims)
	if claims2.UserID != claims.UserID {
		t.Fatalf("identity must be stable per account: %d vs %d", claims.UserID, claims2.UserID)
	}
}
