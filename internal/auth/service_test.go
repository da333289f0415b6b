package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
	"github.com/croppilot/croppilot/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store.NewMemoryStore(), "test-signing-key", time.Hour, logger, observability.NewMetricsForTesting())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ravi Kumar", "9876543210", "sarson2026")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ravi Kumar", user.Name)
	assert.NotEqual(t, "sarson2026", user.PasswordHash)

	loggedIn, token, err := svc.Login(ctx, "9876543210", "sarson2026")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		phone    string
		password string
	}{
		{"empty name", "", "9876543210", "secret1"},
		{"short phone", "Ravi", "98765", "secret1"},
		{"long phone", "Ravi", "98765432101", "secret1"},
		{"letters in phone", "Ravi", "98765a3210", "secret1"},
		{"short password", "Ravi", "9876543210", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.phone, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidQuery)
		})
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ravi", "9876543210", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Sita", "9876543210", "secret2")
	assert.ErrorIs(t, err, store.ErrDuplicatePhone)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ravi", "9876543210", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "9876543210", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "9999999999", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_WrongKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other := NewService(store.NewMemoryStore(), "different-key", time.Hour, logger, observability.NewMetricsForTesting())

	_, err := svc.Register(ctx, "Ravi", "9876543210", "secret1")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "9876543210", "secret1")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Expired(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store.NewMemoryStore(), "test-signing-key", -time.Minute, logger, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ravi", "9876543210", "secret1")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "9876543210", "secret1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMiddleware(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ravi", "9876543210", "secret1")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "9876543210", "secret1")
	require.NoError(t, err)

	var seenUserID string
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("cookie", func(t *testing.T) {
		seenUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/api/logbook", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, seenUserID)
	})

	t.Run("bearer header", func(t *testing.T) {
		seenUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/api/logbook", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, seenUserID)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/logbook", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/logbook", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "bogus"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
