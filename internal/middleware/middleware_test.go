package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcourt-be/internal/user"
	"foodcourt-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAuth(t *testing.T) {
	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok, "Context should not contain user ID")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/menu", nil)
		w := httptest.NewRecorder()

		AuthMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		req := httptest.NewRequest("GET", "/api/orders/1", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		AuthMiddleware(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		tokenString, err := user.GenerateJWT(7, "919876543210")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/orders/7", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(7), userID)

			mobile := utils.GetUserMobileFromContext(r.Context())
			assert.Equal(t, "919876543210", mobile)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/menu", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		w := httptest.NewRecorder()

		// Non-Bearer headers are treated as anonymous
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResolveRateTier(t *testing.T) {
	t.Run("OTP endpoints are strict", func(t *testing.T) {
		for _, path := range []string{"/api/auth/otp", "/api/auth/verify"} {
			req := httptest.NewRequest("POST", path, nil)
			limit, burst, tier := resolveRateTier(req)

			assert.Equal(t, limitStrict, limit, path)
			assert.Equal(t, burstStrict, burst, path)
			assert.Equal(t, "strict", tier, path)
		}
	})

	t.Run("Everything else is general", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/menu", nil)
		limit, _, tier := resolveRateTier(req)

		assert.Equal(t, limitGeneral, limit)
		assert.Equal(t, "general", tier)
	})

	t.Run("Internal header wins", func(t *testing.T) {
		t.Setenv("INTERNAL_SECRET_KEY", "svc-secret")

		req := httptest.NewRequest("POST", "/api/auth/otp", nil)
		req.Header.Set("X-Service-Auth", "svc-secret")
		limit, _, tier := resolveRateTier(req)

		assert.Equal(t, limitInternal, limit)
		assert.Equal(t, "internal", tier)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(next)

	t.Run("Blocks after burst", func(t *testing.T) {
		var lastCode int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/auth/otp", nil)
			req.Header.Set("X-Device-ID", "device-burst-test")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			lastCode = w.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})

	t.Run("Tiers have separate quotas", func(t *testing.T) {
		// Exhaust the strict bucket for this identity
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/auth/otp", nil)
			req.Header.Set("X-Device-ID", "device-tier-test")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		// General traffic from the same identity still flows
		req := httptest.NewRequest("GET", "/api/menu", nil)
		req.Header.Set("X-Device-ID", "device-tier-test")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Identities do not share buckets", func(t *testing.T) {
		for i := 0; i < burstGeneral+1; i++ {
			req := httptest.NewRequest("GET", "/api/menu", nil)
			req.Header.Set("X-Device-ID", "device-noisy")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("GET", "/api/menu", nil)
		req.Header.Set("X-Device-ID", "device-quiet")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetVisitorReusesLimiter(t *testing.T) {
	key := fmt.Sprintf("test:%s", t.Name())
	first := getVisitor(key, rate.Limit(1), 1)
	second := getVisitor(key, rate.Limit(1), 1)

	assert.Same(t, first, second)
}

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS(nextHandler)

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/orders", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/menu", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
