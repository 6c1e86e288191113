package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/commerce/backend/internal/domain/identity"
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		Issuer:          "commerce-backend",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func issueToken(t *testing.T, tokens *auth.JWTService, role identity.Role) string {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "alice", "alice@example.com", "password123", role)
	require.NoError(t, err)
	pair, err := tokens.GenerateTokenPair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestJWTAuth(t *testing.T) {
	tokens := newTokens()

	router := gin.New()
	router.GET("/protected", JWTAuth(tokens), func(c *gin.Context) {
		assert.NotEqual(t, uuid.Nil, UserID(c))
		assert.NotEqual(t, uuid.Nil, TenantID(c))
		assert.Equal(t, identity.RoleStaff, Role(c))
		c.Status(http.StatusOK)
	})

	// Valid token
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, identity.RoleStaff))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing header
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed header
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission(t *testing.T) {
	tokens := newTokens()

	router := gin.New()
	router.POST("/products", JWTAuth(tokens), RequirePermission(auth.PermProductWrite), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	// Staff can write products
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/products", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, identity.RoleStaff))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Customers cannot
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/products", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, identity.RoleCustomer))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyPermission(t *testing.T) {
	tokens := newTokens()

	router := gin.New()
	router.GET("/orders", JWTAuth(tokens), RequireAnyPermission(auth.PermOrderRead, auth.PermOrderReadOwn), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, role := range []identity.Role{identity.RoleStaff, identity.RoleCustomer} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, role))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString("request_id"))
		c.Status(http.StatusOK)
	})

	// Generated when absent
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	// Echoed when supplied
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
