package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"room-meeting-backend/internal/auth"
	"room-meeting-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimiter(rate.Limit(1), 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, nil).Code)
}

func TestIPRateLimiter_SeparateClients(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	a := limiter.GetLimiter("10.0.0.1")
	assert.Same(t, a, limiter.GetLimiter("10.0.0.1"))
	assert.NotSame(t, a, limiter.GetLimiter("10.0.0.2"))

	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
	assert.True(t, limiter.GetLimiter("10.0.0.2").Allow())
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour, auth.NewDenylist(time.Minute))

	r := gin.New()
	r.GET("/", Authenticate(issuer), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.AccountID})
	})

	w := serve(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.Header{"Authorization": {"Basic abc"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userTok, err := issuer.Issue(7, model.AccountUser, model.RoleUser)
	require.NoError(t, err)
	w = serve(r, http.Header{"Authorization": {"Bearer " + userTok.Token}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminTok, err := issuer.Issue(3, model.AccountAdmin, model.RoleAdmin)
	require.NoError(t, err)
	w = serve(r, http.Header{"Authorization": {"Bearer " + adminTok.Token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())

	id, err := issuer.Verify(adminTok.Token)
	require.NoError(t, err)
	issuer.Revoke(id)
	w = serve(r, http.Header{"Authorization": {"Bearer " + adminTok.Token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireRole(model.RoleUser), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, serve(r, nil).Code)
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = serve(r, http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
