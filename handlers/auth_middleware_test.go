package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recommendations/config"
	"recommendations/helper"
	"recommendations/middleware"
	"recommendations/models"
	"recommendations/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Username:        "admin",
		Password:        "s3cret",
		JWTSecret:       []byte("handler-test-secret"),
		TokenExpiration: time.Hour,
	}
}

// newGuardedRouter builds the router the way main does when service-account
// credentials are configured: reads stay public, writes sit behind the
// bearer middleware, and /auth/token issues tokens.
func newGuardedRouter(t *testing.T, repo *memRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testAuthConfig()
	httpHelper := helper.NewHTTPHelper()
	svc := services.NewRecommendationService(repo, zap.NewNop().Sugar())
	h := NewRecommendationHandler(svc, httpHelper)

	authService, err := services.NewAuthService(cfg)
	require.NoError(t, err)
	authHandler := NewAuthHandler(authService, httpHelper)

	router := gin.New()
	router.POST("/auth/token", authHandler.IssueToken)

	recs := router.Group("/recommendations")
	recs.GET("", h.List)
	recs.GET("/:id", h.Get)

	writes := recs.Group("")
	writes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	writes.POST("", h.Create)
	writes.PUT("/:id", h.Update)
	writes.DELETE("/:id", h.Delete)
	writes.PUT("/:id/like", h.Like)

	return router
}

func obtainToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/auth/token", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doAuthJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = doJSONRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSONRequest(method, path string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestTokenEndpointRejectsBadCredentials(t *testing.T) {
	router := newGuardedRouter(t, newMemRepo())

	w := doJSON(router, http.MethodPost, "/auth/token", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/token", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadsStayPublicWhenAuthConfigured(t *testing.T) {
	repo := newMemRepo()
	rec := seedRecord(repo, "public", 1, models.TypeCrossSell, models.StatusActive)
	router := newGuardedRouter(t, repo)

	w := doPlain(router, http.MethodGet, "/recommendations")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doPlain(router, http.MethodGet, "/recommendations/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), rec.Name)
}

func TestWritesRequireBearerToken(t *testing.T) {
	router := newGuardedRouter(t, newMemRepo())

	// No Authorization header at all.
	w := doJSON(router, http.MethodPost, "/recommendations", createPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Header present but not a bearer scheme.
	req := doJSONRequest(http.MethodPost, "/recommendations", createPayload())
	req.Header.Set("Authorization", "Basic YWRtaW46czNjcmV0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	otherService, err := services.NewAuthService(config.AuthConfig{
		Username:        "admin",
		Password:        "s3cret",
		JWTSecret:       []byte("some-other-secret"),
		TokenExpiration: time.Hour,
	})
	require.NoError(t, err)
	forged, err := otherService.IssueToken(models.TokenRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	w = doAuthJSON(router, http.MethodPost, "/recommendations", forged.Token, createPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWritesAcceptIssuedToken(t *testing.T) {
	repo := newMemRepo()
	router := newGuardedRouter(t, repo)
	token := obtainToken(t, router)

	w := doAuthJSON(router, http.MethodPost, "/recommendations", token, createPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// The same token works across the guarded group.
	w = doAuthJSON(router, http.MethodPut, "/recommendations/1/like", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuthJSON(router, http.MethodDelete, "/recommendations/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
