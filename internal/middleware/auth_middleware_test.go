package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/internal/middleware"
	"taskhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenResolver struct {
	mock.Mock
}

func (m *MockTokenResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func setupRouter(resolver middleware.TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.TokenAuthMiddleware(resolver), func(c *gin.Context) {
		userID, _ := c.Get(middleware.UserIDKey)
		token, _ := c.Get(middleware.TokenKey)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "token": token})
	})
	return router
}

func TestTokenAuthMiddleware_ValidToken(t *testing.T) {
	resolver := new(MockTokenResolver)
	resolver.On("Resolve", mock.Anything, "tok-123").Return(&model.User{ID: "user-1"}, nil)

	router := setupRouter(resolver)
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "tok-123")
	resolver.AssertExpectations(t)
}

func TestTokenAuthMiddleware_MissingHeader(t *testing.T) {
	resolver := new(MockTokenResolver)

	router := setupRouter(resolver)
	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestTokenAuthMiddleware_BadFormat(t *testing.T) {
	resolver := new(MockTokenResolver)

	router := setupRouter(resolver)
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer {token}")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestTokenAuthMiddleware_RevokedToken(t *testing.T) {
	resolver := new(MockTokenResolver)
	resolver.On("Resolve", mock.Anything, "tok-revoked").Return(nil, nil)

	router := setupRouter(resolver)
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-revoked")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
	resolver.AssertExpectations(t)
}

func TestTokenAuthMiddleware_ResolverError(t *testing.T) {
	resolver := new(MockTokenResolver)
	resolver.On("Resolve", mock.Anything, "tok-123").Return(nil, assert.AnError)

	router := setupRouter(resolver)
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resolver.AssertExpectations(t)
}
