package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) GetByCompany(ctx context.Context, companyID string) ([]model.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Issue(ctx context.Context, userID string) (*model.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Resolve(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func performLogin(t *testing.T, authHandler *handler.AuthHandler, body interface{}) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", authHandler.Login)

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	user := &model.User{
		ID:       "user-1",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "secret",
	}
	mockUsers.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	mockTokens.On("Issue", mock.Anything, "user-1").Return(&model.Token{Token: "tok-123", UserID: "user-1"}, nil)

	w := performLogin(t, authHandler, handler.LoginRequest{Email: "test@example.com", Password: "secret"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	// The password never leaves the server.
	assert.NotContains(t, w.Body.String(), "secret")

	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	user := &model.User{ID: "user-1", Email: "test@example.com", Password: "secret"}
	mockUsers.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	w := performLogin(t, authHandler, handler.LoginRequest{Email: "test@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	mockTokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	mockUsers.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	w := performLogin(t, authHandler, handler.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_MalformedBody(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	w := performLogin(t, authHandler, gin.H{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogout_RevokesSessionToken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	mockTokens.On("Revoke", mock.Anything, "tok-123").Return(nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/logout", func(c *gin.Context) {
		c.Set(middleware.TokenKey, "tok-123")
		authHandler.Logout(c)
	})

	req, _ := http.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockTokens.AssertExpectations(t)
}

func TestMe_ReturnsSanitizedUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockTokens)

	user := &model.User{ID: "user-1", Name: "Test User", Email: "test@example.com", Password: "secret"}
	mockUsers.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		authHandler.Me(c)
	})

	req, _ := http.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.NotContains(t, w.Body.String(), "secret")
	mockUsers.AssertExpectations(t)
}
