package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmfit/farmfit/internal/domain"
)

// MockUserService mocks the user.Service interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangeTier(ctx context.Context, userID, tierKey string) (*domain.User, error) {
	args := m.Called(ctx, userID, tierKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestHandleRegister(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: RegisterUserRequest{Username: "greenthumb", Email: "gt@example.com"},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "greenthumb", "gt@example.com").
					Return(&domain.User{ID: "u-1", Username: "greenthumb", TierKey: "free"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"greenthumb"`,
		},
		{
			name:           "Invalid Request - Username Too Short",
			requestBody:    RegisterUserRequest{Username: "ab"},
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Invalid Request - Bad Email",
			requestBody:    RegisterUserRequest{Username: "greenthumb", Email: "not-an-email"},
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:        "Service Error - Invalid Username",
			requestBody: RegisterUserRequest{Username: "bad name", Email: ""},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "bad name", "").
					Return(nil, domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockUserService{}
			tt.setupMock(mockSvc)

			h := NewUserHandler(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/user/register", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			h.HandleRegister(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	InitValidator()

	t.Run("By user ID", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetByID", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", Username: "greenthumb"}, nil)

		h := NewUserHandler(mockSvc)
		req := httptest.NewRequest("GET", "/user/profile?user_id=u-1", nil)
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"greenthumb"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("By username", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetByUsername", mock.Anything, "greenthumb").
			Return(&domain.User{ID: "u-1", Username: "greenthumb"}, nil)

		h := NewUserHandler(mockSvc)
		req := httptest.NewRequest("GET", "/user/profile?username=greenthumb", nil)
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetByID", mock.Anything, "missing").
			Return(nil, domain.ErrUserNotFound)

		h := NewUserHandler(mockSvc)
		req := httptest.NewRequest("GET", "/user/profile?user_id=missing", nil)
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUserNotFoundError)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing both params", func(t *testing.T) {
		h := NewUserHandler(&MockUserService{})
		req := httptest.NewRequest("GET", "/user/profile", nil)
		w := httptest.NewRecorder()

		h.HandleGetProfile(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleChangeTier(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("ChangeTier", mock.Anything, "u-1", "premium").
			Return(&domain.User{ID: "u-1", Username: "greenthumb", TierKey: "premium"}, nil)

		h := NewUserHandler(mockSvc)
		body, _ := json.Marshal(ChangeTierRequest{UserID: "u-1", TierKey: "premium"})
		req := httptest.NewRequest("POST", "/user/tier", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleChangeTier(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tier_key":"premium"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown tier", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("ChangeTier", mock.Anything, "u-1", "platinum").
			Return(nil, domain.ErrTierNotFound)

		h := NewUserHandler(mockSvc)
		body, _ := json.Marshal(ChangeTierRequest{UserID: "u-1", TierKey: "platinum"})
		req := httptest.NewRequest("POST", "/user/tier", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleChangeTier(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgTierNotFoundError)
		mockSvc.AssertExpectations(t)
	})
}
