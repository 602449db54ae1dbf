package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerUID string, req models.CreateReservationRequest) (int64, error) {
	args := m.Called(ctx, ownerUID, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateReservationHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	const ownerUID = "owner-1"

	tests := []struct {
		name           string
		body           string
		withIdentity   bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное создание брони",
			body:         `{"client_name":"Carlos","date":"2026-09-01","time":"14:25"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, ownerUID, mock.MatchedBy(func(req models.CreateReservationRequest) bool {
					return req.ClientName == "Carlos" && req.Date == "2026-09-01" && req.Time == "14:25"
				})).Return(int64(7), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":7`,
		},
		{
			name:         "слот уже занят",
			body:         `{"client_name":"Carlos","date":"2026-09-01","time":"14:00"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, ownerUID, mock.Anything).
					Return(int64(0), repository.ErrReservationSlotTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"slot already reserved"`,
		},
		{
			name:           "некорректный формат даты",
			body:           `{"client_name":"Carlos","date":"01/09/2026","time":"14:00"}`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "нет идентификатора пользователя в контексте",
			body:           `{"client_name":"Carlos","date":"2026-09-01","time":"14:00"}`,
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:         "внутренняя ошибка хранилища",
			body:         `{"client_name":"Carlos","date":"2026-09-01","time":"14:00"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, ownerUID, mock.Anything).
					Return(int64(0), errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create reservation"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.body))
			if tt.withIdentity {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, ownerUID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
