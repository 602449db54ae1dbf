package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/barberos/barbershop-backend/internal/services/license"
)

// MockAuthorizer реализует интерфейс Authorizer
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, path, ownerUID, machineID string) (license.Decision, error) {
	args := m.Called(ctx, path, ownerUID, machineID)
	return args.Get(0).(license.Decision), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestLicenseMiddleware_Allowed(t *testing.T) {
	authz := new(MockAuthorizer)
	authz.On("Authorize", mock.Anything, "/api/v1/barbers", "owner-1", "M1").
		Return(license.Decision{Allowed: true}, nil)

	var called bool
	handler := LicenseMiddleware(authz, testLogger())(nextHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/barbers", nil)
	req.Header.Set(MachineIDHeader, "M1")
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "owner-1"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLicenseMiddleware_Denied_ContractFields(t *testing.T) {
	authz := new(MockAuthorizer)
	authz.On("Authorize", mock.Anything, "/api/v1/barbers", "owner-1", "M2").
		Return(license.Decision{
			Allowed:        false,
			Status:         http.StatusForbidden,
			Code:           license.CodeInvalidMachine,
			Error:          "license is not activated for this machine",
			ShowSupport:    true,
			SupportMessage: "this license is bound to another machine, contact support to transfer it",
		}, nil)

	var called bool
	handler := LicenseMiddleware(authz, testLogger())(nextHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/barbers", nil)
	req.Header.Set(MachineIDHeader, "M2")
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "owner-1"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, w.Code)
	// Имена полей — внешний контракт клиента
	body := w.Body.String()
	assert.Contains(t, body, `"code":"INVALID_MACHINE"`)
	assert.Contains(t, body, `"show_support":true`)
	assert.Contains(t, body, `"support_message"`)
}

func TestLicenseMiddleware_MissingIdentityPassedAsEmpty(t *testing.T) {
	authz := new(MockAuthorizer)
	authz.On("Authorize", mock.Anything, "/api/v1/barbers", "", "").
		Return(license.Decision{
			Allowed: false,
			Status:  http.StatusUnauthorized,
			Code:    license.CodeNoToken,
			Error:   "authorization token not provided",
		}, nil)

	var called bool
	handler := LicenseMiddleware(authz, testLogger())(nextHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/barbers", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NO_TOKEN"`)
}

func TestLicenseMiddleware_StoreFailure(t *testing.T) {
	authz := new(MockAuthorizer)
	authz.On("Authorize", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(license.Decision{}, errors.New("db down"))

	var called bool
	handler := LicenseMiddleware(authz, testLogger())(nextHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/barbers", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Внутренняя ошибка не протекает в тело ответа
	assert.NotContains(t, w.Body.String(), "db down")
}
