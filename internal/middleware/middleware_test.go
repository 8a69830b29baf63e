package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/logging"
	"makeupsales/internal/middleware"
	"makeupsales/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT(t *testing.T) {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, ok := middleware.UserIDFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, strconv.FormatInt(id, 10))
	}, middleware.AuthJWT(secret))

	valid := signToken(t, jwt.SigningMethodHS256, []byte(secret), "42", time.Now().Add(time.Minute))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), "42", time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(secret), "42", time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"bad subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(secret), "abc", time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"other alg", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(secret), "42", time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lower-case scheme", "bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "42", rec.Body.String())
			}
		})
	}
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used")
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used")
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	panic("not used")
}

// Test: 削除済みユーザーのトークンは401
func TestUserGuard(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByID", int64(1)).Return(&model.User{ID: 1}, nil)
	users.On("FindByID", int64(2)).Return(nil, repository.ErrNotFound)

	e := echo.New()
	e.GET("/x", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, middleware.AuthJWT(secret), middleware.UserGuard(users))

	for sub, status := range map[string]int{"1": http.StatusNoContent, "2": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(secret), sub, time.Now().Add(time.Minute)))
		assert.Equal(t, status, serve(e, req).Code, "sub=%s", sub)
	}
	users.AssertExpectations(t)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequestLogger(logging.Discard()))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return errors.New("boom") })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	rec = serve(e, req)
	assert.Equal(t, "req-1", rec.Header().Get(middleware.HeaderRequestID))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)

	e := echo.New()
	e.Use(m.Prometheus())
	e.GET("/products/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve(e, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/products/2", nil))

	assert.Equal(t, 2.0, counterValue(t, reg, "makeupsales_http_requests_total", map[string]string{"path": "/products/:id", "status": "200"}))

	m.Record("create", nil)
	m.Record("create", errors.New("x"))
	m.Record("create", nil)
	assert.Equal(t, 2.0, counterValue(t, reg, "makeupsales_order_operations_total", map[string]string{"operation": "create", "status": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "makeupsales_order_operations_total", map[string]string{"operation": "create", "status": "error"}))
}
