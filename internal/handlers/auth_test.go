package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/services"
	"github.com/connectsphere/backend/internal/store"
)

const testJWTSecret = "test-secret"

func newAuthFixture(t *testing.T) (*echo.Echo, *AuthHandler) {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	users := services.NewUserService(st, nil, zap.NewNop())
	return echo.New(), NewAuthHandler(users, testJWTSecret)
}

func postJSON(e *echo.Echo, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_RegisterIssuesToken(t *testing.T) {
	e, h := newAuthFixture(t)

	rec := postJSON(e, h.Register, `{"email":"kim@example.com","name":"kim","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string          `json:"token"`
		User  models.UserView `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "kim", resp.User.Name)

	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)

	// A duplicate registration maps to 409.
	rec = postJSON(e, h.Register, `{"email":"kim@example.com","name":"kim2","password":"longenough"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	e, h := newAuthFixture(t)

	rec := postJSON(e, h.Register, `{"email":"kim@example.com","name":"kim","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, h.Login, `{"email":"kim@example.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(e, h.Login, `{"email":"kim@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(e, h.Login, `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
