package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starbyte/internal/models"
	"starbyte/internal/services"
)

func TestAuthn(t *testing.T) {
	authentication, err := services.NewAuthentication("test-secret")
	require.NoError(t, err)

	token, err := authentication.CreateToken(&models.Star{ID: testStarID, StarName: "nova", Email: "nova@example.com"}, time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		header      string
		wantSession *models.Session
	}{
		{
			name:   "no header passes through anonymously",
			header: "",
		},
		{
			name:   "non bearer scheme is ignored",
			header: "Basic Zm9vOmJhcg==",
		},
		{
			name:        "valid token",
			header:      "Bearer " + token,
			wantSession: &models.Session{StarID: testStarID, StarName: "nova", Email: "nova@example.com"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			var got *models.Session
			e.GET("/", func(c echo.Context) error {
				got, _ = ResolveSession(c.Request().Context())
				return c.NoContent(http.StatusNoContent)
			}, Authn(authentication))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			if tc.wantSession == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantSession.StarID, got.StarID)
			assert.Equal(t, tc.wantSession.StarName, got.StarName)
			assert.Equal(t, tc.wantSession.Email, got.Email)
		})
	}
}

func TestAuthn_InvalidToken(t *testing.T) {
	authentication, err := services.NewAuthentication("test-secret")
	require.NoError(t, err)

	called := false
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	}, Authn(authentication))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.NotEqual(t, http.StatusNoContent, rec.Code)
}

func TestResolveSession_ReturnsCopy(t *testing.T) {
	session := &models.Session{StarID: testStarID, StarName: "nova"}
	ctx := context.WithValue(context.Background(), ctxKeyAuthSession, session)

	got, err := ResolveSession(ctx)
	require.NoError(t, err)
	got.StarID = "someone-else"

	again, err := ResolveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, testStarID, again.StarID)

	_, err = ResolveSession(context.Background())
	assert.Error(t, err)
}
