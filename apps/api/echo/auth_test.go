package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core/account"
)

// A generated token must survive the round trip through the JWT middleware:
// the parsed token stored in the context has to be the same library's type or
// getContextClaims comes back empty and every guarded route 401s.
func TestAuth_tokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(GetAuthClaims(account.Authenticated{Role: account.KindAdmin}, "root@test.com"))
	require.NoError(t, err)

	var got Claims
	handler := middleware.JWTWithConfig(appJWTConfig)(func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		got = claims
		return ctx.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(echo.New().NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, account.KindAdmin, got.Role)
	assert.Equal(t, "root@test.com", got.Email)
}

func TestAuth_adminMiddlewareRejectsNonAdmin(t *testing.T) {
	token, err := GenerateToken(GetAuthClaims(account.Authenticated{Role: account.KindSalesMan}, "kwame@test.com"))
	require.NoError(t, err)

	handler := middleware.JWTWithConfig(appJWTConfig)(adminMiddleware()(func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	err = handler(echo.New().NewContext(req, rec))
	assert.Equal(t, errHTTPForbidden, err)
}
