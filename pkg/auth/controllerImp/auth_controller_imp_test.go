package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroadvisor/pkg/middleware"
)

func TestDevLoginAndWhoAmI(t *testing.T) {
	h := NewAuthController()
	e := echo.New()
	e.Use(middleware.DevLogin())
	e.GET("/devlogin", h.DevLogin)
	e.GET("/whoami", h.WhoAmI)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devlogin?uid=meena", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var ck *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.FarmerCookie && c.Value == "meena" {
			ck = c
		}
	}
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"uid":"meena"}`, rec.Body.String())
}
