package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agroadvisor/pkg/auth/controller"
	"agroadvisor/pkg/middleware"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

// DevLogin switches the development farmer id. Mounted only when auth is off.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = middleware.DefaultDevFarmer
	}
	c.SetCookie(&http.Cookie{Name: middleware.FarmerCookie, Value: uid, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"uid": middleware.UID(c)})
}
