package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// FarmerCookie carries the caller id between requests.
	FarmerCookie = "FARMER_ID"
	// FarmerHeader is read by RequireFarmer.
	FarmerHeader = "X-Farmer-Id"

	DefaultDevFarmer = "farmer-dev"
)

// DevLogin trusts a cookie or ?uid= query and falls back to a fixed
// development farmer. Only mounted when auth is disabled.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(FarmerCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DefaultDevFarmer
				}
				c.SetCookie(&http.Cookie{Name: FarmerCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// RequireFarmer rejects requests that carry no farmer id in the X-Farmer-Id
// header or the FARMER_ID cookie.
func RequireFarmer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get(FarmerHeader)
			if uid == "" {
				if ck, err := c.Cookie(FarmerCookie); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing farmer id"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// UID returns the caller id set by DevLogin or RequireFarmer.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
