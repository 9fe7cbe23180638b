package controller

import "github.com/labstack/echo/v4"

// AuthController exposes the caller identity helpers.
type AuthController interface {
	DevLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
