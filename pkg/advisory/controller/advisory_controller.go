package controller

import "github.com/labstack/echo/v4"

type AdvisoryController interface {
	Get(c echo.Context) error
	Stateless(c echo.Context) error
	Schedule(c echo.Context) error
	History(c echo.Context) error
}
