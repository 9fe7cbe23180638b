package controller

import "github.com/labstack/echo/v4"

type ScheduleController interface {
	// List supports optional from/to (YYYY-MM-DD) query filters.
	List(c echo.Context) error
	Patch(c echo.Context) error
}
