package httperr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agroadvisor/entities"
)

// Status maps service errors to HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// JSON writes err as {"error": ...} with the mapped status.
func JSON(c echo.Context, err error) error {
	return c.JSON(Status(err), map[string]string{"error": err.Error()})
}

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// BadRequest writes a 400 with msg.
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
