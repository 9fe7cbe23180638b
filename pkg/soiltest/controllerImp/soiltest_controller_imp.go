package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agroadvisor/pkg/httperr"
	"agroadvisor/pkg/middleware"
	"agroadvisor/pkg/soiltest/service"
)

const defaultLimit = 60

type SoilTestCtrl struct{ svc service.SoilTestService }

func New(svc service.SoilTestService) *SoilTestCtrl { return &SoilTestCtrl{svc} }

func (h *SoilTestCtrl) List(c echo.Context) error {
	fid, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	limit := defaultLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return httperr.BadRequest(c, "limit must be a positive integer")
		}
		limit = n
	}
	out, err := h.svc.History(fid, middleware.UID(c), limit)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
