package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agroadvisor/pkg/advisory/export"
	"agroadvisor/pkg/advisory/service"
	"agroadvisor/pkg/agronomy"
	"agroadvisor/pkg/httperr"
	"agroadvisor/pkg/middleware"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdvisoryCtrl struct{ svc service.AdvisoryService }

func New(svc service.AdvisoryService) *AdvisoryCtrl { return &AdvisoryCtrl{svc} }

// monthParam reads ?month=. Absent means "current month"; any integer is
// accepted and out-of-range values simply disable the seasonal filter.
func monthParam(c echo.Context) (*int, error) {
	v := c.QueryParam("month")
	if v == "" {
		return nil, nil
	}
	m, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("month must be an integer")
	}
	return &m, nil
}

func (h *AdvisoryCtrl) Get(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	month, err := monthParam(c)
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	res, err := h.svc.ForField(id, middleware.UID(c), month)
	if err != nil {
		return httperr.JSON(c, err)
	}
	switch c.QueryParam("format") {
	case "", "json":
		return c.JSON(http.StatusOK, res)
	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, res.Report, res.Articles); err != nil {
			return httperr.JSON(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="advisory-field-%d-m%d.xlsx"`, id, res.Report.Month))
		return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
	}
	return httperr.BadRequest(c, "format must be json or xlsx")
}

func (h *AdvisoryCtrl) Stateless(c echo.Context) error {
	month, err := monthParam(c)
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	var f agronomy.Field
	if err := c.Bind(&f); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	if err := f.Validate(); err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Stateless(f, month))
}

func (h *AdvisoryCtrl) Schedule(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	month, err := monthParam(c)
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	a, tasks, err := h.svc.Schedule(id, middleware.UID(c), month)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"advisory": a, "tasks": tasks})
}

func (h *AdvisoryCtrl) History(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	out, err := h.svc.History(id, middleware.UID(c))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
