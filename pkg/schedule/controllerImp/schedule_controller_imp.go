package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agroadvisor/pkg/httperr"
	"agroadvisor/pkg/middleware"
	"agroadvisor/pkg/schedule/service"
)

type SchedCtrl struct{ svc service.ScheduleService }

func New(svc service.ScheduleService) *SchedCtrl { return &SchedCtrl{svc} }

func (h *SchedCtrl) List(c echo.Context) error {
	fid, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	out, err := h.svc.List(fid, middleware.UID(c), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SchedCtrl) Patch(c echo.Context) error {
	tid, err := httperr.ParamID(c, "task_id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	var body struct {
		Status string   `json:"status"`
		Qty    *float64 `json:"qty"`
	}
	if err := c.Bind(&body); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	if err := h.svc.Patch(tid, middleware.UID(c), body.Status, body.Qty); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
