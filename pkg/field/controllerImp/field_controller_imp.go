package controllerImp

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agroadvisor/entities"
	"agroadvisor/pkg/field/service"
	"agroadvisor/pkg/httperr"
	"agroadvisor/pkg/middleware"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type createReq struct {
	Name              string               `json:"name"`
	Area              float64              `json:"area"`
	CurrentSoilHealth *entities.SoilHealth `json:"current_soil_health"`
}

type updateReq struct {
	Name *string  `json:"name"`
	Area *float64 `json:"area"`
}

type cropReq struct {
	CropName         string                   `json:"crop_name"`
	CropFamily       string                   `json:"crop_family"`
	Season           string                   `json:"season"`
	Year             int                      `json:"year"`
	PlantedDate      string                   `json:"planted_date"`
	HarvestDate      string                   `json:"harvest_date"`
	Yield            *float64                 `json:"yield"`
	YieldUnit        string                   `json:"yield_unit"`
	SoilHealthBefore *entities.SoilHealth     `json:"soil_health_before"`
	SoilHealthAfter  *entities.SoilHealth     `json:"soil_health_after"`
	FertilizersUsed  []entities.FertilizerUse `json:"fertilizers_used"`
	Notes            string                   `json:"notes"`
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	f := &entities.Field{UserID: middleware.UID(c), Name: req.Name, AreaHa: req.Area}
	if req.CurrentSoilHealth != nil {
		f.Soil = *req.CurrentSoilHealth
	}
	out, err := h.svc.CreateField(f)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FieldCtrl) List(c echo.Context) error {
	out, err := h.svc.ListFields(middleware.UID(c))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	f, err := h.svc.GetFieldByID(id, middleware.UID(c))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	f, err := h.svc.UpdateField(id, middleware.UID(c), req.Name, req.Area)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	if err := h.svc.DeleteField(id, middleware.UID(c)); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *FieldCtrl) AddCrop(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	planted, err := parseDate(req.PlantedDate)
	if err != nil {
		return httperr.BadRequest(c, "planted_date must be YYYY-MM-DD")
	}
	cycle := &entities.CropCycle{
		CropName:    req.CropName,
		CropFamily:  req.CropFamily,
		Season:      req.Season,
		Year:        req.Year,
		PlantedDate: planted,
		Yield:       req.Yield,
		YieldUnit:   req.YieldUnit,
		SoilBefore:  req.SoilHealthBefore,
		SoilAfter:   req.SoilHealthAfter,
		Fertilizers: req.FertilizersUsed,
		Notes:       req.Notes,
	}
	if req.HarvestDate != "" {
		hd, err := parseDate(req.HarvestDate)
		if err != nil {
			return httperr.BadRequest(c, "harvest_date must be YYYY-MM-DD")
		}
		cycle.HarvestDate = &hd
	}
	f, err := h.svc.AddCrop(id, middleware.UID(c), cycle)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) UpdateSoilHealth(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	var p service.SoilPatch
	if err := c.Bind(&p); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	f, err := h.svc.UpdateSoilHealth(id, middleware.UID(c), p)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, f)
}
