package controllerImp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroadvisor/database"
	"agroadvisor/entities"
	"agroadvisor/pkg/field/repositoryImp"
	"agroadvisor/pkg/field/serviceImp"
	"agroadvisor/pkg/middleware"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	h := New(serviceImp.NewFieldService(repositoryImp.New(db), nil, nil))
	e := echo.New()
	e.Use(middleware.RequireFarmer())
	e.POST("/fields", h.Create)
	e.GET("/fields", h.List)
	e.GET("/fields/:id", h.Get)
	e.PUT("/fields/:id", h.Update)
	e.DELETE("/fields/:id", h.Delete)
	e.POST("/fields/:id/crops", h.AddCrop)
	e.PUT("/fields/:id/soil-health", h.UpdateSoilHealth)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.FarmerHeader, "farmer-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFieldLifecycle(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/fields", `{"name":"River plot","area":1.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var f entities.Field
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "farmer-1", f.UserID)
	assert.Equal(t, 6.5, f.Soil.PH)

	path := fmt.Sprintf("/fields/%d", f.FieldID)
	rec = do(e, http.MethodPost, path+"/crops", `{
		"crop_name":"Chickpea","crop_family":"Legume","season":"Rabi","year":2024,
		"planted_date":"2023-11-01","harvest_date":"2024-03-10","yield":1.2,
		"soil_health_after":{"nitrogen":52,"phosphorus":31,"potassium":33,"ph":6.8,"organic_matter":2.2}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	require.Len(t, f.Cycles, 1)
	assert.Equal(t, 52.0, f.Soil.Nitrogen)

	rec = do(e, http.MethodPut, path+"/soil-health", `{"ph":7.1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, 7.1, f.Soil.PH)

	rec = do(e, http.MethodPut, path, `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/fields", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entities.Field
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Name)

	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFieldErrors(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/fields", `{"name":"","area":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/fields", `{bad`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/fields/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/fields/99", "").Code)

	rec := do(e, http.MethodPost, "/fields", `{"name":"A","area":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var f entities.Field
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))

	rec = do(e, http.MethodPost, fmt.Sprintf("/fields/%d/crops", f.FieldID),
		`{"crop_name":"Rice","crop_family":"Cereal","season":"Kharif","year":2024,"planted_date":"June"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
