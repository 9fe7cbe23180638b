package controllerImp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroadvisor/database"
	"agroadvisor/pkg/kb/repositoryImp"
	"agroadvisor/pkg/kb/serviceImp"
)

const page = `<html><head><title>Soil pH guide</title></head><body>
<nav><li>Home</li></nav>
<article><h1>Correcting acidic soil</h1><p>Apply lime two months before sowing.</p><li>Retest after six months</li></article>
</body></html>`

func newCtrl(t *testing.T, allowed ...string) (*KBCtrl, *echo.Echo) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	h := New(serviceImp.New(repositoryImp.New(db)), allowed, 0)
	e := echo.New()
	e.POST("/kb/ingest", h.IngestText)
	e.POST("/kb/ingest/url", h.IngestURL)
	e.GET("/kb/search", h.Search)
	e.GET("/kb/docs", h.ListDocs)
	return h, e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExtractHTML_PrefersArticle(t *testing.T) {
	text, title, err := extractHTML([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Soil pH guide", title)
	assert.Contains(t, text, "Apply lime")
	assert.NotContains(t, text, "Home")
}

func TestIngestURL_AllowListAndFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	_, e := newCtrl(t)
	rec := post(e, "/kb/ingest/url", `{"url":"`+srv.URL+`/ph"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, e = newCtrl(t, u.Hostname())
	rec = post(e, "/kb/ingest/url", `{"url":"`+srv.URL+`/ph","tags":"ph"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/kb/search?q=lime+sowing", nil)
	srec := httptest.NewRecorder()
	e.ServeHTTP(srec, req)
	require.Equal(t, http.StatusOK, srec.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(srec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Soil pH guide", out[0]["doc_title"])
}

func TestIngestURL_RedirectLeavingAllowList(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
	defer target.Close()
	tu, err := url.Parse(target.URL)
	require.NoError(t, err)

	// The redirect names the target by a host outside the allow-list.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:"+tu.Port()+"/ph", http.StatusFound)
	}))
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	_, e := newCtrl(t, u.Hostname())
	rec := post(e, "/kb/ingest/url", `{"url":"`+srv.URL+`/go"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "domain not allowed")

	req := httptest.NewRequest(http.MethodGet, "/kb/docs", nil)
	drec := httptest.NewRecorder()
	e.ServeHTTP(drec, req)
	assert.JSONEq(t, "[]", drec.Body.String())
}

func TestIngestText_Validation(t *testing.T) {
	_, e := newCtrl(t)
	assert.Equal(t, http.StatusBadRequest, post(e, "/kb/ingest", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(e, "/kb/ingest", `{"text":"x"}`).Code)
	assert.Equal(t, http.StatusCreated, post(e, "/kb/ingest", `{"title":"Mulching","text":"Mulch conserves moisture."}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/kb/docs", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mulching")

	req = httptest.NewRequest(http.MethodGet, "/kb/search", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
