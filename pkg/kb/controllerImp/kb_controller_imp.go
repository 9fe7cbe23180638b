package controllerImp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"agroadvisor/pkg/httperr"
	"agroadvisor/pkg/kb/service"
)

const (
	searchLimit  = 6
	maxRedirects = 10
)

type KBCtrl struct {
	s        service.KBService
	allow    map[string]bool
	maxBytes int
	client   *http.Client
}

type ingestReq struct {
	Title     string  `json:"title"`
	Tags      string  `json:"tags"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

// New builds the controller. URL ingestion only fetches from allowedDomains.
func New(s service.KBService, allowedDomains []string, maxBytes int) *KBCtrl {
	allow := map[string]bool{}
	for _, h := range allowedDomains {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	h := &KBCtrl{s: s, allow: allow, maxBytes: maxBytes}
	h.client = &http.Client{Timeout: 20 * time.Second, CheckRedirect: h.checkRedirect}
	return h
}

// checkRedirect keeps every hop of a fetch on the allow-list.
func (h *KBCtrl) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if !h.allow[strings.ToLower(req.URL.Hostname())] {
		return fmt.Errorf("redirect to %s: domain not allowed", req.URL.Hostname())
	}
	return nil
}

func (h *KBCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid json: "+err.Error())
	}
	if strings.TrimSpace(req.Title) == "" {
		return httperr.BadRequest(c, "title is required")
	}
	if strings.TrimSpace(req.Text) == "" {
		return httperr.BadRequest(c, "text is required")
	}
	src := ""
	if req.SourceURL != nil {
		src = *req.SourceURL
	}
	doc, chunks, err := h.s.UpsertDocument(strings.TrimSpace(req.Title), strings.TrimSpace(req.Tags), req.Text, src)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": chunks})
}

func (h *KBCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL   string `json:"url"`
		Tags  string `json:"tags"`
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return httperr.BadRequest(c, "url required")
	}
	u, err := url.Parse(body.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return httperr.BadRequest(c, "bad url")
	}
	if !h.allow[strings.ToLower(u.Hostname())] {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	txt, title, err := fetchMainText(h.client, body.URL, h.maxBytes)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	if body.Title != "" {
		title = body.Title
	}
	if strings.TrimSpace(title) == "" {
		title = u.Hostname() + u.Path
	}
	doc, n, err := h.s.UpsertDocument(title, body.Tags, txt, body.URL)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return httperr.BadRequest(c, "q required")
	}
	chunks, err := h.s.Search(q, searchLimit)
	if err != nil {
		return httperr.JSON(c, err)
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(chunks))
	for _, ch := range chunks {
		if _, ok := seen[ch.DocID]; !ok {
			seen[ch.DocID] = struct{}{}
			ids = append(ids, ch.DocID)
		}
	}
	meta, err := h.s.DocsMeta(ids)
	if err != nil {
		return httperr.JSON(c, err)
	}

	type outChunk struct {
		ChunkID   uint   `json:"chunk_id"`
		DocID     uint   `json:"doc_id"`
		Ord       int    `json:"ord"`
		Text      string `json:"text"`
		DocTitle  string `json:"doc_title,omitempty"`
		SourceURL string `json:"source_url,omitempty"`
	}
	out := make([]outChunk, 0, len(chunks))
	for _, ch := range chunks {
		oc := outChunk{ChunkID: ch.ChunkID, DocID: ch.DocID, Ord: ch.Ord, Text: ch.Text}
		if d, ok := meta[ch.DocID]; ok {
			oc.DocTitle = d.Title
			oc.SourceURL = d.SourceURL
		}
		out = append(out, oc)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KBCtrl) ListDocs(c echo.Context) error {
	ds, err := h.s.ListDocs()
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

func fetchMainText(client *http.Client, u string, maxBytes int) (string, string, error) {
	resp, err := client.Get(u)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > int64(maxBytes) {
		return "", "", fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return "", "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		return string(b), guessTitleFromText(string(b)), nil
	case strings.Contains(ct, "text/html"):
		return extractHTML(b)
	}
	return "", "", fmt.Errorf("unsupported content-type: %s", ct)
}

// extractHTML keeps headings, paragraphs and list items from main/article,
// or from the whole page when neither exists.
func extractHTML(b []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), title, nil
}

var wsRX = regexp.MustCompile(`\s+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return wsRX.ReplaceAllString(s, "\n")
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if r := []rune(line); len(r) > 120 {
		line = string(r[:120])
	}
	return line
}
