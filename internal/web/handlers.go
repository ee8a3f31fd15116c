// Package web serves the explorer over HTTP: the interactive dashboard, a
// JSON API and rendered chart assets.
package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/dashboard"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/junkd0g/dataexplorer/internal/diagram"
	"github.com/junkd0g/dataexplorer/internal/explorer"
	"github.com/junkd0g/dataexplorer/internal/export"
	"github.com/junkd0g/dataexplorer/internal/logger"
	"github.com/junkd0g/dataexplorer/internal/render"
	"github.com/junkd0g/dataexplorer/internal/upload"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const uploadField = "file"

// Handler holds the HTTP endpoint handlers.
type Handler struct {
	service   *explorer.Service
	page      dashboard.HTMLConfig
	maxUpload int64
	log       *logrus.Entry
}

// NewHandler creates a Handler rendering pages with page. Uploads larger
// than maxUpload bytes are rejected.
func NewHandler(s *explorer.Service, page dashboard.HTMLConfig, maxUpload int64) *Handler {
	page.Interactive = true
	if maxUpload <= 0 {
		maxUpload = upload.DefaultMaxBytes
	}
	return &Handler{
		service:   s,
		page:      page,
		maxUpload: maxUpload,
		log:       logger.New("web"),
	}
}

// --- Dashboard ---

// Index renders the dashboard. Unknown kinds render a scatter plot.
func (h *Handler) Index(c *gin.Context) {
	req, ok := h.request(c, c.Query("kind"), false)
	if !ok {
		return
	}
	h.renderPage(c, req)
}

// Upload renders the dashboard with the posted CSV file. A bad file is shown
// inline and the rest of the page still renders.
func (h *Handler) Upload(c *gin.Context) {
	req, ok := h.request(c, c.PostForm("kind"), false)
	if !ok {
		return
	}

	name, data, err := h.readUpload(c)
	if err != nil {
		requestLog(c, h.log).WithError(err).Warn("could not read upload")
		view, rerr := h.service.Render(c.Request.Context(), req)
		if rerr != nil {
			h.fail(c, rerr)
			return
		}
		view.UploadError = err.Error()
		c.Data(http.StatusOK, "text/html; charset=utf-8", dashboard.Render(view, h.pageConfig(c)))
		return
	}
	if data != nil {
		req.Upload = data
		req.UploadName = name
	}

	h.renderPage(c, req)
}

func (h *Handler) renderPage(c *gin.Context, req explorer.Request) {
	view, err := h.service.Render(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboard.Render(view, h.pageConfig(c)))
}

func (h *Handler) pageConfig(c *gin.Context) dashboard.HTMLConfig {
	cfg := h.page
	if theme := formValue(c, "theme"); theme == "light" || theme == "dark" {
		cfg.Theme = theme
	}
	return cfg
}

// --- JSON API ---

// GetDataset returns the generated records.
func (h *Handler) GetDataset(c *gin.Context) {
	seed, ok := seedParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Dataset(seed))
}

type summaryResponse struct {
	Seed                  int64   `json:"seed"`
	TotalValue            int     `json:"totalValue"`
	AvgPerformance        float64 `json:"avgPerformance"`
	AvgPerformanceDisplay string  `json:"avgPerformanceDisplay"`
}

// GetSummary returns the summary metrics of the generated dataset.
func (h *Handler) GetSummary(c *gin.Context) {
	seed, ok := seedParam(c)
	if !ok {
		return
	}
	ds := h.service.Dataset(seed)
	s := dataset.Summarize(ds)
	c.JSON(http.StatusOK, summaryResponse{
		Seed:                  ds.Seed,
		TotalValue:            s.TotalValue,
		AvgPerformance:        s.AvgPerformance,
		AvgPerformanceDisplay: s.AvgPerformanceDisplay(),
	})
}

// GetChart returns the chart specification. Unknown kinds are rejected.
func (h *Handler) GetChart(c *gin.Context) {
	view, ok := h.strictView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view.Chart)
}

// PostUpload parses a CSV file, sent either as the multipart field "file" or
// as the raw request body, and returns the table with its column profile.
func (h *Handler) PostUpload(c *gin.Context) {
	var (
		name string
		data []byte
		err  error
	)
	// Only multipart bodies go through form parsing; any other content type
	// (curl --data-binary sends a form-encoded one) is the raw CSV.
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		name, data, err = h.readUpload(c)
	}
	if err == nil && data == nil {
		data, err = upload.ReadBytes(c.Request.Body, h.maxUpload)
	}

	var uv *explorer.UploadView
	if err == nil {
		uv, err = h.service.ParseUpload(data)
	}
	if err != nil {
		h.uploadFailed(c, err)
		return
	}
	uv.Name = name

	c.JSON(http.StatusOK, gin.H{
		"name":    uv.Name,
		"rows":    uv.Table.RowCount(),
		"columns": uv.Table.ColCount(),
		"table":   uv.Table,
		"profile": uv.Profile,
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Rendered assets ---

// ChartPNG renders the chart as a PNG image.
func (h *Handler) ChartPNG(c *gin.Context) {
	h.chartImage(c, render.PNG)
}

// ChartSVG renders the chart as an SVG image.
func (h *Handler) ChartSVG(c *gin.Context) {
	h.chartImage(c, render.SVG)
}

func (h *Handler) chartImage(c *gin.Context, format render.Format) {
	view, ok := h.strictView(c)
	if !ok {
		return
	}

	opts, err := imageOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := render.Image(view.Chart, format, &buf, opts); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Encoding renders the field-to-channel diagram of the chart as SVG.
func (h *Handler) Encoding(c *gin.Context) {
	view, ok := h.strictView(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := diagram.Render(c.Request.Context(), view.Chart, diagram.SVG, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// Export downloads the generated dataset as an XLSX workbook.
func (h *Handler) Export(c *gin.Context) {
	seed, ok := seedParam(c)
	if !ok {
		return
	}
	ds := h.service.Dataset(seed)

	var buf bytes.Buffer
	if err := export.Write(ds, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dataset.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// --- helpers ---

func (h *Handler) request(c *gin.Context, kind string, strict bool) (explorer.Request, bool) {
	seed, ok := seedParam(c)
	if !ok {
		return explorer.Request{}, false
	}
	return explorer.Request{Kind: kind, Strict: strict, Seed: seed}, true
}

func (h *Handler) strictView(c *gin.Context) (*explorer.View, bool) {
	req, ok := h.request(c, c.Query("kind"), true)
	if !ok {
		return nil, false
	}
	view, err := h.service.Render(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return view, true
}

// readUpload returns the multipart file, or nil data when none was sent.
func (h *Handler) readUpload(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return "", nil, nil
	}
	if err := upload.CheckSize(fh.Size, h.maxUpload); err != nil {
		return fh.Filename, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return fh.Filename, nil, &upload.ParseError{Err: errors.Wrap(err, "cannot open uploaded file")}
	}
	defer f.Close()

	data, err := upload.ReadBytes(f, h.maxUpload)
	if err != nil {
		return fh.Filename, nil, err
	}
	return fh.Filename, data, nil
}

func (h *Handler) uploadFailed(c *gin.Context, err error) {
	var pe *upload.ParseError
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.As(err, &pe):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": pe.Error()})
	default:
		h.fail(c, err)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Cause(err) == chart.ErrUnknownKind {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	requestLog(c, h.log).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// imageOptions reads the optional width and height query parameters.
func imageOptions(c *gin.Context) (render.Options, error) {
	var opts render.Options
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errors.Errorf("%s must be an integer", p.name)
		}
		*p.dst = n
	}
	return opts, opts.Validate()
}

// formValue returns the query parameter key, or the posted form field of
// the same name on POST requests.
func formValue(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	if c.Request.Method == http.MethodPost {
		return c.PostForm(key)
	}
	return ""
}

// seedParam parses the optional "seed" parameter. It writes a 400 response
// and returns false when the value is not an integer.
func seedParam(c *gin.Context) (*int64, bool) {
	raw := formValue(c, "seed")
	if raw == "" {
		return nil, true
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
		return nil, false
	}
	return &seed, true
}
