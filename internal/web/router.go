package web

import "github.com/gin-gonic/gin"

// SetupRouter configures and returns a gin engine serving the dashboard,
// the JSON API and the rendered assets.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(h.log))

	// Dashboard
	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)

	// Rendered assets
	r.GET("/chart.png", h.ChartPNG)
	r.GET("/chart.svg", h.ChartSVG)
	r.GET("/encoding.svg", h.Encoding)
	r.GET("/export.xlsx", h.Export)

	r.GET("/healthz", h.Health)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/dataset", h.GetDataset)
		apiV1.GET("/summary", h.GetSummary)
		apiV1.GET("/chart", h.GetChart)
		apiV1.POST("/upload", h.PostUpload)
	}

	return r
}

// GinMode maps the configured environment to a gin mode: release in
// production, debug otherwise.
func GinMode(environment string) string {
	if environment == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
