// Package dashboard renders the explorer page: control panel, chart, metric
// tiles and the uploaded data panel.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/junkd0g/dataexplorer/internal/analyzer"
	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/explorer"
	"github.com/pkg/errors"
)

// WidgetType defines the available page sections.
type WidgetType string

const (
	WidgetControlPanel  WidgetType = "control_panel"
	WidgetChart         WidgetType = "chart"
	WidgetMetrics       WidgetType = "metrics"
	WidgetUploadedData  WidgetType = "uploaded_data"
	WidgetUploadSummary WidgetType = "upload_summary"
	WidgetColumnProfile WidgetType = "column_profile"
	WidgetEncoding      WidgetType = "encoding"
)

// HTMLConfig configures what to include in the page.
type HTMLConfig struct {
	Title       string
	Description string
	Footer      string
	Widgets     []WidgetType
	Theme       string // "dark" or "light"
	// Interactive adds the forms that post back to the HTTP server. Static
	// pages written to disk leave it off.
	Interactive bool
}

// DefaultConfig returns the full page configuration.
func DefaultConfig() HTMLConfig {
	return HTMLConfig{
		Title:       "Interactive Data Explorer",
		Description: "Generate a sample dataset, pick a visualization and upload your own CSV",
		Footer:      "Generated by dataexplorer",
		Theme:       "dark",
		Widgets: []WidgetType{
			WidgetControlPanel,
			WidgetChart,
			WidgetMetrics,
			WidgetUploadedData,
			WidgetUploadSummary,
			WidgetColumnProfile,
		},
	}
}

// FromConfig builds the page configuration from the dashboard section.
func FromConfig(cfg config.DashboardConfig) HTMLConfig {
	page := DefaultConfig()
	if cfg.Title != "" {
		page.Title = cfg.Title
	}
	if cfg.Description != "" {
		page.Description = cfg.Description
	}
	if cfg.Footer != "" {
		page.Footer = cfg.Footer
	}
	if cfg.Theme != "" {
		page.Theme = cfg.Theme
	}
	page.Widgets = ParseWidgets(cfg.Widgets)
	return page
}

// ParseWidgets converts configured widget names, skipping unknown ones. An
// empty list yields the default widgets.
func ParseWidgets(names []string) []WidgetType {
	if len(names) == 0 {
		return DefaultConfig().Widgets
	}
	known := map[WidgetType]bool{
		WidgetControlPanel: true, WidgetChart: true, WidgetMetrics: true,
		WidgetUploadedData: true, WidgetUploadSummary: true,
		WidgetColumnProfile: true, WidgetEncoding: true,
	}
	widgets := make([]WidgetType, 0, len(names))
	for _, n := range names {
		w := WidgetType(strings.TrimSpace(n))
		if known[w] {
			widgets = append(widgets, w)
		}
	}
	return widgets
}

// HTMLBuilder builds a page for one view.
type HTMLBuilder struct {
	view   *explorer.View
	config HTMLConfig
}

// PageData is serialized into the page for the chart script.
type PageData struct {
	Kind   string                 `json:"kind"`
	Option map[string]interface{} `json:"option"`
}

// Render returns the page for view.
func Render(view *explorer.View, config HTMLConfig) []byte {
	b := &HTMLBuilder{view: view, config: config}
	return []byte(b.render())
}

// GenerateHTML writes the page for view to outputPath.
func GenerateHTML(view *explorer.View, outputPath string, config HTMLConfig) error {
	if err := writeFileBytes(outputPath, Render(view, config)); err != nil {
		return errors.Wrap(err, "failed to write HTML file")
	}
	return nil
}

func (b *HTMLBuilder) has(widget WidgetType) bool {
	for _, w := range b.config.Widgets {
		if w == widget {
			return true
		}
	}
	return false
}

func (b *HTMLBuilder) render() string {
	var sb strings.Builder

	sb.WriteString(b.renderHead())
	sb.WriteString(`<body><div class="layout">`)

	if b.has(WidgetControlPanel) {
		sb.WriteString(b.renderSidebar())
	}

	sb.WriteString(`<main class="container">`)
	sb.WriteString(b.renderHeader())
	for _, widget := range b.config.Widgets {
		sb.WriteString(b.renderWidget(widget))
	}
	sb.WriteString(b.renderFooter())
	sb.WriteString(`</main></div>`)

	sb.WriteString(b.renderScripts())
	sb.WriteString(`</body></html>`)

	return sb.String()
}

func (b *HTMLBuilder) renderHead() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
    <style>%s</style>
</head>`, html.EscapeString(b.config.Title), b.getThemeCSS())
}

func (b *HTMLBuilder) getThemeCSS() string {
	if b.config.Theme == "light" {
		return lightThemeCSS
	}
	return darkThemeCSS
}

func (b *HTMLBuilder) renderHeader() string {
	return fmt.Sprintf(`
<header>
    <h1>%s</h1>
    <p>%s</p>
</header>`, html.EscapeString(b.config.Title), html.EscapeString(b.config.Description))
}

func (b *HTMLBuilder) renderFooter() string {
	return fmt.Sprintf(`<footer><p>%s</p></footer>`, html.EscapeString(b.config.Footer))
}

func (b *HTMLBuilder) renderWidget(widget WidgetType) string {
	switch widget {
	case WidgetChart:
		return b.renderChart()
	case WidgetMetrics:
		return b.renderMetrics()
	case WidgetUploadedData:
		return b.renderUploadedData()
	case WidgetUploadSummary:
		return b.renderUploadSummary()
	case WidgetColumnProfile:
		return b.renderColumnProfile()
	case WidgetEncoding:
		return b.renderEncoding()
	default:
		// The control panel is rendered in the sidebar.
		return ""
	}
}

func (b *HTMLBuilder) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(`
<aside class="sidebar">
    <h2>Control Panel</h2>`)

	if b.config.Interactive {
		sb.WriteString(`
    <form method="get" action="/">
        <label for="kind">Select Visualization Type</label>
        <select id="kind" name="kind" onchange="this.form.submit()">`)
		sb.WriteString(b.renderKindOptions())
		sb.WriteString(`
        </select>`)
		sb.WriteString(b.renderStateInputs())
		sb.WriteString(`
    </form>
    <h2>Data Upload</h2>
    <form method="post" action="/upload" enctype="multipart/form-data">
        <label for="file">Choose a CSV file</label>`)
		sb.WriteString(fmt.Sprintf(`
        <input type="hidden" name="kind" value="%s">`, b.view.Chart.Type))
		sb.WriteString(b.renderStateInputs())
		sb.WriteString(`
        <input id="file" type="file" name="file" accept=".csv,text/csv" onchange="this.form.submit()">
    </form>`)
	} else {
		sb.WriteString(fmt.Sprintf(`
    <p class="muted">Visualization: <strong>%s</strong></p>
    <p class="muted">Seed: <strong>%d</strong></p>`, b.view.Chart.Kind.Label(), b.view.Dataset.Seed))
	}

	sb.WriteString(b.renderNotification())
	sb.WriteString(`
</aside>`)
	return sb.String()
}

// renderStateInputs carries the seed and theme across form submissions.
func (b *HTMLBuilder) renderStateInputs() string {
	return fmt.Sprintf(`
        <input type="hidden" name="seed" value="%d">
        <input type="hidden" name="theme" value="%s">`, b.view.Dataset.Seed, html.EscapeString(b.config.Theme))
}

func (b *HTMLBuilder) renderKindOptions() string {
	var sb strings.Builder
	for _, k := range chart.Kinds() {
		selected := ""
		if k == b.view.Chart.Kind {
			selected = " selected"
		}
		sb.WriteString(fmt.Sprintf(`
            <option value="%s"%s>%s</option>`, k.String(), selected, k.Label()))
	}
	return sb.String()
}

func (b *HTMLBuilder) renderNotification() string {
	switch {
	case b.view.UploadError != "":
		return fmt.Sprintf(`
    <div class="notice error" role="alert">%s</div>`, html.EscapeString(b.view.UploadError))
	case b.view.Upload != nil:
		return `
    <div class="notice success">File uploaded successfully!</div>`
	default:
		return ""
	}
}

func (b *HTMLBuilder) renderChart() string {
	return `
<section class="widget chart-box">
    <h3>Data Visualization</h3>
    <div id="main-chart" class="chart"></div>
</section>`
}

func (b *HTMLBuilder) renderMetrics() string {
	return fmt.Sprintf(`
<section class="widget stats-grid">
    <div class="stat-card">
        <div class="label">Total Value</div>
        <div class="number">%s</div>
    </div>
    <div class="stat-card">
        <div class="label">Average Performance</div>
        <div class="number">%s</div>
    </div>
</section>`,
		b.view.Summary.TotalValueDisplay(),
		b.view.Summary.AvgPerformanceDisplay())
}

func (b *HTMLBuilder) renderUploadedData() string {
	if b.view.Upload == nil {
		return ""
	}
	t := b.view.Upload.Table

	var head strings.Builder
	for _, c := range t.Columns {
		head.WriteString("<th>" + html.EscapeString(c) + "</th>")
	}

	var rows strings.Builder
	for _, row := range t.Rows {
		rows.WriteString("\n        <tr>")
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rows.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		rows.WriteString("</tr>")
	}

	title := "Uploaded Data"
	if b.view.Upload.Name != "" {
		title += ": " + b.view.Upload.Name
	}

	return fmt.Sprintf(`
<section class="widget table-box">
    <h3>%s</h3>
    <table>
        <thead><tr>%s</tr></thead>
        <tbody>%s</tbody>
    </table>
</section>`, html.EscapeString(title), head.String(), rows.String())
}

func (b *HTMLBuilder) renderUploadSummary() string {
	if b.view.Upload == nil {
		return ""
	}
	return fmt.Sprintf(`
<section class="widget">
    <h3>Data Summary</h3>
    <div class="stats-grid">
        <div class="stat-card">
            <div class="label">Total Rows</div>
            <div class="number">%d</div>
        </div>
        <div class="stat-card">
            <div class="label">Total Columns</div>
            <div class="number">%d</div>
        </div>
    </div>
</section>`, b.view.Upload.Table.RowCount(), b.view.Upload.Table.ColCount())
}

func (b *HTMLBuilder) renderColumnProfile() string {
	if b.view.Upload == nil || b.view.Upload.Profile == nil {
		return ""
	}

	var rows strings.Builder
	for _, c := range b.view.Upload.Profile.Columns {
		stats := "-"
		if c.Type == analyzer.ColumnNumeric && c.Mean != nil {
			stats = fmt.Sprintf("min %g, max %g, mean %.2f", *c.Min, *c.Max, *c.Mean)
		}
		rows.WriteString(fmt.Sprintf(`
        <tr>
            <td><strong>%s</strong></td>
            <td><span class="badge badge-%s">%s</span></td>
            <td>%d</td>
            <td>%d</td>
            <td class="muted">%s</td>
        </tr>`,
			html.EscapeString(c.Name), c.Type, c.Type, c.NonEmpty, c.Distinct, stats))
	}

	return fmt.Sprintf(`
<section class="widget table-box">
    <h3>Column Profile</h3>
    <table>
        <thead><tr><th>Column</th><th>Type</th><th>Non-empty</th><th>Distinct</th><th>Statistics</th></tr></thead>
        <tbody>%s</tbody>
    </table>
</section>`, rows.String())
}

func (b *HTMLBuilder) renderEncoding() string {
	if !b.config.Interactive {
		return ""
	}
	return fmt.Sprintf(`
<section class="widget chart-box">
    <h3>Encoding</h3>
    <img class="encoding" src="/encoding.svg?kind=%s&amp;seed=%d" alt="Field to channel encoding">
</section>`, b.view.Chart.Type, b.view.Dataset.Seed)
}

func (b *HTMLBuilder) renderScripts() string {
	if !b.has(WidgetChart) {
		return ""
	}

	dataJSON, _ := json.Marshal(PageData{
		Kind:   b.view.Chart.Type,
		Option: EChartsOption(b.view.Chart),
	})

	return fmt.Sprintf(`
<script>
const data = %s;
const charts = [];
%s
window.addEventListener('resize', () => charts.forEach(c => c.resize()));
</script>`, string(dataJSON), mainChartScript)
}

const mainChartScript = `
(function() {
    const el = document.getElementById('main-chart');
    if (!el) return;
    const chart = echarts.init(el);
    charts.push(chart);
    chart.setOption(data.option);
})();
`

func writeFileBytes(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Theme CSS
const darkThemeCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: #2d345b;
    min-height: 100vh;
    color: #ffffff;
}
.layout { display: flex; min-height: 100vh; }
.sidebar { width: 300px; flex-shrink: 0; background: #1c2042; padding: 25px 20px; }
.sidebar h2 { color: #4ECDC4; font-size: 1.2rem; margin: 10px 0 15px; }
.sidebar label { display: block; margin-bottom: 8px; color: #ddd; }
.sidebar select, .sidebar input[type=file] { width: 100%; padding: 8px; margin-bottom: 20px; background: #2d345b; color: #fff; border: 1px solid #4ECDC4; border-radius: 6px; }
.container { flex: 1; max-width: 1400px; margin: 0 auto; padding: 20px; }
header { padding: 20px 0; border-bottom: 1px solid rgba(255,255,255,0.1); margin-bottom: 30px; }
header h1 { font-size: 2rem; font-weight: 900; color: #fff; margin-bottom: 6px; }
header p { color: #ccc; font-size: 1rem; }
h3 { color: #4ECDC4; margin-bottom: 15px; font-size: 1.3rem; }
.widget { margin-bottom: 25px; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 50px; }
.stat-card { background: #1c2042; border-radius: 10px; padding: 20px; text-align: center; box-shadow: 0 4px 8px rgba(0,0,0,0.1); }
.stat-card .label { font-size: 18px; color: #fff; }
.stat-card .number { font-size: 32px; font-weight: bold; color: #fff; margin-top: 8px; }
.chart-box { background: #1c2042; border-radius: 12px; padding: 20px; }
.chart { width: 100%; height: 450px; }
.encoding { display: block; margin: 0 auto; max-width: 100%; background: #fff; border-radius: 8px; }
.table-box { background: #1c2042; border-radius: 12px; padding: 20px; overflow-x: auto; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 10px 14px; text-align: left; border-bottom: 1px solid rgba(255,255,255,0.1); }
th { background: rgba(255,255,255,0.05); font-weight: 600; }
tr:hover { background: rgba(255,255,255,0.03); }
.badge { display: inline-block; padding: 3px 10px; border-radius: 20px; font-size: 0.85rem; }
.badge-numeric { background: #4ECDC422; color: #4ECDC4; }
.badge-categorical { background: #FFB34722; color: #FFB347; }
.badge-empty { background: #88888822; color: #aaa; }
.notice { padding: 12px; border-radius: 6px; margin-top: 10px; font-size: 0.95rem; word-break: break-word; }
.notice.success { background: #1e5f3a; color: #d4f5e0; }
.notice.error { background: #6b1f2a; color: #ffd6db; }
.muted { color: #aaa; }
footer { text-align: center; padding: 30px 0; color: #fff; margin-top: 2rem; }
@media (max-width: 900px) { .layout { flex-direction: column; } .sidebar { width: 100%; } }
`

const lightThemeCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: linear-gradient(135deg, #f5f7fa 0%, #e4e8ec 100%);
    min-height: 100vh;
    color: #333;
}
.layout { display: flex; min-height: 100vh; }
.sidebar { width: 300px; flex-shrink: 0; background: #fff; padding: 25px 20px; border-right: 1px solid #e0e0e0; }
.sidebar h2 { color: #2a9d8f; font-size: 1.2rem; margin: 10px 0 15px; }
.sidebar label { display: block; margin-bottom: 8px; color: #555; }
.sidebar select, .sidebar input[type=file] { width: 100%; padding: 8px; margin-bottom: 20px; border: 1px solid #ccc; border-radius: 6px; }
.container { flex: 1; max-width: 1400px; margin: 0 auto; padding: 20px; }
header { padding: 20px 0; border-bottom: 1px solid #ddd; margin-bottom: 30px; }
header h1 { font-size: 2rem; font-weight: 900; color: #333; margin-bottom: 6px; }
header p { color: #666; font-size: 1rem; }
h3 { color: #2a9d8f; margin-bottom: 15px; font-size: 1.3rem; }
.widget { margin-bottom: 25px; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 50px; }
.stat-card { background: #fff; border-radius: 10px; padding: 20px; text-align: center; border: 1px solid #e0e0e0; box-shadow: 0 2px 8px rgba(0,0,0,0.05); }
.stat-card .label { font-size: 18px; color: #555; }
.stat-card .number { font-size: 32px; font-weight: bold; color: #333; margin-top: 8px; }
.chart-box { background: #2d345b; border-radius: 12px; padding: 20px; }
.chart-box h3 { color: #4ECDC4; }
.chart { width: 100%; height: 450px; }
.encoding { display: block; margin: 0 auto; max-width: 100%; background: #fff; border-radius: 8px; }
.table-box { background: #fff; border-radius: 12px; padding: 20px; border: 1px solid #e0e0e0; overflow-x: auto; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 10px 14px; text-align: left; border-bottom: 1px solid #eee; }
th { background: #f9f9f9; font-weight: 600; }
tr:hover { background: #f5f5f5; }
.badge { display: inline-block; padding: 3px 10px; border-radius: 20px; font-size: 0.85rem; }
.badge-numeric { background: #2a9d8f22; color: #2a9d8f; }
.badge-categorical { background: #e76f5122; color: #e76f51; }
.badge-empty { background: #88888822; color: #888; }
.notice { padding: 12px; border-radius: 6px; margin-top: 10px; font-size: 0.95rem; word-break: break-word; }
.notice.success { background: #d4f5e0; color: #1e5f3a; }
.notice.error { background: #ffd6db; color: #6b1f2a; }
.muted { color: #777; }
footer { text-align: center; padding: 30px 0; color: #999; border-top: 1px solid #ddd; margin-top: 2rem; }
@media (max-width: 900px) { .layout { flex-direction: column; } .sidebar { width: 100%; } }
`
