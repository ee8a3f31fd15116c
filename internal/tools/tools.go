package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/junkd0g/dataexplorer/internal/analyzer"
	"github.com/junkd0g/dataexplorer/internal/dashboard"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/junkd0g/dataexplorer/internal/diagram"
	"github.com/junkd0g/dataexplorer/internal/explorer"
	"github.com/junkd0g/dataexplorer/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Toolset holds what the tool handlers share.
type Toolset struct {
	service *explorer.Service
	page    dashboard.HTMLConfig
}

// NewToolset creates the tool handlers for svc. Dashboards are written with
// page.
func NewToolset(svc *explorer.Service, page dashboard.HTMLConfig) *Toolset {
	page.Interactive = false
	return &Toolset{service: svc, page: page}
}

// Register registers all tools with the MCP server.
func Register(s *server.MCPServer, svc *explorer.Service, page dashboard.HTMLConfig) {
	ts := NewToolset(svc, page)
	ts.registerChartSpecTool(s)
	ts.registerSummaryTool(s)
	ts.registerParseCSVTool(s)
	ts.registerDashboardTool(s)
	ts.registerChartImageTool(s)
	ts.registerEncodingDiagramTool(s)
}

func kindOption() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Description("Chart kind: bar, pie or scatter (or the labels \"Bar Chart\", \"Pie Chart\", \"Scatter Plot\"). Defaults to bar"),
	)
}

func seedOption() mcp.ToolOption {
	return mcp.WithNumber("seed",
		mcp.Description("Seed for the generated dataset. Defaults to the configured seed"),
	)
}

func (ts *Toolset) registerChartSpecTool(s *server.MCPServer) {
	tool := mcp.NewTool("build_chart_spec",
		mcp.WithDescription("Builds the chart specification for the generated dataset: field bindings, color scale, theme and rows. Returns JSON."),
		kindOption(),
		seedOption(),
	)
	s.AddTool(tool, ts.chartSpecHandler)
}

func (ts *Toolset) registerSummaryTool(s *server.MCPServer) {
	tool := mcp.NewTool("summarize_dataset",
		mcp.WithDescription("Generates the sample dataset and returns its records with the Total Value and Average Performance metrics."),
		seedOption(),
	)
	s.AddTool(tool, ts.summaryHandler)
}

func (ts *Toolset) registerParseCSVTool(s *server.MCPServer) {
	tool := mcp.NewTool("parse_csv",
		mcp.WithDescription("Parses CSV text with a header row and returns the row and column counts and a per-column type profile."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The CSV text, header row first"),
		),
	)
	s.AddTool(tool, ts.parseCSVHandler)
}

func (ts *Toolset) registerDashboardTool(s *server.MCPServer) {
	tool := mcp.NewTool("render_dashboard",
		mcp.WithDescription("Renders the explorer dashboard (chart, metrics and optional uploaded CSV) to a standalone HTML file."),
		kindOption(),
		seedOption(),
		mcp.WithString("csv_content",
			mcp.Description("Optional CSV text shown in the uploaded data panel"),
		),
		mcp.WithString("output_path",
			mcp.Description("The output path for the HTML file. Defaults to ./dashboard.html"),
		),
	)
	s.AddTool(tool, ts.dashboardHandler)
}

func (ts *Toolset) registerChartImageTool(s *server.MCPServer) {
	tool := mcp.NewTool("render_chart_image",
		mcp.WithDescription("Renders the chart as a static image. Supports PNG and SVG output formats."),
		kindOption(),
		seedOption(),
		mcp.WithString("output_path",
			mcp.Description("The output path for the image. Supports .png and .svg extensions. Defaults to ./chart.png"),
		),
	)
	s.AddTool(tool, ts.chartImageHandler)
}

func (ts *Toolset) registerEncodingDiagramTool(s *server.MCPServer) {
	tool := mcp.NewTool("generate_encoding_diagram",
		mcp.WithDescription("Generates a diagram showing which dataset fields feed which chart channels. Supports PNG and SVG output formats."),
		kindOption(),
		mcp.WithString("output_path",
			mcp.Description("The output path for the diagram. Supports .png and .svg extensions. Defaults to ./encoding.png"),
		),
	)
	s.AddTool(tool, ts.encodingDiagramHandler)
}

func (ts *Toolset) chartSpecHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, errResult := ts.strictView(ctx, request, nil)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(view.Chart)
}

func (ts *Toolset) summaryHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed, errResult := seedArg(request)
	if errResult != nil {
		return errResult, nil
	}
	ds := ts.service.Dataset(seed)
	s := dataset.Summarize(ds)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Dataset (seed %d)\n\n", ds.Seed))
	sb.WriteString("Category  Value  Performance\n")
	for _, r := range ds.Records {
		sb.WriteString(fmt.Sprintf("%-8s  %5d  %.4f\n", r.Category, r.Value, r.Performance))
	}
	sb.WriteString(fmt.Sprintf("\nTotal Value: %s\n", s.TotalValueDisplay()))
	sb.WriteString(fmt.Sprintf("Average Performance: %s\n", s.AvgPerformanceDisplay()))

	return mcp.NewToolResultText(sb.String()), nil
}

func (ts *Toolset) parseCSVHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, ok := request.Params.Arguments["content"].(string)
	if !ok {
		return newToolResultError("content is required"), nil
	}

	uv, err := ts.service.ParseUpload([]byte(content))
	if err != nil {
		return newToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]interface{}{
		"rows":    uv.Table.RowCount(),
		"columns": uv.Table.ColCount(),
		"profile": uv.Profile,
	})
}

func (ts *Toolset) dashboardHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var csv []byte
	if c, ok := request.Params.Arguments["csv_content"].(string); ok && c != "" {
		csv = []byte(c)
	}

	view, errResult := ts.strictView(ctx, request, csv)
	if errResult != nil {
		return errResult, nil
	}

	outputPath := outputPathArg(request, "dashboard.html")
	if err := dashboard.GenerateHTML(view, outputPath, ts.page); err != nil {
		return newToolResultError(fmt.Sprintf("failed to generate dashboard: %v", err)), nil
	}

	return mcp.NewToolResultText(buildSummary(view, outputPath)), nil
}

func (ts *Toolset) chartImageHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, errResult := ts.strictView(ctx, request, nil)
	if errResult != nil {
		return errResult, nil
	}

	outputPath := outputPathArg(request, "chart.png")
	if err := render.WriteFile(view.Chart, outputPath, render.Options{}); err != nil {
		return newToolResultError(fmt.Sprintf("failed to render chart: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Chart rendered successfully!\n\nOutput: %s\nChart: %s\n", outputPath, view.Chart.Title)), nil
}

func (ts *Toolset) encodingDiagramHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, errResult := ts.strictView(ctx, request, nil)
	if errResult != nil {
		return errResult, nil
	}

	outputPath := outputPathArg(request, "encoding.png")
	if err := diagram.Generate(ctx, view.Chart, outputPath); err != nil {
		return newToolResultError(fmt.Sprintf("failed to generate diagram: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Encoding diagram generated successfully!\n\nOutput: %s\n\nBindings:\n", outputPath))
	for _, c := range view.Chart.Channels() {
		sb.WriteString(fmt.Sprintf("  - %s -> %s\n", c.Field, c.Name))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// strictView renders the view for the request's kind and seed, rejecting
// unknown kinds.
func (ts *Toolset) strictView(ctx context.Context, request mcp.CallToolRequest, csv []byte) (*explorer.View, *mcp.CallToolResult) {
	seed, errResult := seedArg(request)
	if errResult != nil {
		return nil, errResult
	}
	kind, _ := request.Params.Arguments["kind"].(string)

	view, err := ts.service.Render(ctx, explorer.Request{
		Kind:   kind,
		Strict: true,
		Seed:   seed,
		Upload: csv,
	})
	if err != nil {
		return nil, newToolResultError(err.Error())
	}
	return view, nil
}

func seedArg(request mcp.CallToolRequest) (*int64, *mcp.CallToolResult) {
	raw, ok := request.Params.Arguments["seed"]
	if !ok || raw == nil {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok || n != float64(int64(n)) {
		return nil, newToolResultError("seed must be an integer")
	}
	seed := int64(n)
	return &seed, nil
}

func outputPathArg(request mcp.CallToolRequest, defaultName string) string {
	if op, ok := request.Params.Arguments["output_path"].(string); ok && op != "" {
		return op
	}
	return filepath.Join(".", defaultName)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}
}

func buildSummary(view *explorer.View, outputPath string) string {
	summary := fmt.Sprintf("Dashboard generated successfully!\n\nOutput: %s\n\nChart: %s\n", outputPath, view.Chart.Title)
	summary += fmt.Sprintf("  - Total Value: %s\n", view.Summary.TotalValueDisplay())
	summary += fmt.Sprintf("  - Average Performance: %s\n", view.Summary.AvgPerformanceDisplay())

	switch {
	case view.UploadError != "":
		summary += fmt.Sprintf("\nUpload: %s\n", view.UploadError)
	case view.Upload != nil:
		summary += fmt.Sprintf("\nUploaded data: %d rows, %d columns\n", view.Upload.Table.RowCount(), view.Upload.Table.ColCount())
		counts := view.Upload.Profile.CountByType()
		for _, t := range []analyzer.ColumnType{analyzer.ColumnNumeric, analyzer.ColumnCategorical, analyzer.ColumnEmpty} {
			if n := counts[t]; n > 0 {
				summary += fmt.Sprintf("  - %s columns: %d\n", t, n)
			}
		}
	}

	return summary
}
