package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/dashboard"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/junkd0g/dataexplorer/internal/diagram"
	"github.com/junkd0g/dataexplorer/internal/explorer"
	"github.com/junkd0g/dataexplorer/internal/export"
	"github.com/junkd0g/dataexplorer/internal/logger"
	"github.com/junkd0g/dataexplorer/internal/render"
	"github.com/junkd0g/dataexplorer/internal/web"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("explorer", "Interactive data explorer: generate a sample dataset, chart it and inspect uploaded CSV files.")
	configPath = app.Flag("config", "Path to the YAML config file.").Envar("EXPLORER_CONFIG").String()
	logLevel   = app.Flag("log-level", "Log level (debug, info, warn, error). Overrides the config file.").Envar("EXPLORER_LOG_LEVEL").String()

	serveCmd  = app.Command("serve", "Serve the dashboard over HTTP.")
	serveAddr = serveCmd.Flag("addr", "Listen address. Overrides the config file.").Envar("EXPLORER_ADDR").String()

	renderCmd    = app.Command("render", "Render the dashboard, chart image or encoding diagram to a file.")
	renderKind   = renderCmd.Flag("kind", "Chart kind: bar, pie or scatter. Defaults to the configured kind.").Short('k').String()
	renderSeed   = renderCmd.Flag("seed", "Dataset seed. Defaults to the configured seed.").String()
	renderCSV    = renderCmd.Flag("csv", "CSV file to show in the uploaded data panel.").ExistingFile()
	renderOutput = renderCmd.Flag("output", "Output file: .html for the dashboard, .png or .svg for the chart.").Short('o').Default("dashboard.html").String()
	renderEncode = renderCmd.Flag("encoding", "Render the encoding diagram instead of the chart (.png or .svg output).").Bool()

	summaryCmd  = app.Command("summary", "Print the dataset and its summary metrics.")
	summarySeed = summaryCmd.Flag("seed", "Dataset seed. Defaults to the configured seed.").String()

	exportCmd    = app.Command("export", "Export the dataset to an XLSX workbook.")
	exportSeed   = exportCmd.Flag("seed", "Dataset seed. Defaults to the configured seed.").String()
	exportOutput = exportCmd.Flag("output", "Output workbook path.").Short('o').Default("dataset.xlsx").String()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.InitWithOutput("info", os.Stderr)
		logrus.WithError(err).Fatal("failed to load config")
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if *serveAddr != "" {
		cfg.Server.Address = *serveAddr
	}

	switch cmd {
	case serveCmd.FullCommand():
		logger.Init(cfg.Logger.Level)
		err = serve(cfg)
	case renderCmd.FullCommand():
		logger.InitWithOutput(cfg.Logger.Level, os.Stderr)
		err = renderFile(cfg)
	case summaryCmd.FullCommand():
		logger.InitWithOutput(cfg.Logger.Level, os.Stderr)
		err = printSummary(cfg, os.Stdout)
	case exportCmd.FullCommand():
		logger.InitWithOutput(cfg.Logger.Level, os.Stderr)
		err = exportFile(cfg)
	}

	if err != nil {
		logrus.WithError(err).WithField("command", cmd).Fatal("command failed")
	}
}

func serve(cfg *config.AppConfig) error {
	timeout, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
	if err != nil {
		return errors.Wrapf(err, "invalid shutdown timeout '%s'", cfg.Server.ShutdownTimeout)
	}

	gin.SetMode(web.GinMode(cfg.App.Environment))

	h := web.NewHandler(explorer.FromConfig(cfg), dashboard.FromConfig(cfg.Dashboard), cfg.Upload.MaxBytes)
	srv := web.NewServer(web.SetupRouter(h),
		web.WithAddress(cfg.Server.Address),
		web.WithShutdownTimeout(timeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func renderFile(cfg *config.AppConfig) error {
	seed, err := parseSeed(*renderSeed)
	if err != nil {
		return err
	}

	req := explorer.Request{Kind: *renderKind, Strict: true, Seed: seed}
	if *renderCSV != "" {
		data, err := os.ReadFile(*renderCSV)
		if err != nil {
			return errors.Wrapf(err, "cannot read '%s'", *renderCSV)
		}
		req.Upload = data
		req.UploadName = filepath.Base(*renderCSV)
	}

	view, err := explorer.FromConfig(cfg).Render(context.Background(), req)
	if err != nil {
		return err
	}
	if view.UploadError != "" {
		logrus.WithField("file", *renderCSV).Warn(view.UploadError)
	}

	out := *renderOutput
	switch {
	case *renderEncode:
		err = diagram.Generate(context.Background(), view.Chart, out)
	case strings.EqualFold(filepath.Ext(out), ".html"):
		err = dashboard.GenerateHTML(view, out, dashboard.FromConfig(cfg.Dashboard))
	default:
		err = render.WriteFile(view.Chart, out, render.Options{})
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s written to %s\n", view.Chart.Title, out)
	return nil
}

func printSummary(cfg *config.AppConfig, w io.Writer) error {
	seed, err := parseSeed(*summarySeed)
	if err != nil {
		return err
	}
	ds := explorer.FromConfig(cfg).Dataset(seed)
	s := dataset.Summarize(ds)

	records := tablewriter.NewWriter(w)
	records.SetHeader([]string{"Category", "Value", "Performance"})
	for _, r := range ds.Records {
		records.Append([]string{r.Category, strconv.Itoa(r.Value), strconv.FormatFloat(r.Performance, 'f', 4, 64)})
	}
	records.Render()

	fmt.Fprintln(w)

	metrics := tablewriter.NewWriter(w)
	metrics.SetHeader([]string{"Metric", "Value"})
	metrics.Append([]string{"Seed", strconv.FormatInt(ds.Seed, 10)})
	metrics.Append([]string{"Total Value", s.TotalValueDisplay()})
	metrics.Append([]string{"Average Performance", s.AvgPerformanceDisplay()})
	metrics.Render()

	return nil
}

func exportFile(cfg *config.AppConfig) error {
	seed, err := parseSeed(*exportSeed)
	if err != nil {
		return err
	}
	ds := explorer.FromConfig(cfg).Dataset(seed)
	if err := export.WriteFile(ds, *exportOutput); err != nil {
		return err
	}
	fmt.Printf("%d records written to %s\n", ds.Len(), *exportOutput)
	return nil
}

func parseSeed(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid seed '%s'", raw)
	}
	return &seed, nil
}

