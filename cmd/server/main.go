package main

import (
	"os"

	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/dashboard"
	"github.com/junkd0g/dataexplorer/internal/explorer"
	"github.com/junkd0g/dataexplorer/internal/logger"
	"github.com/junkd0g/dataexplorer/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load(os.Getenv("EXPLORER_CONFIG"))
	if err != nil {
		logger.InitWithOutput("info", os.Stderr)
		logrus.WithError(err).Fatal("failed to load config")
	}
	logger.InitWithOutput(cfg.Logger.Level, os.Stderr)

	s := server.NewMCPServer(
		cfg.App.Name,
		cfg.App.Version,
	)

	tools.Register(s, explorer.FromConfig(cfg), dashboard.FromConfig(cfg.Dashboard))

	if err := server.ServeStdio(s); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
}
