package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/rag-bench/internal/chatapi"
	"github.com/DjordjeVuckovic/rag-bench/internal/server"
	pkgserver "github.com/DjordjeVuckovic/rag-bench/pkg/server"
)

// chatstub serves a minimal QA endpoint on POST /chat so evaluation
// suites can run against a live target without a real model behind it.
func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	s := server.New(cfg, pkgserver.NewOkHealthChecker())

	chatapi.NewHandler().Bind(s.Echo)

	slog.Info("Starting chat stub", "port", cfg.Port)
	if err := s.Start(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
