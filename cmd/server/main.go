package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ahmednasr/issue-scout/internal/config"
	"github.com/ahmednasr/issue-scout/internal/github"
	"github.com/ahmednasr/issue-scout/internal/handler"
	"github.com/ahmednasr/issue-scout/internal/mcp"
	"github.com/ahmednasr/issue-scout/internal/middleware"
	"github.com/ahmednasr/issue-scout/internal/service"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

const shutdownTimeout = 10 * time.Second

// main is the single entry-point. By default it serves the REST API; with
// -mcp it speaks the Model Context Protocol over stdio instead.
func main() {
	mcpMode := flag.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	cfg := config.Load()

	logger := newLogger(cfg.Debug, *mcpMode)
	defer func() { _ = logger.Sync() }()

	if cfg.GitHubToken == "" {
		logger.Warn("no GitHub token configured; API rate limits will be severely restricted")
	}

	// The dictionary and curated repository table are built once here and
	// passed by reference; nothing mutates them afterwards.
	dict := skills.NewDictionary()
	builder := skills.NewBuilder(dict)
	gh := github.NewClient(cfg.GitHubToken)

	profileSvc := service.NewProfileService(gh, builder, cfg.SearchConcurrency, logger)
	matchSvc := service.NewMatchService(gh, profileSvc, dict, cfg.SearchConcurrency, logger)

	if *mcpMode {
		if err := mcp.Serve(matchSvc, profileSvc); err != nil {
			logger.Fatal("MCP server failed", zap.Error(err))
		}
		return
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(middleware.Logging(logger))

	handler.RegisterRoutes(app, matchSvc, profileSvc)
	handler.NewHealthHandler(cfg.GitHubToken != "").Register(app)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Block until a shutdown signal arrives, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutdown signal received")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown completed with error", zap.Error(err))
	} else {
		logger.Info("graceful shutdown completed")
	}
}

// newLogger builds the process logger. In MCP mode logs must stay off stdout,
// which carries the protocol; zap's production config writes to stderr anyway,
// so only the level/encoding differ between modes.
func newLogger(debug, mcpMode bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug && !mcpMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
