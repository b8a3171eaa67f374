package main

import (
	"flag"
	"image"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/festie/shefest-tools/internal/api"
	"github.com/festie/shefest-tools/internal/candidates"
	"github.com/festie/shefest-tools/internal/config"
	"github.com/festie/shefest-tools/internal/export"
	"github.com/festie/shefest-tools/internal/render"
	"github.com/festie/shefest-tools/internal/session"
	"github.com/festie/shefest-tools/internal/submit"
)

func main() {
	cfgPath := flag.String("config", "", "path to TOML config (optional)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	// Datasets load best-effort at startup; a missing dataset disables
	// only the views that need it.
	store := candidates.Load(cfg.DataDir)
	if err := store.Err(); err != nil {
		logger.Warn("some datasets failed to load", "err", err)
	}

	fonts, err := render.LoadFonts(cfg.Font)
	if err != nil {
		logger.Fatal("loading fonts", "err", err)
	}

	var template image.Image
	if tpl, err := render.LoadTemplate(cfg.PosterTemplate); err != nil {
		logger.Warn("poster template unavailable", "path", cfg.PosterTemplate, "err", err)
	} else {
		template = tpl
	}

	sessions := session.NewStore(cfg.SessionTTL())
	defer sessions.Close()

	exporter := export.New(logger)
	submitter := submit.New(submit.Config{
		UploadURL:    cfg.Upload.URL,
		UploadPreset: cfg.Upload.Preset,
		CloudName:    cfg.Upload.CloudName,
		RelayURL:     cfg.Relay.URL,
		RelaySubject: cfg.Relay.Subject,
	}, logger)

	srv := api.NewServer(store, sessions, exporter, submitter, fonts, template, logger)

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	addr := cfg.Listen
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}
}
