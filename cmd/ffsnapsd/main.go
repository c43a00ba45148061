// ffsnapsd exposes the snapshot generator over HTTP: one-shot frames as
// image/jpeg and series progress as an NDJSON stream.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"gopkg.in/yaml.v3"

	"github.com/avolkov/ffsnaps"
)

type serverConfig struct {
	Bind        string `yaml:"bind"`
	Ffmpeg      string `yaml:"ffmpeg"`
	Ffprobe     string `yaml:"ffprobe"`
	TempDir     string `yaml:"temp_dir"`
	Concurrency int    `yaml:"concurrency"`
}

func defaultConfig() *serverConfig {
	return &serverConfig{Bind: ":8090"}
}

func loadConfig(path string) (*serverConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Bind == "" {
		cfg.Bind = ":8090"
	}

	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Bind address (overrides config)")
	verbose := flag.Bool("v", false, "Enable debug logs")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	if *bind != "" {
		cfg.Bind = *bind
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))

	gen, err := ffsnaps.NewGenerator(&ffsnaps.Config{
		FfmpegPath:  cfg.Ffmpeg,
		FfprobePath: cfg.Ffprobe,
		TempDir:     cfg.TempDir,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Generator init: %v", err)
	}

	h := newHandler(gen, logger)

	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())

	r.GET("/healthz", h.Health)
	r.POST("/v1/thumbnail", h.Thumbnail)
	r.GET("/v1/thumbnails/stream", h.ThumbnailStream)

	logger.Info("Listening", slog.String("bind", cfg.Bind))

	if err := r.Run(cfg.Bind); err != nil {
		log.Fatalf("Server: %v", err)
	}
}
