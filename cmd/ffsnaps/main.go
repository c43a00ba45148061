package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/yaml.v3"

	"github.com/avolkov/ffsnaps"
)

var (
	input       string
	configPath  string
	timestampMs int64
	durationMs  int64
	count       int
	quality     int
	width       int
	height      int
	behavior    ffsnaps.ScaleBehavior
	dst         string
	verbose     bool
)

// fileConfig is an optional YAML overlay for binary paths and the scratch dir
type fileConfig struct {
	Ffmpeg  string `yaml:"ffmpeg"`
	Ffprobe string `yaml:"ffprobe"`
	TempDir string `yaml:"temp_dir"`
}

func init() {
	flag.StringVar(&input, "i", "", "Set media path to generate snapshots")
	flag.StringVar(&configPath, "config", "", "Set path to optional YAML config file")

	flag.Int64Var(&timestampMs, "at", -1, "Extract a single frame at given millisecond offset instead of a series")
	flag.Int64Var(&durationMs, "duration", 0, "Set media duration in milliseconds, 0 - ask ffprobe")
	flag.IntVar(&count, "count", 5, "Set amount of snapshots in a series")
	flag.IntVar(&quality, "quality", ffsnaps.DefaultQuality, "Set snapshot quality percent (1-100, higher is better)")

	flag.IntVar(&width, "width", 0, "Set desired snapshots width, 0 - keep source resolution")
	flag.IntVar(&height, "height", 0, "Set desired snapshots height, 0 - keep source resolution")

	vals := fmt.Sprintf("None - %d, FillToKeepAspectRatio - %d, CropToFit - %d",
		ffsnaps.ScaleBehaviorNone,
		ffsnaps.ScaleBehaviorFillToKeepAspectRatio,
		ffsnaps.ScaleBehaviorCropToFit,
	)

	flag.IntVar((*int)(&behavior), "behavior", int(ffsnaps.ScaleBehaviorNone), "Set scale behavior:\n"+vals)

	flag.StringVar(&dst, "dst", "snaps/%02d.jpg", "Set output destination pattern")
	flag.BoolVar(&verbose, "v", false, "Enable debug logs")
}

func main() {
	flag.Parse()

	if len(input) == 0 {
		log.Fatalf("provide input file (-i)")
	}

	var fileCfg fileConfig
	if len(configPath) > 0 {
		data, err := os.ReadFile(configPath)
		if err != nil {
			log.Fatalf("cannot read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			log.Fatalf("cannot parse config file: %v", err)
		}
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))

	gen, err := ffsnaps.NewGenerator(&ffsnaps.Config{
		FfmpegPath:  fileCfg.Ffmpeg,
		FfprobePath: fileCfg.Ffprobe,
		TempDir:     fileCfg.TempDir,
		Logger:      logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	var scale *ffsnaps.ScaleConfig
	if width != 0 || height != 0 {
		scale = &ffsnaps.ScaleConfig{
			Width:    width,
			Height:   height,
			Behavior: behavior,
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		log.Fatalf("cannot create dest path: %v", err)
	}

	start := time.Now()

	if timestampMs >= 0 {
		runSingle(gen, scale)
	} else {
		runSeries(gen, scale)
	}

	log.Printf("Done in %s", time.Since(start))
}

func runSingle(gen *ffsnaps.Generator, scale *ffsnaps.ScaleConfig) {
	outputPath := dst
	if strings.Contains(dst, "%") {
		outputPath = fmt.Sprintf(dst, 1)
	}

	thumb := gen.GenerateSingle(&ffsnaps.SingleRequest{
		MediaURL:    input,
		TimestampMs: timestampMs,
		Quality:     quality,
		OutputPath:  outputPath,
		Scale:       scale,
	})

	if !thumb.Ok() {
		log.Fatalf("snapshot failed: %v", thumb.Err)
	}

	log.Printf("Wrote %d bytes to %s", len(thumb.Data), outputPath)
}

func runSeries(gen *ffsnaps.Generator, scale *ffsnaps.ScaleConfig) {
	ctx := context.Background()

	if durationMs <= 0 {
		probed, err := gen.ProbeDuration(ctx, input)
		if err != nil {
			log.Fatalf("cannot probe media duration: %v", err)
		}

		durationMs = probed
	}

	updates, err := gen.GenerateSeries(&ffsnaps.SeriesRequest{
		MediaURL:   input,
		DurationMs: durationMs,
		Count:      count,
		Quality:    quality,
		Scale:      scale,
		Context:    ctx,
	})
	if err != nil {
		log.Fatal(err)
	}

	var done bool

	for update := range updates {
		pos := len(update.Thumbs)
		thumb := update.Thumbs[pos-1]

		done = update.Done

		if !thumb.Ok() {
			log.Printf("Snapshot %d/%d failed: %v", pos, count, thumb.Err)
			continue
		}

		outputPath := fmt.Sprintf(dst, pos)
		if err := os.WriteFile(outputPath, thumb.Data, 0644); err != nil {
			log.Fatalf("cannot write snapshot %d: %v", pos, err)
		}

		log.Printf("Snapshot %d/%d -> %s", pos, count, outputPath)
	}

	if !done {
		log.Fatalf("series stopped before producing all %d snapshots", count)
	}
}
