package ffsnaps

import (
	"log/slog"
)

// ScaleBehavior configures how scaling will be performed
// See: https://superuser.com/questions/547296/resizing-videos-with-ffmpeg-avconv-to-fit-into-static-sized-player/1136305#1136305
type ScaleBehavior int

const (
	// ScaleBehaviorNone do not attempt to change scaling behavior
	ScaleBehaviorNone ScaleBehavior = iota
	// ScaleBehaviorFillToKeepAspectRatio is useful when you want to resize to fixed resolution
	// (width and height must be set to fixed size), but preserve original aspect ratio.
	// Letterboxing will occur instead of pillarboxing if the input aspect ratio
	// is wider than the output aspect ratio.
	ScaleBehaviorFillToKeepAspectRatio
	// ScaleBehaviorCropToFit is useful when you want to resize to fixed resolution
	// (width and height must be set to fixed size), but preserve fixed size by
	// cropping frame to fit into target resolution.
	ScaleBehaviorCropToFit
)

const (
	// DefaultConcurrency limits concurrently processed async series
	DefaultConcurrency = 2
	// DefaultQuality is an abstract quality percent used when a request leaves Quality at 0
	DefaultQuality = 80

	// tempFilePrefix prefixes auto-generated snapshot files in the temp dir
	tempFilePrefix = "ffsnaps-"
)

type (
	Config struct {
		// FfmpegPath path to ffmpeg binary, default: search binary in OS $PATH variable
		FfmpegPath string
		// FfprobePath path to ffprobe binary, default: search binary in OS $PATH variable
		FfprobePath string
		// TempDir is a writable scratch directory for auto-generated snapshot files,
		// default: os.TempDir()
		TempDir string
		// Concurrency limit amount of concurrently processed async series, default: 2
		Concurrency int
		// Headers configures which headers should pass ffmpeg if requested file is a network url
		Headers map[string]string
		// Logger set pre-configured logger if you have one, default: json logger to stdout with debug log level
		Logger *slog.Logger
	}

	// ScaleConfig is an output files resolution config
	ScaleConfig struct {
		// Width is an outgoing width resolution, could be -1 to resize by Height respecting aspect ratio
		Width int
		// Height is an outgoing height resolution, could be -1 to resize by Width respecting aspect ratio
		Height int
		// Behavior is configuring how scaling will be performed
		Behavior ScaleBehavior
	}
)

func (c *ScaleConfig) IsFixedResolution() bool {
	return c.Width > 0 && c.Height > 0
}
