package ffsnaps

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ProbeDuration asks ffprobe for the media duration and returns it in
// milliseconds. Useful when the caller wants a series but only knows the
// media url.
func (g *Generator) ProbeDuration(ctx context.Context, mediaURL string, logArgs ...slog.Attr) (int64, error) {
	stdout, err := g.run(launchParams{
		ctx:  ctx,
		path: g.ffprobePath,
		args: []string{
			"-v", "error",
			"-show_entries",
			"format=duration",
			"-of",
			"default=noprint_wrappers=1:nokey=1",
			mediaURL,
		},
		needStdout: true,
		logger:     g.logger,
		LogArgs:    logArgs,
	})

	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(stdout), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration: %w", err)
	}

	return int64(duration * 1000), nil
}
