package ffsnaps

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// GenerateSingle extracts exactly one frame at SingleRequest.TimestampMs.
// The extraction is best-effort: nothing here returns an error, a failed
// request yields a Thumb with nil Data and the reason in Thumb.Err, so a
// failing frame never aborts a batch built on top of this call.
//
// When no OutputPath is supplied the frame goes through a unique file in the
// temp dir which is removed before this method returns. A supplied OutputPath
// persists after the call.
func (g *Generator) GenerateSingle(req *SingleRequest) *Thumb {
	thumb := &Thumb{TimestampMs: req.TimestampMs}

	if err := validateSingleRequest(req); err != nil {
		thumb.Err = err
		return thumb
	}

	quality := req.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	outputPath := req.OutputPath
	ownOutput := len(outputPath) == 0
	if ownOutput {
		outputPath = g.tempSnapshotPath()
	}

	timecode := FormatTimecode(req.TimestampMs)

	slogArgs := req.LogArgs
	slogArgs = append(slogArgs,
		slog.String("media", req.MediaURL),
		slog.String("time", timecode),
		slog.String("dst", outputPath),
	)

	g.logger.LogAttrs(logCtx, slog.LevelDebug, "Generating snapshot", slogArgs...)

	// Stale file at the destination would mask a failed run
	if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
		thumb.Err = fmt.Errorf("cannot remove stale snapshot file: %w", err)
		return thumb
	}

	// Copy base args, concurrent series must not share the backing array
	cmdArgs := append(make([]string, 0, len(g.cmdArgs)+12), g.cmdArgs...)
	cmdArgs = append(cmdArgs, "-ss", timecode)
	cmdArgs = append(cmdArgs, "-i", req.MediaURL)

	if req.Scale != nil {
		cmdArgs = append(cmdArgs, "-vf", buildScaleArg(req.Scale))
	}

	cmdArgs = append(cmdArgs, "-vframes", "1")
	cmdArgs = append(cmdArgs, "-q:v", strconv.Itoa(MapQuality(quality)))
	cmdArgs = append(cmdArgs, outputPath)

	if _, err := g.run(launchParams{
		ctx:     req.Context,
		path:    g.ffmpegPath,
		args:    cmdArgs,
		logger:  g.logger,
		LogArgs: req.LogArgs,
	}); err != nil {
		thumb.Err = err
		return thumb
	}

	if _, err := os.Stat(outputPath); err != nil {
		thumb.Err = fmt.Errorf("snapshot file was not produced: %w", err)
		return thumb
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		thumb.Err = fmt.Errorf("cannot read snapshot file: %w", err)
		return thumb
	}

	if ownOutput {
		if err := os.Remove(outputPath); err != nil {
			args := slogArgs
			args = append(args, slog.String("err", err.Error()))
			g.logger.LogAttrs(logCtx, slog.LevelWarn, "Cannot remove temp snapshot file", args...)
		}
	}

	if len(data) == 0 {
		thumb.Err = fmt.Errorf("snapshot file is empty: %s", outputPath)
		return thumb
	}

	thumb.Data = data

	return thumb
}

// tempSnapshotPath builds a per-call unique path, nanosecond timestamp plus
// a short uuid to survive rapid successive calls within one tick
func (g *Generator) tempSnapshotPath() string {
	name := tempFilePrefix + strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + shortuuid.New() + ".jpg"

	return filepath.Join(g.tempDir, name)
}
