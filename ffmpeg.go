package ffsnaps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

type (
	Generator struct {
		ffmpegPath  string
		ffprobePath string
		cmdArgs     []string

		cfg *Config

		tempDir string

		logger *slog.Logger

		run commandRunner

		pool *ants.PoolWithFunc

		wg sync.WaitGroup

		lastReqId atomic.Uint64
	}

	// SingleRequest asks for exactly one frame at TimestampMs
	SingleRequest struct {
		// MediaURL path to media file (can be either a network path or a local fs path)
		MediaURL string

		// TimestampMs position to seek to, in milliseconds
		TimestampMs int64

		// Quality is an abstract quality percent (1-100, higher is better),
		// default: DefaultQuality
		Quality int

		// OutputPath sets snapshot destination, default: unique file in temp dir
		// which is removed after its content has been read
		OutputPath string

		// Scale configure scaling behavior
		Scale *ScaleConfig

		// Context is used to cancel command
		Context context.Context

		// LogArgs is an additional log args that will be appended to logs
		LogArgs []slog.Attr
	}

	// SeriesRequest asks for Count evenly spaced frames across DurationMs
	SeriesRequest struct {
		// id internal request id used for async processing
		id uint64

		// MediaURL path to media file (can be either a network path or a local fs path)
		MediaURL string

		// DurationMs total media duration, in milliseconds
		DurationMs int64

		// Count is total amount of snapshots to produce
		Count int

		// Quality is an abstract quality percent (1-100, higher is better),
		// default: DefaultQuality
		Quality int

		// Scale configure scaling behavior
		Scale *ScaleConfig

		// Context is used to cancel command
		Context context.Context

		// DoneChan channel to receive request processing result
		DoneChan chan *SeriesResult

		// LogArgs is an additional log args that will be appended to logs
		LogArgs []slog.Attr
	}

	// Thumb is a single snapshot outcome. Data is nil when extraction failed,
	// Err keeps the reason so callers can tell a missing tool from a missing frame.
	Thumb struct {
		// TimestampMs position the frame was taken at, in milliseconds
		TimestampMs int64

		// Data is an in-memory image content, nil on failure
		Data []byte

		// Err is a failure reason, nil on success
		Err error
	}

	// SeriesUpdate is a growing snapshot of series progress: Thumbs holds
	// every produced result so far in order, Done marks the final update.
	SeriesUpdate struct {
		Thumbs []*Thumb

		// Done is set on exactly one update, when Thumbs reached the requested count
		Done bool
	}

	SeriesResult struct {
		// Req is a processed request
		Req *SeriesRequest
		// Thumbs is a final ordered result list, may be shorter than requested
		// when the series stopped early
		Thumbs []*Thumb
		// Duration measures how much time was spent to process Req
		Duration time.Duration
	}

	seriesJob struct {
		req     *SeriesRequest
		updates chan SeriesUpdate
	}
)

// Ok reports whether the snapshot carries image data
func (t *Thumb) Ok() bool {
	return t != nil && len(t.Data) > 0
}

// GetId returns request id for better async processing, i.e. user could identify what request was processed
func (r *SeriesRequest) GetId() uint64 {
	return r.id
}

// NewGenerator constructs new Generator based on provided config
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("nil cfg passed")
	}

	ffmpegPath, err := getVerifiedFfmpegPath(cfg.FfmpegPath)
	if err != nil {
		return nil, err
	}

	ffprobePath, err := getVerifiedFfprobePath(cfg.FfprobePath)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	tempDir := cfg.TempDir
	if len(tempDir) == 0 {
		tempDir = os.TempDir()
	}

	cmdArgs := []string{"-loglevel", "error"}

	if len(cfg.Headers) > 0 {
		headersStr := BuildHeadersStr(cfg.Headers)
		cmdArgs = append(cmdArgs, "-headers", headersStr)
	}

	gen := &Generator{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		cmdArgs:     cmdArgs,
		cfg:         cfg,
		tempDir:     tempDir,
		logger:      logger,
		run:         launchCommand,
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pool, err := ants.NewPoolWithFunc(concurrency, gen.handleSeriesJob)
	if err != nil {
		return nil, fmt.Errorf("cannot create worker pool: %w", err)
	}

	gen.pool = pool

	return gen, nil
}

// GetConcurrency returns current concurrency setting
func (g *Generator) GetConcurrency() int {
	return g.pool.Cap()
}

// SetConcurrency sets current concurrency number, new concurrency should be a positive int,
// otherwise value DefaultConcurrency will be used
func (g *Generator) SetConcurrency(newConcurrency int) {
	if newConcurrency < 0 {
		newConcurrency = DefaultConcurrency
	}

	g.pool.Tune(newConcurrency)
}

// Wait waits until all requests processed
func (g *Generator) Wait() {
	g.wg.Wait()
}

func (g *Generator) handleSeriesJob(jobRaw any) {
	job := jobRaw.(*seriesJob)

	g.runSeries(job.req, job.updates)
}

// GenerateSeriesAsync schedules a series on the underlying goroutine pool and
// returns its update stream right away. Concurrency is limited by Config.Concurrency:
// when all goroutines in pool are busy this method would block until a free goroutine is available.
// Frames inside the series are still produced strictly one after another.
//
// Each request passed to this method will get unique identifier, you can get it by calling SeriesRequest.GetId().
func (g *Generator) GenerateSeriesAsync(req *SeriesRequest) (<-chan SeriesUpdate, error) {
	if err := validateSeriesRequest(req); err != nil {
		return nil, err
	}

	req.id = g.lastReqId.Add(1)

	updates := make(chan SeriesUpdate)

	if err := g.pool.Invoke(&seriesJob{req: req, updates: updates}); err != nil {
		return nil, err
	}

	return updates, nil
}

// GenerateSeries runs a series on a dedicated goroutine, bypassing the pool,
// and returns its update stream. The stream is unbuffered: the next frame is
// not extracted until the consumer has taken the previous update. The channel
// is closed when the series ends, if you want pool-limited processing see
// GenerateSeriesAsync.
func (g *Generator) GenerateSeries(req *SeriesRequest) (<-chan SeriesUpdate, error) {
	if err := validateSeriesRequest(req); err != nil {
		return nil, err
	}

	updates := make(chan SeriesUpdate)

	go g.runSeries(req, updates)

	return updates, nil
}
