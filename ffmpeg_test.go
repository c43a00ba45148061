package ffsnaps

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

// newTestGenerator wires a Generator around a fake command runner so tests
// never need the ffmpeg binary
func newTestGenerator(t *testing.T, run commandRunner) *Generator {
	t.Helper()

	gen := &Generator{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		cmdArgs:     []string{"-loglevel", "error"},
		cfg:         &Config{},
		tempDir:     t.TempDir(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		run:         run,
	}

	pool, err := ants.NewPoolWithFunc(DefaultConcurrency, gen.handleSeriesJob)
	require.NoError(t, err)
	gen.pool = pool

	t.Cleanup(pool.Release)

	return gen
}

// frameWriter fakes ffmpeg: it records the args of every invocation and
// writes frame bytes to the output path (the last arg), failing on the
// invocations failOn reports true for (1-based)
type frameWriter struct {
	mu    sync.Mutex
	calls [][]string

	frame  []byte
	failOn func(call int) bool
}

func (w *frameWriter) run(params launchParams) (string, error) {
	w.mu.Lock()
	w.calls = append(w.calls, params.args)
	call := len(w.calls)
	w.mu.Unlock()

	if w.failOn != nil && w.failOn(call) {
		return "", os.ErrNotExist
	}

	outputPath := params.args[len(params.args)-1]

	frame := w.frame
	if frame == nil {
		frame = []byte("jpeg")
	}

	if err := os.WriteFile(outputPath, frame, 0644); err != nil {
		return "", err
	}

	return "", nil
}

func (w *frameWriter) argValues(flag string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var vals []string
	for _, args := range w.calls {
		for i, arg := range args {
			if arg == flag && i+1 < len(args) {
				vals = append(vals, args[i+1])
			}
		}
	}

	return vals
}

func TestNewGeneratorNilConfig(t *testing.T) {
	_, err := NewGenerator(nil)
	require.Error(t, err)
}
