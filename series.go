package ffsnaps

import (
	"log/slog"
	"time"
)

// runSeries produces SeriesRequest.Count snapshots one after another and
// pushes a growing snapshot list to updates after every frame. The channel is
// unbuffered, so a consumer that has not taken the previous update holds the
// next extraction back.
//
// Failure handling follows two distinct rules:
//   - a single failed frame is substituted with the last good frame of this
//     series (or stays empty when nothing succeeded yet) and the loop goes on;
//   - anything that breaks the loop itself (cancelled context, panic) only
//     logs and closes the stream early, updates emitted so far stay valid and
//     no Done marker is sent.
func (g *Generator) runSeries(req *SeriesRequest, updates chan<- SeriesUpdate) {
	g.wg.Add(1)
	defer g.wg.Done()

	defer close(updates)

	slogArgs := req.LogArgs
	if req.id > 0 {
		slogArgs = append(slogArgs, slog.Uint64("req", req.id))
	}

	defer func() {
		if r := recover(); r != nil {
			args := slogArgs
			args = append(args, slog.Any("panic", r))
			g.logger.LogAttrs(logCtx, slog.LevelError, "Series stopped early", args...)
		}
	}()

	{
		args := slogArgs
		args = append(args,
			slog.String("media", req.MediaURL),
			slog.Int64("durationMs", req.DurationMs),
			slog.Int("count", req.Count),
		)
		g.logger.LogAttrs(logCtx, slog.LevelInfo, "Series started", args...)
	}

	start := time.Now()

	// First snapshot lands one interval in, never at 0, to skip the
	// usually black opening frame
	stepMs := req.DurationMs / int64(req.Count)

	thumbs := make([]*Thumb, 0, req.Count)

	var lastGood *Thumb

	for k := 1; k <= req.Count; k++ {
		if req.Context != nil && req.Context.Err() != nil {
			args := slogArgs
			args = append(args, slog.String("err", req.Context.Err().Error()))
			g.logger.LogAttrs(logCtx, slog.LevelError, "Series stopped early", args...)

			return
		}

		thumb := g.GenerateSingle(&SingleRequest{
			MediaURL:    req.MediaURL,
			TimestampMs: int64(k) * stepMs,
			Quality:     req.Quality,
			Scale:       req.Scale,
			Context:     req.Context,
			LogArgs:     slogArgs,
		})

		if !thumb.Ok() && lastGood != nil {
			{
				args := slogArgs
				args = append(args,
					slog.Int("pos", k),
					slog.Int64("fromMs", lastGood.TimestampMs),
					slog.String("err", thumb.Err.Error()),
				)
				g.logger.LogAttrs(logCtx, slog.LevelWarn, "Snapshot failed, repeating last good frame", args...)
			}

			// Keep the failure reason next to the substituted image
			thumb = &Thumb{
				TimestampMs: thumb.TimestampMs,
				Data:        lastGood.Data,
				Err:         thumb.Err,
			}
		} else if thumb.Ok() {
			lastGood = thumb
		}

		thumbs = append(thumbs, thumb)

		update := SeriesUpdate{
			Thumbs: append(make([]*Thumb, 0, len(thumbs)), thumbs...),
			Done:   len(thumbs) == req.Count,
		}

		if !g.emitUpdate(req, updates, update) {
			args := slogArgs
			args = append(args, slog.Int("pos", k))
			g.logger.LogAttrs(logCtx, slog.LevelError, "Series stopped early", args...)

			return
		}

		{
			args := slogArgs
			args = append(args,
				slog.Int("pos", k),
				slog.Int("total", req.Count),
				slog.Bool("ok", thumb.Ok()),
			)
			g.logger.LogAttrs(logCtx, slog.LevelDebug, "Series progress", args...)
		}
	}

	elapsed := time.Since(start)

	{
		args := slogArgs
		args = append(args, slog.Duration("duration", elapsed))
		g.logger.LogAttrs(logCtx, slog.LevelInfo, "Series finished", args...)
	}

	if req.DoneChan != nil {
		req.DoneChan <- &SeriesResult{
			Req:      req,
			Thumbs:   thumbs,
			Duration: elapsed,
		}
	}
}

// emitUpdate sends one update unless the request context is cancelled first
func (g *Generator) emitUpdate(req *SeriesRequest, updates chan<- SeriesUpdate, update SeriesUpdate) bool {
	if req.Context == nil {
		updates <- update
		return true
	}

	select {
	case updates <- update:
		return true
	case <-req.Context.Done():
		return false
	}
}
