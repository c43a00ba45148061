package main

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/ffsnaps"
)

// handler holds dependencies
type handler struct {
	gen    *ffsnaps.Generator
	logger *slog.Logger
}

func newHandler(gen *ffsnaps.Generator, logger *slog.Logger) *handler {
	return &handler{gen: gen, logger: logger}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, errorResponse{Code: code, Message: msg, Detail: detail})
}

type thumbnailRequest struct {
	MediaURL    string `json:"media_url" binding:"required"`
	TimestampMs int64  `json:"timestamp_ms"`
	Quality     int    `json:"quality"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// streamEvent is one NDJSON line of series progress. Data carries only the
// frame produced by this step, the consumer keeps its own growing list.
type streamEvent struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Ok       bool   `json:"ok"`
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
	Size     int    `json:"size"`
	Data     string `json:"data,omitempty"`
	Done     bool   `json:"done"`
}

func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Thumbnail POST /v1/thumbnail
func (h *handler) Thumbnail(c *gin.Context) {
	var req thumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	var scale *ffsnaps.ScaleConfig
	if req.Width != 0 || req.Height != 0 {
		scale = &ffsnaps.ScaleConfig{
			Width:    req.Width,
			Height:   req.Height,
			Behavior: ffsnaps.ScaleBehaviorFillToKeepAspectRatio,
		}
	}

	thumb := h.gen.GenerateSingle(&ffsnaps.SingleRequest{
		MediaURL:    req.MediaURL,
		TimestampMs: req.TimestampMs,
		Quality:     req.Quality,
		Scale:       scale,
		Context:     c.Request.Context(),
	})

	if !thumb.Ok() {
		errResp(c, http.StatusUnprocessableEntity, "Snapshot failed", thumb.Err.Error())
		return
	}

	c.Data(http.StatusOK, "image/jpeg", thumb.Data)
}

// ThumbnailStream GET /v1/thumbnails/stream
func (h *handler) ThumbnailStream(c *gin.Context) {
	mediaURL := c.Query("media_url")
	if mediaURL == "" {
		errResp(c, http.StatusBadRequest, "media_url is required", "")
		return
	}

	durationMs, _ := strconv.ParseInt(c.DefaultQuery("duration_ms", "0"), 10, 64)
	count, _ := strconv.Atoi(c.DefaultQuery("count", "5"))
	quality, _ := strconv.Atoi(c.DefaultQuery("quality", "0"))

	ctx := c.Request.Context()

	if durationMs <= 0 {
		probed, err := h.gen.ProbeDuration(ctx, mediaURL)
		if err != nil {
			errResp(c, http.StatusUnprocessableEntity, "Cannot probe media duration", err.Error())
			return
		}

		durationMs = probed
	}

	updates, err := h.gen.GenerateSeries(&ffsnaps.SeriesRequest{
		MediaURL:   mediaURL,
		DurationMs: durationMs,
		Count:      count,
		Quality:    quality,
		Context:    ctx,
	})
	if err != nil {
		errResp(c, http.StatusBadRequest, "Invalid series request", err.Error())
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)

	for update := range updates {
		pos := len(update.Thumbs)
		thumb := update.Thumbs[pos-1]

		event := streamEvent{
			Index:    pos,
			Total:    count,
			Ok:       thumb.Ok(),
			Fallback: thumb.Ok() && thumb.Err != nil,
			Size:     len(thumb.Data),
			Done:     update.Done,
		}

		if thumb.Err != nil {
			event.Error = thumb.Err.Error()
		}

		if thumb.Ok() {
			event.Data = base64.StdEncoding.EncodeToString(thumb.Data)
		}

		if err := enc.Encode(&event); err != nil {
			h.logger.Warn("Stream consumer gone", slog.String("err", err.Error()))
			return
		}

		c.Writer.Flush()
	}
}
