package ffsnaps

import (
	"fmt"
)

type ValidationErrType int

const (
	ValidationErrTypeMediaURL ValidationErrType = iota
	ValidationErrTypeTimestamp
	ValidationErrTypeDuration
	ValidationErrTypeCount
	ValidationErrTypeScale
	ValidationErrTypeScaleBehavior
)

type ValidationError struct {
	Type ValidationErrType
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validateSingleRequest(req *SingleRequest) error {
	if len(req.MediaURL) == 0 {
		return &ValidationError{
			Type: ValidationErrTypeMediaURL,
			Msg:  "media url cannot be empty",
		}
	}

	if req.TimestampMs < 0 {
		return &ValidationError{
			Type: ValidationErrTypeTimestamp,
			Msg:  fmt.Sprintf("timestamp cannot be negative, got %d", req.TimestampMs),
		}
	}

	return validateScale(req.Scale)
}

func validateSeriesRequest(req *SeriesRequest) error {
	if len(req.MediaURL) == 0 {
		return &ValidationError{
			Type: ValidationErrTypeMediaURL,
			Msg:  "media url cannot be empty",
		}
	}

	if req.DurationMs < 1 {
		return &ValidationError{
			Type: ValidationErrTypeDuration,
			Msg:  fmt.Sprintf("series duration should be at least one millisecond, got %d", req.DurationMs),
		}
	}

	if req.Count < 1 {
		return &ValidationError{
			Type: ValidationErrTypeCount,
			Msg:  fmt.Sprintf("series snapshot count should be at least 1, got %d", req.Count),
		}
	}

	return validateScale(req.Scale)
}

func validateScale(scale *ScaleConfig) error {
	if scale == nil {
		return nil
	}

	if scale.Width < 0 && scale.Height < 0 {
		return &ValidationError{
			Type: ValidationErrTypeScale,
			Msg:  "scale has both negative width and height",
		}
	}

	if scale.Width == 0 {
		return &ValidationError{
			Type: ValidationErrTypeScale,
			Msg:  "scale width cannot be zero",
		}
	}

	if scale.Height == 0 {
		return &ValidationError{
			Type: ValidationErrTypeScale,
			Msg:  "scale height cannot be zero",
		}
	}

	switch scale.Behavior {
	case ScaleBehaviorNone, ScaleBehaviorFillToKeepAspectRatio, ScaleBehaviorCropToFit:
	default:
		return &ValidationError{
			Type: ValidationErrTypeScaleBehavior,
			Msg:  fmt.Sprintf("unknown scale behavior: %d", scale.Behavior),
		}
	}

	return nil
}
