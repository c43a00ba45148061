package ffsnaps

import (
	"strconv"
	"strings"
)

func BuildHeadersStr(headers map[string]string) string {
	var builder strings.Builder

	for key, val := range headers {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(val)
		builder.WriteString("\r\n")
	}

	return builder.String()
}

func buildScaleArg(scale *ScaleConfig) string {
	var builder strings.Builder

	builder.WriteString(`scale=`)
	builder.WriteString(strconv.Itoa(scale.Width))
	builder.WriteString(`:`)
	builder.WriteString(strconv.Itoa(scale.Height))

	switch scale.Behavior {
	case ScaleBehaviorFillToKeepAspectRatio:
		builder.WriteString(`:force_original_aspect_ratio=decrease,pad=`)
		builder.WriteString(strconv.Itoa(scale.Width))
		builder.WriteString(`:`)
		builder.WriteString(strconv.Itoa(scale.Height))
		builder.WriteString(`:-1:-1:color=black`)
	case ScaleBehaviorCropToFit:
		builder.WriteString(`:force_original_aspect_ratio=increase,crop=`)
		builder.WriteString(strconv.Itoa(scale.Width))
		builder.WriteString(`:`)
		builder.WriteString(strconv.Itoa(scale.Height))
	}

	return builder.String()
}
