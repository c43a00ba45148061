package ffsnaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScale(t *testing.T) {
	cases := []struct {
		name    string
		scale   *ScaleConfig
		errType ValidationErrType
		wantErr bool
	}{
		{name: "nil scale ok", scale: nil},
		{name: "fixed resolution ok", scale: &ScaleConfig{Width: 320, Height: 180}},
		{name: "by width ok", scale: &ScaleConfig{Width: 320, Height: -1}},
		{
			name:    "both negative",
			scale:   &ScaleConfig{Width: -1, Height: -1},
			wantErr: true,
			errType: ValidationErrTypeScale,
		},
		{
			name:    "zero width",
			scale:   &ScaleConfig{Width: 0, Height: 180},
			wantErr: true,
			errType: ValidationErrTypeScale,
		},
		{
			name:    "unknown behavior",
			scale:   &ScaleConfig{Width: 320, Height: 180, Behavior: ScaleBehavior(42)},
			wantErr: true,
			errType: ValidationErrTypeScaleBehavior,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateScale(c.scale)

			if !c.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, c.errType, verr.Type)
		})
	}
}

func TestBuildScaleArg(t *testing.T) {
	cases := []struct {
		scale ScaleConfig
		want  string
	}{
		{ScaleConfig{Width: 320, Height: 180}, "scale=320:180"},
		{ScaleConfig{Width: 320, Height: -1}, "scale=320:-1"},
		{
			ScaleConfig{Width: 320, Height: 180, Behavior: ScaleBehaviorFillToKeepAspectRatio},
			"scale=320:180:force_original_aspect_ratio=decrease,pad=320:180:-1:-1:color=black",
		},
		{
			ScaleConfig{Width: 320, Height: 180, Behavior: ScaleBehaviorCropToFit},
			"scale=320:180:force_original_aspect_ratio=increase,crop=320:180",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, buildScaleArg(&c.scale))
	}
}

func TestBuildHeadersStr(t *testing.T) {
	headers := map[string]string{"Referer": "https://example.com"}

	assert.Equal(t, "Referer: https://example.com\r\n", BuildHeadersStr(headers))
}
