package ffsnaps

import "fmt"

// FormatTimecode converts a millisecond offset into the zero-padded HH:MM:SS
// form ffmpeg expects for its -ss argument. Hours are not wrapped to 24.
// Negative input is a caller error.
func FormatTimecode(ms int64) string {
	secs := ms / 1000

	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// MapQuality converts an abstract quality percent (higher is better) to
// ffmpeg's -q:v scale (lower is better, valid values are 1-31).
// See: https://ffmpeg.org/ffmpeg-codecs.html#Options-21 (q:v option)
//
// The truncating divide is kept as-is for parity with previously generated
// thumbnails: MapQuality(100) = 1, MapQuality(1) = 30.
func MapQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 31
	}

	mapped := int(float64(101-quality) / 3.25)

	if mapped < 1 {
		return 1
	}
	if mapped > 31 {
		return 31
	}

	return mapped
}
