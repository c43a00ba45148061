package ffsnaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimecode(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{999, "00:00:00"},
		{1000, "00:00:01"},
		{59999, "00:00:59"},
		{61000, "00:01:01"},
		{3600000, "01:00:00"},
		// Hours are not wrapped to 24
		{90061000, "25:01:01"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatTimecode(c.ms), "FormatTimecode(%d)", c.ms)
	}
}

func TestMapQuality(t *testing.T) {
	cases := []struct {
		quality int
		want    int
	}{
		{-10, 1},
		{0, 1},
		{1, 30},
		{50, 15},
		{100, 1},
		{101, 31},
		{1000, 31},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, MapQuality(c.quality), "MapQuality(%d)", c.quality)
	}
}

func TestMapQualityMonotonic(t *testing.T) {
	// Higher abstract quality should never map to a worse (higher) -q:v value
	prev := MapQuality(1)
	for q := 2; q <= 100; q++ {
		curr := MapQuality(q)
		assert.LessOrEqual(t, curr, prev, "MapQuality(%d)", q)
		prev = curr
	}

	assert.Greater(t, MapQuality(1), MapQuality(50))
	assert.Greater(t, MapQuality(50), MapQuality(100))
}

func TestMapQualityRange(t *testing.T) {
	for q := -50; q <= 150; q++ {
		mapped := MapQuality(q)
		assert.GreaterOrEqual(t, mapped, 1, "MapQuality(%d)", q)
		assert.LessOrEqual(t, mapped, 31, "MapQuality(%d)", q)
	}
}
