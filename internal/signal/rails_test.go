package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddZone_Contains(t *testing.T) {
	z := AddZone{Low: 80, High: 90}

	assert.True(t, z.Contains(80))
	assert.True(t, z.Contains(85))
	assert.True(t, z.Contains(90))
	assert.False(t, z.Contains(79.99))
	assert.False(t, z.Contains(90.01))
}

func TestRailsConfig_TrimTarget(t *testing.T) {
	_, ok := RailsConfig{}.TrimTarget()
	assert.False(t, ok)

	target, ok := RailsConfig{TrimMin: fptr(120.0)}.TrimTarget()
	assert.True(t, ok)
	assert.Equal(t, 120.0, target)

	// TargetSell wins over TrimMin.
	target, ok = RailsConfig{TargetSell: fptr(130.0), TrimMin: fptr(120.0)}.TrimTarget()
	assert.True(t, ok)
	assert.Equal(t, 130.0, target)
}

func TestRails_GetMissingSymbol(t *testing.T) {
	r := Rails{"0700.HK": {TargetSell: fptr(400.0)}}

	cfg := r.Get("9988.HK")
	assert.Nil(t, cfg.TargetSell)

	var empty Rails
	assert.Nil(t, empty.Get("0700.HK").TargetSell)
}

func TestWithinVetoWindow(t *testing.T) {
	veto := []time.Time{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}

	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
	}

	assert.False(t, WithinVetoWindow(day(7), veto, 2))
	assert.True(t, WithinVetoWindow(day(8), veto, 2))
	assert.True(t, WithinVetoWindow(day(9), veto, 2))
	assert.True(t, WithinVetoWindow(day(10), veto, 2))
	assert.False(t, WithinVetoWindow(day(11), veto, 2))
	assert.False(t, WithinVetoWindow(day(10), nil, 2))
}

func TestWithinVetoWindow_LocalCalendarDay(t *testing.T) {
	veto := []time.Time{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	hk := time.FixedZone("HKT", 8*60*60)

	// 01:00 on March 8 in Hong Kong is still March 7 in UTC; the local
	// calendar day is what counts, so the window has opened.
	assert.True(t, WithinVetoWindow(time.Date(2026, 3, 8, 1, 0, 0, 0, hk), veto, 2))

	// 01:00 on March 11 in Hong Kong is still March 10 in UTC; locally
	// the window has closed.
	assert.False(t, WithinVetoWindow(time.Date(2026, 3, 11, 1, 0, 0, 0, hk), veto, 2))
}
