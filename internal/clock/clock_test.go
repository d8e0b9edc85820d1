package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonic_NeverGoesBackwards(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := []time.Time{base, base.Add(-time.Hour), base.Add(time.Second)}
	i := 0
	m := &Monotonic{now: func() time.Time {
		t := calls[i]
		i++
		return t
	}}

	assert.Equal(t, base, m.Now())
	assert.Equal(t, base, m.Now())
	assert.Equal(t, base.Add(time.Second), m.Now())
}

func TestManual_SetAndAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	assert.Equal(t, start, m.Now())

	m.Set(start.Add(-time.Minute))
	assert.Equal(t, start, m.Now())

	assert.Equal(t, start.Add(5*time.Minute), m.Advance(5*time.Minute))
	m.Set(start.Add(time.Hour))
	assert.Equal(t, start.Add(time.Hour), m.Now())
}
