package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed_TodayAndAdvance(t *testing.T) {
	c := NewFixed(time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-10", c.Today().Format("2006-01-02"))

	c.Advance(time.Hour)
	assert.Equal(t, "2024-03-11", c.Today().Format("2006-01-02"))
	assert.Equal(t, 0, c.Today().Hour())
}

func TestSystemClock_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	c := NewSystemClock("Not/AZone")
	sc, ok := c.(*systemClock)
	if assert.True(t, ok) {
		assert.Equal(t, time.UTC, sc.loc)
	}
	assert.Equal(t, time.UTC, c.Now().Location())
}
