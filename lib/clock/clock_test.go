package clock

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	assert.Equal(t, "March 4, 2025", Date(time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2025, 3, 4, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday, March 4, 2025 at 02:05 PM", DateTime(ts))
}
