package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerNextRunLaterToday(t *testing.T) {
	s := &Scheduler{runAt: "20:05"}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	next := s.nextRun(now)
	assert.Equal(t, time.Date(2025, 3, 10, 20, 5, 0, 0, time.Local), next)
}

func TestSchedulerNextRunRollsToTomorrow(t *testing.T) {
	s := &Scheduler{runAt: "20:05"}
	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.Local)

	next := s.nextRun(now)
	assert.Equal(t, time.Date(2025, 3, 11, 20, 5, 0, 0, time.Local), next)
}

func TestSchedulerNextRunBadFormatFallsBack(t *testing.T) {
	s := &Scheduler{runAt: "not-a-time"}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	next := s.nextRun(now)
	assert.Equal(t, 20, next.Hour())
	assert.Equal(t, 0, next.Minute())
}
