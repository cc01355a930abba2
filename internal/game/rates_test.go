package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPointRate(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		armed   bool
		want    int64
	}{
		{"before timer", 0, false, 32},
		{"before timer, hours later", 48 * time.Hour, false, 32},
		{"first hour", 0, true, 24},
		{"just under one hour", time.Hour - time.Second, true, 24},
		{"second hour", time.Hour, true, 23},
		{"sixth hour", 5*time.Hour + 30*time.Minute, true, 19},
		{"tenth hour", 9 * time.Hour, true, 15},
		{"table exhausted", 10 * time.Hour, true, 1},
		{"days later", 100 * time.Hour, true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PointRate(tc.elapsed, tc.armed))
		})
	}
}

func TestThrowWindow(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		lo, hi  int64
		open    bool
	}{
		{"start", 0, 60, 90, true},
		{"just inside first window", 3*time.Hour - time.Second, 60, 90, true},
		{"second window starts", 3 * time.Hour, 20, 40, true},
		{"just inside second window", 6*time.Hour - time.Second, 20, 40, true},
		{"closed", 6 * time.Hour, 0, 0, false},
		{"long closed", 50 * time.Hour, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi, open := throwWindow(tc.elapsed)
			assert.Equal(t, tc.open, open)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}
