package game

import "time"

// Point accrual and throw-window constants. The decay table is indexed
// by whole elapsed hours since the timer was armed; after it runs out
// every bet earns the floor rate.
const (
	EarlyBirdRate     int64 = 32
	FloorRate         int64 = 1
	FirstWindowHours        = 3
	SecondWindowHours       = 6
	MaxThrowsPerGame        = 2
)

var pointDecayRates = [...]int64{24, 23, 22, 21, 20, 19, 18, 17, 16, 15}

// PointRate returns the points-per-staking-unit multiplier. Before the
// timer is armed every bet gets the early-bird rate regardless of
// elapsed time.
func PointRate(elapsed time.Duration, timerArmed bool) int64 {
	if !timerArmed {
		return EarlyBirdRate
	}
	h := int(elapsed / time.Hour)
	if h >= 0 && h < len(pointDecayRates) {
		return pointDecayRates[h]
	}
	return FloorRate
}

// throwWindow returns the inclusive percent range allowed for a throw
// at the given time since arming. open is false once the second window
// has passed.
func throwWindow(elapsed time.Duration) (lo, hi int64, open bool) {
	switch {
	case elapsed < FirstWindowHours*time.Hour:
		return 60, 90, true
	case elapsed < SecondWindowHours*time.Hour:
		return 20, 40, true
	default:
		return 0, 0, false
	}
}
