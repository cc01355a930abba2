package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// armedGame opens a game, stakes alice on A (160 points) and bob on B,
// and arms the timer.
func armedGame(t *testing.T) (*Engine, *testClock) {
	t.Helper()
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("bob", TeamB, 500))
	require.NoError(t, e.StartTimer(adminID))
	return e, clock
}

func TestThrowMovesPoints(t *testing.T) {
	e, clock := armedGame(t)
	clock.Advance(time.Hour)

	require.NoError(t, e.ThrowPoints("alice", 70))

	rec, _ := e.UserBet("alice", TeamA)
	assert.Equal(t, int64(48), rec.Points, "keeps 160 - 112")
	assert.Equal(t, int64(500), rec.Amount, "stake untouched")

	st := e.Status()
	assert.Equal(t, int64(48), st.TeamAPoints)
	assert.Equal(t, int64(272), st.TeamBPoints, "opponent aggregate absorbs the 112")

	el := e.CanThrow("alice")
	assert.Equal(t, 1, el.ThrowsUsed)
	assert.Equal(t, 1, el.ThrowsRemaining)
}

func TestThrowPercentOutsideWindow(t *testing.T) {
	e, clock := armedGame(t)

	err := e.ThrowPoints("alice", 50)
	assert.Equal(t, KindValidation, KindOf(err), "50 is below the first window")

	err = e.ThrowPoints("alice", 91)
	assert.Equal(t, KindValidation, KindOf(err))

	clock.Advance(4 * time.Hour)
	err = e.ThrowPoints("alice", 70)
	assert.Equal(t, KindValidation, KindOf(err), "70 is above the second window")
	require.NoError(t, e.ThrowPoints("alice", 40))
}

func TestThrowWindowCloses(t *testing.T) {
	e, clock := armedGame(t)
	clock.Advance(FirstWindowHours * time.Hour)

	require.NoError(t, e.ThrowPoints("alice", 30))

	clock.Advance((SecondWindowHours - FirstWindowHours) * time.Hour)
	err := e.ThrowPoints("alice", 30)
	assert.Equal(t, KindState, KindOf(err), "window closed after six hours")
}

func TestThrowQuota(t *testing.T) {
	e, clock := armedGame(t)
	clock.Advance(time.Hour)

	require.NoError(t, e.ThrowPoints("alice", 60))
	require.NoError(t, e.ThrowPoints("alice", 60))

	err := e.ThrowPoints("alice", 60)
	assert.Equal(t, KindQuota, KindOf(err))

	// Other players keep their own quota.
	require.NoError(t, e.ThrowPoints("bob", 60))
}

func TestThrowEligibilityGuards(t *testing.T) {
	e, clock := armedGame(t)
	clock.Advance(time.Hour)

	err := e.ThrowPoints("carol", 70)
	assert.Equal(t, KindState, KindOf(err), "carol has no bet")

	require.NoError(t, e.Bet("dave", TeamA, 500))
	require.NoError(t, e.Bet("dave", TeamB, 500))
	err = e.ThrowPoints("dave", 70)
	assert.Equal(t, KindState, KindOf(err), "both-team bettors cannot throw")

	el := e.CanThrow("dave")
	assert.False(t, el.CanThrow)
	assert.Equal(t, "bet on both teams", el.Reason)
}

func TestThrowKeepsAtLeastOnePoint(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	// 50 coins is half a unit: zero points, so any throw is invalid.
	require.NoError(t, e.Bet("alice", TeamA, 50))
	require.NoError(t, e.Bet("bob", TeamB, 500))
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(time.Hour)

	err := e.ThrowPoints("alice", 90)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestThrowBeforeTimer(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))

	err := e.ThrowPoints("alice", 70)
	assert.Equal(t, KindState, KindOf(err), "timer not started")
}
