package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetEarlyBird(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 100, 3600, 10))

	require.NoError(t, e.Bet("alice", TeamA, 500))

	rec, ok := e.UserBet("alice", TeamA)
	require.True(t, ok)
	assert.Equal(t, int64(500), rec.Amount)
	assert.Equal(t, int64(160), rec.Points, "5 units at the early bird rate of 32")
}

func TestBetSubUnitRemainder(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 100, 3600, 10))

	// 250 coins is 2 whole units: the 50-coin remainder stays staked
	// but earns nothing.
	require.NoError(t, e.Bet("alice", TeamA, 250))
	rec, _ := e.UserBet("alice", TeamA)
	assert.Equal(t, int64(250), rec.Amount)
	assert.Equal(t, int64(64), rec.Points)

	// Half a unit is the minimum and earns zero points.
	require.NoError(t, e.Bet("bob", TeamA, 50))
	rec, _ = e.UserBet("bob", TeamA)
	assert.Equal(t, int64(0), rec.Points)
}

func TestBetMinimum(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 100, 3600, 10))

	err := e.Bet("alice", TeamA, 49)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestBetDecayedRate(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 100, 36000, 10))
	require.NoError(t, e.StartTimer(adminID))

	clock.Advance(90 * time.Minute)
	require.NoError(t, e.Bet("alice", TeamA, 300))

	rec, _ := e.UserBet("alice", TeamA)
	assert.Equal(t, int64(69), rec.Points, "3 units in the second decay hour at rate 23")
}

func TestBetAggregatesStayInLockstep(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 100, 3600, 10))

	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("alice", TeamA, 300))
	require.NoError(t, e.Bet("bob", TeamA, 250))

	st := e.Status()
	var points, amount int64
	for _, rec := range e.TeamBets(TeamA) {
		points += rec.Points
		amount += rec.Amount
	}
	assert.Equal(t, points, st.TeamAPoints)
	assert.Equal(t, amount, st.TeamAStaked)
	assert.Equal(t, int64(1050), amount)

	// Repeat bets merge into one record.
	rec, _ := e.UserBet("alice", TeamA)
	assert.Equal(t, int64(800), rec.Amount)
	assert.Equal(t, int64(256), rec.Points)
}

func TestBetRejectedStates(t *testing.T) {
	e, _, _ := newTestEngine(t)

	err := e.Bet("alice", TeamA, 500)
	assert.Equal(t, KindState, KindOf(err), "no game opened")

	require.NoError(t, e.StartGame(adminID, 1, 3600, 0))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.ForceEndGameRefund(adminID))

	err = e.Bet("alice", TeamA, 500)
	assert.Equal(t, KindState, KindOf(err), "refunded game takes no bets")
}
