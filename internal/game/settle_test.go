package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settlementLedger(cfg Config) *ledger {
	l := &ledger{}
	l.resetInstance("test-instance", cfg)
	return l
}

func addBet(l *ledger, team Team, user string, amount, points int64) {
	side := &l.Teams[team]
	side.Bets[user] = &BetRecord{Amount: amount, Points: points}
	side.TotalAmount += amount
	side.TotalPoints += points
}

func TestComputeSettlementProportionalShares(t *testing.T) {
	l := settlementLedger(Config{PotUnits: 10, DurationSec: 3600, CommissionPct: 10})
	addBet(l, TeamA, "alice", 500, 100)
	addBet(l, TeamA, "bob", 300, 60)
	addBet(l, TeamB, "carol", 2000, 400)

	s := computeSettlement(l, TeamA, testUnit)

	assert.Equal(t, int64(1000), s.Pot)
	assert.Equal(t, int64(100), s.Commission)
	assert.True(t, s.LosersCovered)

	require.Len(t, s.Payouts, 2)
	// Sorted by user: alice then bob.
	assert.Equal(t, Payout{User: "alice", Stake: 500, Share: 625, Amount: 1125}, s.Payouts[0])
	assert.Equal(t, Payout{User: "bob", Stake: 300, Share: 375, Amount: 675}, s.Payouts[1])

	require.Len(t, s.Refunds, 1)
	// carol is the whole losing side: her loss is exactly pot plus
	// commission, the rest of her stake comes back.
	assert.Equal(t, Payout{User: "carol", Stake: 2000, Share: 0, Amount: 900}, s.Refunds[0])
}

func TestComputeSettlementLosersNotCovered(t *testing.T) {
	l := settlementLedger(Config{PotUnits: 10, DurationSec: 3600, CommissionPct: 10})
	addBet(l, TeamA, "alice", 500, 100)
	addBet(l, TeamB, "carol", 1000, 200)

	s := computeSettlement(l, TeamA, testUnit)

	assert.False(t, s.LosersCovered, "1000 staked cannot fund pot 1000 plus commission 100")
	assert.Empty(t, s.Refunds)
	require.Len(t, s.Payouts, 1)
	assert.Equal(t, int64(1500), s.Payouts[0].Amount, "winner payout is not scaled down")
}

func TestComputeSettlementZeroWinnerPoints(t *testing.T) {
	l := settlementLedger(Config{PotUnits: 10, DurationSec: 3600, CommissionPct: 0})
	// Half-unit bet: staked but zero points.
	addBet(l, TeamA, "alice", 50, 0)
	addBet(l, TeamB, "carol", 2000, 400)

	s := computeSettlement(l, TeamA, testUnit)

	require.Len(t, s.Payouts, 1)
	assert.Equal(t, int64(0), s.Payouts[0].Share)
	assert.Equal(t, int64(50), s.Payouts[0].Amount, "stake back, no pot share")
}

func TestComputeSettlementIntegerDivision(t *testing.T) {
	l := settlementLedger(Config{PotUnits: 10, DurationSec: 3600, CommissionPct: 0})
	addBet(l, TeamA, "alice", 100, 1)
	addBet(l, TeamA, "bob", 100, 1)
	addBet(l, TeamA, "carol", 100, 1)
	addBet(l, TeamB, "dave", 2000, 400)

	s := computeSettlement(l, TeamA, testUnit)

	// 1000 / 3 truncates per winner; the remainder stays in the house.
	var shares int64
	for _, p := range s.Payouts {
		assert.Equal(t, int64(333), p.Share)
		shares += p.Share
	}
	assert.Less(t, shares, s.Pot)
}

func TestComputeSettlementThrownPointsInAggregate(t *testing.T) {
	l := settlementLedger(Config{PotUnits: 10, DurationSec: 3600, CommissionPct: 0})
	addBet(l, TeamA, "alice", 500, 64)
	addBet(l, TeamB, "bob", 2000, 256)
	// Cross throws: the aggregates carry points no record holds.
	l.Teams[TeamA].TotalPoints += 384
	l.Teams[TeamB].TotalPoints += 96

	s := computeSettlement(l, TeamB, testUnit)

	require.Len(t, s.Payouts, 1)
	assert.Equal(t, int64(1000), s.Payouts[0].Share, "sole winner takes the whole pot")
	assert.Equal(t, int64(3000), s.Payouts[0].Amount)
}

func TestEndGameAfterCrossThrows(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 0))
	require.NoError(t, e.Bet("alice", TeamA, 500))  // 160 points
	require.NoError(t, e.Bet("bob", TeamB, 2000))   // 640 points
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(time.Hour)

	// Both sides throw 60%: alice sends 96 to B, bob sends 384 to A.
	// Aggregates end at A=448, B=352 while the records hold 64 and 256.
	require.NoError(t, e.ThrowPoints("alice", 60))
	require.NoError(t, e.ThrowPoints("bob", 60))

	st := e.Status()
	require.Equal(t, int64(448), st.TeamAPoints)
	require.Equal(t, int64(352), st.TeamBPoints)

	require.NoError(t, e.EndGame(adminID))
	assert.Equal(t, "B", e.Status().WinningTeam)

	// bob is the only winning record: stake back plus the full pot,
	// proportional to record points rather than the team aggregate.
	assert.Equal(t, int64(3000), e.Withdrawable("bob"))
}

func TestEndGame(t *testing.T) {
	e, store, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500)) // 160 points
	require.NoError(t, e.Bet("carol", TeamB, 2000))
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(10 * time.Hour)

	require.NoError(t, e.EndGame(adminID))

	st := e.Status()
	assert.Equal(t, PhaseEnded, st.Phase)
	assert.Equal(t, "A", st.WinningTeam, "160 points beats 640")

	// alice: stake 500 + full pot 1000 (sole winner).
	assert.Equal(t, int64(1500), e.Withdrawable("alice"))
	// carol: 2000 - (1000 + 100).
	assert.Equal(t, int64(900), e.Withdrawable("carol"))
	// admin collects the commission.
	assert.Equal(t, int64(100), e.Withdrawable(adminID))

	// The store saw the same credits in one batch.
	assert.Equal(t, int64(1500), store.withdrawable["alice"])
	assert.Equal(t, int64(900), store.withdrawable["carol"])
	assert.Equal(t, int64(100), store.withdrawable[adminID])

	// Conservation: the pot is funded out of the losing side's loss,
	// so total credits equal total stakes.
	total := e.Withdrawable("alice") + e.Withdrawable("carol") + e.Withdrawable(adminID)
	assert.Equal(t, int64(2500), total, "every staked coin is redistributed")
}

func TestEndGameGuards(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("bob", TeamB, 500))

	err := e.EndGame(adminID)
	assert.Equal(t, KindState, KindOf(err), "timer not started")

	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(time.Hour)

	err = e.EndGame("stranger")
	assert.Equal(t, KindAuthorization, KindOf(err))

	// Equal points on both sides is a tie and is refused.
	err = e.EndGame(adminID)
	assert.Equal(t, KindState, KindOf(err))

	// A throw breaks the tie; the timer bot identity may settle.
	require.NoError(t, e.ThrowPoints("alice", 70))
	require.NoError(t, e.EndGame(timerID))
	assert.Equal(t, PhaseEnded, e.Status().Phase)
}

func TestForceEndGameRefund(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("bob", TeamB, 2000))
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(time.Hour)
	require.NoError(t, e.ThrowPoints("alice", 70))

	assert.Equal(t, KindAuthorization, KindOf(e.ForceEndGameRefund("alice")))
	require.NoError(t, e.ForceEndGameRefund(adminID))

	st := e.Status()
	assert.Equal(t, PhaseForceRefunded, st.Phase)
	assert.True(t, st.ForceRefund)

	// Stakes come back verbatim, points and commission ignored.
	assert.Equal(t, int64(500), e.Withdrawable("alice"))
	assert.Equal(t, int64(2000), e.Withdrawable("bob"))
	assert.Equal(t, int64(0), e.Withdrawable(adminID))
}

func TestWithdraw(t *testing.T) {
	e, store, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("carol", TeamB, 2000))
	require.NoError(t, e.StartTimer(adminID))

	_, err := e.Withdraw("alice")
	assert.Equal(t, KindState, KindOf(err), "no withdrawals while the game runs")

	clock.Advance(10 * time.Hour)
	require.NoError(t, e.EndGame(adminID))

	paid, err := e.Withdraw("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), paid)
	assert.Equal(t, int64(1500), store.balances["alice"], "paid into the coin balance")
	assert.Equal(t, int64(0), e.Withdrawable("alice"))

	_, err = e.Withdraw("alice")
	assert.Equal(t, KindEmptyWithdrawal, KindOf(err), "second withdrawal finds nothing")

	_, err = e.Withdraw("nobody")
	assert.Equal(t, KindEmptyWithdrawal, KindOf(err))
}

func TestWithdrawStoreMismatch(t *testing.T) {
	e, store, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 36000, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("carol", TeamB, 2000))
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(10 * time.Hour)
	require.NoError(t, e.EndGame(adminID))

	// The store lost carol's row while memory still carries it.
	store.withdrawable["carol"] = 0

	_, err := e.Withdraw("carol")
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err), "a ledger disagreement is not a player error")
	assert.Equal(t, int64(900), e.Withdrawable("carol"), "memory stays untouched")
	assert.Equal(t, int64(0), store.balances["carol"], "nothing was paid")
}
