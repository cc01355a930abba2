package game

import (
	"fmt"
	"log"
	"sort"
)

// Payout is one settlement line: what a single account is owed.
type Payout struct {
	User   string
	Stake  int64
	Share  int64 // point-proportional pot share (winners), zero for refunds
	Amount int64 // total credited to the withdrawable ledger
}

// settlement is the full end-of-game distribution, computed before a
// single coin is credited.
type settlement struct {
	Winner        Team
	Pot           int64 // coins
	Commission    int64
	Payouts       []Payout // winning side
	Refunds       []Payout // losing side, empty when not covered
	LosersCovered bool
}

// computeSettlement is pure: it reads the ledger and produces the
// distribution without touching it. Winner payouts are proportional to
// points; loser refunds are computed only when the losing side's total
// stake covers pot plus commission.
func computeSettlement(l *ledger, winner Team, stakeUnit int64) settlement {
	pot := l.Cfg.PotUnits * stakeUnit
	commission := pot * l.Cfg.CommissionPct / 100
	totalToPay := pot + commission

	winSide := &l.Teams[winner]
	loseSide := &l.Teams[winner.Opponent()]

	s := settlement{
		Winner:        winner,
		Pot:           pot,
		Commission:    commission,
		LosersCovered: loseSide.TotalAmount >= totalToPay,
	}

	// Thrown-in points land on the team aggregate with no player
	// record, so the aggregate can exceed what the winners actually
	// hold. Shares are proportional to the records, and the divisor
	// has to come from them too or part of the pot is stranded.
	var winPts int64
	for _, rec := range winSide.Bets {
		winPts += rec.Points
	}

	for _, user := range sortedBettors(winSide) {
		rec := winSide.Bets[user]
		var share int64
		if winPts > 0 {
			share = rec.Points * pot / winPts
		}
		s.Payouts = append(s.Payouts, Payout{
			User:   user,
			Stake:  rec.Amount,
			Share:  share,
			Amount: rec.Amount + share,
		})
	}

	if s.LosersCovered {
		for _, user := range sortedBettors(loseSide) {
			rec := loseSide.Bets[user]
			loss := rec.Amount * totalToPay / loseSide.TotalAmount
			s.Refunds = append(s.Refunds, Payout{
				User:   user,
				Stake:  rec.Amount,
				Amount: rec.Amount - loss,
			})
		}
	}

	return s
}

func sortedBettors(side *TeamLedger) []string {
	users := make([]string, 0, len(side.Bets))
	for user := range side.Bets {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// EndGame settles a running game. Callable by the admin or the timer
// bot. A tie is rejected outright: the admin has to extend the game or
// force a refund, the engine never resolves one on its own.
func (e *Engine) EndGame(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdminOrTimerBot(caller); err != nil {
		return err
	}
	if e.l.Phase != PhaseTimerArmed {
		return newError(KindState, "timer not started")
	}

	aPts := e.l.Teams[TeamA].TotalPoints
	bPts := e.l.Teams[TeamB].TotalPoints
	if aPts == bPts {
		return newError(KindState, "tie - refund or extend the game")
	}

	// Fewer points wins: this is a reverse-scoring game.
	winner := TeamA
	if bPts < aPts {
		winner = TeamB
	}

	s := computeSettlement(&e.l, winner, e.stakeUnit)

	credits := make(map[string]int64)
	for _, p := range s.Payouts {
		credits[p.User] += p.Amount
	}
	for _, r := range s.Refunds {
		credits[r.User] += r.Amount
	}
	credits[e.adminID] += s.Commission

	if err := e.store.CreditWithdrawable(credits); err != nil {
		return fmt.Errorf("game: credit settlement: %w", err)
	}
	for user, amount := range credits {
		e.l.withdrawable[user] += amount
	}

	e.l.Winner = &winner
	e.l.Phase = PhaseEnded
	e.persist()

	log.Printf("[Game] instance %s ended: winner=%s points A=%d B=%d", e.l.InstanceID, winner, aPts, bPts)
	e.emit.Emit("game_ended", map[string]any{
		"instance":     e.l.InstanceID,
		"winner":       winner.String(),
		"team_a_points": aPts,
		"team_b_points": bPts,
	})
	for _, p := range s.Payouts {
		e.emit.Emit("winner_payout", map[string]any{
			"user": p.User, "bet": p.Stake, "share": p.Share, "payout": p.Amount,
		})
	}
	for _, r := range s.Refunds {
		e.emit.Emit("loser_refund", map[string]any{
			"user": r.User, "bet": r.Stake, "refund": r.Amount,
		})
	}
	if !s.LosersCovered {
		// Winner payouts were computed against the nominal pot even
		// though the losing side cannot fund it; the pot is backed by
		// the house account, so flag it rather than scale payouts.
		log.Printf("[Game] solvency warning: losing side staked %d, owes %d",
			e.l.Teams[winner.Opponent()].TotalAmount, s.Pot+s.Commission)
		e.emit.Emit("solvency_warning", map[string]any{
			"instance":     e.l.InstanceID,
			"losing_stake": e.l.Teams[winner.Opponent()].TotalAmount,
			"required":     s.Pot + s.Commission,
		})
	}
	e.emit.Emit("commission_recorded", map[string]any{
		"admin": e.adminID, "commission": s.Commission,
	})
	return nil
}

// ForceEndGameRefund cancels the game and returns every stake
// verbatim. No commission, no winner, points ignored.
func (e *Engine) ForceEndGameRefund(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if err := e.requireActive(); err != nil {
		return err
	}

	credits := make(map[string]int64)
	var refunded int64
	for t := range e.l.Teams {
		for user, rec := range e.l.Teams[t].Bets {
			credits[user] += rec.Amount
			refunded += rec.Amount
		}
	}

	if len(credits) > 0 {
		if err := e.store.CreditWithdrawable(credits); err != nil {
			return fmt.Errorf("game: credit refunds: %w", err)
		}
		for user, amount := range credits {
			e.l.withdrawable[user] += amount
		}
	}

	e.l.Phase = PhaseForceRefunded
	e.l.ForceRefund = true
	e.persist()

	log.Printf("[Game] instance %s force-refunded: %d coins returned", e.l.InstanceID, refunded)
	for t := Team(0); t <= TeamB; t++ {
		for _, user := range sortedBettors(&e.l.Teams[t]) {
			e.emit.Emit("force_refund", map[string]any{
				"user": user, "team": t.String(), "refund": e.l.Teams[t].Bets[user].Amount,
			})
		}
	}
	e.emit.Emit("game_force_ended", map[string]any{
		"instance":       e.l.InstanceID,
		"admin":          caller,
		"total_refunded": refunded,
	})
	return nil
}
