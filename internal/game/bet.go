package game

import "log"

// Bet records a stake on a team. The host has already debited amount
// coins from the caller's balance; the engine only does the point math
// and ledger bookkeeping. Sub-unit remainders earn no points but stay
// credited to the staked amount.
func (e *Engine) Bet(caller string, team Team, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if err := e.requireActive(); err != nil {
		return err
	}
	if e.l.ForceRefund {
		return newError(KindState, "game is in refund mode")
	}
	if err := e.requireNotBanned(caller); err != nil {
		return err
	}
	if amount < e.stakeUnit/2 {
		return newError(KindValidation, "minimum bet is %d coins", e.stakeUnit/2)
	}

	armed := e.l.Phase == PhaseTimerArmed
	var rate int64
	if armed {
		rate = PointRate(e.elapsed(), true)
	} else {
		rate = EarlyBirdRate
	}
	pts := (amount / e.stakeUnit) * rate

	side := &e.l.Teams[team]
	if rec, ok := side.Bets[caller]; ok {
		rec.Amount += amount
		rec.Points += pts
	} else {
		side.Bets[caller] = &BetRecord{Amount: amount, Points: pts}
	}
	side.TotalPoints += pts
	side.TotalAmount += amount

	log.Printf("[Game] bet: user=%s team=%s amount=%d points=%d rate=%d", caller, team, amount, pts, rate)
	e.emit.Emit("bet_placed", map[string]any{
		"instance": e.l.InstanceID,
		"user":     caller,
		"team":     team.String(),
		"amount":   amount,
		"points":   pts,
		"rate":     rate,
	})

	e.maybeAutoArm()
	e.persist()
	return nil
}

// maybeAutoArm starts the countdown once both sides have staked the
// full pot plus commission. Caller holds the lock.
func (e *Engine) maybeAutoArm() {
	if e.l.Phase != PhaseOpen {
		return
	}
	threshold := e.l.Cfg.PotUnits * (100 + e.l.Cfg.CommissionPct) / 100 * e.stakeUnit
	if e.l.Teams[TeamA].TotalAmount >= threshold && e.l.Teams[TeamB].TotalAmount >= threshold {
		e.armTimer("auto")
	}
}
