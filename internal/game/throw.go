package game

import "log"

// ThrowPoints sacrifices a percentage of the caller's own points to
// the opposing team's aggregate. The allowed percentage shrinks and
// eventually closes as the game ages, and each player gets at most
// MaxThrowsPerGame throws per instance; both bounds exist to stop
// late-game points laundering.
func (e *Engine) ThrowPoints(caller string, percent int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if e.l.Phase != PhaseTimerArmed {
		return newError(KindState, "timer not started")
	}
	if err := e.requireNotBanned(caller); err != nil {
		return err
	}

	_, onA := e.l.Teams[TeamA].Bets[caller]
	_, onB := e.l.Teams[TeamB].Bets[caller]
	switch {
	case onA && onB:
		// Ambiguous donor side.
		return newError(KindState, "cannot throw points after betting on both teams")
	case !onA && !onB:
		return newError(KindState, "you have no bet in this game")
	}
	donor := TeamA
	if onB {
		donor = TeamB
	}

	if e.l.ThrowsUsed[caller] >= MaxThrowsPerGame {
		return newError(KindQuota, "throw limit reached (%d per game)", MaxThrowsPerGame)
	}

	lo, hi, open := throwWindow(e.elapsed())
	if !open {
		return newError(KindState, "throw window closed")
	}
	if percent < lo || percent > hi {
		return newError(KindValidation, "allowed range is %d-%d%% right now", lo, hi)
	}

	rec := e.l.Teams[donor].Bets[caller]
	move := rec.Points * percent / 100
	if move <= 0 || rec.Points-move < 1 {
		// Donor must keep at least one point while the record exists.
		return newError(KindValidation, "invalid amount to throw")
	}

	recipient := donor.Opponent()
	rec.Points -= move
	e.l.Teams[donor].TotalPoints -= move
	e.l.Teams[recipient].TotalPoints += move

	e.l.ThrowsUsed[caller]++
	e.l.LastThrow[caller] = e.now()
	e.persist()

	log.Printf("[Game] throw: user=%s %s->%s pct=%d points=%d used=%d",
		caller, donor, recipient, percent, move, e.l.ThrowsUsed[caller])
	e.emit.Emit("points_transferred", map[string]any{
		"instance": e.l.InstanceID,
		"user":     caller,
		"from":     donor.String(),
		"to":       recipient.String(),
		"percent":  percent,
		"points":   move,
		"used":     e.l.ThrowsUsed[caller],
	})
	return nil
}
