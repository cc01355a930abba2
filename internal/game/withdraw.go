package game

import (
	"fmt"
	"log"
)

// Withdraw pays out the caller's pending balance. Only allowed while
// no game is running. The store zeroes the ledger row and credits the
// caller's coin balance in one transaction, so there is no window
// where the row is zeroed but the payment was lost.
func (e *Engine) Withdraw(caller string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireNotPaused(); err != nil {
		return 0, err
	}
	if e.l.Phase.active() {
		return 0, newError(KindState, "wait for the game to finish before withdrawing")
	}
	if e.l.withdrawable[caller] == 0 {
		return 0, newError(KindEmptyWithdrawal, "nothing to withdraw")
	}

	paid, err := e.store.PayOutWithdrawable(caller)
	if err != nil {
		return 0, fmt.Errorf("game: pay out withdrawal: %w", err)
	}
	if paid == 0 {
		// Memory says there is a balance but the store found no row.
		// Keep memory as is and surface the disagreement instead of
		// reporting an empty payout as success.
		log.Printf("[Withdraw] ledger mismatch: user=%s memory=%d store=0", caller, e.l.withdrawable[caller])
		return 0, fmt.Errorf("game: withdrawable ledger mismatch for %s", caller)
	}
	e.l.withdrawable[caller] = 0

	log.Printf("[Withdraw] user=%s amount=%d", caller, paid)
	e.emit.Emit("withdraw", map[string]any{"user": caller, "amount": paid})
	return paid, nil
}
