package game

// Store is the persistence boundary the engine writes through. The
// implementation must make each call atomic: either all rows of a
// credit batch land or none do.
type Store interface {
	// Durable across games and restarts.
	LoadWithdrawable() (map[string]int64, error)
	LoadBans() (map[string]bool, error)

	// CreditWithdrawable adds every entry of the batch to the pending
	// ledger in a single transaction.
	CreditWithdrawable(credits map[string]int64) error

	// PayOutWithdrawable zeroes the caller's pending row and credits
	// their coin balance in the same transaction, returning the amount
	// paid. There is never a moment where the row is zeroed but the
	// payment has not landed.
	PayOutWithdrawable(user string) (int64, error)

	SetBan(player string, banned bool) error

	// Snapshot of the per-instance ledger so a restart mid-game does
	// not strand staked coins.
	SaveGame(data []byte) error
	LoadGame() ([]byte, error)
}

// Emitter receives structured game events. Observability only: the
// engine never reads anything back and ignores delivery.
type Emitter interface {
	Emit(event string, fields map[string]any)
}

type nopEmitter struct{}

func (nopEmitter) Emit(string, map[string]any) {}
