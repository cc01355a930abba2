package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// Team identifies one of the two sides of a game. Using a fixed
// two-element index instead of map keys lets the ledger keep both
// sides in a [2]TeamLedger and makes dispatch exhaustive.
type Team int

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// ParseTeam accepts "A"/"B" (case-insensitive).
func ParseTeam(s string) (Team, error) {
	switch s {
	case "A", "a":
		return TeamA, nil
	case "B", "b":
		return TeamB, nil
	}
	return TeamA, newError(KindValidation, "team must be A or B")
}

func (t Team) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTeam(s)
	if err != nil {
		return fmt.Errorf("invalid team %q", s)
	}
	*t = parsed
	return nil
}

// Phase is the game lifecycle state.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseOpen          Phase = "open"
	PhaseTimerArmed    Phase = "timer_armed"
	PhaseEnded         Phase = "ended"
	PhaseForceRefunded Phase = "force_refunded"
)

// active reports whether bets are currently accepted in this phase.
func (p Phase) active() bool {
	return p == PhaseOpen || p == PhaseTimerArmed
}

// BetRecord is one player's position on one team. Amount only ever
// grows; Points grow at bet time and shrink only through throws.
type BetRecord struct {
	Amount int64 `json:"amount"`
	Points int64 `json:"points"`
}

// TeamLedger aggregates one side. TotalPoints/TotalAmount are kept in
// lockstep with the per-player records, never recomputed.
type TeamLedger struct {
	Bets        map[string]*BetRecord `json:"bets"`
	TotalPoints int64                 `json:"total_points"`
	TotalAmount int64                 `json:"total_amount"`
}

// Config holds the admin-set parameters of one game instance.
// PotUnits is in staking units, not coins.
type Config struct {
	PotUnits      int64 `json:"pot_units"`
	DurationSec   int64 `json:"duration_sec"`
	CommissionPct int64 `json:"commission_pct"`
}

// ledger is the single owned aggregate holding all mutable game state.
// The withdrawable map and ban list survive start_game resets; every
// other field is per-instance.
type ledger struct {
	InstanceID  string        `json:"instance_id"`
	Phase       Phase         `json:"phase"`
	Paused      bool          `json:"paused"`
	ForceRefund bool          `json:"force_refund"`
	Cfg         Config        `json:"config"`
	StartTime   time.Time     `json:"start_time"`
	Teams       [2]TeamLedger `json:"teams"`
	Winner      *Team         `json:"winner,omitempty"`

	ThrowsUsed map[string]int       `json:"throws_used"`
	LastThrow  map[string]time.Time `json:"last_throw"`

	// Durable across games; persisted row-by-row in the store, kept
	// here as the authoritative in-call view.
	withdrawable map[string]int64
	banned       map[string]bool
}

// resetInstance clears all per-game state for a fresh instance.
// Withdrawable balances and bans deliberately carry over.
func (l *ledger) resetInstance(id string, cfg Config) {
	l.InstanceID = id
	l.Phase = PhaseOpen
	l.ForceRefund = false
	l.Cfg = cfg
	l.StartTime = time.Time{}
	l.Winner = nil
	l.ThrowsUsed = make(map[string]int)
	l.LastThrow = make(map[string]time.Time)
	for i := range l.Teams {
		l.Teams[i] = TeamLedger{Bets: make(map[string]*BetRecord)}
	}
}
