package game

import (
	"fmt"
	"sort"
	"time"
)

// Status is the public snapshot of the current instance.
type Status struct {
	InstanceID    string    `json:"instance_id"`
	Phase         Phase     `json:"phase"`
	Active        bool      `json:"active"`
	TimerArmed    bool      `json:"timer_armed"`
	Paused        bool      `json:"paused"`
	ForceRefund   bool      `json:"force_refund"`
	StartTime     time.Time `json:"start_time"`
	DurationSec   int64     `json:"game_duration"`
	PotUnits      int64     `json:"pot_units"`
	CommissionPct int64     `json:"commission_rate"`
	TeamAPoints   int64     `json:"team_a_points"`
	TeamBPoints   int64     `json:"team_b_points"`
	TeamAStaked   int64     `json:"team_a_staked"`
	TeamBStaked   int64     `json:"team_b_staked"`
	WinningTeam   string    `json:"winning_team"`
}

// AdminInfo is the admin-facing configuration view.
type AdminInfo struct {
	AdminID       string `json:"admin"`
	TimerBotID    string `json:"timer_bot"`
	Paused        bool   `json:"paused"`
	StakeUnit     int64  `json:"stake_unit"`
	PotUnits      int64  `json:"pot_units"`
	CommissionPct int64  `json:"commission_rate"`
	DurationSec   int64  `json:"game_duration"`
}

// ThrowEligibility explains whether a player could throw right now.
type ThrowEligibility struct {
	CanThrow        bool   `json:"can_throw"`
	Reason          string `json:"reason"`
	Team            string `json:"team,omitempty"`
	ThrowsUsed      int    `json:"throws_used"`
	ThrowsRemaining int    `json:"throws_remaining"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Status{
		InstanceID:    e.l.InstanceID,
		Phase:         e.l.Phase,
		Active:        e.l.Phase.active(),
		TimerArmed:    e.l.Phase == PhaseTimerArmed,
		Paused:        e.l.Paused,
		ForceRefund:   e.l.ForceRefund,
		StartTime:     e.l.StartTime,
		DurationSec:   e.l.Cfg.DurationSec,
		PotUnits:      e.l.Cfg.PotUnits,
		CommissionPct: e.l.Cfg.CommissionPct,
		TeamAPoints:   e.l.Teams[TeamA].TotalPoints,
		TeamBPoints:   e.l.Teams[TeamB].TotalPoints,
		TeamAStaked:   e.l.Teams[TeamA].TotalAmount,
		TeamBStaked:   e.l.Teams[TeamB].TotalAmount,
	}
	if e.l.Winner != nil {
		s.WinningTeam = e.l.Winner.String()
	}
	return s
}

func (e *Engine) AdminInfo() AdminInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	return AdminInfo{
		AdminID:       e.adminID,
		TimerBotID:    e.timerBotID,
		Paused:        e.l.Paused,
		StakeUnit:     e.stakeUnit,
		PotUnits:      e.l.Cfg.PotUnits,
		CommissionPct: e.l.Cfg.CommissionPct,
		DurationSec:   e.l.Cfg.DurationSec,
	}
}

// TeamBets returns a copy of one side's bet records keyed by player.
func (e *Engine) TeamBets(team Team) map[string]BetRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]BetRecord, len(e.l.Teams[team].Bets))
	for user, rec := range e.l.Teams[team].Bets {
		out[user] = *rec
	}
	return out
}

// UserBet returns a player's record on one team, if any.
func (e *Engine) UserBet(user string, team Team) (BetRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.l.Teams[team].Bets[user]
	if !ok {
		return BetRecord{}, false
	}
	return *rec, true
}

// RatePreview returns the points a bet of the given staking units
// would earn right now. Zero when no game is active.
func (e *Engine) RatePreview(amountUnits int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.l.Phase.active() {
		return 0
	}
	if e.l.Phase != PhaseTimerArmed {
		return amountUnits * EarlyBirdRate
	}
	return amountUnits * PointRate(e.elapsed(), true)
}

// StakeUnit returns the coins-per-staking-unit conversion.
func (e *Engine) StakeUnit() int64 { return e.stakeUnit }

func (e *Engine) IsBanned(player string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.l.banned[player]
}

// BannedPlayers lists currently banned IDs, sorted.
func (e *Engine) BannedPlayers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []string
	for player, banned := range e.l.banned {
		if banned {
			out = append(out, player)
		}
	}
	sort.Strings(out)
	return out
}

// Withdrawable returns the caller's pending payable amount.
func (e *Engine) Withdrawable(user string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.l.withdrawable[user]
}

// CanThrow mirrors the throw preconditions without mutating anything.
func (e *Engine) CanThrow(user string) ThrowEligibility {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, onA := e.l.Teams[TeamA].Bets[user]
	_, onB := e.l.Teams[TeamB].Bets[user]

	switch {
	case onA && onB:
		return ThrowEligibility{Reason: "bet on both teams"}
	case !onA && !onB:
		return ThrowEligibility{Reason: "no bets placed"}
	}

	team := TeamA
	if onB {
		team = TeamB
	}
	used := e.l.ThrowsUsed[user]
	el := ThrowEligibility{
		Team:            team.String(),
		ThrowsUsed:      used,
		ThrowsRemaining: MaxThrowsPerGame - used,
	}

	if used >= MaxThrowsPerGame {
		el.Reason = "throw limit reached"
		return el
	}
	if e.l.Phase != PhaseTimerArmed {
		el.Reason = "timer not started"
		return el
	}
	lo, hi, open := throwWindow(e.elapsed())
	if !open {
		el.Reason = "throw window closed"
		return el
	}
	el.CanThrow = true
	el.Reason = fmt.Sprintf("window open: %d-%d%%, %d/%d throws used", lo, hi, used, MaxThrowsPerGame)
	return el
}

// Expired reports whether an armed countdown has run out. The timer
// bot polls this to decide when to call EndGame.
func (e *Engine) Expired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.l.Phase != PhaseTimerArmed {
		return false
	}
	return e.elapsed() >= time.Duration(e.l.Cfg.DurationSec)*time.Second
}
