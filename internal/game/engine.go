// Package game implements the settlement core of the two-team
// pari-mutuel betting game: point accrual with a time-decaying rate,
// the windowed point-throw mechanic, and end-of-game payout
// distribution. The side with FEWER points wins.
package game

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine owns the game ledger. Every public method takes the calling
// account explicitly, runs under one mutex, and either completes fully
// or returns a *Error with no state change.
type Engine struct {
	mu sync.Mutex

	adminID    string
	timerBotID string
	stakeUnit  int64

	store Store
	emit  Emitter
	now   func() time.Time

	l ledger
}

// Options configures a new Engine. Store and AdminID are required;
// Now defaults to time.Now and Emitter to a no-op.
type Options struct {
	AdminID    string
	TimerBotID string
	StakeUnit  int64
	Store      Store
	Emitter    Emitter
	Now        func() time.Time
}

// New loads durable state (withdrawable ledger, ban list, any
// in-flight game snapshot) and returns a ready engine.
func New(opts Options) (*Engine, error) {
	if opts.AdminID == "" {
		return nil, fmt.Errorf("game: admin id is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("game: store is required")
	}
	if opts.StakeUnit <= 0 {
		return nil, fmt.Errorf("game: stake unit must be positive, got %d", opts.StakeUnit)
	}
	if opts.Emitter == nil {
		opts.Emitter = nopEmitter{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		adminID:    opts.AdminID,
		timerBotID: opts.TimerBotID,
		stakeUnit:  opts.StakeUnit,
		store:      opts.Store,
		emit:       opts.Emitter,
		now:        opts.Now,
	}
	e.l.Phase = PhaseIdle
	e.l.ThrowsUsed = make(map[string]int)
	e.l.LastThrow = make(map[string]time.Time)
	for i := range e.l.Teams {
		e.l.Teams[i] = TeamLedger{Bets: make(map[string]*BetRecord)}
	}

	withdrawable, err := opts.Store.LoadWithdrawable()
	if err != nil {
		return nil, fmt.Errorf("game: load withdrawable ledger: %w", err)
	}
	e.l.withdrawable = withdrawable

	bans, err := opts.Store.LoadBans()
	if err != nil {
		return nil, fmt.Errorf("game: load ban list: %w", err)
	}
	e.l.banned = bans

	if err := e.restore(); err != nil {
		return nil, err
	}

	return e, nil
}

// restore reloads an in-flight instance snapshot, if any.
func (e *Engine) restore() error {
	data, err := e.store.LoadGame()
	if err != nil {
		return fmt.Errorf("game: load snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var saved ledger
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("game: decode snapshot: %w", err)
	}
	saved.withdrawable = e.l.withdrawable
	saved.banned = e.l.banned
	if saved.ThrowsUsed == nil {
		saved.ThrowsUsed = make(map[string]int)
	}
	if saved.LastThrow == nil {
		saved.LastThrow = make(map[string]time.Time)
	}
	for i := range saved.Teams {
		if saved.Teams[i].Bets == nil {
			saved.Teams[i].Bets = make(map[string]*BetRecord)
		}
	}
	e.l = saved
	if e.l.Phase.active() {
		log.Printf("[Game] restored in-flight instance %s (phase=%s)", e.l.InstanceID, e.l.Phase)
	}
	return nil
}

// persist snapshots the per-instance ledger. Best effort: a failed
// snapshot is logged, the in-memory ledger stays authoritative.
func (e *Engine) persist() {
	data, err := json.Marshal(&e.l)
	if err != nil {
		log.Printf("[Game] encode snapshot: %v", err)
		return
	}
	if err := e.store.SaveGame(data); err != nil {
		log.Printf("[Game] save snapshot: %v", err)
	}
}

// ---------- guards ----------

func (e *Engine) requireAdmin(caller string) error {
	if caller != e.adminID {
		return newError(KindAuthorization, "only the admin can do that")
	}
	return nil
}

func (e *Engine) requireAdminOrTimerBot(caller string) error {
	if caller != e.adminID && (e.timerBotID == "" || caller != e.timerBotID) {
		return newError(KindAuthorization, "only the admin or the timer bot can do that")
	}
	return nil
}

func (e *Engine) requireNotPaused() error {
	if e.l.Paused {
		return newError(KindState, "the game is paused")
	}
	return nil
}

func (e *Engine) requireNotBanned(user string) error {
	if e.l.banned[user] {
		return newError(KindBanned, "you are banned from playing")
	}
	return nil
}

func (e *Engine) requireActive() error {
	if !e.l.Phase.active() {
		return newError(KindState, "no active game")
	}
	return nil
}

func (e *Engine) elapsed() time.Duration {
	return e.now().Sub(e.l.StartTime)
}

// ---------- admin controls ----------

// StartGame opens a fresh instance. All per-game state is reset;
// pending withdrawals and bans carry over.
func (e *Engine) StartGame(caller string, potUnits, durationSec, commissionPct int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if e.l.Phase.active() {
		return newError(KindState, "a game is already active")
	}
	if potUnits <= 0 {
		return newError(KindValidation, "pot size must be greater than zero")
	}
	if durationSec < 60 {
		return newError(KindValidation, "game duration must be at least 60 seconds")
	}
	if commissionPct < 0 || commissionPct > 50 {
		return newError(KindValidation, "commission rate must be between 0 and 50 percent")
	}

	e.l.resetInstance(uuid.NewString(), Config{
		PotUnits:      potUnits,
		DurationSec:   durationSec,
		CommissionPct: commissionPct,
	})
	e.persist()

	log.Printf("[Game] instance %s opened: pot=%d duration=%ds commission=%d%%",
		e.l.InstanceID, potUnits, durationSec, commissionPct)
	e.emit.Emit("game_opened", map[string]any{
		"instance":        e.l.InstanceID,
		"pot_units":       potUnits,
		"game_duration":   durationSec,
		"commission_rate": commissionPct,
		"early_bird_rate": EarlyBirdRate,
	})
	return nil
}

// StartTimer arms the countdown manually. Fails if already armed.
func (e *Engine) StartTimer(caller string) error {
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
	if e.l.Phase == PhaseTimerArmed {
		return newError(KindState, "timer already started")
	}
	e.armTimer("manual")
	return nil
}

// armTimer assumes the caller holds the lock and the game is Open.
func (e *Engine) armTimer(mode string) {
	e.l.Phase = PhaseTimerArmed
	e.l.StartTime = e.now()
	e.persist()

	log.Printf("[Game] timer armed (%s), duration %ds", mode, e.l.Cfg.DurationSec)
	e.emit.Emit("timer_started", map[string]any{
		"instance": e.l.InstanceID,
		"mode":     mode,
		"start":    e.l.StartTime.Unix(),
		"duration": e.l.Cfg.DurationSec,
	})
}

// Pause blocks all mutating player and admin actions except Unpause.
func (e *Engine) Pause(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.l.Paused = true
	e.persist()
	e.emit.Emit("game_paused", map[string]any{"by": caller})
	return nil
}

func (e *Engine) Unpause(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.l.Paused = false
	e.persist()
	e.emit.Emit("game_unpaused", map[string]any{"by": caller})
	return nil
}

// Ban flags a player. Bans are independent of game instances.
func (e *Engine) Ban(caller, player string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if err := e.store.SetBan(player, true); err != nil {
		return fmt.Errorf("game: save ban: %w", err)
	}
	e.l.banned[player] = true
	e.emit.Emit("player_banned", map[string]any{"player": player})
	return nil
}

func (e *Engine) Unban(caller, player string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.requireNotPaused(); err != nil {
		return err
	}
	if err := e.store.SetBan(player, false); err != nil {
		return fmt.Errorf("game: save unban: %w", err)
	}
	e.l.banned[player] = false
	e.emit.Emit("player_unbanned", map[string]any{"player": player})
	return nil
}
