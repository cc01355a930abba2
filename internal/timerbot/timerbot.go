// Package timerbot settles expired games.
//
// The engine never acts on its own clock. A small poller watches the
// armed countdown and, once it runs out, calls EndGame under the timer
// bot identity the admin configured.
package timerbot

import (
	"context"
	"log"
	"time"

	"timebet/internal/game"
)

type Bot struct {
	engine   *game.Engine
	callerID string
	interval time.Duration
}

func New(engine *game.Engine, callerID string, pollSeconds int64) *Bot {
	if pollSeconds <= 0 {
		pollSeconds = 30
	}
	return &Bot{
		engine:   engine,
		callerID: callerID,
		interval: time.Duration(pollSeconds) * time.Second,
	}
}

// Run blocks until ctx is cancelled, polling for an expired countdown.
func (b *Bot) Run(ctx context.Context) {
	log.Printf("[Timer] polling every %s as %s", b.interval, b.callerID)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Timer] stopped")
			return
		case <-ticker.C:
			b.tick()
		}
	}
}

func (b *Bot) tick() {
	if !b.engine.Expired() {
		return
	}

	if err := b.engine.EndGame(b.callerID); err != nil {
		// A tie or a pause keeps the game open. Keep polling; the
		// admin resolves it and the next tick settles.
		log.Printf("[Timer] settlement attempt failed: %v", err)
		return
	}

	st := b.engine.Status()
	log.Printf("[Timer] game %s settled, winner: Team %s", st.InstanceID, st.WinningTeam)
}
