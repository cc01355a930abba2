package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID  = "admin-1"
	timerID  = "timerbot-1"
	testUnit = int64(100)
)

// memStore is an in-memory Store. balances doubles as the coin wallet
// PayOutWithdrawable credits into.
type memStore struct {
	withdrawable map[string]int64
	bans         map[string]bool
	balances     map[string]int64
	snapshot     []byte
}

func newMemStore() *memStore {
	return &memStore{
		withdrawable: make(map[string]int64),
		bans:         make(map[string]bool),
		balances:     make(map[string]int64),
	}
}

func (s *memStore) LoadWithdrawable() (map[string]int64, error) {
	out := make(map[string]int64, len(s.withdrawable))
	for k, v := range s.withdrawable {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) LoadBans() (map[string]bool, error) {
	out := make(map[string]bool, len(s.bans))
	for k, v := range s.bans {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) CreditWithdrawable(credits map[string]int64) error {
	for user, amount := range credits {
		s.withdrawable[user] += amount
	}
	return nil
}

func (s *memStore) PayOutWithdrawable(user string) (int64, error) {
	amount := s.withdrawable[user]
	s.withdrawable[user] = 0
	s.balances[user] += amount
	return amount, nil
}

func (s *memStore) SetBan(player string, banned bool) error {
	s.bans[player] = banned
	return nil
}

func (s *memStore) SaveGame(data []byte) error {
	s.snapshot = append([]byte(nil), data...)
	return nil
}

func (s *memStore) LoadGame() ([]byte, error) {
	return s.snapshot, nil
}

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T) (*Engine, *memStore, *testClock) {
	t.Helper()
	store := newMemStore()
	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	e, err := New(Options{
		AdminID:    adminID,
		TimerBotID: timerID,
		StakeUnit:  testUnit,
		Store:      store,
		Now:        clock.Now,
	})
	require.NoError(t, err)
	return e, store, clock
}

func TestNewValidation(t *testing.T) {
	store := newMemStore()

	_, err := New(Options{Store: store, StakeUnit: testUnit})
	assert.Error(t, err, "admin id is required")

	_, err = New(Options{AdminID: adminID, StakeUnit: testUnit})
	assert.Error(t, err, "store is required")

	_, err = New(Options{AdminID: adminID, Store: store, StakeUnit: 0})
	assert.Error(t, err, "stake unit must be positive")
}

func TestStartGameValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)

	tests := []struct {
		name       string
		caller     string
		pot        int64
		duration   int64
		commission int64
		wantKind   Kind
	}{
		{"not admin", "stranger", 10, 3600, 10, KindAuthorization},
		{"zero pot", adminID, 0, 3600, 10, KindValidation},
		{"short duration", adminID, 10, 59, 10, KindValidation},
		{"negative commission", adminID, 10, 3600, -1, KindValidation},
		{"commission over half", adminID, 10, 3600, 51, KindValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := e.StartGame(tc.caller, tc.pot, tc.duration, tc.commission)
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, KindOf(err))
		})
	}

	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))
	assert.Equal(t, PhaseOpen, e.Status().Phase)

	err := e.StartGame(adminID, 10, 3600, 10)
	assert.Equal(t, KindState, KindOf(err), "second game while one is active")
}

func TestStartTimer(t *testing.T) {
	e, _, _ := newTestEngine(t)

	err := e.StartTimer(adminID)
	assert.Equal(t, KindState, KindOf(err), "no game opened yet")

	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))
	assert.Equal(t, KindAuthorization, KindOf(e.StartTimer("stranger")))

	require.NoError(t, e.StartTimer(adminID))
	st := e.Status()
	assert.Equal(t, PhaseTimerArmed, st.Phase)
	assert.True(t, st.TimerArmed)

	err = e.StartTimer(adminID)
	assert.Equal(t, KindState, KindOf(err), "timer already started")
}

func TestAutoArm(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))

	// Threshold per side: 10 units * 110% * 100 coins = 1100 coins.
	require.NoError(t, e.Bet("alice", TeamA, 1100))
	assert.Equal(t, PhaseOpen, e.Status().Phase, "one side alone must not arm")

	require.NoError(t, e.Bet("bob", TeamB, 1000))
	assert.Equal(t, PhaseOpen, e.Status().Phase, "below threshold")

	require.NoError(t, e.Bet("bob", TeamB, 100))
	assert.Equal(t, PhaseTimerArmed, e.Status().Phase, "both sides covered pot plus commission")
}

func TestPauseBlocksEverything(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))

	assert.Equal(t, KindAuthorization, KindOf(e.Pause("alice")))
	require.NoError(t, e.Pause(adminID))

	assert.Equal(t, KindState, KindOf(e.Bet("alice", TeamA, 500)))
	assert.Equal(t, KindState, KindOf(e.ThrowPoints("alice", 70)))
	_, err := e.Withdraw("alice")
	assert.Equal(t, KindState, KindOf(err))
	assert.Equal(t, KindState, KindOf(e.StartTimer(adminID)))

	require.NoError(t, e.Unpause(adminID))
	require.NoError(t, e.Bet("alice", TeamA, 500))
}

func TestBanPersistsInStore(t *testing.T) {
	e, store, _ := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))

	assert.Equal(t, KindAuthorization, KindOf(e.Ban("alice", "bob")))

	require.NoError(t, e.Ban(adminID, "bob"))
	assert.True(t, e.IsBanned("bob"))
	assert.True(t, store.bans["bob"])
	assert.Equal(t, KindBanned, KindOf(e.Bet("bob", TeamA, 500)))

	require.NoError(t, e.Unban(adminID, "bob"))
	assert.False(t, e.IsBanned("bob"))
	require.NoError(t, e.Bet("bob", TeamA, 500))
}

func TestWithdrawableSurvivesNewGame(t *testing.T) {
	e, _, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 1, 3600, 0))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.Bet("bob", TeamB, 500))
	require.NoError(t, e.StartTimer(adminID))
	clock.Advance(time.Hour)
	require.NoError(t, e.ThrowPoints("alice", 70))
	require.NoError(t, e.EndGame(adminID))

	won := e.Withdrawable("bob")
	require.Positive(t, won)

	require.NoError(t, e.StartGame(adminID, 5, 3600, 10))
	assert.Equal(t, won, e.Withdrawable("bob"), "pending winnings must carry over")
}

func TestRestoreFromSnapshot(t *testing.T) {
	e, store, clock := newTestEngine(t)
	require.NoError(t, e.StartGame(adminID, 10, 3600, 10))
	require.NoError(t, e.Bet("alice", TeamA, 500))
	require.NoError(t, e.StartTimer(adminID))

	e2, err := New(Options{
		AdminID:    adminID,
		TimerBotID: timerID,
		StakeUnit:  testUnit,
		Store:      store,
		Now:        clock.Now,
	})
	require.NoError(t, err)

	st := e2.Status()
	assert.Equal(t, PhaseTimerArmed, st.Phase)
	assert.Equal(t, e.Status().InstanceID, st.InstanceID)
	rec, ok := e2.UserBet("alice", TeamA)
	require.True(t, ok)
	assert.Equal(t, int64(500), rec.Amount)
	assert.Equal(t, int64(160), rec.Points)
}

func TestExpired(t *testing.T) {
	e, _, clock := newTestEngine(t)
	assert.False(t, e.Expired())

	require.NoError(t, e.StartGame(adminID, 10, 120, 10))
	assert.False(t, e.Expired(), "open but not armed")

	require.NoError(t, e.StartTimer(adminID))
	assert.False(t, e.Expired())

	clock.Advance(119 * time.Second)
	assert.False(t, e.Expired())

	clock.Advance(time.Second)
	assert.True(t, e.Expired())
}
