package game

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	lobbyCh     chan []PlayerInfo
	roundCh     chan RoundAnnounce
	firstCh     chan PlayerInfo
	noSubCh     chan int
	manualCh    chan ManualValidation
	scoredCh    chan RoundResult
	finishedCh  chan []PlayerInfo
	cancelledCh chan int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		lobbyCh:     make(chan []PlayerInfo, 16),
		roundCh:     make(chan RoundAnnounce, 16),
		firstCh:     make(chan PlayerInfo, 16),
		noSubCh:     make(chan int, 16),
		manualCh:    make(chan ManualValidation, 16),
		scoredCh:    make(chan RoundResult, 16),
		finishedCh:  make(chan []PlayerInfo, 16),
		cancelledCh: make(chan int64, 16),
	}
}

func (g *fakeGateway) LobbyUpdated(_ int64, _ Mode, players []PlayerInfo) error {
	g.lobbyCh <- players
	return nil
}

func (g *fakeGateway) RoundAnnounced(_ int64, ev RoundAnnounce) error {
	g.roundCh <- ev
	return nil
}

func (g *fakeGateway) FirstSubmitterAnnounced(_ int64, player PlayerInfo, _ time.Duration) error {
	g.firstCh <- player
	return nil
}

func (g *fakeGateway) RoundEndedNoSubmissions(_ int64, number int) error {
	g.noSubCh <- number
	return nil
}

func (g *fakeGateway) ManualValidationNeeded(_ int64, ev ManualValidation) error {
	g.manualCh <- ev
	return nil
}

func (g *fakeGateway) RoundScored(_ int64, ev RoundResult) error {
	g.scoredCh <- ev
	return nil
}

func (g *fakeGateway) GameFinished(_ int64, standings []PlayerInfo) error {
	g.finishedCh <- standings
	return nil
}

func (g *fakeGateway) GameCancelled(roomID int64) error {
	g.cancelledCh <- roomID
	return nil
}

type roundStatCall struct {
	userID         int64
	validatedCount int
	submittedAny   bool
}

type fakeStats struct {
	mtx         sync.Mutex
	gamesPlayed [][]int64
	roundStats  []roundStatCall
	finished    []FinishedGame
}

func (s *fakeStats) IncrementGamesPlayed(userIDs []int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.gamesPlayed = append(s.gamesPlayed, userIDs)
	return nil
}

func (s *fakeStats) IncrementRoundStats(userID int64, validatedCount int, submittedAny bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.roundStats = append(s.roundStats, roundStatCall{userID, validatedCount, submittedAny})
	return nil
}

func (s *fakeStats) RecordFinishedGame(fin FinishedGame) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.finished = append(s.finished, fin)
	return nil
}

func (s *fakeStats) roundStatCalls() []roundStatCall {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	out := make([]roundStatCall, len(s.roundStats))
	copy(out, s.roundStats)
	return out
}

func recvEvent[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func testConfig(gateway *fakeGateway, oracle Oracle, stats *fakeStats) Config {
	return Config{
		RoomID:          100,
		Mode:            ModeClassic,
		CreatorID:       1,
		CreatorName:     "alice",
		Categories:      []string{"Name", "Animal", "Fruit"},
		RoundsTotal:     2,
		LobbyTimeout:    time.Minute,
		NoSubmitTimeout: time.Second,
		SubmitWindow:    200 * time.Millisecond,
		InterRoundDelay: 10 * time.Millisecond,
		Gateway:         gateway,
		Oracle:          oracle,
		Stats:           stats,
		Validation:      ValidationConfig{Retries: 1, Backoff: time.Millisecond},
	}
}

func TestSessionFullGame(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}
	doneCh := make(chan struct{})

	config := testConfig(gateway, approveAllOracle(), stats)
	config.DoneFn = func(*Session) error {
		close(doneCh)
		return nil
	}

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	require.NoError(t, s.Join(2, "bob"))
	recvEvent(t, gateway.lobbyCh)
	assert.ErrorIs(t, s.Join(2, "bob"), ErrAlreadyJoined)

	assert.ErrorIs(t, s.Start(2, false), ErrNotAuthorized)
	require.NoError(t, s.Start(1, false))
	assert.ErrorIs(t, s.Join(3, "carol"), ErrNotLobby)

	for roundNum := 1; roundNum <= 2; roundNum++ {
		ann := recvEvent(t, gateway.roundCh)
		assert.Equal(t, roundNum, ann.Number)
		assert.Equal(t, 2, ann.Total)
		assert.Len(t, ann.Categories, 3)

		l := string(ann.Letter)
		require.NoError(t, s.Submit(1, "Name: "+l+"arla\nAnimal: "+l+"at\nFruit: "+l+"herry"))
		first := recvEvent(t, gateway.firstCh)
		assert.Equal(t, int64(1), first.ID)

		assert.ErrorIs(t, s.Submit(1, "again"), ErrAlreadySubmit)
		assert.ErrorIs(t, s.Submit(3, "Name: x"), ErrNotJoined)

		require.NoError(t, s.Submit(2, "Name: "+l+"arl\nAnimal: "+l+"at"))

		scored := recvEvent(t, gateway.scoredCh)
		assert.Equal(t, roundNum, scored.Number)
		// unique name and fruit for alice, shared animal, bob misses fruit
		assert.Equal(t, PointsUnique*2+PointsShared, scored.Points[1])
		assert.Equal(t, PointsUnique+PointsShared, scored.Points[2])
	}

	standings := recvEvent(t, gateway.finishedCh)
	require.Len(t, standings, 2)
	assert.Equal(t, int64(1), standings[0].ID)
	assert.Equal(t, (PointsUnique*2+PointsShared)*2, standings[0].Score)

	recvEvent(t, doneCh)
	assert.Equal(t, StateKindFinished, s.State())
	assert.Len(t, s.History(), 2)

	stats.mtx.Lock()
	require.Len(t, stats.gamesPlayed, 1)
	assert.ElementsMatch(t, []int64{1, 2}, stats.gamesPlayed[0])
	require.Len(t, stats.finished, 1)
	assert.Equal(t, int64(100), stats.finished[0].RoomID)
	stats.mtx.Unlock()

	calls := stats.roundStatCalls()
	assert.Len(t, calls, 4)
	for _, call := range calls {
		assert.True(t, call.submittedAny)
	}
}

func TestSessionNoSubmissions(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}

	config := testConfig(gateway, approveAllOracle(), stats)
	config.RoundsTotal = 1
	config.NoSubmitTimeout = 30 * time.Millisecond

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	require.NoError(t, s.Join(2, "bob"))
	recvEvent(t, gateway.lobbyCh)
	require.NoError(t, s.Start(1, false))
	recvEvent(t, gateway.roundCh)

	number := recvEvent(t, gateway.noSubCh)
	assert.Equal(t, 1, number)

	recvEvent(t, gateway.finishedCh)

	history := s.History()
	require.Len(t, history, 1)
	assert.Empty(t, history[0])
	assert.Empty(t, stats.roundStatCalls())
}

func TestSessionCancel(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}
	doneCh := make(chan struct{})

	config := testConfig(gateway, approveAllOracle(), stats)
	config.DoneFn = func(*Session) error {
		close(doneCh)
		return nil
	}

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	require.NoError(t, s.Join(2, "bob"))
	recvEvent(t, gateway.lobbyCh)
	require.NoError(t, s.Start(1, false))
	recvEvent(t, gateway.roundCh)

	assert.ErrorIs(t, s.Cancel(2, false), ErrNotAuthorized)
	require.NoError(t, s.Cancel(1, false))

	recvEvent(t, gateway.cancelledCh)
	recvEvent(t, doneCh)
	assert.Equal(t, StateKindCancelled, s.State())

	assert.Error(t, s.Submit(1, "Name: x"))
}

func TestSessionLobbyTimeout(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}

	config := testConfig(gateway, approveAllOracle(), stats)
	config.LobbyTimeout = 20 * time.Millisecond

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	recvEvent(t, gateway.cancelledCh)
	assert.Equal(t, StateKindCancelled, s.State())
}

func TestSessionManualValidation(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}

	brokenOracle := &fakeOracle{fn: func(_ rune, _ []BatchItem) (map[int]bool, error) {
		return nil, fmt.Errorf("oracle down")
	}}

	config := testConfig(gateway, brokenOracle, stats)
	config.RoundsTotal = 1

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	require.NoError(t, s.Join(2, "bob"))
	recvEvent(t, gateway.lobbyCh)

	assert.ErrorIs(t, s.Decide(AdminDecision{Action: DecisionApproveAll}, true), ErrNoManualReview)

	require.NoError(t, s.Start(1, false))
	ann := recvEvent(t, gateway.roundCh)

	l := string(ann.Letter)
	require.NoError(t, s.Submit(1, "Name: "+l+"arla\nAnimal: "+l+"at\nFruit: "+l+"herry"))
	recvEvent(t, gateway.firstCh)
	require.NoError(t, s.Submit(2, "Name: "+l+"arl"))

	manual := recvEvent(t, gateway.manualCh)
	assert.Len(t, manual.Answers, 2)

	assert.ErrorIs(t, s.Decide(AdminDecision{Action: DecisionApproveAll}, false), ErrNotAuthorized)
	assert.ErrorIs(t,
		s.Decide(AdminDecision{Action: DecisionApprovePlayer, TargetID: 99}, true), ErrNotJoined)

	// one of two submitters decided, the round keeps waiting
	require.NoError(t, s.Decide(AdminDecision{Action: DecisionApprovePlayer, TargetID: 1}, true))
	select {
	case <-gateway.scoredCh:
		t.Fatal("scored before every submitter was decided")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, s.Decide(AdminDecision{Action: DecisionRejectPlayer, TargetID: 2}, true))

	scored := recvEvent(t, gateway.scoredCh)
	// alice approved: three unique answers, bob rejected outright
	assert.Equal(t, PointsUnique*3, scored.Points[1])
	assert.Equal(t, 0, scored.Points[2])

	recvEvent(t, gateway.finishedCh)
	assert.Equal(t, StateKindFinished, s.State())
}

func TestSessionLobbyFull(t *testing.T) {
	gateway := newFakeGateway()
	stats := &fakeStats{}

	config := testConfig(gateway, approveAllOracle(), stats)
	config.MaxPlayers = 2

	s := NewSession(config)
	s.Run(context.Background())
	defer s.Stop()

	require.NoError(t, s.Join(2, "bob"))
	recvEvent(t, gateway.lobbyCh)
	assert.ErrorIs(t, s.Join(3, "carol"), ErrLobbyFull)
}
