package game

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adedonha-games/adedonha/internal/logging"
	"github.com/valyala/fastrand"
)

const (
	StateKindLobby uint8 = iota + 1
	StateKindRunning
	StateKindFinished
	StateKindCancelled
)

type Player struct {
	ID   int64
	Name string
}

type cmdKind uint8

const (
	cmdJoin cmdKind = iota + 1
	cmdStart
	cmdCancel
	cmdSubmit
	cmdDecide
)

type command struct {
	kind     cmdKind
	playerID int64
	name     string
	text     string
	admin    bool
	decision AdminDecision
	resp     chan error
}

type validationOutcome struct {
	number  int
	records map[int64][]bool
	err     error
}

// NewSession builds a room in lobby state with the creator already
// joined. Run starts the room's single goroutine; every external event
// is funneled through it, which is what makes submission acceptance and
// timer arming atomic.
func NewSession(config Config) *Session {
	config.Normalize()
	s := &Session{
		Config:      config,
		RoomID:      config.RoomID,
		CreatedAt:   time.Now(),
		state:       StateKindLobby,
		scores:      map[int64]int{},
		cmdCh:       make(chan command, 16),
		valCh:       make(chan validationOutcome, 1),
		closed:      make(chan struct{}),
		coordinator: NewCoordinator(config.Oracle, config.Validation),
	}

	s.players = append(s.players, &Player{ID: config.CreatorID, Name: config.CreatorName})
	s.scores[config.CreatorID] = 0

	return s
}

type Session struct {
	Config Config

	RoomID    int64
	CreatedAt time.Time

	mtx     sync.RWMutex
	state   uint8
	players []*Player
	scores  map[int64]int
	history []map[int64]int

	// loop-owned
	curr            *round
	lobbyTimer      *time.Timer
	interRoundTimer *time.Timer

	coordinator *Coordinator

	cmdCh  chan command
	valCh  chan validationOutcome
	closed chan struct{}

	sema   sync.Once
	cancel func()
}

func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.sema.Do(func() {
		go s.loop(ctx)
	})
	logging.FromContext(ctx).Infof(
		"room created, chat: %d, mode: %s, creator: %s", s.RoomID, s.Config.Mode, s.Config.CreatorName,
	)
}

func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Join adds a player while the room is in lobby state.
func (s *Session) Join(playerID int64, name string) error {
	return s.do(command{kind: cmdJoin, playerID: playerID, name: name})
}

// Start launches the game. The admin flag is the gateway's authorization
// verdict for the requester; the engine only combines it with the
// creator check.
func (s *Session) Start(requesterID int64, admin bool) error {
	return s.do(command{kind: cmdStart, playerID: requesterID, admin: admin})
}

// Cancel aborts the room from lobby or running state.
func (s *Session) Cancel(requesterID int64, admin bool) error {
	return s.do(command{kind: cmdCancel, playerID: requesterID, admin: admin})
}

// Submit registers a player's answer text for the active round.
func (s *Session) Submit(playerID int64, text string) error {
	return s.do(command{kind: cmdSubmit, playerID: playerID, text: text})
}

// Decide applies an admin decision to a round stuck in manual
// validation.
func (s *Session) Decide(decision AdminDecision, admin bool) error {
	return s.do(command{kind: cmdDecide, decision: decision, admin: admin})
}

func (s *Session) do(cmd command) error {
	cmd.resp = make(chan error, 1)
	select {
	case s.cmdCh <- cmd:
	case <-s.closed:
		return ErrRoomClosed
	}

	select {
	case err := <-cmd.resp:
		return err
	case <-s.closed:
		return ErrRoomClosed
	}
}

func (s *Session) State() uint8 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.state
}

func (s *Session) setState(state uint8) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.state = state
}

// Players returns the join-ordered roster snapshot.
func (s *Session) Players() []PlayerInfo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.playersLocked()
}

func (s *Session) playersLocked() []PlayerInfo {
	infos := make([]PlayerInfo, len(s.players))
	for i, p := range s.players {
		infos[i] = PlayerInfo{ID: p.ID, Name: p.Name, Score: s.scores[p.ID]}
	}
	return infos
}

// Standings sorts players by cumulative score descending, stable by join
// order so equal scores never imply a ranking.
func (s *Session) Standings() []PlayerInfo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	infos := s.playersLocked()
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Score > infos[j].Score
	})
	return infos
}

// RoundSize is the number of answers expected in one submission.
func (s *Session) RoundSize() int {
	if s.Config.Mode == ModeCustom && s.Config.CategoriesPerRound < len(s.Config.Categories) {
		return s.Config.CategoriesPerRound
	}
	return len(s.Config.Categories)
}

// History returns the completed-round score maps, one per scored round.
func (s *Session) History() []map[int64]int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]map[int64]int, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) loop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("game.session")
	defer close(s.closed)

	s.lobbyTimer = time.NewTimer(s.Config.LobbyTimeout)
	defer func() {
		stopTimer(&s.lobbyTimer)
		stopTimer(&s.interRoundTimer)
		if s.curr != nil {
			s.curr.close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("room loop closed, chat: %d", s.RoomID)
			return
		case cmd := <-s.cmdCh:
			cmd.resp <- s.handle(ctx, cmd)
		case <-timerC(s.lobbyTimer):
			s.onLobbyTimeout(ctx)
		case <-s.noSubmitC():
			s.closeRound(ctx)
		case <-s.windowC():
			s.closeRound(ctx)
		case <-s.hardStopC():
			s.closeRound(ctx)
		case <-timerC(s.interRoundTimer):
			stopTimer(&s.interRoundTimer)
			s.startRound(ctx, s.curr.number+1)
		case out := <-s.valCh:
			s.onValidated(ctx, out)
		}
	}
}

func (s *Session) noSubmitC() <-chan time.Time {
	if s.curr == nil {
		return nil
	}
	return timerC(s.curr.noSubmitTimer)
}

func (s *Session) windowC() <-chan time.Time {
	if s.curr == nil {
		return nil
	}
	return timerC(s.curr.windowTimer)
}

func (s *Session) hardStopC() <-chan time.Time {
	if s.curr == nil {
		return nil
	}
	return timerC(s.curr.hardStopTimer)
}

func (s *Session) handle(ctx context.Context, cmd command) error {
	switch cmd.kind {
	case cmdJoin:
		return s.handleJoin(ctx, cmd)
	case cmdStart:
		return s.handleStart(ctx, cmd)
	case cmdCancel:
		return s.handleCancel(ctx, cmd)
	case cmdSubmit:
		return s.handleSubmit(ctx, cmd)
	case cmdDecide:
		return s.handleDecide(ctx, cmd)
	default:
		return ErrRoomClosed
	}
}

func (s *Session) handleJoin(ctx context.Context, cmd command) error {
	if s.State() != StateKindLobby {
		return ErrNotLobby
	}

	if _, ok := s.findPlayer(cmd.playerID); ok {
		return ErrAlreadyJoined
	}

	s.mtx.Lock()
	if len(s.players) >= s.Config.MaxPlayers {
		s.mtx.Unlock()
		return ErrLobbyFull
	}
	s.players = append(s.players, &Player{ID: cmd.playerID, Name: cmd.name})
	s.scores[cmd.playerID] = 0
	s.mtx.Unlock()

	s.notify(ctx, "lobby updated", s.Config.Gateway.LobbyUpdated(s.RoomID, s.Config.Mode, s.Players()))

	return nil
}

func (s *Session) handleStart(ctx context.Context, cmd command) error {
	if s.State() != StateKindLobby {
		return ErrNotLobby
	}

	if cmd.playerID != s.Config.CreatorID && !cmd.admin {
		return ErrNotAuthorized
	}

	stopTimer(&s.lobbyTimer)
	s.setState(StateKindRunning)

	ids := make([]int64, 0, len(s.players))
	for _, p := range s.players {
		ids = append(ids, p.ID)
	}
	if err := s.Config.Stats.IncrementGamesPlayed(ids); err != nil {
		logging.FromContext(ctx).Errorf("increment games played, chat %d: %v", s.RoomID, err)
	}

	s.startRound(ctx, 1)

	return nil
}

func (s *Session) handleCancel(ctx context.Context, cmd command) error {
	switch s.State() {
	case StateKindLobby, StateKindRunning:
	default:
		return ErrRoomClosed
	}

	if cmd.playerID != s.Config.CreatorID && !cmd.admin {
		return ErrNotAuthorized
	}

	s.cancelGame(ctx)

	return nil
}

func (s *Session) handleSubmit(ctx context.Context, cmd command) error {
	if s.State() != StateKindRunning {
		return ErrNotRunning
	}

	player, ok := s.findPlayer(cmd.playerID)
	if !ok {
		return ErrNotJoined
	}

	if s.curr == nil {
		return ErrNoActiveRound
	}

	first, err := s.curr.accept(cmd.playerID, cmd.text)
	if err != nil {
		return err
	}

	if first {
		s.notify(ctx, "first submitter",
			s.Config.Gateway.FirstSubmitterAnnounced(s.RoomID, PlayerInfo{ID: player.ID, Name: player.Name}, s.curr.window))
	}

	return nil
}

func (s *Session) handleDecide(ctx context.Context, cmd command) error {
	r := s.curr
	if r == nil || r.state != roundStateValidating || r.manual == nil {
		return ErrNoManualReview
	}

	if !cmd.admin {
		return ErrNotAuthorized
	}

	switch cmd.decision.Action {
	case DecisionApproveAll:
		for playerID := range r.submissions {
			r.manual[playerID] = true
		}
	case DecisionRejectAll:
		for playerID := range r.submissions {
			r.manual[playerID] = false
		}
	case DecisionApprovePlayer, DecisionRejectPlayer:
		if _, ok := r.submissions[cmd.decision.TargetID]; !ok {
			return ErrNotJoined
		}
		r.manual[cmd.decision.TargetID] = cmd.decision.Action == DecisionApprovePlayer
	default:
		return ErrNoManualReview
	}

	if len(r.manual) == len(r.submissions) {
		s.resolveManual(ctx)
	}

	return nil
}

func (s *Session) onLobbyTimeout(ctx context.Context) {
	stopTimer(&s.lobbyTimer)
	if s.State() != StateKindLobby {
		return
	}

	s.mtx.RLock()
	n := len(s.players)
	s.mtx.RUnlock()
	if n > 1 {
		return
	}

	logging.FromContext(ctx).Infof("lobby expired, chat: %d", s.RoomID)
	s.cancelGame(ctx)
}

func (s *Session) startRound(ctx context.Context, number int) {
	letter := drawLetter()
	categories := s.roundCategories()

	s.curr = newRound(number, categories, letter, s.Config.NoSubmitTimeout, s.Config.SubmitWindow, s.Config.HardStop)

	s.notify(ctx, "round announced", s.Config.Gateway.RoundAnnounced(s.RoomID, RoundAnnounce{
		Number:     number,
		Total:      s.Config.RoundsTotal,
		Letter:     letter,
		Categories: categories,
		Window:     s.Config.SubmitWindow,
		HardStop:   s.Config.HardStop,
	}))
}

// closeRound ends the submission phase, whichever timer got there first,
// and either records an empty round or hands the answers to validation.
func (s *Session) closeRound(ctx context.Context) {
	r := s.curr
	if r == nil {
		return
	}
	switch r.state {
	case roundStateCollecting, roundStateWindowOpen:
	default:
		return
	}

	r.close()

	if len(r.submissions) == 0 {
		s.mtx.Lock()
		s.history = append(s.history, map[int64]int{})
		s.mtx.Unlock()
		r.state = roundStateScored
		s.notify(ctx, "round ended", s.Config.Gateway.RoundEndedNoSubmissions(s.RoomID, r.number))
		s.advance(ctx)
		return
	}

	r.answers = make(map[int64][]string, len(r.submissions))
	for playerID, text := range r.submissions {
		r.answers[playerID] = Parse(text, len(r.categories))
	}
	r.state = roundStateValidating

	// validation must not block the loop: cancel requests stay serviceable
	number, letter, categories, answers := r.number, r.letter, r.categories, r.answers
	go func() {
		records, err := s.coordinator.Validate(ctx, letter, categories, answers)
		select {
		case s.valCh <- validationOutcome{number: number, records: records, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Session) onValidated(ctx context.Context, out validationOutcome) {
	r := s.curr
	if r == nil || r.number != out.number || r.state != roundStateValidating || r.manual != nil {
		// stale outcome from a superseded round
		return
	}

	if out.err != nil {
		if errors.Is(out.err, ErrOracleUnavailable) {
			r.manual = map[int64]bool{}
			s.notify(ctx, "manual validation", s.Config.Gateway.ManualValidationNeeded(s.RoomID, ManualValidation{
				Number:     r.number,
				Letter:     r.letter,
				Categories: r.categories,
				Answers:    r.answers,
				Players:    s.Players(),
			}))
			return
		}

		logging.FromContext(ctx).Errorf("validation aborted, chat %d round %d: %v", s.RoomID, r.number, out.err)
		return
	}

	s.scoreRound(ctx, out.records)
}

func (s *Session) resolveManual(ctx context.Context) {
	r := s.curr
	records := make(map[int64][]bool, len(r.answers))
	for playerID, answers := range r.answers {
		if r.manual[playerID] {
			records[playerID] = Prefilter(r.letter, answers)
		} else {
			records[playerID] = make([]bool, len(answers))
		}
	}

	s.scoreRound(ctx, records)
}

func (s *Session) scoreRound(ctx context.Context, records map[int64][]bool) {
	logger := logging.FromContext(ctx).Named("game.session")
	r := s.curr

	points, validated := s.computeScore(ctx, r.categories, r.answers, records)

	s.mtx.Lock()
	for playerID, pts := range points {
		s.scores[playerID] += pts
	}
	s.history = append(s.history, points)
	s.mtx.Unlock()

	r.state = roundStateScored

	for playerID, answers := range r.answers {
		submittedAny := false
		for _, a := range answers {
			if strings.TrimSpace(a) != "" {
				submittedAny = true
				break
			}
		}
		if err := s.Config.Stats.IncrementRoundStats(playerID, validated[playerID], submittedAny); err != nil {
			logger.Errorf("increment round stats, chat %d player %d: %v", s.RoomID, playerID, err)
		}
	}

	s.notify(ctx, "round scored", s.Config.Gateway.RoundScored(s.RoomID, RoundResult{
		Number:    r.number,
		Letter:    r.letter,
		Points:    points,
		Standings: s.Standings(),
	}))

	s.advance(ctx)
}

// computeScore isolates the scoring engine: a panic there means wrong
// scores are possible, which must be loud and fatal, never best-effort.
func (s *Session) computeScore(
	ctx context.Context,
	categories []string,
	answers map[int64][]string,
	records map[int64][]bool,
) (map[int64]int, map[int64]int) {
	defer func() {
		if p := recover(); p != nil {
			logging.FromContext(ctx).Panicf("scoring engine failure, chat %d: %v", s.RoomID, p)
		}
	}()

	points, validated := Score(categories, answers, records)
	return points, validated
}

func (s *Session) advance(ctx context.Context) {
	if s.curr.number >= s.Config.RoundsTotal {
		s.finish(ctx)
		return
	}

	s.interRoundTimer = time.NewTimer(s.Config.InterRoundDelay)
}

func (s *Session) finish(ctx context.Context) {
	s.setState(StateKindFinished)
	standings := s.Standings()

	s.notify(ctx, "game finished", s.Config.Gateway.GameFinished(s.RoomID, standings))

	results := make([]GameResult, len(standings))
	for i, info := range standings {
		results[i] = GameResult{
			PlayerID: info.ID,
			Points:   info.Score,
			Winner:   len(standings) > 0 && info.Score == standings[0].Score,
		}
	}
	if err := s.Config.Stats.RecordFinishedGame(FinishedGame{
		RoomID:     s.RoomID,
		Mode:       s.Config.Mode,
		Rounds:     s.Config.RoundsTotal,
		Categories: s.Config.Categories,
		Results:    results,
	}); err != nil {
		logging.FromContext(ctx).Errorf("record finished game, chat %d: %v", s.RoomID, err)
	}

	s.done(ctx)
}

func (s *Session) cancelGame(ctx context.Context) {
	if s.curr != nil {
		s.curr.close()
	}
	stopTimer(&s.lobbyTimer)
	stopTimer(&s.interRoundTimer)

	s.setState(StateKindCancelled)
	s.notify(ctx, "game cancelled", s.Config.Gateway.GameCancelled(s.RoomID))

	s.done(ctx)
}

func (s *Session) done(ctx context.Context) {
	if s.Config.DoneFn != nil {
		if err := s.Config.DoneFn(s); err != nil {
			logging.FromContext(ctx).Errorf("done function, chat %d: %v", s.RoomID, err)
		}
	}
	s.Stop()
}

func (s *Session) findPlayer(playerID int64) (*Player, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	for _, p := range s.players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) notify(ctx context.Context, what string, err error) {
	if err != nil {
		logging.FromContext(ctx).Named("game.session").Errorf("gateway %s, chat %d: %v", what, s.RoomID, err)
	}
}

func drawLetter() rune {
	return rune('A' + fastrand.Uint32n(26))
}

// roundCategories snapshots the fixed list, or samples the custom pool
// without replacement, same sample size every round.
func (s *Session) roundCategories() []string {
	if s.Config.Mode != ModeCustom {
		out := make([]string, len(s.Config.Categories))
		copy(out, s.Config.Categories)
		return out
	}

	pool := make([]string, len(s.Config.Categories))
	copy(pool, s.Config.Categories)

	k := s.Config.CategoriesPerRound
	if k > len(pool) {
		k = len(pool)
	}

	for i := 0; i < k; i++ {
		j := i + int(fastrand.Uint32n(uint32(len(pool)-i)))
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}
