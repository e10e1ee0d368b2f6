package game

import "time"

const (
	roundStateCollecting uint8 = iota + 1
	roundStateWindowOpen
	roundStateClosed
	roundStateValidating
	roundStateScored
)

// round owns one scoring cycle. All mutation happens on the session
// goroutine, so the struct carries no lock; atomicity of "first
// submission arms the window exactly once" follows from that ownership.
type round struct {
	number     int
	categories []string
	letter     rune

	state       uint8
	order       []int64
	submissions map[int64]string
	answers     map[int64][]string

	window        time.Duration
	noSubmitTimer *time.Timer
	windowTimer   *time.Timer
	hardStopTimer *time.Timer

	// non-nil while waiting for admin decisions
	manual map[int64]bool
}

func newRound(number int, categories []string, letter rune, noSubmit, window, hardStop time.Duration) *round {
	r := &round{
		number:      number,
		categories:  categories,
		letter:      letter,
		state:       roundStateCollecting,
		submissions: map[int64]string{},
		window:      window,
	}

	r.noSubmitTimer = time.NewTimer(noSubmit)
	if hardStop > 0 {
		r.hardStopTimer = time.NewTimer(hardStop)
	}

	return r
}

// accept registers one submission and reports whether it was the first,
// which cancels the no-submit timer and arms the window timer as a single
// step. A resubmission is rejected, never merged.
func (r *round) accept(playerID int64, text string) (bool, error) {
	switch r.state {
	case roundStateCollecting, roundStateWindowOpen:
	default:
		return false, ErrRoundClosed
	}

	if _, ok := r.submissions[playerID]; ok {
		return false, ErrAlreadySubmit
	}

	r.submissions[playerID] = text
	r.order = append(r.order, playerID)

	if r.state == roundStateCollecting {
		r.state = roundStateWindowOpen
		stopTimer(&r.noSubmitTimer)
		r.windowTimer = time.NewTimer(r.window)
		return true, nil
	}

	return false, nil
}

func (r *round) firstSubmitter() (int64, bool) {
	if len(r.order) == 0 {
		return 0, false
	}
	return r.order[0], true
}

// close stops every timer synchronously; a concurrently fired timer whose
// channel was not yet drained becomes unreachable once its handle is nil.
func (r *round) close() {
	r.state = roundStateClosed
	stopTimer(&r.noSubmitTimer)
	stopTimer(&r.windowTimer)
	stopTimer(&r.hardStopTimer)
}

func stopTimer(t **time.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
