package game

import "errors"

var (
	ErrRoomExists   = errors.New("a game or lobby is already active in this chat")
	ErrRoomNotFound = errors.New("game room not found")
	ErrRoomClosed   = errors.New("game room is closed")

	ErrNotLobby       = errors.New("no lobby accepting players")
	ErrNotRunning     = errors.New("no game is running")
	ErrLobbyFull      = errors.New("lobby is full")
	ErrAlreadyJoined  = errors.New("already joined")
	ErrNotJoined      = errors.New("not part of this game")
	ErrNotAuthorized  = errors.New("only the creator, a chat admin, or an owner can do this")
	ErrNoActiveRound  = errors.New("no round is accepting submissions")
	ErrRoundClosed    = errors.New("submissions for this round are closed")
	ErrAlreadySubmit  = errors.New("already submitted for this round")
	ErrNoManualReview = errors.New("no manual validation is pending")

	// ErrOracleUnavailable reports a whole-round oracle outage after retries.
	ErrOracleUnavailable = errors.New("validation oracle unavailable")
)
