package game

import "time"

// PlayerInfo is a read-only player snapshot attached to outbound events.
type PlayerInfo struct {
	ID    int64
	Name  string
	Score int
}

type RoundAnnounce struct {
	Number     int
	Total      int
	Letter     rune
	Categories []string
	Window     time.Duration
	HardStop   time.Duration
}

type ManualValidation struct {
	Number     int
	Letter     rune
	Categories []string
	Answers    map[int64][]string
	Players    []PlayerInfo
}

type RoundResult struct {
	Number    int
	Letter    rune
	Points    map[int64]int
	Standings []PlayerInfo
}

// Gateway is the messaging collaborator. The engine never formats
// platform markup; it hands snapshots to the gateway and lets it render.
type Gateway interface {
	LobbyUpdated(roomID int64, mode Mode, players []PlayerInfo) error
	RoundAnnounced(roomID int64, ev RoundAnnounce) error
	FirstSubmitterAnnounced(roomID int64, player PlayerInfo, window time.Duration) error
	RoundEndedNoSubmissions(roomID int64, number int) error
	ManualValidationNeeded(roomID int64, ev ManualValidation) error
	RoundScored(roomID int64, ev RoundResult) error
	GameFinished(roomID int64, standings []PlayerInfo) error
	GameCancelled(roomID int64) error
}

type DecisionAction uint8

const (
	DecisionApproveAll DecisionAction = iota + 1
	DecisionRejectAll
	DecisionApprovePlayer
	DecisionRejectPlayer
)

// AdminDecision resolves a round stuck in manual validation mode.
type AdminDecision struct {
	Action   DecisionAction
	TargetID int64
}
