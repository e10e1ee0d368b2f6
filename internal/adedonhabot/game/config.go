package game

import "time"

type Mode uint8

const (
	ModeClassic Mode = iota + 1
	ModeFast
	ModeCustom
)

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeFast:
		return "fast"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

const (
	DefaultMaxPlayers = 10

	// a lobby that never grows past one player is discarded after this
	DefaultLobbyTimeout = 5 * time.Minute

	// classic/custom: the round ends if nobody submits in time
	DefaultNoSubmitTimeout = 3 * time.Minute

	// after the first submission everyone else has this long
	DefaultSubmitWindow = 2 * time.Second

	// fast mode: the whole round is bounded by this, armed at round start
	DefaultFastHardStop = 60 * time.Second

	DefaultInterRoundDelay = 2 * time.Second

	DefaultRoundsClassic = 10
	DefaultRoundsFast    = 12

	// custom mode draws this many categories from the pool each round
	DefaultCategoriesPerRound = 5

	PointsUnique = 10
	PointsShared = 5
)

// ClassicCategories is the fixed per-round list for classic mode.
var ClassicCategories = []string{"Name", "Object", "Animal", "Plant", "Country"}

// AllCategories is the default pool offered to custom games.
var AllCategories = []string{
	"Name",
	"Object",
	"Animal",
	"Plant",
	"City",
	"Country",
	"State",
	"Food",
	"Color",
	"Movie/Series/TV Show",
	"Place",
	"Fruit",
	"Profession",
	"Adjective",
}

// Config fully describes one room. Zero timing fields fall back to the
// mode defaults in Normalize.
type Config struct {
	RoomID      int64
	Mode        Mode
	CreatorID   int64
	CreatorName string

	// fixed per-round list for classic/fast, pool for custom
	Categories         []string
	CategoriesPerRound int
	RoundsTotal        int
	MaxPlayers         int

	LobbyTimeout    time.Duration
	NoSubmitTimeout time.Duration
	SubmitWindow    time.Duration
	HardStop        time.Duration
	InterRoundDelay time.Duration

	Gateway Gateway
	Oracle  Oracle
	Stats   StatStore

	Validation ValidationConfig

	// DoneFn runs once when the room reaches finished or cancelled
	DoneFn func(session *Session) error
}

func (c *Config) Normalize() {
	if c.MaxPlayers == 0 {
		c.MaxPlayers = DefaultMaxPlayers
	}
	if c.LobbyTimeout == 0 {
		c.LobbyTimeout = DefaultLobbyTimeout
	}
	if c.InterRoundDelay == 0 {
		c.InterRoundDelay = DefaultInterRoundDelay
	}
	if c.SubmitWindow == 0 {
		c.SubmitWindow = DefaultSubmitWindow
	}
	if c.CategoriesPerRound == 0 {
		c.CategoriesPerRound = DefaultCategoriesPerRound
	}

	switch c.Mode {
	case ModeFast:
		if c.RoundsTotal == 0 {
			c.RoundsTotal = DefaultRoundsFast
		}
		if c.HardStop == 0 {
			c.HardStop = DefaultFastHardStop
		}
		if c.NoSubmitTimeout == 0 {
			c.NoSubmitTimeout = c.HardStop
		}
	default:
		if c.RoundsTotal == 0 {
			c.RoundsTotal = DefaultRoundsClassic
		}
		if c.NoSubmitTimeout == 0 {
			c.NoSubmitTimeout = DefaultNoSubmitTimeout
		}
	}

	if len(c.Categories) == 0 {
		c.Categories = ClassicCategories
	}
}
