package resource

import "github.com/enescakir/emoji"

const (
	ProjectName    = "adedonha"
	ProjectVersion = "1.0.0"
	BotFatherURL   = "https://t.me/BotFather"

	GreetingCLI = "Starting %s v%s\n"
)

const (
	CmdStart      = "start"
	CmdRules      = "rules"
	CmdClassic    = "adedonha"
	CmdFast       = "fastadedonha"
	CmdCustom     = "customadedonha"
	CmdJoin       = "join"
	CmdBegin      = "begingame"
	CmdCancelGame = "cancelgame"
	CmdMyStats    = "mystats"
)

var (
	TextGreetingMsg = emoji.WavingHand.String() + " Hi, *%s*! Add me to a group chat and send " +
		"/" + CmdClassic + " to open a game lobby."

	TextRulesMsg = emoji.Books.String() + " *How to play*\n\n" +
		"Each round draws a letter and a list of categories. Send one answer per category " +
		"starting with the round letter, one per line, like `Animal: Cat`.\n\n" +
		"The first player to submit closes the round: everyone else has a couple of seconds " +
		"to send theirs. A unique valid answer scores 10 points, a repeated one 5.\n\n" +
		"/" + CmdClassic + " — classic game, fixed categories\n" +
		"/" + CmdFast + " — fast game, hard per-round time limit\n" +
		"/" + CmdCustom + " — custom game, pass your category pool after the command"

	TextGroupOnlyMsg = emoji.Prohibited.String() + " Games live in group chats. Add me to a group and try again."

	TextLobbyExistsMsg   = emoji.Warning.String() + " This chat already has an active game."
	TextRoomNotFoundMsg  = emoji.MagnifyingGlassTiltedLeft.String() + " No active game in this chat."
	TextLobbyClosedMsg   = emoji.Warning.String() + " The lobby is closed, the game already started."
	TextLobbyFullMsg     = emoji.Warning.String() + " The lobby is full."
	TextAlreadyJoinedMsg = emoji.Warning.String() + " You are already in."
	TextNotJoinedMsg     = emoji.Warning.String() + " You are not in this game. Join the next lobby."
	TextNotAuthorizedMsg = emoji.Locked.String() + " Only the game creator or a chat admin can do that."
	TextAlreadySubmitMsg = emoji.Warning.String() + " Your answers for this round are already in."
	TextRoundClosedMsg   = emoji.HourglassDone.String() + " Too late, the round is closed."
	TextNoReviewMsg      = emoji.Warning.String() + " Nothing is waiting for review."

	TextLobbyCreatedMsg = emoji.Fire.String() + " *%s* opened a *%s* game! Press the button to join."

	TextFastUsageMsg = emoji.Warning.String() +
		" Please provide exactly 3 categories, e.g. /" + CmdFast + " Name Object Animal"

	TextStatsNotFoundMsg = emoji.MagnifyingGlassTiltedLeft.String() + " No stats yet. Play a game first."
)
