package commands

import (
	"strings"

	"timebet/internal/game"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

// engine is the shared game engine, set once at startup.
var engine *game.Engine

func Setup(e *game.Engine) {
	engine = e
}

func MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if !strings.HasPrefix(m.Content, "!") {
		return
	}

	if !config.Bot.IsChannelAllowed(m.ChannelID) {
		return
	}

	args := strings.Fields(m.Content)
	command := strings.ToLower(args[0])
	args = args[1:]

	switch command {
	case "!help", "!ajuda":
		CmdHelp(s, m)
	case "!daily":
		CmdDaily(s, m)
	case "!balance", "!saldo", "!coins":
		CmdBalance(s, m)
	case "!pay", "!transfer", "!pagar":
		CmdPay(s, m, args)
	case "!leaderboard", "!top", "!rank":
		CmdLeaderboard(s, m)

	// betting surface
	case "!bet", "!apostar":
		CmdBet(s, m, args)
	case "!throw", "!jogar":
		CmdThrow(s, m, args)
	case "!withdraw", "!sacar":
		CmdWithdraw(s, m)

	// query surface
	case "!gamestatus", "!game", "!status":
		CmdGameStatus(s, m)
	case "!teambets", "!team":
		CmdTeamBets(s, m, args)
	case "!mybet", "!minhaaposta":
		CmdMyBet(s, m)
	case "!pointsrate", "!rate":
		CmdPointsRate(s, m, args)
	case "!canthrow":
		CmdCanThrow(s, m)
	case "!banned":
		CmdBannedList(s, m)
	case "!pending", "!pendente":
		CmdPending(s, m)

	// admin surface
	case "!startgame":
		CmdStartGame(s, m, args)
	case "!starttimer":
		CmdStartTimer(s, m)
	case "!pausegame":
		CmdPauseGame(s, m)
	case "!unpausegame":
		CmdUnpauseGame(s, m)
	case "!banplayer":
		CmdBanPlayer(s, m, args)
	case "!unbanplayer":
		CmdUnbanPlayer(s, m, args)
	case "!forcerefund":
		CmdForceRefund(s, m)
	case "!endgame":
		CmdEndGame(s, m)
	case "!gameconfig":
		CmdAdminInfo(s, m)
	case "!testwebhook":
		CmdTestWebhook(s, m)

	case "!apikey":
		CmdAPIKey(s, m, args)
	}
}

// replyErr turns an engine rejection into an embed. Quota hits get a
// warning tone, everything else the standard error embed.
func replyErr(s *discordgo.Session, channelID string, err error) {
	switch game.KindOf(err) {
	case game.KindQuota:
		s.ChannelMessageSendEmbed(channelID, utils.WarnEmbed("Limit Reached", err.Error()))
	case game.KindUnknown:
		s.ChannelMessageSendEmbed(channelID, utils.ErrorEmbed("Something went wrong, try again."))
	default:
		s.ChannelMessageSendEmbed(channelID, utils.ErrorEmbed(err.Error()))
	}
}
