package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timebet/internal/game"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

func CmdGameStatus(s *discordgo.Session, m *discordgo.MessageCreate) {
	st := engine.Status()

	if st.Phase == game.PhaseIdle {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Game Status", "No game has been opened yet."))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Phase:** %s\n", st.Phase)
	if st.Paused {
		b.WriteString("**PAUSED**\n")
	}
	fmt.Fprintf(&b, "**Pot:** %d units | **Commission:** %d%%\n",
		st.PotUnits, st.CommissionPct)
	fmt.Fprintf(&b, "**Team A:** %d points, %d %s staked\n",
		st.TeamAPoints, st.TeamAStaked, config.Bot.CurrencyName)
	fmt.Fprintf(&b, "**Team B:** %d points, %d %s staked\n",
		st.TeamBPoints, st.TeamBStaked, config.Bot.CurrencyName)

	if st.TimerArmed {
		remain := time.Duration(st.DurationSec)*time.Second - time.Since(st.StartTime)
		if remain < 0 {
			remain = 0
		}
		fmt.Fprintf(&b, "**Timer:** %s remaining\n", remain.Round(time.Second))
	}
	if st.WinningTeam != "" {
		fmt.Fprintf(&b, "**Winner:** Team %s\n", st.WinningTeam)
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("Game Status", b.String()))
}

func CmdTeamBets(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage", "!teambets <A|B>"))
		return
	}

	team, err := game.ParseTeam(args[0])
	if err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	bets := engine.TeamBets(team)
	if len(bets) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed(
			fmt.Sprintf("Team %s", team), "No bets on this team yet."))
		return
	}

	var b strings.Builder
	for user, rec := range bets {
		fmt.Fprintf(&b, "<@%s> - %d %s, %d points\n", user, rec.Amount, config.Bot.CurrencyName, rec.Points)
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed(fmt.Sprintf("Team %s Bets", team), b.String()))
}

func CmdMyBet(s *discordgo.Session, m *discordgo.MessageCreate) {
	var b strings.Builder
	found := false
	for _, team := range []game.Team{game.TeamA, game.TeamB} {
		if rec, ok := engine.UserBet(m.Author.ID, team); ok {
			found = true
			fmt.Fprintf(&b, "**Team %s:** %d %s staked, %d points\n",
				team, rec.Amount, config.Bot.CurrencyName, rec.Points)
		}
	}
	if !found {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("My Bet", "You have no bet in the current game."))
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("My Bet", b.String()))
}

func CmdPointsRate(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	units := int64(1)
	if len(args) > 0 {
		if v, err := strconv.ParseInt(args[0], 10, 64); err == nil && v > 0 {
			units = v
		}
	}

	pts := engine.RatePreview(units)
	if pts == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Current Points Rate",
			"No game is active, so bets earn no points right now."))
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Current Points Rate",
		fmt.Sprintf("A bet of **%d unit(s)** (%d %s each) right now earns **%d points**.\n"+
			"Remember: fewer points wins!",
			units, engine.StakeUnit(), config.Bot.CurrencyName, pts)))
}

func CmdCanThrow(s *discordgo.Session, m *discordgo.MessageCreate) {
	el := engine.CanThrow(m.Author.ID)
	if el.CanThrow {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Throw Available",
			fmt.Sprintf("You can throw points away. %s", el.Reason)))
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Throw Unavailable", el.Reason))
}

func CmdBannedList(s *discordgo.Session, m *discordgo.MessageCreate) {
	banned := engine.BannedPlayers()
	if len(banned) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Banned Players", "Nobody is banned."))
		return
	}

	var b strings.Builder
	for _, id := range banned {
		fmt.Fprintf(&b, "<@%s>\n", id)
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Banned Players", b.String()))
}

func CmdPending(s *discordgo.Session, m *discordgo.MessageCreate) {
	amount := engine.Withdrawable(m.Author.ID)
	if amount == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Pending Winnings",
			"You have nothing to withdraw."))
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("Pending Winnings",
		fmt.Sprintf("You have **%d %s** waiting. Use `!withdraw` after the game ends.",
			amount, config.Bot.CurrencyName)))
}
