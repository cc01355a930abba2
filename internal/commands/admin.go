package commands

import (
	"fmt"
	"strconv"

	"timebet/internal/webhook"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

func CmdStartGame(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage",
			"!startgame <pot_units> <duration_seconds> <commission_percent>\n"+
				"Example: `!startgame 10 3600 10`"))
		return
	}

	pot, err1 := strconv.ParseInt(args[0], 10, 64)
	duration, err2 := strconv.ParseInt(args[1], 10, 64)
	commission, err3 := strconv.ParseInt(args[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("All three arguments must be numbers."))
		return
	}

	if err := engine.StartGame(m.Author.ID, pot, duration, commission); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	unit := engine.StakeUnit()
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Game Opened!",
		fmt.Sprintf("Bet on **Team A** or **Team B** with `!bet A <amount>`.\n\n"+
			"**Pot:** %d units (%d %s)\n**Duration:** %ds after the timer arms\n**Commission:** %d%%\n"+
			"**Early-bird rate:** 32 points per unit until the timer starts\n\n"+
			"Remember: the team with **fewer** points wins!",
			pot, pot*unit, config.Bot.CurrencyName, duration, commission)))
}

func CmdStartTimer(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := engine.StartTimer(m.Author.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Timer Started",
		"The countdown is running. Point rates now decay every hour and the throw window is open."))
}

func CmdPauseGame(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := engine.Pause(m.Author.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Paused", "All game actions are paused."))
}

func CmdUnpauseGame(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := engine.Unpause(m.Author.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Unpaused", "Game actions are back."))
}

func CmdBanPlayer(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage", "!banplayer @user"))
		return
	}
	target := m.Mentions[0]
	if err := engine.Ban(m.Author.ID, target.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Player Banned",
		fmt.Sprintf("**%s** can no longer bet, throw or withdraw.", target.Username)))
}

func CmdUnbanPlayer(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage", "!unbanplayer @user"))
		return
	}
	target := m.Mentions[0]
	if err := engine.Unban(m.Author.ID, target.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Player Unbanned",
		fmt.Sprintf("**%s** can play again.", target.Username)))
}

func CmdForceRefund(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := engine.ForceEndGameRefund(m.Author.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Game Cancelled",
		"Every stake was returned in full. Use `!withdraw` to collect."))
}

func CmdAdminInfo(s *discordgo.Session, m *discordgo.MessageCreate) {
	info := engine.AdminInfo()
	if m.Author.ID != info.AdminID {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Only the admin can do that."))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Game Configuration",
		fmt.Sprintf("**Admin:** <@%s>\n**Timer bot:** <@%s>\n**Stake unit:** %d %s\n"+
			"**Pot:** %d units\n**Commission:** %d%%\n**Duration:** %ds\n**Paused:** %v",
			info.AdminID, info.TimerBotID, info.StakeUnit, config.Bot.CurrencyName,
			info.PotUnits, info.CommissionPct, info.DurationSec, info.Paused)))
}

func CmdTestWebhook(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID != engine.AdminInfo().AdminID {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Only the admin can do that."))
		return
	}
	url := config.Game.EventsWebhookURL
	if url == "" {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Webhook", "No events webhook configured."))
		return
	}
	if err := webhook.Test(url); err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed(fmt.Sprintf("Probe failed: %v", err)))
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Webhook OK", "Probe event delivered."))
}

func CmdEndGame(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := engine.EndGame(m.Author.ID); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	st := engine.Status()
	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("Game Over!",
		fmt.Sprintf("**Team %s wins** with fewer points!\n\n"+
			"Team A: %d points\nTeam B: %d points\n\n"+
			"Winners and refunded losers can now `!withdraw`.",
			st.WinningTeam, st.TeamAPoints, st.TeamBPoints)))
}
