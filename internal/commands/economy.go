package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timebet/internal/database"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

func CmdDaily(s *discordgo.Session, m *discordgo.MessageCreate) {
	ok, next := database.CanDaily(m.Author.ID)
	if !ok {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.WarnEmbed("Daily Already Claimed",
			fmt.Sprintf("Come back in **%s**.", time.Until(next).Round(time.Minute))))
		return
	}

	reward := config.Game.DailyAmount
	if err := database.ClaimDaily(m.Author.ID, reward); err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not claim your daily reward, try again."))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Daily Reward!",
		fmt.Sprintf("You received **%d %s** %s", reward, config.Bot.CurrencyName, config.Bot.CurrencySymbol)))
}

func CmdBalance(s *discordgo.Session, m *discordgo.MessageCreate) {
	target := m.Author
	if len(m.Mentions) > 0 {
		target = m.Mentions[0]
	}

	balance := database.GetBalance(target.ID)
	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed(
		fmt.Sprintf("%s's balance", target.Username),
		fmt.Sprintf("**%d %s** %s", balance, config.Bot.CurrencyName, config.Bot.CurrencySymbol)))
}

func CmdPay(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 || len(args) < 2 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage", "!pay @user <amount>"))
		return
	}

	target := m.Mentions[0]
	if target.ID == m.Author.ID {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("You cannot pay yourself."))
		return
	}

	amount, err := strconv.ParseInt(args[len(args)-1], 10, 64)
	if err != nil || amount <= 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Invalid amount."))
		return
	}

	if err := database.TransferCoins(m.Author.ID, target.ID, amount); err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed(
			fmt.Sprintf("Transfer failed: insufficient balance. You have %d %s.",
				database.GetBalance(m.Author.ID), config.Bot.CurrencyName)))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Transfer Complete",
		fmt.Sprintf("%s sent **%d %s** to %s", m.Author.Username, amount,
			config.Bot.CurrencyName, target.Username)))
}

func CmdLeaderboard(s *discordgo.Session, m *discordgo.MessageCreate) {
	top, err := database.GetLeaderboard(10)
	if err != nil || len(top) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Leaderboard", "Nobody has any coins yet."))
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, entry := range top {
		rank := fmt.Sprintf("**%d.**", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&b, "%s <@%s> - %d %s\n", rank, entry.ID, entry.Balance, config.Bot.CurrencyName)
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed(
		fmt.Sprintf("%s Leaderboard", config.Bot.CurrencyName), b.String()))
}
