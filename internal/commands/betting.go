package commands

import (
	"fmt"
	"log"
	"strconv"

	"timebet/internal/database"
	"timebet/internal/game"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

func CmdBet(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage",
			fmt.Sprintf("!bet <A|B> <amount>\nExample: `!bet A %d` (minimum %d %s)",
				engine.StakeUnit(), engine.StakeUnit()/2, config.Bot.CurrencyName)))
		return
	}

	team, err := game.ParseTeam(args[0])
	if err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Invalid amount."))
		return
	}

	// Debit first; the stake is the attached deposit from the
	// engine's point of view.
	if err := database.RemoveCoins(m.Author.ID, amount); err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed(
			fmt.Sprintf("Insufficient balance! You have %d %s.",
				database.GetBalance(m.Author.ID), config.Bot.CurrencyName)))
		return
	}

	if err := engine.Bet(m.Author.ID, team, amount); err != nil {
		// Rejected bet: give the coins back.
		if refundErr := database.AddCoins(m.Author.ID, amount); refundErr != nil {
			log.Printf("[Bet] refund of %d to %s failed: %v", amount, m.Author.ID, refundErr)
		}
		replyErr(s, m.ChannelID, err)
		return
	}

	rec, _ := engine.UserBet(m.Author.ID, team)
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Bet Placed!",
		fmt.Sprintf("You staked **%d %s** on **Team %s**.\n\n"+
			"Your total: %d %s, %d points.\nFewer points wins! Throw points away with `!throw` once the timer runs.",
			amount, config.Bot.CurrencyName, team, rec.Amount, config.Bot.CurrencyName, rec.Points)))
}

func CmdThrow(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Usage",
			"!throw <percent>\nSacrifice part of your points to the other team.\n"+
				"First 3 hours: 60-90%. Hours 3-6: 20-40%. Closed afterwards. Max 2 throws per game."))
		return
	}

	percent, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Percent must be a number."))
		return
	}

	if err := engine.ThrowPoints(m.Author.ID, percent); err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	el := engine.CanThrow(m.Author.ID)
	s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Points Thrown!",
		fmt.Sprintf("You sacrificed **%d%%** of your points to the other team.\nThrows used: %d/%d",
			percent, el.ThrowsUsed, game.MaxThrowsPerGame)))
}

func CmdWithdraw(s *discordgo.Session, m *discordgo.MessageCreate) {
	paid, err := engine.Withdraw(m.Author.ID)
	if err != nil {
		replyErr(s, m.ChannelID, err)
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("Withdrawal Complete",
		fmt.Sprintf("**%d %s** credited to your balance.", paid, config.Bot.CurrencyName)))
}
