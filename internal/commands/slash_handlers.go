package commands

import (
	"fmt"
	"log"

	"timebet/internal/database"
	"timebet/internal/game"
	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

// Helper to send interaction response easily
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func respondErr(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	switch game.KindOf(err) {
	case game.KindQuota:
		respondEmbed(s, i, utils.WarnEmbed("Limit Reached", err.Error()))
	case game.KindUnknown:
		respondEmbed(s, i, utils.ErrorEmbed("Something went wrong, try again."))
	default:
		respondEmbed(s, i, utils.ErrorEmbed(err.Error()))
	}
}

func SlashHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	// Check if channel is allowed
	if !config.Bot.IsChannelAllowed(i.ChannelID) {
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{utils.ErrorEmbed("❌ This bot can only be used in designated channels.")},
				Flags:  discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	switch i.ApplicationCommandData().Name {
	case "help":
		HandleSlashHelp(s, i)
	case "daily":
		handleSlashDaily(s, i)
	case "balance":
		handleSlashBalance(s, i)
	case "pay":
		handleSlashPay(s, i)
	case "bet":
		handleSlashBet(s, i)
	case "throw":
		handleSlashThrow(s, i)
	case "withdraw":
		handleSlashWithdraw(s, i)
	case "gamestatus":
		handleSlashGameStatus(s, i)
	case "apikey":
		HandleSlashApiKey(s, i)
	}
}

func handleSlashDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID

	ok, next := database.CanDaily(userID)
	if !ok {
		discordTime := fmt.Sprintf("<t:%d:R>", next.Unix())
		respondEmbed(s, i, utils.ErrorEmbed(fmt.Sprintf("You already collected your daily reward! Come back %s.", discordTime)))
		return
	}

	reward := config.Game.DailyAmount
	if err := database.ClaimDaily(userID, reward); err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Error claiming daily reward."))
		return
	}

	respondEmbed(s, i, utils.SuccessEmbed("Daily Collected!",
		fmt.Sprintf("You received **%d %s**!", reward, config.Bot.CurrencyName)))
}

func handleSlashBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetUser := i.Member.User
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		targetUser = options[0].UserValue(s)
	}

	balance := database.GetBalance(targetUser.ID)
	respondEmbed(s, i, utils.GoldEmbed("Balance", fmt.Sprintf("**%s** has **%d %s**.", targetUser.Username, balance, config.Bot.CurrencyName)))
}

func handleSlashPay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	toUser := options[0].UserValue(s)
	amount := options[1].IntValue()
	fromID := i.Member.User.ID

	if toUser.ID == fromID {
		respondEmbed(s, i, utils.ErrorEmbed("You cannot pay yourself."))
		return
	}

	if err := database.TransferCoins(fromID, toUser.ID, amount); err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Insufficient funds or transaction error."))
		return
	}

	respondEmbed(s, i, utils.SuccessEmbed("Transfer Successful", fmt.Sprintf("You sent **%d %s** to **%s**.", amount, config.Bot.CurrencyName, toUser.Username)))
}

func handleSlashBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	userID := i.Member.User.ID

	team, err := game.ParseTeam(options[0].StringValue())
	if err != nil {
		respondErr(s, i, err)
		return
	}
	amount := options[1].IntValue()

	if err := database.RemoveCoins(userID, amount); err != nil {
		respondEmbed(s, i, utils.ErrorEmbed(
			fmt.Sprintf("Insufficient balance! You have %d %s.",
				database.GetBalance(userID), config.Bot.CurrencyName)))
		return
	}

	if err := engine.Bet(userID, team, amount); err != nil {
		if refundErr := database.AddCoins(userID, amount); refundErr != nil {
			log.Printf("[Bet] refund of %d to %s failed: %v", amount, userID, refundErr)
		}
		respondErr(s, i, err)
		return
	}

	rec, _ := engine.UserBet(userID, team)
	respondEmbed(s, i, utils.SuccessEmbed("Bet Placed!",
		fmt.Sprintf("You staked **%d %s** on **Team %s**.\nYour total: %d %s, %d points.",
			amount, config.Bot.CurrencyName, team, rec.Amount, config.Bot.CurrencyName, rec.Points)))
}

func handleSlashThrow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID
	percent := i.ApplicationCommandData().Options[0].IntValue()

	if err := engine.ThrowPoints(userID, percent); err != nil {
		respondErr(s, i, err)
		return
	}

	el := engine.CanThrow(userID)
	respondEmbed(s, i, utils.SuccessEmbed("Points Thrown!",
		fmt.Sprintf("You sacrificed **%d%%** of your points to the other team.\nThrows used: %d/%d",
			percent, el.ThrowsUsed, game.MaxThrowsPerGame)))
}

func handleSlashWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	paid, err := engine.Withdraw(i.Member.User.ID)
	if err != nil {
		respondErr(s, i, err)
		return
	}

	respondEmbed(s, i, utils.GoldEmbed("Withdrawal Complete",
		fmt.Sprintf("**%d %s** credited to your balance.", paid, config.Bot.CurrencyName)))
}

func handleSlashGameStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	st := engine.Status()

	if st.Phase == game.PhaseIdle {
		respondEmbed(s, i, utils.InfoEmbed("Game Status", "No game has been opened yet."))
		return
	}

	desc := fmt.Sprintf("**Phase:** %s\n**Pot:** %d units | **Commission:** %d%%\n"+
		"**Team A:** %d points, %d %s staked\n**Team B:** %d points, %d %s staked",
		st.Phase, st.PotUnits, st.CommissionPct,
		st.TeamAPoints, st.TeamAStaked, config.Bot.CurrencyName,
		st.TeamBPoints, st.TeamBStaked, config.Bot.CurrencyName)
	if st.WinningTeam != "" {
		desc += fmt.Sprintf("\n**Winner:** Team %s", st.WinningTeam)
	}

	respondEmbed(s, i, utils.GoldEmbed("Game Status", desc))
}
