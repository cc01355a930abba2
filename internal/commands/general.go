package commands

import (
	"fmt"

	"timebet/pkg/config"
	"timebet/pkg/utils"

	"github.com/bwmarrin/discordgo"
)

func GetHelpEmbed(s *discordgo.Session) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("📘 %s Help", config.Bot.BotName)
	embed.Description = "Two teams, one pot. Bets earn points over time and the team with **fewer** points wins."
	embed.Color = utils.ColorBlue
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
		URL: s.State.User.AvatarURL(""),
	}
	sym := config.Bot.CurrencySymbol

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "💰 Economy",
		Value: fmt.Sprintf("`!daily` / `/daily`\nCollect your daily reward (**%d %s**).\n\n"+
			"`!balance [user]`\nCheck your wallet or someone else's.\n\n"+
			"`!leaderboard`\nSee the richest users.\n\n"+
			"`!pay @user <amount>`\nTransfer coins to another user.", config.Game.DailyAmount, sym),
		Inline: false,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🎲 Team Betting",
		Value: fmt.Sprintf("`!bet <A|B> <amount>` / `/bet`\nStake coins on a team (min %d %s). Every %d %s staked earns points at the current rate.\n"+
			"*Before the timer starts, every unit earns the early bird rate. Once the countdown runs, the rate decays each hour.*\n\n"+
			"`!throw <percent>` / `/throw`\nSacrifice part of your points to the other team. 60-90%% in the first 3 hours, 20-40%% between hours 3 and 6, max 2 throws per game.\n\n"+
			"`!withdraw` / `/withdraw`\nCollect your winnings after the game ends.",
			engine.StakeUnit()/2, sym, engine.StakeUnit(), sym),
		Inline: false,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🔍 Game Info",
		Value: "`!gamestatus` / `/gamestatus` - Current phase, pot, points and timer\n" +
			"`!teambets <A|B>` - All bets on one team\n" +
			"`!mybet` - Your stake and points\n" +
			"`!pointsrate [units]` - Points a bet would earn right now\n" +
			"`!canthrow` - Whether you can throw and in which window\n" +
			"`!pending` - Winnings waiting for withdrawal\n" +
			"`!banned` - Banned players",
		Inline: false,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🛠️ Admin",
		Value: "`!startgame <pot_units> <duration_sec> <commission_pct>` - Open a new game\n" +
			"`!starttimer` - Arm the countdown manually\n" +
			"`!pausegame` / `!unpausegame` - Freeze or resume all player actions\n" +
			"`!banplayer @user` / `!unbanplayer @user`\n" +
			"`!forcerefund` - Cancel the game and refund every stake\n" +
			"`!endgame` - Settle an expired game\n" +
			"`!gameconfig` - Show the current game parameters\n" +
			"`!testwebhook` - Probe the configured events webhook",
		Inline: false,
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🔧 Developer & API",
		Value: fmt.Sprintf("`/apikey create`\nGenerate an API Key to integrate with %s.\n\n"+
			"`/apikey list`\nView your active keys.\n\n"+
			"The REST API exposes game status, team bets, rates and your own bet.", config.Bot.BotName),
		Inline: false,
	})

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%s • Use slash commands for a better experience!", config.Bot.BotName),
	}

	return embed
}

func CmdHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	s.ChannelMessageSendEmbed(m.ChannelID, GetHelpEmbed(s))
}

func HandleSlashHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, GetHelpEmbed(s))
}
