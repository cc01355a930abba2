package commands

import "github.com/bwmarrin/discordgo"

var minAmount float64 = 1.0

var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "help",
		Description: "Show all commands and how the game works",
	},
	{
		Name:        "daily",
		Description: "Collect your daily reward",
	},
	{
		Name:        "balance",
		Description: "Check your or someone else's balance",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to check",
				Required:    false,
			},
		},
	},
	{
		Name:        "pay",
		Description: "Transfer coins to another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Recipient of the coins",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to transfer",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	},
	{
		Name:        "bet",
		Description: "Stake coins on a team",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "team",
				Description: "The team to back",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Team A", Value: "A"},
					{Name: "Team B", Value: "B"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to stake",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	},
	{
		Name:        "throw",
		Description: "Sacrifice part of your points to the other team",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "percent",
				Description: "Percentage of your points to throw away",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	},
	{
		Name:        "withdraw",
		Description: "Collect your winnings after the game ends",
	},
	{
		Name:        "gamestatus",
		Description: "Show the current game phase, pot, points and timer",
	},
	{
		Name:        "apikey",
		Description: "Manage your API Keys",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "create",
				Description: "Create a new API Key (Sent via DM)",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Optional name for the key",
						Required:    false,
					},
				},
			},
			{
				Name:        "list",
				Description: "List your active API Keys",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "delete",
				Description: "Delete an API Key",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "prefix",
						Description: "The first few characters of the key to delete",
						Required:    true,
					},
				},
			},
		},
	},
}
