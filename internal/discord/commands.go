package discord

import (
	"fmt"

	"missioncontrol/internal/core"
	"missioncontrol/pkg/schema"

	"github.com/bwmarrin/discordgo"
)

const (
	introDescription = "Click the button to launch Mission Control!"
	introButtonLabel = "Launch!"
)

// ApplicationCommands returns the guild slash commands. The /become choices
// come from the layout's membership roles.
func ApplicationCommands(layout *schema.Layout) []*discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(layout.Memberships))
	for _, m := range layout.Memberships {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: m.Name, Value: m.Key})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        core.CmdMissionControl,
			Description: "Launch Mission Control",
		},
		{
			Name:        core.CmdBecome,
			Description: "Change your membership type",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Your new membership type",
				Required:    true,
				Choices:     choices,
			}},
		},
		{
			Name:        core.CmdJoin,
			Description: "Join a channel",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "channel",
				Description: "The channel to join",
				Required:    true,
			}},
		},
		{
			Name:        core.CmdLeave,
			Description: "Leave a channel",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "The channel to leave",
				Required:     true,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			}},
		},
	}
}

// RegisterCommands replaces the guild's slash commands with ours.
func RegisterCommands(api API, appID string, layout *schema.Layout) ([]*discordgo.ApplicationCommand, error) {
	created, err := api.ApplicationCommandBulkOverwrite(appID, layout.GuildID, ApplicationCommands(layout))
	if err != nil {
		return nil, fmt.Errorf("register commands in guild %s: %w", layout.GuildID, err)
	}
	return created, nil
}

// IntroMessage is the persistent message carrying the launch button.
func IntroMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{Description: introDescription}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: core.IDLaunch,
					Label:    introButtonLabel,
					Style:    discordgo.SuccessButton,
				},
			}},
		},
	}
}

// SendIntro posts the intro message to channelID.
func SendIntro(api API, channelID string) (*discordgo.Message, error) {
	msg, err := api.ChannelMessageSendComplex(channelID, IntroMessage())
	if err != nil {
		return nil, fmt.Errorf("send intro to %s: %w", channelID, err)
	}
	return msg, nil
}
