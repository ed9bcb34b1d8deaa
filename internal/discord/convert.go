package discord

import (
	"fmt"

	"missioncontrol/internal/core"

	"github.com/bwmarrin/discordgo"
)

var buttonStyles = map[core.ButtonStyle]discordgo.ButtonStyle{
	core.ButtonPrimary:   discordgo.PrimaryButton,
	core.ButtonSecondary: discordgo.SecondaryButton,
	core.ButtonSuccess:   discordgo.SuccessButton,
	core.ButtonDanger:    discordgo.DangerButton,
}

// responseData converts a view into an interaction response payload.
// Components is never nil so an empty view clears the previous controls.
func responseData(view core.View) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    view.Content,
		Components: components(view.Rows),
	}
	if view.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func components(rows []core.Row) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		var comps []discordgo.MessageComponent
		if row.Select != nil {
			comps = append(comps, selectMenu(row.Select))
		}
		for _, b := range row.Buttons {
			comps = append(comps, discordgo.Button{
				CustomID: b.CustomID,
				Label:    b.Label,
				Style:    buttonStyles[b.Style],
				Disabled: b.Disabled,
			})
		}
		out = append(out, discordgo.ActionsRow{Components: comps})
	}
	return out
}

func selectMenu(m *core.SelectMenu) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		options = append(options, discordgo.SelectMenuOption{Label: o.Label, Value: o.Value})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    m.CustomID,
		Placeholder: m.Placeholder,
		Options:     options,
		Disabled:    m.Disabled,
	}
}

// toUser extracts the invoking user. Guild interactions carry it on Member.
func toUser(i *discordgo.Interaction) (core.User, error) {
	u := i.User
	if i.Member != nil && i.Member.User != nil {
		u = i.Member.User
	}
	if u == nil {
		return core.User{}, fmt.Errorf("interaction %s has no user", i.ID)
	}
	return core.User{ID: u.ID, Tag: u.String()}, nil
}

// toInteraction converts a component or command interaction. For commands
// CustomID is the command name and Values holds the option values.
func toInteraction(i *discordgo.Interaction) (*core.Interaction, error) {
	user, err := toUser(i)
	if err != nil {
		return nil, err
	}
	in := &core.Interaction{ID: i.ID, User: user, Source: i}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		in.CustomID = data.CustomID
		in.Values = data.Values
		if i.Message != nil {
			in.Message = core.MessageHandle{ChannelID: i.Message.ChannelID, MessageID: i.Message.ID}
		}
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		in.CustomID = data.Name
		for _, opt := range data.Options {
			in.Values = append(in.Values, fmt.Sprint(opt.Value))
		}
	default:
		return nil, fmt.Errorf("unsupported interaction type %s", i.Type)
	}
	return in, nil
}

func toChannel(ch *discordgo.Channel) core.Channel {
	return core.Channel{
		ID:       ch.ID,
		Name:     ch.Name,
		Kind:     channelKind(ch.Type),
		ParentID: ch.ParentID,
		Position: ch.Position,
	}
}

func channelKind(t discordgo.ChannelType) core.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return core.ChannelKindText
	case discordgo.ChannelTypeGuildVoice:
		return core.ChannelKindVoice
	case discordgo.ChannelTypeGuildCategory:
		return core.ChannelKindCategory
	case discordgo.ChannelTypeDM, discordgo.ChannelTypeGroupDM:
		return core.ChannelKindPrivate
	default:
		return core.ChannelKindOther
	}
}
