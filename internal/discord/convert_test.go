package discord

import (
	"testing"

	"missioncontrol/internal/core"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseData_MainMenu(t *testing.T) {
	s, err := core.NewSession(core.User{ID: "1", Tag: "ada"})
	require.NoError(t, err)

	data := responseData(core.Render(s))

	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	require.Len(t, data.Components, 2)
	row, ok := data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 5)
	first, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, core.IDMembership, first.CustomID)
	assert.Equal(t, discordgo.PrimaryButton, first.Style)
}

func TestResponseData_SelectMenu(t *testing.T) {
	view := core.View{Rows: []core.Row{{Select: &core.SelectMenu{
		CustomID:    core.IDSelect,
		Placeholder: "Select a role to add...",
		Options:     []core.MenuOption{{Label: "Industry Pro", Value: "200"}},
	}}}}

	data := responseData(view)

	row := data.Components[0].(discordgo.ActionsRow)
	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	assert.Equal(t, discordgo.StringSelectMenu, menu.MenuType)
	assert.Equal(t, "Select a role to add...", menu.Placeholder)
	assert.Equal(t, []discordgo.SelectMenuOption{{Label: "Industry Pro", Value: "200"}}, menu.Options)
	assert.Zero(t, data.Flags)
}

func TestResponseData_EmptyViewClearsComponents(t *testing.T) {
	data := responseData(core.View{Content: "Goodbye!"})

	assert.NotNil(t, data.Components)
	assert.Empty(t, data.Components)
}

func TestToInteraction_Component(t *testing.T) {
	in, err := toInteraction(componentInteraction("m1", core.IDSelect, "200"))
	require.NoError(t, err)

	assert.Equal(t, core.User{ID: "1", Tag: "ada"}, in.User)
	assert.Equal(t, core.IDSelect, in.CustomID)
	assert.Equal(t, []string{"200"}, in.Values)
	assert.Equal(t, core.MessageHandle{ChannelID: "c1", MessageID: "m1"}, in.Message)
	assert.NotNil(t, in.Source)
}

func TestToInteraction_Command(t *testing.T) {
	i := commandInteraction(core.CmdLeave, &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "channel",
		Type:  discordgo.ApplicationCommandOptionChannel,
		Value: "410",
	})

	in, err := toInteraction(i)
	require.NoError(t, err)

	assert.Equal(t, core.CmdLeave, in.CustomID)
	assert.Equal(t, []string{"410"}, in.Values)
}

func TestToInteraction_DirectMessageUser(t *testing.T) {
	i := componentInteraction("m1", core.IDDone)
	i.Member = nil
	i.User = &discordgo.User{ID: "2", Username: "grace", Discriminator: "0"}

	in, err := toInteraction(i)
	require.NoError(t, err)
	assert.Equal(t, "grace", in.User.Tag)

	i.User = nil
	_, err = toInteraction(i)
	assert.Error(t, err)
}

func TestToChannel(t *testing.T) {
	tests := []struct {
		kind discordgo.ChannelType
		want core.ChannelKind
	}{
		{discordgo.ChannelTypeGuildText, core.ChannelKindText},
		{discordgo.ChannelTypeGuildVoice, core.ChannelKindVoice},
		{discordgo.ChannelTypeGuildCategory, core.ChannelKindCategory},
		{discordgo.ChannelTypeDM, core.ChannelKindPrivate},
		{discordgo.ChannelTypeGuildNews, core.ChannelKindOther},
	}

	for _, tt := range tests {
		ch := toChannel(&discordgo.Channel{ID: "410", Name: "rocketry", Type: tt.kind, ParentID: "400", Position: 2})
		assert.Equal(t, tt.want, ch.Kind)
		assert.Equal(t, "400", ch.ParentID)
		assert.Equal(t, 2, ch.Position)
	}
}
