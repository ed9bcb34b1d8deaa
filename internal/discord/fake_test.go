package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

const testGuild = "1000"

type permissionSet struct {
	ChannelID, TargetID string
	Allow, Deny         int64
}

// fakeAPI records REST calls and serves a tiny in-memory guild.
type fakeAPI struct {
	mu sync.Mutex

	Responses []*discordgo.InteractionResponse
	Members   map[string][]string
	Roles     []*discordgo.Role
	Channels  []*discordgo.Channel
	Perms     map[string]int64 // user/channel -> permissions
	Sets      []permissionSet
	Deletes   []string
	Removed   []string
	Added     []string
	Commands  []*discordgo.ApplicationCommand
	Sent      map[string]*discordgo.MessageSend

	RoleFetches int
	RespondErr  error
	RemoveErr   map[string]error
	FetchHold   chan struct{} // blocks InteractionResponse until closed
	nextMessage int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		Members:   make(map[string][]string),
		Perms:     make(map[string]int64),
		RemoveErr: make(map[string]error),
		Sent:      make(map[string]*discordgo.MessageSend),
	}
}

func (f *fakeAPI) responses() []*discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.InteractionResponse(nil), f.Responses...)
}

func (f *fakeAPI) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RespondErr != nil {
		return f.RespondErr
	}
	f.Responses = append(f.Responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponse(i *discordgo.Interaction, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	hold := f.FetchHold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMessage++
	return &discordgo.Message{ID: fmt.Sprintf("m%d", f.nextMessage), ChannelID: "c1"}, nil
}

func (f *fakeAPI) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &discordgo.Member{GuildID: guildID, Roles: append([]string(nil), f.Members[userID]...)}, nil
}

func (f *fakeAPI) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Added = append(f.Added, roleID)
	f.Members[userID] = append(f.Members[userID], roleID)
	return nil
}

func (f *fakeAPI) GuildMemberRoleRemove(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.RemoveErr[roleID]; err != nil {
		return err
	}
	f.Removed = append(f.Removed, roleID)
	kept := f.Members[userID][:0]
	for _, r := range f.Members[userID] {
		if r != roleID {
			kept = append(kept, r)
		}
	}
	f.Members[userID] = kept
	return nil
}

func (f *fakeAPI) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RoleFetches++
	return f.Roles, nil
}

func (f *fakeAPI) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.Channels {
		if ch.ID == channelID {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("HTTP 404 Not Found")
}

func (f *fakeAPI) GuildChannels(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Channels, nil
}

func (f *fakeAPI) UserChannelPermissions(userID, channelID string, _ ...discordgo.RequestOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Perms[userID+"/"+channelID], nil
}

func (f *fakeAPI) ChannelPermissionSet(channelID, targetID string, _ discordgo.PermissionOverwriteType, allow, deny int64, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets = append(f.Sets, permissionSet{ChannelID: channelID, TargetID: targetID, Allow: allow, Deny: deny})
	f.Perms[targetID+"/"+channelID] = allow
	return nil
}

func (f *fakeAPI) ChannelPermissionDelete(channelID, targetID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes = append(f.Deletes, channelID)
	delete(f.Perms, targetID+"/"+channelID)
	return nil
}

func (f *fakeAPI) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Commands = commands
	return commands, nil
}

func (f *fakeAPI) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent[channelID] = data
	return &discordgo.Message{ID: "intro", ChannelID: channelID}, nil
}

var testMember = &discordgo.Member{User: &discordgo.User{ID: "1", Username: "ada", Discriminator: "0"}}

func componentInteraction(messageID, customID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "i-" + customID,
		Type:    discordgo.InteractionMessageComponent,
		GuildID: testGuild,
		Member:  testMember,
		Message: &discordgo.Message{ID: messageID, ChannelID: "c1"},
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}
}

func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "i-" + name,
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: testGuild,
		Member:  testMember,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
	}
}
