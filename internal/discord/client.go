package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"missioncontrol/internal/core"

	"github.com/bwmarrin/discordgo"
)

// visibilityGrant is the overwrite a member gets on a joined channel.
const visibilityGrant = discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect

// API is the subset of *discordgo.Session the bot uses.
type API interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)

	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, options ...discordgo.RequestOption) error
	ChannelPermissionDelete(channelID, targetID string, options ...discordgo.RequestOption) error

	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ API = (*discordgo.Session)(nil)

// Client implements core.Platform on top of a Discord session scoped to one
// guild.
type Client struct {
	api       API
	guildID   string
	collector *Collector
	logger    core.Logger

	mu        sync.RWMutex
	roleNames map[string]string
}

var _ core.Platform = (*Client)(nil)

// NewClient creates a client for guildID.
func NewClient(api API, guildID string, collector *Collector, logger core.Logger) *Client {
	return &Client{
		api:       api,
		guildID:   guildID,
		collector: collector,
		logger:    logger,
		roleNames: make(map[string]string),
	}
}

func source(in *core.Interaction) (*discordgo.Interaction, error) {
	i, ok := in.Source.(*discordgo.Interaction)
	if !ok || i == nil {
		return nil, fmt.Errorf("interaction %s has no discord source", in.ID)
	}
	return i, nil
}

// Respond answers trigger with view and starts collecting clicks on the
// resulting message.
func (c *Client) Respond(ctx context.Context, trigger *core.Interaction, view core.View) (core.MessageHandle, error) {
	i, err := source(trigger)
	if err != nil {
		return core.MessageHandle{}, err
	}

	settle := c.collector.Expect()
	defer settle()

	err = c.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(view),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return core.MessageHandle{}, fmt.Errorf("respond to interaction: %w", err)
	}

	msg, err := c.api.InteractionResponse(i, discordgo.WithContext(ctx))
	if err != nil {
		return core.MessageHandle{}, fmt.Errorf("fetch response message: %w", err)
	}

	c.collector.Watch(msg.ID)
	return core.MessageHandle{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// AwaitInteraction waits for the next click on msg.
func (c *Client) AwaitInteraction(ctx context.Context, msg core.MessageHandle, timeout time.Duration) (*core.Interaction, bool) {
	for {
		i, ok := c.collector.Await(ctx, msg.MessageID, timeout)
		if !ok {
			return nil, false
		}
		in, err := toInteraction(i)
		if err != nil {
			c.logger.Warn("Dropping unreadable interaction", "message", msg.MessageID, "error", err)
			continue
		}
		in.Message = msg
		return in, true
	}
}

// Update replaces the message in was made on.
func (c *Client) Update(ctx context.Context, in *core.Interaction, view core.View) error {
	i, err := source(in)
	if err != nil {
		return err
	}
	return c.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(view),
	}, discordgo.WithContext(ctx))
}

// Reply answers in with an ephemeral text message.
func (c *Client) Reply(ctx context.Context, in *core.Interaction, content string) error {
	i, err := source(in)
	if err != nil {
		return err
	}
	return c.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

// Release stops collecting clicks on msg.
func (c *Client) Release(msg core.MessageHandle) {
	c.collector.Release(msg.MessageID)
}

func (c *Client) MemberRoles(ctx context.Context, userID string) ([]string, error) {
	m, err := c.api.GuildMember(c.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch member %s: %w", userID, err)
	}
	return m.Roles, nil
}

func (c *Client) AddMemberRole(ctx context.Context, userID, roleID string) error {
	return c.api.GuildMemberRoleAdd(c.guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (c *Client) RemoveMemberRole(ctx context.Context, userID, roleID string) error {
	return c.api.GuildMemberRoleRemove(c.guildID, userID, roleID, discordgo.WithContext(ctx))
}

// RemoveMemberRoles strips every role in roleIDs the member holds. It keeps
// going past individual failures and returns them joined.
func (c *Client) RemoveMemberRoles(ctx context.Context, userID string, roleIDs []string) error {
	held, err := c.MemberRoles(ctx, userID)
	if err != nil {
		return err
	}

	var errs []error
	for _, role := range roleIDs {
		if !slices.Contains(held, role) {
			continue
		}
		if err := c.RemoveMemberRole(ctx, userID, role); err != nil {
			errs = append(errs, fmt.Errorf("remove role %s: %w", role, err))
		}
	}
	return errors.Join(errs...)
}

// RoleName resolves a role's display name. Names are cached and the guild
// role list is refetched on a miss.
func (c *Client) RoleName(ctx context.Context, roleID string) (string, error) {
	c.mu.RLock()
	name, ok := c.roleNames[roleID]
	c.mu.RUnlock()
	if ok {
		return name, nil
	}

	roles, err := c.api.GuildRoles(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetch roles: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range roles {
		c.roleNames[r.ID] = r.Name
	}
	name, ok = c.roleNames[roleID]
	if !ok {
		return "", fmt.Errorf("role %s not found in guild %s", roleID, c.guildID)
	}
	return name, nil
}

func (c *Client) Channel(ctx context.Context, channelID string) (core.Channel, error) {
	ch, err := c.api.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return core.Channel{}, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	return toChannel(ch), nil
}

func (c *Client) ChannelsUnderCategory(ctx context.Context, categoryID string) ([]core.Channel, error) {
	channels, err := c.api.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch channels: %w", err)
	}

	var out []core.Channel
	for _, ch := range channels {
		if ch.ParentID == categoryID {
			out = append(out, toChannel(ch))
		}
	}
	return out, nil
}

// CanSeeChannel reports whether the user's effective permissions include
// viewing ch.
func (c *Client) CanSeeChannel(ctx context.Context, userID string, ch core.Channel) (bool, error) {
	perms, err := c.api.UserChannelPermissions(userID, ch.ID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("compute permissions on %s: %w", ch.Name, err)
	}
	return perms&discordgo.PermissionViewChannel != 0, nil
}

// GrantChannelVisibility adds a member overwrite allowing view and connect.
func (c *Client) GrantChannelVisibility(ctx context.Context, userID string, ch core.Channel) error {
	return c.api.ChannelPermissionSet(ch.ID, userID, discordgo.PermissionOverwriteTypeMember,
		visibilityGrant, 0, discordgo.WithContext(ctx))
}

// RevokeChannelVisibility deletes the member's overwrite on ch.
func (c *Client) RevokeChannelVisibility(ctx context.Context, userID string, ch core.Channel) error {
	return c.api.ChannelPermissionDelete(ch.ID, userID, discordgo.WithContext(ctx))
}
