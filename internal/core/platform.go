package core

import (
	"context"
	"time"
)

// User identifies the member a session or command acts on.
type User struct {
	ID  string
	Tag string // display form used in log lines
}

// MessageHandle addresses a message the bot rendered a session into.
type MessageHandle struct {
	ChannelID string
	MessageID string
}

// Interaction is one inbound control activation or command invocation.
type Interaction struct {
	ID       string
	CustomID string   // control id, or command name for slash commands
	Values   []string // select-menu values or command option values
	User     User
	Message  MessageHandle // message the control lives on; empty for commands

	// Source carries the platform-native interaction. The core never reads it.
	Source any
}

// FirstValue returns the first carried value, if any.
func (i *Interaction) FirstValue() (string, bool) {
	if len(i.Values) == 0 {
		return "", false
	}
	return i.Values[0], true
}

// ChannelKind classifies channels; only text channels can be joined.
type ChannelKind int

const (
	ChannelKindOther ChannelKind = iota
	ChannelKindText
	ChannelKindVoice
	ChannelKindCategory
	ChannelKindPrivate
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelKindText:
		return "text"
	case ChannelKindVoice:
		return "voice"
	case ChannelKindCategory:
		return "category"
	case ChannelKindPrivate:
		return "private"
	default:
		return "other"
	}
}

// Channel is the subset of channel data the core needs.
type Channel struct {
	ID       string
	Name     string
	Kind     ChannelKind
	ParentID string
	Position int // platform display ordering
}

// Interactions publishes views and collects control activations.
type Interactions interface {
	// Respond publishes the initial response to a trigger and returns the
	// message it was rendered into.
	Respond(ctx context.Context, trigger *Interaction, view View) (MessageHandle, error)

	// AwaitInteraction blocks for the next control activation on msg. It
	// returns false when the timeout elapses or ctx is done.
	AwaitInteraction(ctx context.Context, msg MessageHandle, timeout time.Duration) (*Interaction, bool)

	// Update publishes view as the response to a received interaction.
	Update(ctx context.Context, in *Interaction, view View) error

	// Reply publishes a one-off ephemeral text response to a command.
	Reply(ctx context.Context, in *Interaction, content string) error

	// Release stops collecting interactions for msg.
	Release(msg MessageHandle)
}

// Roles reads and modifies a member's role set.
type Roles interface {
	MemberRoles(ctx context.Context, userID string) ([]string, error)
	AddMemberRole(ctx context.Context, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, userID, roleID string) error
	RemoveMemberRoles(ctx context.Context, userID string, roleIDs []string) error
	RoleName(ctx context.Context, roleID string) (string, error)
}

// Channels reads channels and modifies per-user visibility grants.
type Channels interface {
	Channel(ctx context.Context, channelID string) (Channel, error)
	ChannelsUnderCategory(ctx context.Context, categoryID string) ([]Channel, error)
	CanSeeChannel(ctx context.Context, userID string, ch Channel) (bool, error)
	GrantChannelVisibility(ctx context.Context, userID string, ch Channel) error
	RevokeChannelVisibility(ctx context.Context, userID string, ch Channel) error
}

// Platform is everything the session engine needs from the chat platform.
type Platform interface {
	Interactions
	Roles
	Channels
}
