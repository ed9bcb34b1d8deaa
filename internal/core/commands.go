package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"missioncontrol/pkg/schema"
)

// Slash command names.
const (
	CmdMissionControl = "mc"
	CmdBecome         = "become"
	CmdJoin           = "join"
	CmdLeave          = "leave"
)

const genericFailure = "Sorry, that didn't work. Please try again later."

// Commands implements the one-shot slash commands that bypass the menu.
type Commands struct {
	platform  Platform
	layout    *schema.Layout
	executor  *Executor
	processor *Processor
	logger    Logger
}

// NewCommands creates the one-shot command handlers.
func NewCommands(platform Platform, layout *schema.Layout, executor *Executor, processor *Processor, logger Logger) *Commands {
	return &Commands{
		platform:  platform,
		layout:    layout,
		executor:  executor,
		processor: processor,
		logger:    logger,
	}
}

// Handle runs a one-shot command and replies ephemerally with its outcome.
func (c *Commands) Handle(ctx context.Context, in *Interaction) error {
	arg, _ := in.FirstValue()
	c.logger.Debug("Command invoked", "command", in.CustomID, "user", in.User.Tag, "arg", arg)

	var (
		reply string
		err   error
	)
	switch in.CustomID {
	case CmdBecome:
		reply, err = c.Become(ctx, in.User, arg)
	case CmdJoin:
		reply, err = c.Join(ctx, in.User, arg)
	case CmdLeave:
		reply, err = c.Leave(ctx, in.User, arg)
	default:
		c.logger.Error("Received an unimplemented command", "command", in.CustomID)
		return fmt.Errorf("%w: command %q", ErrUnknownChoice, in.CustomID)
	}

	var te *TargetError
	switch {
	case errors.As(err, &te):
		reply = te.Message
	case err != nil:
		reply = genericFailure
	}

	if replyErr := c.platform.Reply(ctx, in, reply); replyErr != nil {
		return fmt.Errorf("reply to /%s: %w", in.CustomID, replyErr)
	}
	return err
}

// Become switches the user's membership type to the role keyed by choice.
func (c *Commands) Become(ctx context.Context, user User, choice string) (string, error) {
	m, ok := c.layout.Membership(choice)
	if !ok {
		c.logger.Error("Invalid choice for /become", "user", user.Tag, "choice", choice)
		return "", &TargetError{
			Command: CmdBecome,
			Target:  choice,
			Message: fmt.Sprintf("Error: %q is not a membership type!", choice),
		}
	}

	if err := c.executor.ChangeMembershipRole(ctx, user, m.RoleID, c.layout.MembershipRoleIDs()); err != nil {
		return "", err
	}
	return fmt.Sprintf("You're now registered as: %s!", m.Name), nil
}

// Join grants visibility of a joinable channel named name (a leading '#' is
// ignored).
func (c *Commands) Join(ctx context.Context, user User, name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")

	channels, err := c.processor.JoinableChannels(ctx, c.layout.ChannelCategories, false)
	if err != nil {
		c.logger.Error("Error listing joinable channels", "error", err)
		return "", err
	}

	for _, ch := range channels {
		if ch.Name != name {
			continue
		}
		if err := c.executor.JoinChannel(ctx, user, ch.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("You've successfully joined <#%s>!", ch.ID), nil
	}

	return "", &TargetError{
		Command: CmdJoin,
		Target:  name,
		Message: fmt.Sprintf("Error: %q is not a joinable channel!", name),
	}
}

// Leave removes the user's visibility grant on a channel under a channel
// category. Excluded channels can be left.
func (c *Commands) Leave(ctx context.Context, user User, channelID string) (string, error) {
	channels, err := c.processor.JoinableChannels(ctx, c.layout.ChannelCategories, true)
	if err != nil {
		c.logger.Error("Error listing leavable channels", "error", err)
		return "", err
	}

	for _, ch := range channels {
		if ch.ID != channelID {
			continue
		}
		if err := c.executor.LeaveChannel(ctx, user, ch.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("You've successfully left #%s!", ch.Name), nil
	}

	return "", &TargetError{
		Command: CmdLeave,
		Target:  channelID,
		Message: fmt.Sprintf("Error: <#%s> is not a leavable channel!", channelID),
	}
}
