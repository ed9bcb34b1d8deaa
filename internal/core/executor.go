package core

import (
	"context"
	"errors"
	"fmt"

	"missioncontrol/internal/metrics"
)

// Mutation operation names, used in logs, errors and metrics.
const (
	OpChangeMembership = "change_membership"
	OpAddRole          = "add_role"
	OpRemoveRole       = "remove_role"
	OpJoinChannel      = "join_channel"
	OpLeaveChannel     = "leave_channel"
)

// Executor performs single membership-affecting operations against the
// platform. Failures are logged and returned but never retried.
type Executor struct {
	roles    Roles
	channels Channels
	logger   Logger
}

// NewExecutor creates an executor.
func NewExecutor(roles Roles, channels Channels, logger Logger) *Executor {
	return &Executor{
		roles:    roles,
		channels: channels,
		logger:   logger,
	}
}

// ChangeMembershipRole strips every role in exclusive from user, then grants
// newRole. A failed strip does not block the grant.
func (e *Executor) ChangeMembershipRole(ctx context.Context, user User, newRole string, exclusive []string) error {
	if err := e.roles.RemoveMemberRoles(ctx, user.ID, exclusive); err != nil {
		e.logger.Error("Error stripping user of membership roles", "user", user.Tag, "error", err)
	}

	err := e.roles.AddMemberRole(ctx, user.ID, newRole)
	e.record(ctx, OpChangeMembership, user, newRole, err)
	if err != nil {
		return &MutationError{Op: OpChangeMembership, User: user.Tag, Target: newRole, Err: err}
	}
	return nil
}

// AddRole grants role to user.
func (e *Executor) AddRole(ctx context.Context, user User, role string) error {
	err := e.roles.AddMemberRole(ctx, user.ID, role)
	e.record(ctx, OpAddRole, user, role, err)
	if err != nil {
		return &MutationError{Op: OpAddRole, User: user.Tag, Target: role, Err: err}
	}
	return nil
}

// RemoveRole revokes role from user.
func (e *Executor) RemoveRole(ctx context.Context, user User, role string) error {
	err := e.roles.RemoveMemberRole(ctx, user.ID, role)
	e.record(ctx, OpRemoveRole, user, role, err)
	if err != nil {
		return &MutationError{Op: OpRemoveRole, User: user.Tag, Target: role, Err: err}
	}
	return nil
}

// JoinChannel grants user visibility of a text channel.
func (e *Executor) JoinChannel(ctx context.Context, user User, channelID string) error {
	ch, err := e.textChannel(ctx, OpJoinChannel, user, channelID)
	if err != nil {
		return err
	}

	err = e.channels.GrantChannelVisibility(ctx, user.ID, ch)
	if err != nil {
		e.logger.Error("Error adding user to channel", "user", user.Tag, "channel", ch.Name, "error", err)
		metrics.RecordMutation(OpJoinChannel, false)
		return &MutationError{Op: OpJoinChannel, User: user.Tag, Target: channelID, Err: err}
	}
	e.logger.Info("Added user to channel", "user", user.Tag, "channel", ch.Name)
	metrics.RecordMutation(OpJoinChannel, true)
	return nil
}

// LeaveChannel removes user's visibility grant on a text channel.
func (e *Executor) LeaveChannel(ctx context.Context, user User, channelID string) error {
	ch, err := e.textChannel(ctx, OpLeaveChannel, user, channelID)
	if err != nil {
		return err
	}

	err = e.channels.RevokeChannelVisibility(ctx, user.ID, ch)
	if err != nil {
		e.logger.Error("Error removing user from channel", "user", user.Tag, "channel", ch.Name, "error", err)
		metrics.RecordMutation(OpLeaveChannel, false)
		return &MutationError{Op: OpLeaveChannel, User: user.Tag, Target: channelID, Err: err}
	}
	e.logger.Info("Removed user from channel", "user", user.Tag, "channel", ch.Name)
	metrics.RecordMutation(OpLeaveChannel, true)
	return nil
}

// textChannel resolves channelID and rejects anything but guild text channels.
func (e *Executor) textChannel(ctx context.Context, op string, user User, channelID string) (Channel, error) {
	ch, err := e.channels.Channel(ctx, channelID)
	if err != nil {
		e.logger.Error("Error retrieving channel", "channel_id", channelID, "error", err)
		metrics.RecordMutation(op, false)
		return Channel{}, &MutationError{Op: op, User: user.Tag, Target: channelID, Err: err}
	}

	if ch.Kind != ChannelKindText {
		e.logger.Error("Refusing visibility change on non-text channel",
			"channel_id", channelID, "kind", ch.Kind.String())
		metrics.RecordMutation(op, false)
		return Channel{}, &MutationError{
			Op:     op,
			User:   user.Tag,
			Target: channelID,
			Err:    fmt.Errorf("%w: %s", ErrNotTextChannel, ch.Kind),
		}
	}
	return ch, nil
}

// record logs a role mutation outcome with the role's display name.
func (e *Executor) record(ctx context.Context, op string, user User, role string, err error) {
	metrics.RecordMutation(op, err == nil)

	name := e.roleName(ctx, role)
	if err != nil {
		e.logger.Error("Role mutation failed", "op", op, "user", user.Tag, "role", name, "error", err)
		return
	}
	e.logger.Info("Role mutation applied", "op", op, "user", user.Tag, "role", name)
}

func (e *Executor) roleName(ctx context.Context, role string) string {
	name, err := e.roles.RoleName(ctx, role)
	if err != nil || name == "" {
		return role
	}
	return name
}

// IsMutationError reports whether err came from a failed mutation.
func IsMutationError(err error) bool {
	var me *MutationError
	return errors.As(err, &me)
}
