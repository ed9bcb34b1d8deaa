package schema

import (
	"fmt"
	"strconv"
)

// MaxSelectOptions is the platform's hard limit on options in one select menu.
const MaxSelectOptions = 25

// ValidationError represents a layout validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateLayout validates a guild layout.
func ValidateLayout(l *Layout) error {
	if err := validateSnowflake("guild_id", l.GuildID); err != nil {
		return err
	}

	if len(l.Memberships) == 0 {
		return &ValidationError{Field: "memberships", Message: "at least one membership role is required"}
	}
	keys := make(map[string]bool, len(l.Memberships))
	for i, m := range l.Memberships {
		field := fmt.Sprintf("memberships[%d]", i)
		if m.Key == "" {
			return &ValidationError{Field: field + ".key", Message: "must not be empty"}
		}
		if keys[m.Key] {
			return &ValidationError{Field: field + ".key", Message: fmt.Sprintf("duplicate key %q", m.Key)}
		}
		keys[m.Key] = true
		if err := validateSnowflake(field+".role_id", m.RoleID); err != nil {
			return err
		}
	}

	if err := validateSnowflakes("roles", l.Roles); err != nil {
		return err
	}
	if err := validateSnowflakes("projects", l.Projects); err != nil {
		return err
	}
	if len(l.ChannelCategories) == 0 {
		return &ValidationError{Field: "channel_categories", Message: "at least one category is required"}
	}
	if err := validateSnowflakes("channel_categories", l.ChannelCategories); err != nil {
		return err
	}
	if err := validateSnowflake("game_category", l.GameCategory); err != nil {
		return err
	}
	if err := validateSnowflakes("excluded_channels", l.ExcludedChannels); err != nil {
		return err
	}
	if l.IntroChannel != "" {
		if err := validateSnowflake("intro_channel", l.IntroChannel); err != nil {
			return err
		}
	}

	if l.MaxListSize < 1 || l.MaxListSize > MaxSelectOptions {
		return &ValidationError{
			Field:   "max_list_size",
			Message: fmt.Sprintf("must be 1-%d", MaxSelectOptions),
		}
	}

	return nil
}

// validateSnowflake checks that an id is the decimal form of a platform snowflake.
func validateSnowflake(field, id string) error {
	if id == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a numeric id", id)}
	}
	return nil
}

func validateSnowflakes(field string, ids []string) error {
	for i, id := range ids {
		if err := validateSnowflake(fmt.Sprintf("%s[%d]", field, i), id); err != nil {
			return err
		}
	}
	return nil
}
