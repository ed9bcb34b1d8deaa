package schema

// DefaultMaxListSize is the advisable number of options in one select menu.
// The platform hard limit is 25; past this size a warning is logged.
const DefaultMaxListSize = 20

// Layout describes the community the bot manages: which roles and channels
// members may grant themselves. It is read from a YAML or TOML file.
type Layout struct {
	GuildID string `json:"guild_id" yaml:"guild_id" toml:"guild_id"`

	// Memberships is the mutually exclusive membership role set.
	Memberships []MembershipRole `json:"memberships" yaml:"memberships" toml:"memberships"`

	// Roles is the generic self-assignable role allow-list.
	Roles []string `json:"roles" yaml:"roles" toml:"roles"`

	// Projects is the project role allow-list.
	Projects []string `json:"projects" yaml:"projects" toml:"projects"`

	// ChannelCategories are the category containers holding joinable channels.
	ChannelCategories []string `json:"channel_categories" yaml:"channel_categories" toml:"channel_categories"`

	// GameCategory is the category container holding game channels.
	GameCategory string `json:"game_category" yaml:"game_category" toml:"game_category"`

	// ExcludedChannels are never offered in menus, even when under a category.
	ExcludedChannels []string `json:"excluded_channels" yaml:"excluded_channels" toml:"excluded_channels"`

	MaxListSize int `json:"max_list_size" yaml:"max_list_size" toml:"max_list_size"`

	// IntroChannel is where the "Launch!" message is posted by the intro command.
	IntroChannel string `json:"intro_channel,omitempty" yaml:"intro_channel,omitempty" toml:"intro_channel,omitempty"`
}

// MembershipRole is one member of the exclusive membership set.
type MembershipRole struct {
	Key    string `json:"key" yaml:"key" toml:"key"`
	RoleID string `json:"role_id" yaml:"role_id" toml:"role_id"`
	Name   string `json:"name" yaml:"name" toml:"name"`
}

// DefaultLayout returns the layout of the SEDS community server.
func DefaultLayout() *Layout {
	return &Layout{
		GuildID: "491275273598402561",
		Memberships: []MembershipRole{
			{Key: "member", RoleID: "585637350529302529", Name: "Current Member"},
			{Key: "alumni", RoleID: "612059569274748969", Name: "Graduated Alumnus"},
			{Key: "friend", RoleID: "787427932346777660", Name: "Friend of SEDS"},
		},
		Roles: []string{
			"621586486793601044", // Industry Pro
			"709650648421105694", // Industry Intern
			"759187648799178785", // Student Researcher
		},
		Projects: []string{
			"787477836171968552", // RASC-AL
			"585634734122467339", // IREC
			"787478051414867978", // Sojourner
			"787478212644962305", // Liquid Bi-Prop
			"787478390705487922", // FSGC Hybrids
		},
		ChannelCategories: []string{"614536824295260160"},
		GameCategory:      "696569774632861746",
		ExcludedChannels: []string{
			"669328124357640222", // Hydrazine
		},
		MaxListSize:  DefaultMaxListSize,
		IntroChannel: "869756293894783006",
	}
}

// SetDefaults fills in default values for optional fields.
func (l *Layout) SetDefaults() {
	if l.MaxListSize == 0 {
		l.MaxListSize = DefaultMaxListSize
	}
}

// MembershipRoleIDs returns the role ids of the exclusive membership set.
func (l *Layout) MembershipRoleIDs() []string {
	ids := make([]string, 0, len(l.Memberships))
	for _, m := range l.Memberships {
		ids = append(ids, m.RoleID)
	}
	return ids
}

// Membership looks up a membership role by its key (e.g. "alumni").
func (l *Layout) Membership(key string) (MembershipRole, bool) {
	for _, m := range l.Memberships {
		if m.Key == key {
			return m, true
		}
	}
	return MembershipRole{}, false
}

// IsExcluded reports whether a channel is globally excluded from menus.
func (l *Layout) IsExcluded(channelID string) bool {
	for _, id := range l.ExcludedChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
