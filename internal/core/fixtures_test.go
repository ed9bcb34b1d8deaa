package core

import (
	"context"
	"testing"

	"missioncontrol/pkg/schema"

	"github.com/stretchr/testify/require"
)

var testUser = User{ID: "1", Tag: "ada"}

// Role and channel ids used across tests.
const (
	roleMember = "100"
	roleAlumni = "101"
	roleFriend = "102"

	roleIndustry = "200"
	roleIntern   = "201"
	roleResearch = "202"

	projRocket = "300"
	projRover  = "301"

	catChannels = "400"
	chanRocket  = "410"
	chanRadio   = "411"
	chanCAD     = "412"
	chanHidden  = "413"
	chanVoice   = "414"

	catGames    = "500"
	chanMinecft = "510"
	chanChess   = "511"
)

func testLayout() *schema.Layout {
	return &schema.Layout{
		GuildID: "1000",
		Memberships: []schema.MembershipRole{
			{Key: "member", RoleID: roleMember, Name: "Current Member"},
			{Key: "alumni", RoleID: roleAlumni, Name: "Graduated Alumnus"},
			{Key: "friend", RoleID: roleFriend, Name: "Friend"},
		},
		Roles:             []string{roleIndustry, roleIntern, roleResearch},
		Projects:          []string{projRocket, projRover},
		ChannelCategories: []string{catChannels},
		GameCategory:      catGames,
		ExcludedChannels:  []string{chanHidden},
		MaxListSize:       schema.DefaultMaxListSize,
	}
}

func testPlatform() *MockPlatform {
	p := NewMockPlatform()
	p.RoleNames = map[string]string{
		roleMember:   "Member",
		roleAlumni:   "Alumni",
		roleFriend:   "Friend",
		roleIndustry: "Industry Pro",
		roleIntern:   "Industry Intern",
		roleResearch: "Student Researcher",
		projRocket:   "IREC",
		projRover:    "Sojourner",
	}
	p.Channels = []Channel{
		{ID: chanRocket, Name: "rocketry", Kind: ChannelKindText, ParentID: catChannels, Position: 2},
		{ID: chanRadio, Name: "radio", Kind: ChannelKindText, ParentID: catChannels, Position: 0},
		{ID: chanCAD, Name: "cad", Kind: ChannelKindText, ParentID: catChannels, Position: 1},
		{ID: chanHidden, Name: "hydrazine", Kind: ChannelKindText, ParentID: catChannels, Position: 3},
		{ID: chanVoice, Name: "lounge", Kind: ChannelKindVoice, ParentID: catChannels, Position: 4},
		{ID: chanMinecft, Name: "minecraft", Kind: ChannelKindText, ParentID: catGames, Position: 1},
		{ID: chanChess, Name: "chess", Kind: ChannelKindText, ParentID: catGames, Position: 0},
	}
	return p
}

type testRig struct {
	platform   *MockPlatform
	layout     *schema.Layout
	executor   *Executor
	processor  *Processor
	controller *Controller
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	p := testPlatform()
	layout := testLayout()
	logger := NewDiscardLogger()
	executor := NewExecutor(p, p, logger)
	processor := NewProcessor(p, layout, executor, logger)
	return &testRig{
		platform:   p,
		layout:     layout,
		executor:   executor,
		processor:  processor,
		controller: NewController(p, processor, logger, 0),
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testUser)
	require.NoError(t, err)
	return s
}

func click(customID string) *Interaction {
	return &Interaction{ID: "in-" + customID, CustomID: customID, User: testUser}
}

func pick(value string) *Interaction {
	return &Interaction{ID: "in-sel", CustomID: IDSelect, Values: []string{value}, User: testUser}
}

func values(options []MenuOption) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Value)
	}
	return out
}

func buildList(t *testing.T, rig *testRig, category Category, phase Phase) []string {
	t.Helper()
	list, err := rig.processor.BuildList(context.Background(), testUser, category, phase)
	require.NoError(t, err)
	return values(list)
}
