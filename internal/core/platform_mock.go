package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockPlatform is an in-memory guild for testing. Interactions are scripted
// through Queue; an empty queue behaves like an elapsed timeout.
type MockPlatform struct {
	mu sync.Mutex

	RoleNames map[string]string          // role id -> display name
	Members   map[string]map[string]bool // user id -> held role ids
	Channels  []Channel
	Visible   map[string]map[string]bool // channel id -> user id -> visible

	Queue []*Interaction

	// Recorded output
	Responses []View
	Updates   []View
	Replies   []string
	Released  []MessageHandle
	Timeouts  []time.Duration

	// Injected failures
	RespondErr   error
	UpdateErr    error
	ReplyErr     error
	ReadRolesErr error
	AddRoleErr   error
	RemoveErr    error
	GrantErr     error
	RevokeErr    error

	// Call counters
	AddRoleCalls int
	RemoveCalls  int
	GrantCalls   int
	RevokeCalls  int
}

// NewMockPlatform creates an empty mock guild.
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		RoleNames: make(map[string]string),
		Members:   make(map[string]map[string]bool),
		Visible:   make(map[string]map[string]bool),
	}
}

// GiveRoles sets roles on a user without going through the mutation API.
func (m *MockPlatform) GiveRoles(userID string, roles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Members[userID] == nil {
		m.Members[userID] = make(map[string]bool)
	}
	for _, r := range roles {
		m.Members[userID][r] = true
	}
}

// HasRole reports whether userID holds role.
func (m *MockPlatform) HasRole(userID, role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Members[userID][role]
}

// Show makes a channel visible to a user without going through the mutation API.
func (m *MockPlatform) Show(userID, channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Visible[channelID] == nil {
		m.Visible[channelID] = make(map[string]bool)
	}
	m.Visible[channelID][userID] = true
}

// Sees reports whether userID can see channelID.
func (m *MockPlatform) Sees(userID, channelID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Visible[channelID][userID]
}

// Push appends scripted interactions.
func (m *MockPlatform) Push(in ...*Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queue = append(m.Queue, in...)
}

func (m *MockPlatform) Respond(ctx context.Context, trigger *Interaction, view View) (MessageHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RespondErr != nil {
		return MessageHandle{}, m.RespondErr
	}
	m.Responses = append(m.Responses, view)
	return MessageHandle{ChannelID: "chan", MessageID: fmt.Sprintf("msg-%d", len(m.Responses))}, nil
}

func (m *MockPlatform) AwaitInteraction(ctx context.Context, msg MessageHandle, timeout time.Duration) (*Interaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timeouts = append(m.Timeouts, timeout)
	if ctx.Err() != nil || len(m.Queue) == 0 {
		return nil, false
	}
	in := m.Queue[0]
	m.Queue = m.Queue[1:]
	in.Message = msg
	return in, true
}

func (m *MockPlatform) Update(ctx context.Context, in *Interaction, view View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updates = append(m.Updates, view)
	return nil
}

func (m *MockPlatform) Reply(ctx context.Context, in *Interaction, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReplyErr != nil {
		return m.ReplyErr
	}
	m.Replies = append(m.Replies, content)
	return nil
}

func (m *MockPlatform) Release(msg MessageHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Released = append(m.Released, msg)
}

func (m *MockPlatform) MemberRoles(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadRolesErr != nil {
		return nil, m.ReadRolesErr
	}
	roles := make([]string, 0, len(m.Members[userID]))
	for r := range m.Members[userID] {
		roles = append(roles, r)
	}
	return roles, nil
}

func (m *MockPlatform) AddMemberRole(ctx context.Context, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddRoleCalls++
	if m.AddRoleErr != nil {
		return m.AddRoleErr
	}
	if m.Members[userID] == nil {
		m.Members[userID] = make(map[string]bool)
	}
	m.Members[userID][roleID] = true
	return nil
}

func (m *MockPlatform) RemoveMemberRole(ctx context.Context, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Members[userID], roleID)
	return nil
}

func (m *MockPlatform) RemoveMemberRoles(ctx context.Context, userID string, roleIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	for _, r := range roleIDs {
		delete(m.Members[userID], r)
	}
	return nil
}

func (m *MockPlatform) RoleName(ctx context.Context, roleID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.RoleNames[roleID]
	if !ok {
		return "", fmt.Errorf("unknown role %s", roleID)
	}
	return name, nil
}

func (m *MockPlatform) Channel(ctx context.Context, channelID string) (Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.Channels {
		if ch.ID == channelID {
			return ch, nil
		}
	}
	return Channel{}, fmt.Errorf("unknown channel %s", channelID)
}

func (m *MockPlatform) ChannelsUnderCategory(ctx context.Context, categoryID string) ([]Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Channel
	for _, ch := range m.Channels {
		if ch.ParentID == categoryID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (m *MockPlatform) CanSeeChannel(ctx context.Context, userID string, ch Channel) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Visible[ch.ID][userID], nil
}

func (m *MockPlatform) GrantChannelVisibility(ctx context.Context, userID string, ch Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GrantCalls++
	if m.GrantErr != nil {
		return m.GrantErr
	}
	if m.Visible[ch.ID] == nil {
		m.Visible[ch.ID] = make(map[string]bool)
	}
	m.Visible[ch.ID][userID] = true
	return nil
}

func (m *MockPlatform) RevokeChannelVisibility(ctx context.Context, userID string, ch Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RevokeCalls++
	if m.RevokeErr != nil {
		return m.RevokeErr
	}
	delete(m.Visible[ch.ID], userID)
	return nil
}
