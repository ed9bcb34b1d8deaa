package core

import (
	"fmt"

	"missioncontrol/pkg/schema"
)

// Phase is the progress within a modification.
type Phase int

const (
	PhaseInitial Phase = iota // category chosen, awaiting add/remove/done
	PhaseAdd
	PhaseRemove
	PhaseChange // membership only
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseAdd:
		return "add"
	case PhaseRemove:
		return "remove"
	case PhaseChange:
		return "change"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is where a session is in the menu flow. It is one of MainMenu,
// Modification or Done.
type State interface {
	isState()
	String() string
}

// MainMenu is the initial state: pick a category or leave.
type MainMenu struct{}

// Modification is active while a category is being edited.
type Modification struct {
	Phase Phase
}

// Done is terminal.
type Done struct{}

func (MainMenu) isState()     {}
func (Modification) isState() {}
func (Done) isState()         {}

func (MainMenu) String() string       { return "main-menu" }
func (m Modification) String() string { return "modification(" + m.Phase.String() + ")" }
func (Done) String() string           { return "done" }

// Category is the domain a modification manages.
type Category int

const (
	CategoryNone Category = iota
	CategoryMembership
	CategoryRoles
	CategoryChannels
	CategoryProjects
	CategoryGames
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryMembership:
		return "membership"
	case CategoryRoles:
		return "roles"
	case CategoryChannels:
		return "channels"
	case CategoryProjects:
		return "projects"
	case CategoryGames:
		return "games"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MenuOption is one selectable item.
type MenuOption struct {
	Label string
	Value string // stringified role or channel id
}

// Session is one user's interactive flow. It is owned by a single goroutine
// for its whole lifetime.
type Session struct {
	ID       string
	Owner    User
	State    State
	Category Category

	// Pending holds a just-received selection until the processor consumes it.
	Pending string

	// Page is reserved for pagination and never rendered.
	Page int

	Candidates []MenuOption
	Running    bool
	Anchor     MessageHandle
}

// NewSession creates a session for owner in the main menu.
func NewSession(owner User) (*Session, error) {
	id, err := schema.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	return &Session{
		ID:         id,
		Owner:      owner,
		State:      MainMenu{},
		Candidates: make([]MenuOption, 0),
		Running:    true,
	}, nil
}

// Phase returns the modification phase, if the session is in one.
func (s *Session) Phase() (Phase, bool) {
	m, ok := s.State.(Modification)
	return m.Phase, ok
}

// returnToMainMenu leaves any modification.
func (s *Session) returnToMainMenu() {
	s.State = MainMenu{}
	s.Category = CategoryNone
	s.Page = 0
}

// finish drives the session to Done and stops its loop.
func (s *Session) finish() {
	s.State = Done{}
	s.Category = CategoryNone
	s.Running = false
}
