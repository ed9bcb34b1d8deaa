package core

const (
	mainMenuContent = "Welcome to Mission Control! What would you like to manage?"
	goodbyeContent  = "Goodbye!"
	noOptionsText   = "There are no available options!"
)

// Render turns a session into the view for its current state. It performs
// no I/O and does not modify the session.
func Render(s *Session) View {
	switch st := s.State.(type) {
	case MainMenu:
		return renderMainMenu()
	case Modification:
		return renderModification(s, st.Phase)
	case Done:
		return View{Content: goodbyeContent, Ephemeral: true}
	default:
		violate(s.State, "", "no renderer for state")
		return View{}
	}
}

func renderMainMenu() View {
	return View{
		Content:   mainMenuContent,
		Ephemeral: true,
		Rows: []Row{
			{Buttons: []Button{
				{CustomID: IDMembership, Label: "Membership", Style: ButtonPrimary},
				{CustomID: IDRoles, Label: "Roles", Style: ButtonPrimary},
				{CustomID: IDChannels, Label: "Channels", Style: ButtonPrimary},
				{CustomID: IDProjects, Label: "Projects", Style: ButtonPrimary},
				{CustomID: IDGames, Label: "Games", Style: ButtonPrimary},
			}},
			{Buttons: []Button{
				{CustomID: IDExit, Label: "Done", Style: ButtonSecondary},
			}},
		},
	}
}

// initialLabels are the add/remove button labels per category.
var initialLabels = map[Category][2]string{
	CategoryRoles:    {"Add Roles", "Remove Roles"},
	CategoryChannels: {"Join Channels", "Leave Channels"},
	CategoryProjects: {"Join Projects", "Leave Projects"},
	CategoryGames:    {"Add Games", "Remove Games"},
}

// placeholders maps category and phase to select-menu copy.
var placeholders = map[Category]map[Phase]string{
	CategoryMembership: {
		PhaseChange: "Select a new membership type...",
	},
	CategoryRoles: {
		PhaseAdd:    "Select a role to add...",
		PhaseRemove: "Select a role to remove...",
	},
	CategoryChannels: {
		PhaseAdd:    "Select a channel to join...",
		PhaseRemove: "Select a channel to leave...",
	},
	CategoryProjects: {
		PhaseAdd:    "Select a project to join...",
		PhaseRemove: "Select a project to leave...",
	},
	CategoryGames: {
		PhaseAdd:    "Select a game to add...",
		PhaseRemove: "Select a game to remove...",
	},
}

var categoryTitles = map[Category]string{
	CategoryMembership: "Membership",
	CategoryRoles:      "Roles",
	CategoryChannels:   "Channels",
	CategoryProjects:   "Projects",
	CategoryGames:      "Games",
}

func renderModification(s *Session, phase Phase) View {
	title, ok := categoryTitles[s.Category]
	if !ok {
		violate(s.State, s.Category.String(), "modification without a category")
	}
	view := View{Content: "Mission Control: " + title, Ephemeral: true}

	if phase == PhaseInitial {
		labels, ok := initialLabels[s.Category]
		if !ok {
			violate(s.State, s.Category.String(), "category has no initial menu")
		}
		view.Rows = []Row{{Buttons: []Button{
			{CustomID: IDAdd, Label: labels[0], Style: ButtonSuccess},
			{CustomID: IDRemove, Label: labels[1], Style: ButtonDanger},
			doneButton(),
		}}}
		return view
	}

	placeholder, ok := placeholders[s.Category][phase]
	if !ok {
		violate(s.State, s.Category.String(), "no select menu for category in this phase")
	}
	view.Rows = []Row{
		{Select: selectMenu(placeholder, s.Candidates)},
		{Buttons: []Button{doneButton()}},
	}
	return view
}

// selectMenu builds the candidate menu. An empty list is rendered disabled
// with a single inert option, since the platform rejects option-less menus.
func selectMenu(placeholder string, candidates []MenuOption) *SelectMenu {
	if len(candidates) == 0 {
		return &SelectMenu{
			CustomID:    IDSelect,
			Placeholder: noOptionsText,
			Options:     []MenuOption{{Label: "none", Value: "none"}},
			Disabled:    true,
		}
	}

	options := make([]MenuOption, len(candidates))
	copy(options, candidates)
	return &SelectMenu{
		CustomID:    IDSelect,
		Placeholder: placeholder,
		Options:     options,
	}
}

func doneButton() Button {
	return Button{CustomID: IDDone, Label: "Done", Style: ButtonSecondary}
}
