package core

// Control ids the renderer emits and the handlers switch on.
const (
	IDMembership = "membership"
	IDRoles      = "roles"
	IDChannels   = "chans"
	IDProjects   = "projs"
	IDGames      = "games"
	IDExit       = "exit-mc"

	IDAdd    = "add"
	IDRemove = "remove"
	IDDone   = "done"

	IDSelect   = "sel-val"
	IDNextPage = "next-page"
	IDPrevPage = "prev-page"

	// IDLaunch is the button on the intro message that opens a session.
	IDLaunch = "launch-mc"
)

// ButtonStyle mirrors the platform's button colours.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// View is a platform-neutral UI description.
type View struct {
	Content   string
	Ephemeral bool
	Rows      []Row
}

// Row is one line of controls: either buttons or a single select menu.
type Row struct {
	Buttons []Button
	Select  *SelectMenu
}

// Button is a clickable control.
type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
	Disabled bool
}

// SelectMenu is a single-select dropdown.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []MenuOption
	Disabled    bool
}
