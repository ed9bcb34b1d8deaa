package core

// mainMenuTargets maps main-menu buttons to the category they open.
var mainMenuTargets = map[string]Category{
	IDMembership: CategoryMembership,
	IDRoles:      CategoryRoles,
	IDChannels:   CategoryChannels,
	IDProjects:   CategoryProjects,
	IDGames:      CategoryGames,
}

// Handle applies one interaction to the session's state. Inputs the current
// state does not accept are state violations.
func Handle(s *Session, in *Interaction) {
	switch st := s.State.(type) {
	case MainMenu:
		handleMainMenu(s, in)
	case Modification:
		handleModification(s, st.Phase, in)
	default:
		// Done ends the loop before another interaction can be dispatched.
		violate(s.State, in.CustomID, "no handler for state")
	}
}

func handleMainMenu(s *Session, in *Interaction) {
	if in.CustomID == IDExit {
		s.finish()
		return
	}

	category, ok := mainMenuTargets[in.CustomID]
	if !ok {
		violate(s.State, in.CustomID, "unknown main menu control")
	}

	s.Category = category
	s.Candidates = s.Candidates[:0]
	if category == CategoryMembership {
		// Membership has no add/remove step.
		s.State = Modification{Phase: PhaseChange}
		return
	}
	s.State = Modification{Phase: PhaseInitial}
}

func handleModification(s *Session, phase Phase, in *Interaction) {
	if in.CustomID == IDDone {
		s.returnToMainMenu()
		s.Candidates = s.Candidates[:0]
		return
	}

	switch phase {
	case PhaseInitial:
		switch in.CustomID {
		case IDAdd:
			s.State = Modification{Phase: PhaseAdd}
		case IDRemove:
			s.State = Modification{Phase: PhaseRemove}
		default:
			violate(s.State, in.CustomID, "expected add, remove or done")
		}

	case PhaseAdd, PhaseRemove:
		switch in.CustomID {
		case IDSelect:
			s.Pending = selectedValue(s, in)
		case IDNextPage:
			s.Page++
		case IDPrevPage:
			if s.Page > 0 {
				s.Page--
			}
		default:
			violate(s.State, in.CustomID, "expected a selection, paging or done")
		}

	case PhaseChange:
		if in.CustomID != IDSelect {
			violate(s.State, in.CustomID, "expected a selection or done")
		}
		s.Pending = selectedValue(s, in)

	default:
		violate(s.State, in.CustomID, "unknown phase")
	}
}

func selectedValue(s *Session, in *Interaction) string {
	v, ok := in.FirstValue()
	if !ok || v == "" {
		violate(s.State, in.CustomID, "selection carried no value")
	}
	return v
}
