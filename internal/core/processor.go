package core

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"missioncontrol/internal/metrics"
	"missioncontrol/pkg/schema"
)

// Processor turns a pending selection into a mutation and recomputes the
// selectable candidates for the session's current step.
type Processor struct {
	platform Platform
	layout   *schema.Layout
	executor *Executor
	logger   Logger
}

// NewProcessor creates a processor.
func NewProcessor(platform Platform, layout *schema.Layout, executor *Executor, logger Logger) *Processor {
	return &Processor{
		platform: platform,
		layout:   layout,
		executor: executor,
		logger:   logger,
	}
}

// Process reacts to a pending selection and refreshes the candidate list.
// It does nothing outside a modification.
func (p *Processor) Process(ctx context.Context, s *Session) {
	phase, ok := s.Phase()
	if !ok {
		return
	}
	applied := s.Pending != ""
	if applied {
		p.apply(ctx, s, phase)
		s.Pending = ""
	}

	if phase != PhaseInitial {
		s.Candidates = p.candidates(ctx, s.Owner, s.Category, phase)
	}

	// A membership change is one-shot.
	if applied && phase == PhaseChange {
		s.returnToMainMenu()
	}
}

// apply runs the mutation for the pending value. Failures were already
// logged by the executor; the next list still shows the item.
func (p *Processor) apply(ctx context.Context, s *Session, phase Phase) {
	target := s.Pending
	if _, err := strconv.ParseUint(target, 10, 64); err != nil {
		violate(s.State, target, "selection is not a numeric id")
	}

	var err error
	switch s.Category {
	case CategoryMembership:
		if phase != PhaseChange {
			violate(s.State, target, "membership only supports change")
		}
		err = p.executor.ChangeMembershipRole(ctx, s.Owner, target, p.layout.MembershipRoleIDs())
	case CategoryRoles, CategoryProjects:
		switch phase {
		case PhaseAdd:
			err = p.executor.AddRole(ctx, s.Owner, target)
		case PhaseRemove:
			err = p.executor.RemoveRole(ctx, s.Owner, target)
		default:
			violate(s.State, target, "role categories only support add and remove")
		}
	case CategoryChannels, CategoryGames:
		switch phase {
		case PhaseAdd:
			err = p.executor.JoinChannel(ctx, s.Owner, target)
		case PhaseRemove:
			err = p.executor.LeaveChannel(ctx, s.Owner, target)
		default:
			violate(s.State, target, "channel categories only support add and remove")
		}
	default:
		violate(s.State, target, "selection without a category")
	}

	if err != nil {
		p.logger.Debug("Selection not applied", "session", s.ID, "value", target, "error", err)
	}
}

// candidates computes the list for category and phase. A failed read yields
// an empty list, rendered as a disabled menu.
func (p *Processor) candidates(ctx context.Context, owner User, category Category, phase Phase) []MenuOption {
	list, err := p.BuildList(ctx, owner, category, phase)
	if err != nil {
		p.logger.Error("Error building candidate list",
			"user", owner.Tag, "category", category.String(), "phase", phase.String(), "error", err)
		return make([]MenuOption, 0)
	}

	metrics.RecordCandidateList(category.String(), len(list))
	switch {
	case len(list) > schema.MaxSelectOptions:
		p.logger.Error("Candidate list exceeds the select menu limit; the menu will be rejected",
			"category", category.String(), "size", len(list), "max", schema.MaxSelectOptions)
	case len(list) > p.layout.MaxListSize:
		p.logger.Warn("Candidate list is near the select menu limit; pagination is not implemented",
			"category", category.String(), "size", len(list), "max", p.layout.MaxListSize)
	}
	return list
}

// BuildList returns the ordered candidates for one step. Invalid pairings,
// such as add under membership, are state violations.
func (p *Processor) BuildList(ctx context.Context, owner User, category Category, phase Phase) ([]MenuOption, error) {
	state := Modification{Phase: phase}

	switch category {
	case CategoryMembership:
		if phase != PhaseChange {
			violate(state, category.String(), "membership lists exist only for change")
		}
		return p.roleList(ctx, owner, p.layout.MembershipRoleIDs(), false)

	case CategoryRoles, CategoryProjects:
		allow := p.layout.Roles
		if category == CategoryProjects {
			allow = p.layout.Projects
		}
		switch phase {
		case PhaseAdd:
			return p.roleList(ctx, owner, allow, false)
		case PhaseRemove:
			return p.roleList(ctx, owner, allow, true)
		}
		violate(state, category.String(), "role lists exist only for add and remove")

	case CategoryChannels, CategoryGames:
		parents := p.layout.ChannelCategories
		if category == CategoryGames {
			parents = []string{p.layout.GameCategory}
		}
		switch phase {
		case PhaseAdd:
			return p.channelList(ctx, owner, parents, false)
		case PhaseRemove:
			return p.channelList(ctx, owner, parents, true)
		}
		violate(state, category.String(), "channel lists exist only for add and remove")
	}

	violate(state, category.String(), "no list for category")
	return nil, nil
}

// roleList filters allow to roles the owner holds (held=true) or lacks.
func (p *Processor) roleList(ctx context.Context, owner User, allow []string, held bool) ([]MenuOption, error) {
	current, err := p.platform.MemberRoles(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("read roles of %s: %w", owner.Tag, err)
	}

	list := make([]MenuOption, 0, len(allow))
	for _, role := range allow {
		if slices.Contains(current, role) != held {
			continue
		}
		name, err := p.platform.RoleName(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("resolve role %s: %w", role, err)
		}
		list = append(list, MenuOption{Label: name, Value: role})
	}
	return list, nil
}

// channelList returns text channels under parents, minus excluded ones, that
// the owner can see (visible=true) or cannot, in display order.
func (p *Processor) channelList(ctx context.Context, owner User, parents []string, visible bool) ([]MenuOption, error) {
	channels, err := p.JoinableChannels(ctx, parents, false)
	if err != nil {
		return nil, err
	}

	list := make([]MenuOption, 0, len(channels))
	for _, ch := range channels {
		sees, err := p.platform.CanSeeChannel(ctx, owner.ID, ch)
		if err != nil {
			return nil, fmt.Errorf("check visibility of %s: %w", ch.Name, err)
		}
		if sees != visible {
			continue
		}
		list = append(list, MenuOption{Label: ch.Name, Value: ch.ID})
	}
	return list, nil
}

// JoinableChannels lists the text channels under parents, sorted by display
// position. Excluded channels are dropped unless allowExcluded is set.
func (p *Processor) JoinableChannels(ctx context.Context, parents []string, allowExcluded bool) ([]Channel, error) {
	var out []Channel
	for _, parent := range parents {
		channels, err := p.platform.ChannelsUnderCategory(ctx, parent)
		if err != nil {
			return nil, fmt.Errorf("list channels under %s: %w", parent, err)
		}
		for _, ch := range channels {
			if ch.Kind != ChannelKindText || ch.ParentID != parent {
				continue
			}
			if !allowExcluded && p.layout.IsExcluded(ch.ID) {
				continue
			}
			out = append(out, ch)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}
