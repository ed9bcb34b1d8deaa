package discord

import (
	"context"
	"errors"
	"sync"
	"time"

	"missioncontrol/internal/core"
	"missioncontrol/pkg/schema"

	"github.com/bwmarrin/discordgo"
)

// pendingWatchWait bounds how long a click waits for a menu that is still
// being posted.
const pendingWatchWait = 2 * time.Second

// Bot wires gateway events to sessions and one-shot commands.
type Bot struct {
	api        API
	appID      string
	layout     *schema.Layout
	collector  *Collector
	controller *core.Controller
	commands   *core.Commands
	logger     core.Logger

	ctx     context.Context
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// NewBot assembles the bot and its core services. Sessions are cancelled
// when ctx is done.
func NewBot(ctx context.Context, api API, cfg *core.Config, layout *schema.Layout, logger core.Logger) *Bot {
	collector := NewCollector()
	client := NewClient(api, layout.GuildID, collector, logger)
	executor := core.NewExecutor(client, client, logger)
	processor := core.NewProcessor(client, layout, executor, logger)

	return &Bot{
		api:        api,
		appID:      cfg.AppID,
		layout:     layout,
		collector:  collector,
		controller: core.NewController(client, processor, logger, cfg.SessionTimeout),
		commands:   core.NewCommands(client, layout, executor, processor, logger),
		logger:     logger,
		ctx:        ctx,
	}
}

// OnReady registers the slash commands once the gateway is up.
func (b *Bot) OnReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.logger.Info("Connected", "user", r.User.String())
	}

	created, err := RegisterCommands(b.api, b.appID, b.layout)
	if err != nil {
		b.logger.Error("Error registering commands", "error", err)
		return
	}
	b.logger.Info("Registered commands", "guild", b.layout.GuildID, "count", len(created))
}

// OnInteractionCreate is the gateway handler for every interaction.
func (b *Bot) OnInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Dispatch(i.Interaction)
}

// Dispatch routes an interaction: /mc and the launch button open a session,
// other commands run one-shot, and remaining clicks go to their session.
func (b *Bot) Dispatch(i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		in, err := toInteraction(i)
		if err != nil {
			b.logger.Error("Error reading command", "error", err)
			return
		}
		if in.CustomID == core.CmdMissionControl {
			b.startSession(in, core.TriggerCommand)
			return
		}
		b.runCommand(in)

	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == core.IDLaunch {
			in, err := toInteraction(i)
			if err != nil {
				b.logger.Error("Error reading launch click", "error", err)
				return
			}
			b.startSession(in, core.TriggerButton)
			return
		}
		if !b.collector.DispatchWait(b.ctx, i, pendingWatchWait) {
			b.acknowledgeStale(i)
		}

	default:
		b.logger.Debug("Ignoring interaction", "type", i.Type.String())
	}
}

func (b *Bot) startSession(in *core.Interaction, trigger string) {
	started := b.spawn(func() {
		err := b.controller.Start(b.ctx, in, trigger)
		switch {
		case err == nil, errors.Is(err, core.ErrSessionTimeout), errors.Is(err, context.Canceled):
		default:
			b.logger.Error("Session ended with error", "user", in.User.Tag, "error", err)
		}
	})
	if !started {
		b.logger.Info("Shutting down, session not started", "user", in.User.Tag)
	}
}

func (b *Bot) runCommand(in *core.Interaction) {
	started := b.spawn(func() {
		if err := b.commands.Handle(b.ctx, in); err != nil {
			b.logger.Debug("Command failed", "command", in.CustomID, "user", in.User.Tag, "error", err)
		}
	})
	if !started {
		b.logger.Info("Shutting down, command dropped", "command", in.CustomID, "user", in.User.Tag)
	}
}

// spawn runs fn on a tracked goroutine unless the bot is shutting down.
func (b *Bot) spawn(fn func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closing || b.ctx.Err() != nil {
		return false
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
	return true
}

// acknowledgeStale answers clicks on a menu whose session has ended, so the
// client does not report a failed interaction.
func (b *Bot) acknowledgeStale(i *discordgo.Interaction) {
	b.logger.Debug("Click on a message without a live session", "custom_id", i.MessageComponentData().CustomID)
	err := b.api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(b.ctx))
	if err != nil {
		b.logger.Warn("Error acknowledging stale click", "error", err)
	}
}

// Wait stops accepting new sessions and commands, then blocks until every
// running one has returned.
func (b *Bot) Wait() {
	b.mu.Lock()
	b.closing = true
	b.mu.Unlock()

	b.wg.Wait()
}
