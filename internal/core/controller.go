package core

import (
	"context"
	"fmt"
	"time"

	"missioncontrol/internal/metrics"
)

// Session triggers, used as a metrics label.
const (
	TriggerCommand = "command"
	TriggerButton  = "button"
)

// Controller owns session lifecycles end to end: it opens a session on a
// trigger and drives its event loop until Done or timeout.
type Controller struct {
	platform  Platform
	processor *Processor
	logger    Logger
	timeout   time.Duration
}

// NewController creates a controller. A non-positive timeout falls back to
// DefaultSessionTimeout.
func NewController(platform Platform, processor *Processor, logger Logger, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &Controller{
		platform:  platform,
		processor: processor,
		logger:    logger,
		timeout:   timeout,
	}
}

// Start opens a session for trigger and runs it to completion. It blocks, so
// callers run it on its own goroutine.
func (c *Controller) Start(ctx context.Context, trigger *Interaction, source string) error {
	s, err := c.Open(ctx, trigger)
	if err != nil {
		c.logger.Error("Error opening session", "user", trigger.User.Tag, "error", err)
		return err
	}
	metrics.RecordSessionOpened(source)
	return c.Run(ctx, s)
}

// Open creates a session bound to the triggering user and renders the main
// menu as the direct response to the trigger.
func (c *Controller) Open(ctx context.Context, trigger *Interaction) (*Session, error) {
	s, err := NewSession(trigger.User)
	if err != nil {
		return nil, err
	}

	msg, err := c.platform.Respond(ctx, trigger, Render(s))
	if err != nil {
		return nil, fmt.Errorf("send initial response: %w", err)
	}
	s.Anchor = msg

	c.logger.Debug("Session created", "session", s.ID, "user", s.Owner.Tag)
	return s, nil
}

// Run drives the session loop: await, handle, process, render, publish. It
// returns nil when the user leaves through Done, ErrSessionTimeout when the
// wait expires, and the StateViolation when the session hit a defect.
func (c *Controller) Run(ctx context.Context, s *Session) (err error) {
	log := c.logger.With("session", s.ID, "user", s.Owner.Tag)
	defer c.platform.Release(s.Anchor)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		violation, ok := r.(*StateViolation)
		if !ok {
			panic(r)
		}
		log.Error("Session aborted", "error", violation)
		metrics.RecordSessionEnded(metrics.EndViolation)
		err = violation
	}()

	for s.Running {
		in, ok := c.platform.AwaitInteraction(ctx, s.Anchor, c.timeout)
		if !ok {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Debug("Session cancelled", "error", ctxErr)
				metrics.RecordSessionEnded(metrics.EndError)
				return ctxErr
			}
			log.Debug("Interaction timeout")
			metrics.RecordSessionEnded(metrics.EndTimeout)
			return ErrSessionTimeout
		}

		log.Debug("Received component, processing", "custom_id", in.CustomID)
		if err := c.Cycle(ctx, s, in); err != nil {
			// The session is intact; wait for the next interaction.
			log.Error("Error publishing update", "error", err)
		}
	}

	log.Debug("Session exited gracefully")
	metrics.RecordSessionEnded(metrics.EndDone)
	return nil
}

// Cycle runs one step of the loop for a received interaction and publishes
// exactly one update in response to it.
func (c *Controller) Cycle(ctx context.Context, s *Session, in *Interaction) error {
	Handle(s, in)
	c.processor.Process(ctx, s)

	if err := c.platform.Update(ctx, in, Render(s)); err != nil {
		return fmt.Errorf("publish update: %w", err)
	}
	return nil
}
