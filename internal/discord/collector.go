package discord

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// collectorBuffer bounds the clicks queued for one message while its session
// is busy processing the previous one.
const collectorBuffer = 8

// Collector routes component interactions to the session that owns the
// message they were made on.
type Collector struct {
	mu      sync.Mutex
	waiters map[string]chan *discordgo.Interaction

	// pending counts menus posted but not yet watched. changed is closed
	// and replaced whenever a watch starts or a pending menu settles.
	pending int
	changed chan struct{}
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		waiters: make(map[string]chan *discordgo.Interaction),
		changed: make(chan struct{}),
	}
}

func (c *Collector) notify() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// Expect marks a menu as being posted. Clicks on unknown messages wait in
// DispatchWait until the returned func is called, normally right after
// Watch.
func (c *Collector) Expect() func() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.pending--
			c.notify()
		})
	}
}

// Watch starts collecting interactions on messageID. Watching twice is a no-op.
func (c *Collector) Watch(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.waiters[messageID]; !ok {
		c.waiters[messageID] = make(chan *discordgo.Interaction, collectorBuffer)
		c.notify()
	}
}

// Release stops collecting on messageID. Queued interactions are dropped.
func (c *Collector) Release(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.waiters, messageID)
}

// Watching reports whether messageID is owned by a live session.
func (c *Collector) Watching(messageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.waiters[messageID]
	return ok
}

// Dispatch hands i to the session watching its message. It reports false
// when nobody watches the message or its queue is full.
func (c *Collector) Dispatch(i *discordgo.Interaction) bool {
	if i.Message == nil {
		return false
	}

	c.mu.Lock()
	ch, ok := c.waiters[i.Message.ID]
	c.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case ch <- i:
		return true
	default:
		return false
	}
}

// DispatchWait is Dispatch for clicks that may race the Watch of their
// message. While a menu is pending it retries until the message is watched,
// no menu is pending, or wait elapses.
func (c *Collector) DispatchWait(ctx context.Context, i *discordgo.Interaction, wait time.Duration) bool {
	if i.Message == nil {
		return false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		c.mu.Lock()
		_, watched := c.waiters[i.Message.ID]
		pending, changed := c.pending, c.changed
		c.mu.Unlock()

		if watched {
			return c.Dispatch(i)
		}
		if pending == 0 {
			return false
		}

		select {
		case <-changed:
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// Await blocks for the next interaction on messageID, up to timeout.
func (c *Collector) Await(ctx context.Context, messageID string, timeout time.Duration) (*discordgo.Interaction, bool) {
	c.mu.Lock()
	ch, ok := c.waiters[messageID]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case i := <-ch:
		return i, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}
