package transport

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

//go:generate moq -out source_mock.go . MessageSource

// MessageSource is the slice of the channel client the poller needs.
// Separated so the poll loop can be tested against an in-memory log.
type MessageSource interface {
	// LatestMessage returns the newest message in the channel, or nil
	// when the channel is empty.
	LatestMessage(ctx context.Context) (*Message, error)

	// MessagesAfter returns messages newer than cursor, oldest first.
	MessagesAfter(ctx context.Context, cursor string) ([]Message, error)
}

// Handler consumes one newly observed remote message.
type Handler func(msg Message)

// Poller watches the channel for new messages. It seeds its cursor from
// the newest existing message on first activation (so history is never
// replayed), then delivers each subsequent remote message to the single
// registered handler exactly once per process, in chronological order.
// Messages the client authored itself are suppressed.
type Poller struct {
	source      MessageSource
	logger      *slog.Logger
	handler     Handler
	stopCh      chan struct{}
	selfIDs     map[string]struct{}
	assistantID string
	interval    time.Duration
	cursor      string
	mu          sync.Mutex
	seeded      bool
	active      bool
}

// NewPoller creates a poller over the given source. assistantID, when
// non-empty, restricts delivery to that author; otherwise any bot-
// authored message that is not the client's own echo is delivered.
func NewPoller(source MessageSource, interval time.Duration, assistantID string, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		source:      source,
		interval:    interval,
		assistantID: assistantID,
		logger:      logger,
		selfIDs:     make(map[string]struct{}),
	}
}

// SetHandler registers the single consumer callback. Must be called
// before Start.
func (p *Poller) SetHandler(h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = h
}

// RecordSelf remembers a message identifier the client itself authored,
// so the poll loop never delivers the client's own echo. It must be
// called synchronously on send success, before the next tick can observe
// the message.
func (p *Poller) RecordSelf(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selfIDs[id] = struct{}{}
}

// Cursor returns the identifier of the most recently observed message.
func (p *Poller) Cursor() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Start begins polling. Restarting an active poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return
	}
	p.active = true
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	go p.loop(ctx, stopCh)
}

// Stop cancels the polling timer. An in-flight fetch is allowed to
// finish; its results are discarded because delivery checks the active
// flag. The poller can be re-activated with Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.active = false
	close(p.stopCh)
}

func (p *Poller) loop(ctx context.Context, stopCh chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick performs one poll step. Transport failures are logged and left
// for the next tick; they never stop the timer.
func (p *Poller) tick(ctx context.Context) {
	p.mu.Lock()
	seeded := p.seeded
	cursor := p.cursor
	p.mu.Unlock()

	if !seeded {
		p.seed(ctx)
		return
	}

	messages, err := p.source.MessagesAfter(ctx, cursor)
	if err != nil {
		p.logger.Warn("poll fetch failed, will retry", "error", err)
		return
	}

	for _, msg := range messages {
		p.observe(msg)
	}
}

// seed initializes the cursor from the newest existing message without
// delivering it, so a fresh launch does not replay channel history.
func (p *Poller) seed(ctx context.Context) {
	latest, err := p.source.LatestMessage(ctx)
	if err != nil {
		p.logger.Warn("cursor seed failed, will retry", "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if latest != nil {
		p.cursor = latest.ID
	}
	p.seeded = true
	p.logger.Debug("poll cursor seeded", "cursor", p.cursor)
}

// observe advances the cursor over one message and decides whether to
// deliver it. The cursor advances for every message, self-authored ones
// included; once the cursor has passed an id the self set no longer
// needs it, so passed entries are pruned.
func (p *Poller) observe(msg Message) {
	p.mu.Lock()

	if compareIDs(msg.ID, p.cursor) > 0 {
		p.cursor = msg.ID
	}

	if _, own := p.selfIDs[msg.ID]; own {
		delete(p.selfIDs, msg.ID)
		p.mu.Unlock()
		return
	}

	deliver := p.active && p.handler != nil && p.isRemote(msg)
	handler := p.handler
	p.mu.Unlock()

	if deliver {
		handler(msg)
	}
}

// isRemote reports whether the message comes from the assistant
// counterpart. The client and the assistant share the same identity
// class on this transport (both are bots), so authorship alone cannot
// distinguish them; the self set has already filtered our own ids by
// the time this runs.
func (p *Poller) isRemote(msg Message) bool {
	if !msg.Author.Bot {
		return false
	}
	if p.assistantID != "" && msg.Author.ID != p.assistantID {
		return false
	}
	return true
}
