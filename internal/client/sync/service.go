// Package sync wires the transport, the marker codec, the
// reconciliation engine and the local cache together: it is the single
// consumer of the poll loop and the single writer of the schedule
// collection and conversation log.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	gosync "sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/angmini/angmini-client/internal/client/storage"
	"github.com/angmini/angmini-client/internal/client/transport"
	"github.com/angmini/angmini-client/internal/engine"
	"github.com/angmini/angmini-client/internal/models"
	"github.com/angmini/angmini-client/pkg/protocol"
)

// userMessagePrefix tags every outbound user message. The client and the
// assistant share the same identity class on the transport, so the
// assistant needs the literal tag to tell human input from its own
// replies.
const userMessagePrefix = "[USER]"

// syncRequestText is the fixed message posted by the background sync
// schedule; the assistant answers it with a full_sync event.
const syncRequestText = "전체 일정을 동기화해줘"

//go:generate moq -out sender_mock.go . MessageSender

// MessageSender is the outbound slice of the channel client.
type MessageSender interface {
	// SendMessage posts content and returns the remote-assigned id.
	SendMessage(ctx context.Context, content string) (string, error)
}

// Service owns the in-memory schedule collection and conversation log,
// applies decoded sync events to them, and keeps the cache current.
// All mutation funnels through its mutex; the engine itself never
// suspends, so event application is atomic with respect to sends and
// view reads.
type Service struct {
	sender MessageSender
	poller *transport.Poller
	cache  storage.CacheStorage
	engine *engine.Engine
	logger *slog.Logger
	cron   *cron.Cron

	mu        gosync.Mutex
	lastSync  time.Time
	schedules []models.Schedule
	messages  []models.ChatMessage
}

// NewService creates the orchestration service. syncSchedule is a cron
// expression for the background full-sync request; empty disables it.
func NewService(
	sender MessageSender,
	poller *transport.Poller,
	cache storage.CacheStorage,
	syncSchedule string,
	logger *slog.Logger,
) (*Service, error) {
	s := &Service{
		sender: sender,
		poller: poller,
		cache:  cache,
		engine: engine.New(logger),
		logger: logger,
	}

	if syncSchedule != "" {
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(syncSchedule, s.requestSync); err != nil {
			return nil, fmt.Errorf("invalid sync schedule %q: %w", syncSchedule, err)
		}
	}

	return s, nil
}

// Start restores cached state, registers the inbound handler and begins
// polling and the background sync schedule.
func (s *Service) Start(ctx context.Context) {
	s.Restore(ctx)

	if s.poller != nil {
		s.poller.SetHandler(s.HandleInbound)
		s.poller.Start(ctx)
	}
	if s.cron != nil {
		s.cron.Start()
	}

	s.logger.Info("sync service started",
		"schedules", len(s.schedules),
		"messages", len(s.messages))
}

// Stop halts polling and the background schedule. Cached state is
// already persisted incrementally, so there is nothing to flush.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.poller != nil {
		s.poller.Stop()
	}
}

// Restore loads the persisted collection, log and last-sync marker
// without starting the poll loop; one-shot commands read cached state
// through it. Cache failures degrade to empty state; a broken cache must
// read like a fresh install, never like an error.
func (s *Service) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedules, err := s.cache.GetSchedules(ctx)
	if err != nil {
		s.logger.Warn("failed to load cached schedules, starting empty", "error", err)
		schedules = nil
	}
	messages, err := s.cache.GetMessages(ctx)
	if err != nil {
		s.logger.Warn("failed to load cached messages, starting empty", "error", err)
		messages = nil
	}
	lastSync, err := s.cache.GetLastSync(ctx)
	if err != nil {
		s.logger.Warn("failed to load last sync marker", "error", err)
		lastSync = time.Time{}
	}

	s.schedules = schedules
	s.messages = messages
	s.lastSync = lastSync
}

// HandleInbound processes one newly observed assistant message: extract
// and apply every embedded payload, then append whatever natural-language
// text remains to the conversation log. Decode failures are logged and
// swallowed; the producer is an LLM and malformed output is expected.
func (s *Service) HandleInbound(msg transport.Message) {
	ctx := context.Background()
	text := msg.Content
	now := time.Now()

	var events []models.SyncEvent

	for protocol.Detect(text, protocol.MarkerData) {
		payload, _ := protocol.Extract(text, protocol.MarkerData)
		text = protocol.Strip(text, protocol.MarkerData)
		schedules, err := protocol.DecodeScheduleList(payload)
		if err != nil {
			s.logger.Warn("discarding malformed bulk payload", "message_id", msg.ID, "error", err)
			continue
		}
		events = append(events, models.BatchMergeEvent(schedules, now))
	}

	for protocol.Detect(text, protocol.MarkerSync) {
		payload, _ := protocol.Extract(text, protocol.MarkerSync)
		text = protocol.Strip(text, protocol.MarkerSync)
		wireEvent, err := protocol.DecodeSyncEvent(payload)
		if err != nil {
			s.logger.Warn("discarding malformed sync event", "message_id", msg.ID, "error", err)
			continue
		}
		events = append(events, models.EventFromWire(wireEvent, now))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range events {
		s.schedules = s.engine.Apply(s.schedules, ev)
		s.lastSync = ev.SyncedAt
	}
	if len(events) > 0 {
		s.persistSchedulesLocked(ctx)
	}

	// Whatever survived stripping is conversational text for the log;
	// a message that was pure payload is suppressed here, not upstream.
	if residual := strings.TrimSpace(text); residual != "" {
		s.messages = append(s.messages, models.NewChatMessage(models.RoleAssistant, residual))
		s.persistMessagesLocked(ctx)
	}
}

// Send tags and transmits a user message, records the remote-assigned id
// as self-authored before any later poll tick can observe the echo, and
// appends the exchange to the conversation log. A failed send surfaces
// as an inline assistant-style error record.
func (s *Service) Send(ctx context.Context, text string) error {
	id, err := s.sender.SendMessage(ctx, userMessagePrefix+" "+text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("send failed", "error", err)
		s.messages = append(s.messages,
			models.NewChatMessage(models.RoleAssistant, "메시지 전송에 실패했어요. 잠시 후 다시 시도해주세요."))
		s.persistMessagesLocked(ctx)
		return fmt.Errorf("sending message: %w", err)
	}

	if s.poller != nil {
		s.poller.RecordSelf(id)
	}

	s.messages = append(s.messages, models.NewChatMessage(models.RoleUser, text))
	s.persistMessagesLocked(ctx)
	return nil
}

// requestSync posts the fixed background sync request. Failures are
// invisible to the user; the schedule retries on its next firing.
func (s *Service) requestSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := s.sender.SendMessage(ctx, userMessagePrefix+" "+syncRequestText)
	if err != nil {
		s.logger.Warn("background sync request failed", "error", err)
		return
	}
	if s.poller != nil {
		s.poller.RecordSelf(id)
	}
	s.logger.Debug("background sync requested", "message_id", id)
}

// Reset wipes the cache and the in-memory state; indistinguishable from
// a fresh install.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	s.schedules = nil
	s.messages = nil
	s.lastSync = time.Time{}
	return nil
}

// Schedules returns a copy of the current collection.
func (s *Service) Schedules() []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Schedule, len(s.schedules))
	copy(out, s.schedules)
	return out
}

// Messages returns a copy of the conversation log.
func (s *Service) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastSync returns when the collection last changed from a sync.
func (s *Service) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// SchedulesOn returns the cached schedules falling on date.
func (s *Service) SchedulesOn(date string) []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.On(s.schedules, date)
}

// SchedulesBetween returns the cached schedules in [from, to].
func (s *Service) SchedulesBetween(from, to string) []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Between(s.schedules, from, to)
}

// persistSchedulesLocked writes the collection and last-sync marker.
// Callers hold s.mu. Cache write failures are logged; the in-memory
// state stays authoritative for the rest of the session.
func (s *Service) persistSchedulesLocked(ctx context.Context) {
	if err := s.cache.SaveSchedules(ctx, s.schedules); err != nil {
		s.logger.Warn("failed to persist schedules", "error", err)
	}
	if err := s.cache.SaveLastSync(ctx, s.lastSync); err != nil {
		s.logger.Warn("failed to persist last sync marker", "error", err)
	}
}

// persistMessagesLocked writes the conversation log, then reloads it so
// the in-memory log reflects the cache's retention truncation.
func (s *Service) persistMessagesLocked(ctx context.Context) {
	if err := s.cache.SaveMessages(ctx, s.messages); err != nil {
		s.logger.Warn("failed to persist messages", "error", err)
		return
	}
	if saved, err := s.cache.GetMessages(ctx); err == nil {
		s.messages = saved
	}
}
