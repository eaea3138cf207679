package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

const auditWriteTimeout = 5 * time.Second

// AuditLogger appends audit entries asynchronously. Record never blocks the
// triggering operation and never fails it: a full queue or a failed append
// is logged and the entry dropped.
type AuditLogger struct {
	repo    port.AuditRepository
	queue   chan domain.AuditEntry
	logger  *slog.Logger
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

func NewAuditLogger(repo port.AuditRepository, queueSize, workers int, logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	a := &AuditLogger{
		repo:   repo,
		queue:  make(chan domain.AuditEntry, queueSize),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		a.wg.Add(1)
		go a.workerLoop()
	}
	return a
}

// Record enqueues one audit entry, fire-and-forget.
func (a *AuditLogger) Record(action domain.AuditAction, actorID string, payload json.RawMessage) {
	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		ActorID:   actorID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	a.closeMu.Lock()
	defer a.closeMu.Unlock()
	if a.closed {
		a.logger.Warn("audit logger closed, entry dropped", "action", action, "actor_id", actorID)
		return
	}
	select {
	case a.queue <- entry:
	default:
		a.logger.Warn("audit queue full, entry dropped", "action", action, "actor_id", actorID)
	}
}

// Close stops accepting entries, drains the queue, and waits for workers.
func (a *AuditLogger) Close() {
	a.closeMu.Lock()
	if a.closed {
		a.closeMu.Unlock()
		return
	}
	a.closed = true
	close(a.queue)
	a.closeMu.Unlock()

	a.wg.Wait()
}

func (a *AuditLogger) workerLoop() {
	defer a.wg.Done()
	for entry := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := a.repo.Append(ctx, entry); err != nil {
			a.logger.Error("failed to append audit entry",
				"audit_id", entry.ID,
				"action", entry.Action,
				"actor_id", entry.ActorID,
				"error", err,
			)
		}
		cancel()
	}
}
