package service

import (
	"context"
	"time"

	"github.com/aegiscare/hms/internal/domain"
	"github.com/aegiscare/hms/pkg/metrics"
	"go.uber.org/zap"
)

type EntryLogRepository interface {
	Create(ctx context.Context, e *domain.EntryLog) error
	ListRecent(ctx context.Context, limit int) ([]*domain.EntryLog, error)
}

// EntryLogService persists login/logout entries asynchronously so the auth
// path never blocks on bookkeeping writes.
type EntryLogService struct {
	repo      EntryLogRepository
	log       *zap.Logger
	collector *metrics.Collector
	entries   chan *domain.EntryLog
	done      chan struct{}
}

const entryBufferSize = 10_000

func NewEntryLogService(repo EntryLogRepository, log *zap.Logger, collector *metrics.Collector) *EntryLogService {
	svc := &EntryLogService{
		repo:      repo,
		log:       log,
		collector: collector,
		entries:   make(chan *domain.EntryLog, entryBufferSize),
		done:      make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// RecordAsync enqueues an entry for async persistence.
// If the buffer is full, the entry is dropped and a warning is emitted.
func (s *EntryLogService) RecordAsync(p *domain.Principal, event domain.EntryEvent, ip string) {
	e := &domain.EntryLog{
		UserID:    p.UserID,
		Username:  p.Username,
		UserRole:  p.Role,
		Event:     event,
		IPAddress: ip,
	}

	select {
	case s.entries <- e:
	default:
		s.collector.EntryLogsDropped.Inc()
		s.log.Warn("entry log buffer full, dropping entry",
			zap.String("username", p.Username),
			zap.String("event", string(event)),
		)
	}
}

// ListRecent returns the latest entries for the admin dashboard.
func (s *EntryLogService) ListRecent(ctx context.Context, limit int) ([]*domain.EntryLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *EntryLogService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("entry log service shutdown timed out; some entries may be lost")
	}
}

func (s *EntryLogService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist entry log", zap.Error(err))
		} else {
			s.collector.EntryLogsTotal.Inc()
		}
		cancel()
	}
}
