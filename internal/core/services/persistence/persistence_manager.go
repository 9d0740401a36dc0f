package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.AuditRepository = (*PersistenceManager)(nil)

// PersistenceManager handles background batch writing of audit entries so
// that request paths never wait on the database.
type PersistenceManager struct {
	storage     ports.AuditStore
	persistChan chan domain.AuditLog
	flushReq    chan chan struct{}
	batchSize   int
	interval    time.Duration
	enabled     bool
	mu          sync.RWMutex
	logger      *slog.Logger
	done        chan struct{}
}

// NewPersistenceManager creates a new manager.
func NewPersistenceManager(storage ports.AuditStore, bufferSize int, logger *slog.Logger) *PersistenceManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistenceManager{
		storage:     storage,
		persistChan: make(chan domain.AuditLog, bufferSize),
		flushReq:    make(chan chan struct{}),
		batchSize:   100,
		interval:    5 * time.Second,
		enabled:     true, // Enabled by default
		logger:      logger.With("component", "audit_persistence"),
		done:        make(chan struct{}),
	}
}

// Persist queues an entry if enabled. A full queue drops the entry.
func (p *PersistenceManager) Persist(entry domain.AuditLog) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.enabled {
		return
	}
	select {
	case p.persistChan <- entry:
	default:
		p.logger.Warn("Audit queue full, dropping entry", "action", entry.Action)
	}
}

// SaveAuditLog queues the entry; it implements ports.AuditRepository.
func (p *PersistenceManager) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	p.Persist(entry)
	return nil
}

// ListAuditLogs flushes pending entries and reads from storage.
func (p *PersistenceManager) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	p.Flush(ctx)
	return p.storage.ListAuditLogs(ctx, limit)
}

// IsEnabled returns the current persistence status.
func (p *PersistenceManager) IsEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

// SetEnabled toggles the persistence logic.
func (p *PersistenceManager) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Flush asks the loop to write what it holds and waits for it. It returns
// early if the loop is not running or ctx ends.
func (p *PersistenceManager) Flush(ctx context.Context) {
	ack := make(chan struct{})
	select {
	case p.flushReq <- ack:
	case <-p.done:
		return
	case <-ctx.Done():
		return
	}
	select {
	case <-ack:
	case <-ctx.Done():
	}
}

// Done is closed once the loop has exited and flushed.
func (p *PersistenceManager) Done() <-chan struct{} {
	return p.done
}

// Start begins the persistence loop.
func (p *PersistenceManager) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	var buffer []domain.AuditLog

	go func() {
		defer close(p.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				buffer = p.drain(buffer)
				p.flushBuffer(buffer)
				return
			case entry := <-p.persistChan:
				buffer = append(buffer, entry)
				if len(buffer) >= p.batchSize {
					p.flushBuffer(buffer)
					buffer = nil
				}
			case ack := <-p.flushReq:
				buffer = p.drain(buffer)
				p.flushBuffer(buffer)
				buffer = nil
				close(ack)
			case <-ticker.C:
				if len(buffer) > 0 {
					p.flushBuffer(buffer)
					buffer = nil
				}
			}
		}
	}()
}

func (p *PersistenceManager) drain(buffer []domain.AuditLog) []domain.AuditLog {
	for {
		select {
		case entry := <-p.persistChan:
			buffer = append(buffer, entry)
		default:
			return buffer
		}
	}
}

func (p *PersistenceManager) flushBuffer(buffer []domain.AuditLog) {
	if len(buffer) == 0 || p.storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.storage.SaveAuditLogs(ctx, buffer); err != nil {
		p.logger.Error("Failed to batch save audit entries", "count", len(buffer), "error", err)
	}
}
