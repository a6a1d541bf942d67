// Package monitor polls the backing services so the rest of the process
// can make online/offline decisions without issuing its own probes. The
// buffer processor keys its drain cycle on IsOnline.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/agora/backend/internal/infrastructure/buffer"
)

type Monitor struct {
	documents *pgxpool.Pool
	sessions  *redislib.Client
	buffer    *buffer.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(documents *pgxpool.Pool, sessions *redislib.Client, buf *buffer.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		documents: documents,
		sessions:  sessions,
		buffer:    buf,
		interval:  interval,
		stopCh:    make(chan struct{}),
		logger:    logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports whether writes can go straight to the document store.
// The session cache is included: a half-up process should keep buffering
// rather than serve requests it cannot authenticate.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Documents && m.status.Sessions
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	bufferOK, bufferSize := m.checkBuffer()
	status := Status{
		Documents:  m.checkDocuments(),
		Sessions:   m.checkSessions(),
		Buffer:     bufferOK,
		BufferSize: bufferSize,
		LastCheck:  time.Now(),
	}

	m.mu.Lock()
	wasOnline := m.status.Documents && m.status.Sessions
	m.status = status
	m.mu.Unlock()

	if online := status.Documents && status.Sessions; online != wasOnline {
		m.logger.Info("connectivity changed",
			zap.Bool("online", online),
			zap.Int("buffered", bufferSize))
	}
}

func (m *Monitor) checkDocuments() bool {
	if m.documents == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.documents.Ping(ctx) == nil
}

func (m *Monitor) checkSessions() bool {
	if m.sessions == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.sessions.Ping(ctx).Err() == nil
}

func (m *Monitor) checkBuffer() (bool, int) {
	if m.buffer == nil {
		return false, 0
	}
	size, err := m.buffer.Size()
	if err != nil {
		m.logger.Warn("buffer size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
