package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/2beens/coachdesk/internal/telemetry/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotConnected = errors.New("database not connected")

type State int32

const (
	StateIdle State = iota
	StateActive
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}

// DialFunc opens a new pool. A closed pgx pool cannot be reopened, so every
// connect dials a new one.
type DialFunc func(ctx context.Context) (*pgxpool.Pool, error)

// ConnectionManager owns the process-wide database pool and its state:
// idle -> active on Connect, active -> draining -> idle on Disconnect.
// Transitions are serialized; State and Pool never block on them.
type ConnectionManager struct {
	dial           DialFunc
	metricsManager *metrics.Manager

	mu       sync.Mutex // serializes transitions
	state    atomic.Int32
	pool     atomic.Pointer[pgxpool.Pool]
	lastPool atomic.Pointer[pgxpool.Pool]
}

func NewConnectionManager(dial DialFunc, metricsManager *metrics.Manager) *ConnectionManager {
	return &ConnectionManager{
		dial:           dial,
		metricsManager: metricsManager,
	}
}

func (m *ConnectionManager) State() State {
	return State(m.state.Load())
}

// Pool returns the active pool, or ErrNotConnected.
func (m *ConnectionManager) Pool() (*pgxpool.Pool, error) {
	pool := m.pool.Load()
	if pool == nil {
		return nil, ErrNotConnected
	}
	return pool, nil
}

// Connect is idempotent: when already active it returns without dialing.
func (m *ConnectionManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectLocked(ctx)
}

// Disconnect closes the pool, waiting for acquired connections to be released.
// No-op when idle.
func (m *ConnectionManager) Disconnect(ctx context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnectLocked(ctx, reason)
}

func (m *ConnectionManager) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.disconnectLocked(ctx, "reload")
	return m.connectLocked(ctx)
}

// Ping connects if needed and runs the liveness query.
func (m *ConnectionManager) Ping(ctx context.Context) error {
	if err := m.Connect(ctx); err != nil {
		return err
	}

	pool, err := m.Pool()
	if err != nil {
		return err
	}

	var one int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("liveness query: %w", err)
	}
	return nil
}

// Stat reports the statistics of the current pool, or of the last closed one.
// It returns nil before the first successful Connect.
func (m *ConnectionManager) Stat() *pgxpool.Stat {
	pool := m.lastPool.Load()
	if pool == nil {
		return nil
	}
	return pool.Stat()
}

func (m *ConnectionManager) connectLocked(ctx context.Context) error {
	if m.State() == StateActive {
		return nil
	}

	pool, err := m.dial(ctx)
	if err != nil {
		m.setState(StateIdle)
		return fmt.Errorf("connect: %w", err)
	}

	m.pool.Store(pool)
	m.lastPool.Store(pool)
	m.setState(StateActive)
	log.Infoln("database connection active")
	return nil
}

func (m *ConnectionManager) disconnectLocked(ctx context.Context, reason string) {
	if m.State() == StateIdle {
		return
	}

	log.WithContext(ctx).Warnf("database disconnecting: %s", reason)
	m.setState(StateDraining)

	if pool := m.pool.Swap(nil); pool != nil {
		// blocks until acquired connections are released
		pool.Close()
	}

	m.setState(StateIdle)
	log.Infoln("database connection idle")
}

func (m *ConnectionManager) setState(s State) {
	m.state.Store(int32(s))
	if m.metricsManager != nil {
		m.metricsManager.GaugeDBConnectionState.Set(float64(s))
	}
	log.Debugf("database connection state: %s", s)
}
