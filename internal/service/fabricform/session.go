package fabricform

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/metrics"
)

// SessionRegistry maps browser sessions to their owned form controller.
type SessionRegistry struct {
	sessions map[string]*Controller
	mu       sync.RWMutex

	mutator  Mutator
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry building controllers on demand.
func NewSessionRegistry(mutator Mutator, recorder Recorder, logger *zap.Logger) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*Controller),
		mutator:  mutator,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Get retrieves the controller of an existing session.
func (r *SessionRegistry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	return c, ok
}

// Acquire returns the controller for id, opening a new session when id is
// empty or unknown. The returned id is the one the caller must keep.
func (r *SessionRegistry) Acquire(id string) (string, *Controller) {
	if id != "" {
		if c, ok := r.Get(id); ok {
			return id, c
		}
	}

	id = uuid.NewString()
	c := NewController(id, r.mutator, r.recorder, r.logger)
	c.now = r.now
	c.lastSeen = r.now()

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()

	metrics.SessionsActive.Inc()
	r.logger.Debug("form session opened", zap.String("session_id", id))
	return id, c
}

// Close tears down a session. Unknown ids are ignored.
func (r *SessionRegistry) Close(id string) {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	c.Close()
	metrics.SessionsActive.Dec()
	r.logger.Debug("form session closed", zap.String("session_id", id))
}

// Sweep closes sessions idle for longer than maxIdle and returns how many were closed.
// Sessions with a submission in flight are kept.
func (r *SessionRegistry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var expired []string
	for id, c := range r.sessions {
		if c.closeIfIdle(cutoff) {
			delete(r.sessions, id)
			expired = append(expired, id)
		}
	}
	r.mu.Unlock()

	if len(expired) == 0 {
		return 0
	}
	metrics.SessionsActive.Sub(float64(len(expired)))
	r.logger.Info("idle form sessions swept", zap.Int("count", len(expired)))
	return len(expired)
}

// Len returns the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
