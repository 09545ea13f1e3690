package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"eggypro-store/internal/storage"
)

// Manager hands out one Controller per cart session. Controllers idle past
// the TTL are closed and dropped on the next access; their durable snapshot
// stays behind, so a returning session rehydrates seamlessly.
type Manager struct {
	mu          sync.Mutex
	controllers map[string]*managedController

	store      storage.Store
	logger     *zap.Logger
	deleteWait time.Duration
	undoWindow time.Duration
	sessionTTL time.Duration
	navigate   func(string)
}

type managedController struct {
	ctrl     *Controller
	lastSeen time.Time
}

// ManagerConfig configures session-wide controller defaults.
type ManagerConfig struct {
	Store      storage.Store
	Logger     *zap.Logger
	DeleteWait time.Duration
	UndoWindow time.Duration
	SessionTTL time.Duration
	Navigate   func(string)
}

func NewManager(cfg ManagerConfig) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		controllers: make(map[string]*managedController),
		store:       cfg.Store,
		logger:      logger,
		deleteWait:  cfg.DeleteWait,
		undoWindow:  cfg.UndoWindow,
		sessionTTL:  ttl,
		navigate:    cfg.Navigate,
	}
}

// Get returns the controller for a session, creating and hydrating it on
// first access.
func (m *Manager) Get(ctx context.Context, sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictIdleLocked()

	if mc, ok := m.controllers[sessionID]; ok {
		mc.lastSeen = time.Now()
		return mc.ctrl
	}

	ctrl := NewController(ctx, Config{
		Store:      m.store,
		Key:        "cart:" + sessionID,
		Logger:     m.logger.With(zap.String("session", sessionID)),
		Navigate:   m.navigate,
		DeleteWait: m.deleteWait,
		UndoWindow: m.undoWindow,
	})
	m.controllers[sessionID] = &managedController{ctrl: ctrl, lastSeen: time.Now()}
	return ctrl
}

func (m *Manager) evictIdleLocked() {
	cutoff := time.Now().Add(-m.sessionTTL)
	for id, mc := range m.controllers {
		if mc.lastSeen.Before(cutoff) {
			mc.ctrl.Close()
			delete(m.controllers, id)
		}
	}
}

// Close tears down every live controller, cancelling pending timers.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, mc := range m.controllers {
		mc.ctrl.Close()
		delete(m.controllers, id)
	}
}
