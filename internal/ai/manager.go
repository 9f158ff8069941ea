package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TickManager ticks registered controllers once per frame, in registration
// order, so a seeded run replays identically.
type TickManager struct {
	mu          sync.Mutex
	order       []string
	controllers map[string]Controller

	// frameHook runs after the controllers each frame; false stops Start.
	frameHook func() bool

	frames atomic.Int64
}

// NewTickManager creates an empty TickManager.
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make(map[string]Controller),
	}
}

// SetFrameHook sets the function run after the controllers every frame.
func (m *TickManager) SetFrameHook(fn func() bool) {
	m.frameHook = fn
}

// Register starts c and adds it under name.
func (m *TickManager) Register(name string, c Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.controllers[name]; ok {
		return fmt.Errorf("controller %q already registered", name)
	}
	m.controllers[name] = c
	m.order = append(m.order, name)
	c.Start()

	slog.Debug("AI controller registered", "name", name, "intention", c.Intention())
	return nil
}

// Unregister stops and removes the controller registered under name.
func (m *TickManager) Unregister(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[name]
	if !ok {
		return
	}
	delete(m.controllers, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	c.Stop()

	slog.Debug("AI controller unregistered", "name", name)
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Controller returns the controller registered under name.
func (m *TickManager) Controller(name string) (Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[name]
	if !ok {
		return nil, fmt.Errorf("controller not found: %q", name)
	}
	return c, nil
}

// Frames returns how many frames Start has run.
func (m *TickManager) Frames() int64 {
	return m.frames.Load()
}

// TickAll ticks every controller once.
func (m *TickManager) TickAll() {
	m.mu.Lock()
	snapshot := make([]Controller, 0, len(m.order))
	for _, name := range m.order {
		snapshot = append(snapshot, m.controllers[name])
	}
	m.mu.Unlock()

	for _, c := range snapshot {
		c.Tick()
	}

	if TraceEnabled() {
		slog.Debug("AI tick completed", "controllers", len(snapshot))
	}
}

// Start runs frames until limit frames ran (limit <= 0 means no limit), the
// frame hook returns false or ctx is done.
//
// With interval > 0 frames are paced by a ticker; otherwise they run back to
// back, checking ctx between frames.
func (m *TickManager) Start(ctx context.Context, interval time.Duration, limit int) error {
	slog.Info("AI tick manager started", "interval", interval, "limit", limit)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for limit <= 0 || m.frames.Load() < int64(limit) {
		if tick != nil {
			select {
			case <-ctx.Done():
				slog.Info("AI tick manager stopping", "frames", m.frames.Load())
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			slog.Info("AI tick manager stopping", "frames", m.frames.Load())
			return err
		}

		m.TickAll()
		m.frames.Add(1)

		if m.frameHook != nil && !m.frameHook() {
			break
		}
	}

	slog.Info("AI tick manager stopped", "frames", m.frames.Load())
	return nil
}
