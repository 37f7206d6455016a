package mcp

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// consecutiveFailureLimit is the number of failed pings in a row before a
// server is marked crashed.
const consecutiveFailureLimit = 3

type healthState struct {
	mu                  sync.Mutex
	lastCheckTime       time.Time
	consecutiveFailures int
}

// StartHealthCheck starts MCP ping-based health monitoring for a server.
// Three consecutive ping failures mark the server crashed; a later successful
// ping marks it available again. Monitoring only observes status, it never
// restarts the process.
func (m *ClientManager) StartHealthCheck(ctx context.Context, serverName string, interval time.Duration) {
	// Cancel existing health check for this server and wait for it to exit
	m.mu.Lock()
	if cancel, ok := m.healthCancels[serverName]; ok {
		slog.Debug("Cancelling existing health check", "server", serverName)
		cancel()
		if done, ok := m.healthDone[serverName]; ok {
			// Unlock to wait for goroutine to exit to avoid deadlock
			m.mu.Unlock()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				slog.Warn("Timed out waiting for old health check to exit", "server", serverName)
			}
			m.mu.Lock()
		}
	}

	// Preserve existing failure state across restarts of the check itself
	if m.healthStates[serverName] == nil {
		m.healthStates[serverName] = &healthState{}
	}
	state := m.healthStates[serverName]

	healthCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.healthCancels[serverName] = cancel
	m.healthDone[serverName] = done
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.healthCancels, serverName)
			delete(m.healthDone, serverName)
			m.mu.Unlock()
			close(done)
			slog.Debug("Health check goroutine exited", "server", serverName)
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-healthCtx.Done():
				slog.Debug("Health check stopped", "server", serverName)
				return
			case <-ticker.C:
				m.mu.RLock()
				session, ok := m.sessions[serverName]
				m.mu.RUnlock()

				if !ok {
					slog.Debug("Health check stopped - session not found", "server", serverName)
					return
				}

				// Ping timeout: interval/2, clamped to [3s, 10s]. Shorter
				// than the interval so checks never overlap, long enough to
				// ride out transient latency.
				pingTimeout := interval / 2
				if pingTimeout < 3*time.Second {
					pingTimeout = 3 * time.Second
				}
				if pingTimeout > 10*time.Second {
					pingTimeout = 10 * time.Second
				}

				pingCtx, pingCancel := context.WithTimeout(healthCtx, pingTimeout)
				err := session.Ping(pingCtx, &mcp.PingParams{})
				pingCancel()

				state.mu.Lock()
				state.lastCheckTime = time.Now()

				if err != nil {
					if state.consecutiveFailures < consecutiveFailureLimit {
						state.consecutiveFailures++
					}
					failures := state.consecutiveFailures
					state.mu.Unlock()

					slog.Warn("Health check failed - MCP ping failed",
						"server", serverName,
						"consecutive_failures", failures,
						"error", err)

					if failures >= consecutiveFailureLimit &&
						m.processManager.GetStatus(serverName) != StatusCrashed {
						slog.Error("Server marked as crashed after repeated ping failures",
							"server", serverName)
						m.processManager.SetStatus(serverName, StatusCrashed)
					}
					// Keep checking so a recovery can be observed
					continue
				}

				recovered := state.consecutiveFailures > 0
				state.consecutiveFailures = 0
				state.mu.Unlock()

				if recovered {
					slog.Info("Health check recovered", "server", serverName)
					if m.processManager.CompareAndSwapStatus(serverName, StatusCrashed, StatusAvailable) {
						slog.Info("Server available again", "server", serverName)
					}
				}
			}
		}
	}()
}

// stopHealthChecks cancels every running health check and waits for the
// goroutines to exit. Called without m.mu held.
func (m *ClientManager) stopHealthChecks() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.healthCancels))
	dones := make(map[string]chan struct{}, len(m.healthDone))
	for name, cancel := range m.healthCancels {
		cancels = append(cancels, cancel)
		if done, ok := m.healthDone[name]; ok {
			dones[name] = done
		}
	}
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	for name, done := range dones {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			slog.Warn("Timed out waiting for health check to stop", "server", name)
		}
	}
}
