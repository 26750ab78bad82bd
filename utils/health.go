package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	StateBackend    string    `json:"stateBackend"`
	CalendarBackend string    `json:"calendarBackend"`
	Extractor       string    `json:"extractor"`
	Redis           *bool     `json:"redis,omitempty"`
	CheckedAt       time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// SetHealthStatus stores the static part of the snapshot (configured backends).
func SetHealthStatus(h HealthStatus) {
	mu.Lock()
	defer mu.Unlock()
	h.CheckedAt = time.Now()
	currentHealth = h
}

// StartHealthMonitor periodically pings redis (when used) and updates in-memory state.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, every time.Duration) {
	if redisClient == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			ok := redisClient.Ping(pingCtx).Err() == nil
			cancel()

			mu.Lock()
			currentHealth.Redis = &ok
			currentHealth.CheckedAt = time.Now()
			mu.Unlock()
		}
	}()
}
