package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrDatabaseConnectionFailed = errors.New("database connection failed")

// ValidateConnection connects and probes the database once, before the
// service starts taking requests.
func ValidateConnection(ctx context.Context, manager *ConnectionManager) (time.Duration, error) {
	start := time.Now()
	if err := manager.Ping(ctx); err != nil {
		log.Errorf("database startup check failed: %s", err)
		return time.Since(start), fmt.Errorf("%w: %w", ErrDatabaseConnectionFailed, err)
	}

	latency := time.Since(start)
	log.Infof("database startup check ok, latency: %s", latency)
	return latency, nil
}
