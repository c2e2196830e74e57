// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDiscoveryTimeout bounds a single `ps` call.
const DefaultDiscoveryTimeout = 10 * time.Second

// Discover returns the names of running containers, or an empty list when the
// engine is missing, the daemon is down or the call fails for any other reason.
// Callers treat an empty result as "Docker unreachable". There is no retry.
func Discover(ctx context.Context, engine Engine, logger *log.Logger) []string {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		logger.Debug("container discovery skipped: no engine")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultDiscoveryTimeout)
	defer cancel()

	names, err := engine.ListRunning(ctx)
	if err != nil {
		logger.Debug("container discovery failed", "engine", engine.Name(), "err", err)
		return nil
	}
	logger.Debug("discovered running containers", "engine", engine.Name(), "count", len(names))
	return names
}
