// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
)

// SessionJanitor periodically sweeps expired session records. Expiry is also
// checked lazily on every validation, so the janitor only keeps the sessions
// collection from accumulating records nobody will ever touch again.
type SessionJanitor struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionJanitor(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (j *SessionJanitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("session janitor started")

	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("session janitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SessionJanitor) sweep(ctx context.Context) {
	deleted, err := j.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		j.logger.Err(err).Msg("session sweep ended with error")
		return
	}

	if deleted > 0 {
		j.logger.Info().Int("deleted", deleted).Msg("expired sessions removed")
	}
}
