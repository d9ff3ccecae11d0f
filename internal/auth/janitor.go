package auth

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultCleanInterval = time.Hour

type sessionCleaner interface {
	ScanAndClean(ctx context.Context) int
}

// SessionJanitor periodically removes expired sessions. It is owned by the
// server lifecycle: Start once, Stop on shutdown.
type SessionJanitor struct {
	cleaner  sessionCleaner
	interval time.Duration

	mutex  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSessionJanitor(cleaner sessionCleaner, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = DefaultCleanInterval
	}
	return &SessionJanitor{
		cleaner:  cleaner,
		interval: interval,
	}
}

// Start runs a first clean right away, then one per interval, until ctx is
// done or Stop is called. Starting a running janitor is a no-op.
func (j *SessionJanitor) Start(ctx context.Context) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	if j.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			removed := j.cleaner.ScanAndClean(ctx)
			if removed > 0 {
				log.Infof("session janitor: removed %d expired sessions", removed)
			}

			select {
			case <-ctx.Done():
				log.Debugln("session janitor stopped")
				return
			case <-ticker.C:
			}
		}
	}(j.done)
}

// Stop cancels the loop and waits for it to exit.
func (j *SessionJanitor) Stop() {
	j.mutex.Lock()
	cancel, done := j.cancel, j.done
	j.cancel, j.done = nil, nil
	j.mutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
