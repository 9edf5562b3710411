package worker

import (
	"context"
	"log"
	"time"

	"github.com/VictorChidex1/eventflow/internal/checkout"
)

// SessionSweeper drops checkout sessions that settled or were abandoned,
// so attempts the buyer walked away from do not pile up in memory. It
// never touches the payment ledger; a purchase the gateway confirmed is
// already durably recorded by the time its session is swept.
type SessionSweeper struct {
	sessions *checkout.Sessions
	ttl      time.Duration
	interval time.Duration
}

func NewSessionSweeper(sessions *checkout.Sessions, ttl, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, ttl: ttl, interval: interval}
}

func (sw *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	log.Println("session sweeper started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sw.sessions.Sweep(sw.ttl); removed > 0 {
				log.Printf("swept %d checkout sessions", removed)
			}
		}
	}
}
