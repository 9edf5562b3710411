package worker

import (
	"context"
	"testing"
	"time"

	"github.com/VictorChidex1/eventflow/internal/checkout"
	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSweeperRemovesStaleSessions(t *testing.T) {
	sessions := checkout.NewSessions()
	stale := &checkout.Session{Reference: "EVT_old", State: domain.CheckoutModalOpen}
	sessions.Put(stale)
	stale.UpdatedAt = time.Now().Add(-time.Hour)

	fresh := &checkout.Session{Reference: "EVT_new", State: domain.CheckoutModalOpen}
	sessions.Put(fresh)

	sw := NewSessionSweeper(sessions, 30*time.Minute, 5*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	sw.Run(ctx)

	assert.Equal(t, 1, sessions.Len())
	_, ok := sessions.Get("EVT_new")
	assert.True(t, ok)
}
