package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusStampsTerminal(t *testing.T) {
	now := time.Now()
	ticket := FeedbackTicket{Status: TicketStatusOpen}

	ticket.SetStatus(TicketStatusInProgress, now)
	assert.Nil(t, ticket.ResolvedAt)

	ticket.SetStatus(TicketStatusResolved, now)
	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, now, *ticket.ResolvedAt)
}

func TestReopenNeverClearsResolvedAt(t *testing.T) {
	resolved := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	ticket := FeedbackTicket{Status: TicketStatusOpen}
	ticket.SetStatus(TicketStatusClosed, resolved)

	ticket.SetStatus(TicketStatusOpen, resolved.Add(time.Hour))
	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, resolved, *ticket.ResolvedAt)

	// a second terminal transition does not move the stamp either
	ticket.SetStatus(TicketStatusResolved, resolved.Add(2*time.Hour))
	assert.Equal(t, resolved, *ticket.ResolvedAt)
}
