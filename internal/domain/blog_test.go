package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPublishedStampsFirstTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var p BlogPost

	p.SetPublished(true, now)
	require.NotNil(t, p.PublishedAt)
	assert.True(t, p.Published)
	assert.Equal(t, now, *p.PublishedAt)
}

func TestUnpublishKeepsTimestamp(t *testing.T) {
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	var p BlogPost
	p.SetPublished(true, first)
	p.SetPublished(false, later)

	assert.False(t, p.Published)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	// republishing keeps the original publication date
	p.SetPublished(true, later)
	assert.Equal(t, first, *p.PublishedAt)
}
