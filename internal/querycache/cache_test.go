package querycache

import (
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCachesValue(t *testing.T) {
	c := New(time.Minute, nil)
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	v, err := c.Fetch(Key("products", "list"), loader)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = c.Fetch(Key("products", "list"), loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, nil)
	calls := 0

	_, err := c.Fetch("blog:list", func() (interface{}, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	v, err := c.Fetch("blog:list", func() (interface{}, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestBusInvalidationEvictsEntityScope(t *testing.T) {
	bus := EventBus.New()
	c := New(time.Minute, bus)

	_, _ = c.Fetch(Key("products", "list", "bags"), func() (interface{}, error) { return 1, nil })
	_, _ = c.Fetch(Key("products", "slug", "jute-tote"), func() (interface{}, error) { return 2, nil })
	_, _ = c.Fetch(Key("blog", "list"), func() (interface{}, error) { return 3, nil })
	require.Equal(t, 3, c.Len())

	bus.Publish(TopicInvalidate, "products")
	bus.WaitAsync()

	assert.Equal(t, 1, c.Len())
	calls := 0
	_, _ = c.Fetch(Key("blog", "list"), func() (interface{}, error) { calls++; return 3, nil })
	assert.Zero(t, calls, "blog entries must survive a products invalidation")
}

func TestExpiredEntryReloads(t *testing.T) {
	c := New(time.Millisecond, nil)
	calls := 0
	loader := func() (interface{}, error) { calls++; return "x", nil }

	_, _ = c.Fetch("settings", loader)
	time.Sleep(5 * time.Millisecond)
	_, _ = c.Fetch("settings", loader)
	assert.Equal(t, 2, calls)
}
