package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongdu300/localy/internal/agent/model"
)

func output(resp string) *model.PipelineOutput {
	return &model.PipelineOutput{Response: resp, Intent: "restaurant_search", Language: "ko"}
}

func TestCacheRoundTrip(t *testing.T) {
	c := New(time.Minute)
	c.Set("강릉 맛집 알려줘", "restaurant_search", output("초당순두부를 추천한다냥."))

	got, ok := c.Get("강릉 맛집 알려줘", "restaurant_search")
	require.True(t, ok)
	assert.Equal(t, "초당순두부를 추천한다냥.", got.Response)
}

func TestCacheNormalizesMessage(t *testing.T) {
	c := New(time.Minute)
	c.Set("  강릉 맛집 알려줘  ", "restaurant_search", output("ok"))

	_, ok := c.Get("강릉 맛집 알려줘", "restaurant_search")
	assert.True(t, ok)

	// Latin text additionally normalizes case.
	c.Set("Plan a trip to Busan", "travel_plan", output("plan"))
	_, ok = c.Get("plan a TRIP to busan", "travel_plan")
	assert.True(t, ok)
}

func TestCacheSeparatesIntents(t *testing.T) {
	c := New(time.Minute)
	c.Set("강릉", "restaurant_search", output("food"))

	_, ok := c.Get("강릉", "spot_search")
	assert.False(t, ok)
}

func TestCacheExpiresLazily(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("강릉 맛집", "restaurant_search", output("ok"))

	time.Sleep(30 * time.Millisecond)

	// Still counted until an access reclaims it.
	assert.Equal(t, 1, c.Size())
	_, ok := c.Get("강릉 맛집", "restaurant_search")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", "chat", output("1"))
	c.Set("b", "chat", output("2"))
	require.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
