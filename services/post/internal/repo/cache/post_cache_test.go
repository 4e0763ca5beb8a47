package cache

import (
	"context"
	"testing"
	"time"

	"newsdesk/services/post/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (PostCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewPostCache(rdb, 30*time.Second), mr
}

func TestPostCache_WorkingSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, ok := c.WorkingSet(ctx)
	assert.False(t, ok)

	posts := []*entity.Post{{
		ID:    "post-1",
		Slug:  "oil-outlook",
		Type:  entity.PostTypeMarketWatch,
		Title: "Oil Outlook",
		Tags:  []string{"oil"},
		Views: 7,
		MarketWatch: &entity.MarketWatch{
			MarketImpact: "bearish",
			DataPoints:   []entity.DataPoint{{Label: "Brent", Value: "$82"}},
		},
	}}
	require.NoError(t, c.SetWorkingSet(ctx, posts))

	got, ok := c.WorkingSet(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "oil-outlook", got[0].Slug)
	assert.Equal(t, int64(7), got[0].Views)
	require.NotNil(t, got[0].MarketWatch)
	assert.Equal(t, "bearish", got[0].MarketImpact)
	assert.Nil(t, got[0].Opinion)

	assert.Equal(t, 30*time.Second, mr.TTL(WorkingSetKey))
}

func TestPostCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetStrings(ctx, TagsKey, []string{"coffee"}))
	mr.FastForward(31 * time.Second)

	_, ok := c.Strings(ctx, TagsKey)
	assert.False(t, ok)
}

func TestPostCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetStrings(ctx, TagsKey, []string{"coffee"}))
	require.NoError(t, c.SetStrings(ctx, CategoriesKey, []string{"markets"}))
	require.NoError(t, c.SetWorkingSet(ctx, []*entity.Post{}))

	require.NoError(t, c.Invalidate(ctx))

	assert.False(t, mr.Exists(TagsKey))
	assert.False(t, mr.Exists(CategoriesKey))
	assert.False(t, mr.Exists(WorkingSetKey))
}

func TestPostCache_CorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(WorkingSetKey, "{not json"))

	_, ok := c.WorkingSet(ctx)
	assert.False(t, ok)
}

func TestNewPostCache_NilClient(t *testing.T) {
	ctx := context.Background()
	c := NewPostCache(nil, time.Minute)

	require.NoError(t, c.SetStrings(ctx, TagsKey, []string{"coffee"}))
	_, ok := c.Strings(ctx, TagsKey)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
