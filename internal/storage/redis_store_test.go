package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hanabi-deduction/internal/game/card"
	"github.com/palemoky/hanabi-deduction/internal/game/state"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, time.Hour)
	return store, mr
}

func testSnapshot() *state.Snapshot {
	return &state.Snapshot{
		Variant: "No Variant",
		Viewer:  0,
		Hands:   []card.Hand{{0}, {1}},
		Deck: card.Deck{
			{Order: 0, Possible: []card.Identity{{Suit: 0, Rank: card.Rank1}}},
			{Order: 1, Knowledge: card.Known(card.Identity{Suit: 2, Rank: card.Rank3}), Possible: []card.Identity{{Suit: 2, Rank: card.Rank3}}},
		},
	}
}

func TestRedisStore_SaveLoadDeleteGame(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	snap := testSnapshot()
	require.NoError(t, store.SaveGame(ctx, "g1", snap))

	loaded, err := store.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	ids, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)

	require.NoError(t, store.DeleteGame(ctx, "g1"))
	loaded, err = store.LoadGame(ctx, "g1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNil(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.SaveGame(context.Background(), "g1", nil))
	assert.False(t, mr.Exists(gameKeyPrefix+"g1"))
}

func TestRedisStore_Expiration(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, "g1", testSnapshot()))
	assert.Equal(t, time.Hour, mr.TTL(gameKeyPrefix+"g1"))

	mr.FastForward(2 * time.Hour)
	loaded, err := store.LoadGame(ctx, "g1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	ids, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "expired games are dropped from the index")
}

func TestRedisStore_CorruptSnapshot(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	require.NoError(t, mr.Set(gameKeyPrefix+"bad", "\xff\xff\xff"))
	_, err := store.LoadGame(context.Background(), "bad")
	assert.Error(t, err)
}

func TestNewRedisStore_DefaultTTL(t *testing.T) {
	t.Parallel()

	store := NewRedisStore(nil, 0)
	assert.Equal(t, defaultExpiration, store.expiration)
}

func TestRedisStore_ListGamesPrunesExpired(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, "old", testSnapshot()))
	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.SaveGame(ctx, "new", testSnapshot()))
	mr.FastForward(45 * time.Minute)

	ids, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids)

	members, err := mr.Members(gameIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, members, "expired id is removed from the index")
}

func TestRedisStore_DeleteMissingGame(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.DeleteGame(context.Background(), "nope"))
}
