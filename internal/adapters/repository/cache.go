package repository

import (
	"context"
	"sync"

	"github.com/Eda2353/nfl/internal/domain/stats"
)

// node is a single entry in the eviction list.
type node struct {
	playerID string
	games    []stats.PlayerGame
	next     *node
}

func (n *node) reset() {
	n.playerID = ""
	n.games = nil
	n.next = nil
}

// CachedPlayerRepo wraps a PlayerRepo with a bounded in-memory cache of
// per-player game histories. Training sweeps re-read the same histories for
// every target week; caching them turns O(weeks) queries per player into one.
//
// Bounded mode evicts the oldest insertion (tail of a linked list) and reuses
// nodes through a sync.Pool; unbounded mode is a plain map.
type CachedPlayerRepo struct {
	inner stats.PlayerRepo

	mu       sync.RWMutex
	cached   map[string]*node
	head     *node
	maxSize  int
	nodePool sync.Pool
}

// NewCachedPlayerRepo wraps inner with a history cache.
func NewCachedPlayerRepo(inner stats.PlayerRepo, opts ...Option) *CachedPlayerRepo {
	c := &CachedPlayerRepo{
		inner:   inner,
		maxSize: 5000,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cached = make(map[string]*node)
	if c.maxSize > 0 {
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}
	return c
}

// Players passes through to the inner repo; rosters are cheap and change
// rarely enough that the query is not worth caching.
func (c *CachedPlayerRepo) Players(ctx context.Context, season int) ([]stats.PlayerInfo, error) {
	return c.inner.Players(ctx, season)
}

// Games returns a player's history, serving repeats from the cache.
func (c *CachedPlayerRepo) Games(ctx context.Context, playerID string) ([]stats.PlayerGame, error) {
	c.mu.RLock()
	if n, ok := c.cached[playerID]; ok {
		games := n.games
		c.mu.RUnlock()
		return games, nil
	}
	c.mu.RUnlock()

	games, err := c.inner.Games(ctx, playerID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cached[playerID]; ok {
		return games, nil
	}
	if c.maxSize > 0 {
		if len(c.cached) >= c.maxSize {
			c.evictTail()
		}
		n := c.nodePool.Get().(*node)
		n.playerID = playerID
		n.games = games
		n.next = c.head
		c.head = n
		c.cached[playerID] = n
	} else {
		c.cached[playerID] = &node{playerID: playerID, games: games}
	}
	return games, nil
}

// Invalidate drops every cached history. Call after new game lines land.
func (c *CachedPlayerRepo) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxSize > 0 {
		for n := c.head; n != nil; {
			next := n.next
			n.reset()
			c.nodePool.Put(n)
			n = next
		}
	}
	c.head = nil
	c.cached = make(map[string]*node)
}

// Size returns the number of cached histories.
func (c *CachedPlayerRepo) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cached)
}

// evictTail removes the oldest insertion. Must be called with c.mu held.
func (c *CachedPlayerRepo) evictTail() {
	if c.head == nil {
		return
	}
	if c.head.next == nil {
		delete(c.cached, c.head.playerID)
		c.head.reset()
		c.nodePool.Put(c.head)
		c.head = nil
		return
	}
	prev := c.head
	for prev.next.next != nil {
		prev = prev.next
	}
	tail := prev.next
	prev.next = nil
	delete(c.cached, tail.playerID)
	tail.reset()
	c.nodePool.Put(tail)
}
