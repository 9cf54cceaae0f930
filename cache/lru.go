// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrInvalidCapacity is returned for a non-positive capacity.
	ErrInvalidCapacity = errors.New("cache capacity must be positive")

	// ErrInvalidTTL is returned for a negative TTL.
	ErrInvalidTTL = errors.New("cache ttl must not be negative")
)

// EvictReason tells an eviction callback why an entry left the cache.
type EvictReason uint8

const (
	// EvictCapacity means the entry was the least recently used one when a
	// new entry needed room.
	EvictCapacity EvictReason = iota + 1

	// EvictExpired means the entry outlived the TTL.
	EvictExpired
)

// String returns the reason as used in metric attributes.
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictExpired:
		return "expired"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Option configures an LRU.
type Option func(*settings)

type settings struct {
	ttl     time.Duration
	now     func() time.Time
	onEvict func(key string, reason EvictReason)
}

// WithTTL sets how long an entry stays valid after it was last stored or read.
// Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithEvictionCallback registers fn for capacity and expiry evictions.
// fn runs after the cache lock is released.
func WithEvictionCallback(fn func(key string, reason EvictReason)) Option {
	return func(s *settings) {
		s.onEvict = fn
	}
}

type entry[V any] struct {
	key        string
	value      V
	touched    time.Time // last Set or successful Get
	prev, next *entry[V]
}

type eviction struct {
	key    string
	reason EvictReason
}

// LRU is a least recently used cache safe for concurrent use.
type LRU[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	head     *entry[V] // most recently used
	tail     *entry[V] // least recently used
	capacity int
	settings settings

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// New returns an empty cache holding at most capacity entries.
func New[V any](capacity int, opts ...Option) (*LRU[V], error) {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if s.ttl < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTTL, s.ttl)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return &LRU[V]{
		items:    make(map[string]*entry[V], capacity),
		capacity: capacity,
		settings: s,
	}, nil
}

// Key builds the cache key for a request.
func Key(method, path string) string {
	return method + ":" + path
}

// Get returns the value stored under key, marks it most recently used and
// restarts its TTL. An expired entry is removed and reported as a miss.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	now := c.settings.now()

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.misses++
		c.mu.Unlock()
		return zero, false
	}
	if c.expired(e, now) {
		c.remove(e)
		c.misses++
		c.expirations++
		c.mu.Unlock()
		c.notify(eviction{key: key, reason: EvictExpired})
		return zero, false
	}
	e.touched = now
	c.moveToFront(e)
	c.hits++
	v := e.value
	c.mu.Unlock()

	return v, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full. Storing an existing key refreshes its TTL.
func (c *LRU[V]) Set(key string, value V) {
	now := c.settings.now()

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		e.value = value
		e.touched = now
		c.moveToFront(e)
		c.mu.Unlock()
		return
	}

	var evicted *eviction
	if len(c.items) >= c.capacity && c.tail != nil {
		victim := c.tail
		c.remove(victim)
		c.evictions++
		evicted = &eviction{key: victim.key, reason: EvictCapacity}
	}

	e := &entry[V]{key: key, value: value, touched: now}
	c.items[key] = e
	c.pushFront(e)
	c.mu.Unlock()

	if evicted != nil {
		c.notify(*evicted)
	}
}

// Contains reports whether a live entry exists for key without changing
// its recency.
func (c *LRU[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	return ok && !c.expired(e, c.settings.now())
}

// Delete removes key and reports whether it was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if ok {
		c.remove(e)
	}
	return ok
}

// Purge removes every entry and returns how many were dropped.
// Statistics are kept.
func (c *LRU[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	clear(c.items)
	c.head, c.tail = nil, nil
	return n
}

// Len returns the number of entries, including expired ones not yet removed.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cap returns the capacity.
func (c *LRU[V]) Cap() int {
	return c.capacity
}

// TTL returns the configured expiry, zero when disabled.
func (c *LRU[V]) TTL() time.Duration {
	return c.settings.ttl
}

// Keys returns the keys from most to least recently used.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for e := c.head; e != nil; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// RemoveExpired drops every expired entry and returns how many were removed.
func (c *LRU[V]) RemoveExpired() int {
	if c.settings.ttl == 0 {
		return 0
	}
	now := c.settings.now()

	c.mu.Lock()
	var dropped []eviction
	for e := c.tail; e != nil; {
		prev := e.prev
		if c.expired(e, now) {
			c.remove(e)
			c.expirations++
			dropped = append(dropped, eviction{key: e.key, reason: EvictExpired})
		}
		e = prev
	}
	c.mu.Unlock()

	for _, ev := range dropped {
		c.notify(ev)
	}
	return len(dropped)
}

// Sweep calls RemoveExpired every interval until ctx is done.
// It blocks; run it in its own goroutine.
func (c *LRU[V]) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 || c.settings.ttl == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RemoveExpired()
		}
	}
}

// Stats returns a snapshot of the cache counters.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Size:        len(c.items),
		Capacity:    c.capacity,
	}
}

func (c *LRU[V]) expired(e *entry[V], now time.Time) bool {
	return c.settings.ttl > 0 && now.Sub(e.touched) > c.settings.ttl
}

func (c *LRU[V]) notify(ev eviction) {
	if c.settings.onEvict != nil {
		c.settings.onEvict(ev.key, ev.reason)
	}
}

// list maintenance; callers hold c.mu.

func (c *LRU[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *LRU[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *LRU[V]) remove(e *entry[V]) {
	c.unlink(e)
	delete(c.items, e.key)
}
