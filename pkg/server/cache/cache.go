/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache provides the key value cache in front of the public event
// feed
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/pkg/errors"
)

// ErrMiss is returned by Get when the key is not cached
var ErrMiss = errors.New("cache miss")

// Cache stores byte values with an expiry
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Nop caches nothing. It is used when no cache server is configured.
type Nop struct{}

// Get always misses
func (Nop) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

// Set discards the value
func (Nop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing
func (Nop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

type item struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process local cache
type Memory struct {
	clock clock.Clock

	mu    sync.Mutex
	items map[string]item
}

// NewMemory returns an empty memory cache that reads expiry from c
func NewMemory(c clock.Clock) *Memory {
	return &Memory{
		clock: c,
		items: map[string]item{},
	}
}

// Get returns the value of key unless it has expired
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if !it.expiresAt.IsZero() && !m.clock.Now().Before(it.expiresAt) {
		delete(m.items, key)
		return nil, ErrMiss
	}

	return append([]byte(nil), it.value...), nil
}

// Set stores the value. A zero ttl never expires.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it := item{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expiresAt = m.clock.Now().Add(ttl)
	}
	m.items[key] = it

	return nil
}

// Delete removes the keys
func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.items, k)
	}

	return nil
}
