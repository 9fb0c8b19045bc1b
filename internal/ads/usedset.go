// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"context"
	"sync"
)

// Field identifies which ad text a used-set entry belongs to.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// UsedSet records text that has already been emitted. Claim must be atomic:
// it returns true only for the first caller that claims a given text.
// Keys arrive already normalized (trimmed, lower-cased). Release undoes
// claims whose text was never handed out.
type UsedSet interface {
	Claim(ctx context.Context, field Field, key string) (bool, error)
	Release(ctx context.Context, field Field, keys ...string) error
	Reset(ctx context.Context) error
}

// MemorySet is an in-process UsedSet. It is safe for concurrent use.
type MemorySet struct {
	mu   sync.Mutex
	used map[Field]map[string]struct{}
}

// NewMemorySet returns an empty MemorySet.
func NewMemorySet() *MemorySet {
	return &MemorySet{used: make(map[Field]map[string]struct{})}
}

func (m *MemorySet) Claim(_ context.Context, field Field, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.used[field]
	if !ok {
		set = make(map[string]struct{})
		m.used[field] = set
	}
	if _, taken := set[key]; taken {
		return false, nil
	}
	set[key] = struct{}{}
	return true, nil
}

func (m *MemorySet) Release(_ context.Context, field Field, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.used[field], k)
	}
	return nil
}

func (m *MemorySet) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used = make(map[Field]map[string]struct{})
	return nil
}

// Len returns the number of claimed keys for field.
func (m *MemorySet) Len(field Field) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.used[field])
}
