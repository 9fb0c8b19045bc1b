// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"promptdeck/internal/ads"
)

// DefaultUsedSetTTL bounds how long a workspace's used ad text is kept
// after its last claim.
const DefaultUsedSetTTL = 30 * 24 * time.Hour

// UsedSet is an ads.UsedSet stored as one Valkey set per field and
// workspace. SADD makes each claim atomic across server instances.
type UsedSet struct {
	client    *redis.Client
	workspace string
	ttl       time.Duration
}

var _ ads.UsedSet = (*UsedSet)(nil)

// NewUsedSet returns the used-set of one workspace.
func NewUsedSet(client *redis.Client, workspace string, ttl time.Duration) *UsedSet {
	if ttl == 0 {
		ttl = DefaultUsedSetTTL
	}
	return &UsedSet{client: client, workspace: workspace, ttl: ttl}
}

func (u *UsedSet) key(field ads.Field) string {
	return fmt.Sprintf("ads:used:%s:%s", u.workspace, field)
}

// Claim adds key to the field's set and reports whether it was new.
func (u *UsedSet) Claim(ctx context.Context, field ads.Field, key string) (bool, error) {
	k := u.key(field)
	var added *redis.IntCmd
	_, err := u.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, k, key)
		pipe.Expire(ctx, k, u.ttl)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", field, err)
	}
	return added.Val() == 1, nil
}

// Release removes keys from the field's set.
func (u *UsedSet) Release(ctx context.Context, field ads.Field, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	if err := u.client.SRem(ctx, u.key(field), members...).Err(); err != nil {
		return fmt.Errorf("release %s: %w", field, err)
	}
	return nil
}

// Reset forgets everything the workspace has used.
func (u *UsedSet) Reset(ctx context.Context) error {
	if err := u.client.Del(ctx, u.key(ads.FieldTitle), u.key(ads.FieldDescription)).Err(); err != nil {
		return fmt.Errorf("reset used set: %w", err)
	}
	return nil
}

// Len returns the number of claimed keys for field.
func (u *UsedSet) Len(ctx context.Context, field ads.Field) (int64, error) {
	return u.client.SCard(ctx, u.key(field)).Result()
}
