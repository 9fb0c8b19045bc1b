// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"promptdeck/internal/models"
)

// SettingsStore manages per-workspace key/value settings.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore backed by the given database.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// All returns every setting of a workspace as a convenience map.
func (s *SettingsStore) All(ctx context.Context, workspaceID uuid.UUID) (models.WorkspaceSettings, error) {
	query, args, err := psql.Select("key", "value").
		From("workspace_settings").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(models.WorkspaceSettings)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// SetMany upserts multiple settings in a single transaction.
func (s *SettingsStore) SetMany(ctx context.Context, workspaceID uuid.UUID, settings models.WorkspaceSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set settings: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for k, v := range settings {
		query, args, err := psql.Insert("workspace_settings").
			Columns("workspace_id", "key", "value", "updated_at").
			Values(workspaceID, k, v, now).
			Suffix("ON CONFLICT (workspace_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build set setting: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("set setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// Delete removes the given keys from a workspace.
func (s *SettingsStore) Delete(ctx context.Context, workspaceID uuid.UUID, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := psql.Delete("workspace_settings").
		Where(sq.Eq{"workspace_id": workspaceID, "key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete settings: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// AIConfig loads the workspace's AI settings.
func (s *SettingsStore) AIConfig(ctx context.Context, workspaceID uuid.UUID) (models.AIConfig, error) {
	settings, err := s.All(ctx, workspaceID)
	if err != nil {
		return models.AIConfig{}, err
	}
	return models.AIConfigFrom(settings), nil
}

// SetAIConfig stores the workspace's AI settings.
func (s *SettingsStore) SetAIConfig(ctx context.Context, workspaceID uuid.UUID, cfg models.AIConfig) error {
	return s.SetMany(ctx, workspaceID, cfg.Settings())
}
