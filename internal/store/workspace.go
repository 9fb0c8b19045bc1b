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
)

// WorkspaceStore tracks the anonymous workspaces created by sessions.
type WorkspaceStore struct {
	db *sql.DB
}

// NewWorkspaceStore returns a new WorkspaceStore backed by the given database.
func NewWorkspaceStore(db *sql.DB) *WorkspaceStore {
	return &WorkspaceStore{db: db}
}

// Touch creates the workspace if needed and records the visit. It reports
// whether the row was created.
func (s *WorkspaceStore) Touch(ctx context.Context, id uuid.UUID) (created bool, err error) {
	now := time.Now()
	query, args, err := psql.Insert("workspaces").
		Columns("id", "created_at", "last_seen_at").
		Values(id, now, now).
		// xmax is 0 only on a row this statement inserted.
		Suffix("ON CONFLICT (id) DO UPDATE SET last_seen_at = EXCLUDED.last_seen_at RETURNING (xmax = 0)").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build touch workspace: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&created); err != nil {
		return false, fmt.Errorf("touch workspace: %w", err)
	}
	return created, nil
}

// Delete removes a workspace and, through cascading keys, all its data.
func (s *WorkspaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("workspaces").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete workspace: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
