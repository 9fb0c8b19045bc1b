// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"promptdeck/internal/models"
)

// HistoryStore persists prompt history entries per workspace.
type HistoryStore struct {
	db    *sql.DB
	limit int
}

// NewHistoryStore returns a HistoryStore that keeps at most limit entries
// per workspace. A non-positive limit uses models.DefaultHistoryLimit.
func NewHistoryStore(db *sql.DB, limit int) *HistoryStore {
	if limit <= 0 {
		limit = models.DefaultHistoryLimit
	}
	return &HistoryStore{db: db, limit: limit}
}

var historyColumns = []string{"id", "workspace_id", "type", "title", "prompt", "created_at"}

func scanHistory(row scanner) (*models.PromptHistoryEntry, error) {
	var e models.PromptHistoryEntry
	if err := row.Scan(&e.ID, &e.WorkspaceID, &e.Type, &e.Title, &e.Prompt, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

// Add prepends an entry and prunes anything beyond the limit in the same
// transaction. ID and Date are filled in when zero.
func (s *HistoryStore) Add(ctx context.Context, e *models.PromptHistoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add history: %w", err)
	}
	defer tx.Rollback()

	query, args, err := psql.Insert("prompt_history").
		Columns(historyColumns...).
		Values(e.ID, e.WorkspaceID, e.Type, e.Title, e.Prompt, e.Date).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	keep := psql.Select("id").
		From("prompt_history").
		Where(sq.Eq{"workspace_id": e.WorkspaceID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(s.limit))
	keepSQL, keepArgs, err := keep.ToSql()
	if err != nil {
		return fmt.Errorf("build keep history: %w", err)
	}
	// keepSQL uses $1.. placeholders; the outer condition comes after them.
	prune := fmt.Sprintf(
		"DELETE FROM prompt_history WHERE workspace_id = $%d AND id NOT IN (%s)",
		len(keepArgs)+1, keepSQL,
	)
	if _, err := tx.ExecContext(ctx, prune, append(keepArgs, e.WorkspaceID)...); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	return tx.Commit()
}

// List returns a workspace's entries, newest first.
func (s *HistoryStore) List(ctx context.Context, workspaceID uuid.UUID) ([]models.PromptHistoryEntry, error) {
	query, args, err := psql.Select(historyColumns...).
		From("prompt_history").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []models.PromptHistoryEntry{}
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Get returns a single entry or ErrNotFound.
func (s *HistoryStore) Get(ctx context.Context, workspaceID, id uuid.UUID) (*models.PromptHistoryEntry, error) {
	query, args, err := psql.Select(historyColumns...).
		From("prompt_history").
		Where(sq.Eq{"workspace_id": workspaceID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get history: %w", err)
	}

	e, err := scanHistory(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return e, nil
}

// Delete removes one entry. Returns ErrNotFound if it does not exist.
func (s *HistoryStore) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query, args, err := psql.Delete("prompt_history").
		Where(sq.Eq{"workspace_id": workspaceID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete history: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry of a workspace.
func (s *HistoryStore) Clear(ctx context.Context, workspaceID uuid.UUID) error {
	query, args, err := psql.Delete("prompt_history").
		Where(sq.Eq{"workspace_id": workspaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear history: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
