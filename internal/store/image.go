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

// ImageStore handles saved-image rows. Images are immutable once saved:
// there is no update.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

var imageColumns = []string{
	"id", "workspace_id", "url", "source_url", "prompt", "size", "quality", "style",
	"archive_key", "thumb_key", "thumb_url", "created_at",
}

func scanImage(row scanner) (*models.GeneratedImage, error) {
	var g models.GeneratedImage
	err := row.Scan(
		&g.ID, &g.WorkspaceID, &g.URL, &g.SourceURL, &g.Prompt, &g.Size, &g.Quality, &g.Style,
		&g.ArchiveKey, &g.ThumbKey, &g.ThumbURL, &g.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func imageInsert(g *models.GeneratedImage) sq.InsertBuilder {
	return psql.Insert("saved_images").
		Columns(imageColumns...).
		Values(
			g.ID, g.WorkspaceID, g.URL, g.SourceURL, g.Prompt, g.Size, g.Quality, g.Style,
			g.ArchiveKey, g.ThumbKey, g.ThumbURL, g.Timestamp,
		).
		Suffix("ON CONFLICT (workspace_id, url) DO NOTHING")
}

func prepareImage(g *models.GeneratedImage) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Timestamp.IsZero() {
		g.Timestamp = time.Now()
	}
}

// Save inserts an image. It reports false when the workspace already holds
// an image with the same URL.
func (s *ImageStore) Save(ctx context.Context, g *models.GeneratedImage) (bool, error) {
	prepareImage(g)
	query, args, err := imageInsert(g).ToSql()
	if err != nil {
		return false, fmt.Errorf("build save image: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("save image: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// HasURL reports whether the workspace already holds an image saved from
// url, either directly or as the source of an archived copy.
func (s *ImageStore) HasURL(ctx context.Context, workspaceID uuid.UUID, url string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("saved_images").
		Where(sq.Eq{"workspace_id": workspaceID}).
		Where(sq.Or{sq.Eq{"url": url}, sq.Eq{"source_url": url}}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build image exists: %w", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("image exists: %w", err)
	}
	return exists, nil
}

// Import saves a batch in one transaction, skipping URLs the workspace
// already has. Returns how many were added.
func (s *ImageStore) Import(ctx context.Context, workspaceID uuid.UUID, images []models.GeneratedImage) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import images: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for i := range images {
		g := images[i]
		g.ID = uuid.Nil // imported IDs are not trusted
		g.SourceURL = nil
		g.WorkspaceID = workspaceID
		prepareImage(&g)

		query, args, err := imageInsert(&g).ToSql()
		if err != nil {
			return 0, fmt.Errorf("build import image: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("import image %q: %w", g.URL, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import images: %w", err)
	}
	return added, nil
}

// List returns a workspace's images, newest first.
func (s *ImageStore) List(ctx context.Context, workspaceID uuid.UUID) ([]models.GeneratedImage, error) {
	query, args, err := psql.Select(imageColumns...).
		From("saved_images").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list images: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []models.GeneratedImage{}
	for rows.Next() {
		g, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, *g)
	}
	return images, rows.Err()
}

// Get returns a single image or ErrNotFound.
func (s *ImageStore) Get(ctx context.Context, workspaceID, id uuid.UUID) (*models.GeneratedImage, error) {
	query, args, err := psql.Select(imageColumns...).
		From("saved_images").
		Where(sq.Eq{"workspace_id": workspaceID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get image: %w", err)
	}

	g, err := scanImage(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return g, nil
}

// Delete removes an image row. Returns ErrNotFound if it does not exist.
func (s *ImageStore) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query, args, err := psql.Delete("saved_images").
		Where(sq.Eq{"workspace_id": workspaceID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete image: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
