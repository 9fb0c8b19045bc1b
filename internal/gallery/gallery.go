// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gallery saves generated images for a workspace. Image-model URLs
// are short-lived, so when object storage is configured each saved image is
// downloaded, copied into the public bucket together with a JPEG thumbnail,
// and its URLs are rewritten to the archived copies before it is persisted.
package gallery

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"promptdeck/internal/imaging"
	"promptdeck/internal/models"
	"promptdeck/internal/netguard"
)

// maxDownloadSize caps a single image download (DALL·E HD PNGs are ~3 MB).
const maxDownloadSize = 20 << 20

// ErrTooLarge is returned when a source image exceeds maxDownloadSize.
var ErrTooLarge = errors.New("image exceeds download limit")

// ImageRepo persists saved images.
type ImageRepo interface {
	HasURL(ctx context.Context, workspaceID uuid.UUID, url string) (bool, error)
	Save(ctx context.Context, img *models.GeneratedImage) (bool, error)
	Get(ctx context.Context, workspaceID, id uuid.UUID) (*models.GeneratedImage, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// ObjectStore is the subset of the S3 client the gallery needs.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}

// Gallery archives and persists saved images.
type Gallery struct {
	images     ImageRepo
	objects    ObjectStore
	http       *http.Client
	thumbWidth int
}

// New creates a Gallery. objects may be nil, in which case images are stored
// with their original URLs. A nil hc uses a retrying client that only
// connects to public addresses.
func New(images ImageRepo, objects ObjectStore, hc *http.Client) *Gallery {
	if hc == nil {
		rc := retryablehttp.NewClient()
		rc.RetryMax = 2
		rc.Logger = nil
		rc.HTTPClient.Transport = netguard.Transport()
		rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
			if errors.Is(err, netguard.ErrBlockedAddress) {
				return false, err
			}
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		hc = rc.StandardClient()
	}
	return &Gallery{
		images:     images,
		objects:    objects,
		http:       hc,
		thumbWidth: imaging.ThumbMaxWidth,
	}
}

// Archiving reports whether saved images are copied to object storage.
func (g *Gallery) Archiving() bool {
	return g.objects != nil
}

// Save stores img in the workspace. It reports false when the workspace
// already has an image with the same URL, without downloading it again.
// Archive failures are logged and the image is saved with its original URL.
func (g *Gallery) Save(ctx context.Context, workspaceID uuid.UUID, img *models.GeneratedImage) (bool, error) {
	img.WorkspaceID = workspaceID

	exists, err := g.images.HasURL(ctx, workspaceID, img.URL)
	if err != nil {
		return false, fmt.Errorf("check image: %w", err)
	}
	if exists {
		return false, nil
	}

	if g.objects != nil && !img.IsArchived() {
		if err := g.archive(ctx, workspaceID, img); err != nil {
			slog.Warn("image archive failed, keeping original url", "url", img.URL, "error", err)
		}
	}

	added, err := g.images.Save(ctx, img)
	if err != nil {
		return false, fmt.Errorf("save image: %w", err)
	}
	return added, nil
}

// archive copies the image and a thumbnail into the bucket and rewrites the
// image's URLs. Keys are derived from the source URL, so saving the same
// provider URL twice maps to the same archived URL and is deduplicated by
// the store.
func (g *Gallery) archive(ctx context.Context, workspaceID uuid.UUID, img *models.GeneratedImage) error {
	data, declared, err := g.download(ctx, img.URL)
	if err != nil {
		return err
	}

	contentType := imaging.ContentType(data, declared)
	ext := imaging.ExtensionFromType(contentType)
	if ext == "" {
		return fmt.Errorf("unsupported content type %q", contentType)
	}

	base := workspaceID.String() + "/" + urlHash(img.URL)
	key := base + ext
	if err := g.objects.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return err
	}

	source := img.URL
	img.SourceURL = &source
	img.URL = g.objects.FileURL(key)
	img.ArchiveKey = &key

	thumb, err := imaging.Thumbnail(data, g.thumbWidth)
	if err != nil {
		slog.Warn("thumbnail generation failed", "key", key, "error", err)
		return nil
	}
	if thumb == nil {
		return nil
	}

	tk := base + "_thumb.jpg"
	if err := g.objects.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
		slog.Warn("thumbnail upload failed", "key", tk, "error", err)
		return nil
	}
	thumbURL := g.objects.FileURL(tk)
	img.ThumbKey = &tk
	img.ThumbURL = &thumbURL
	return nil
}

func (g *Gallery) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, "", ErrTooLarge
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Delete removes an image from the workspace, then removes its archived
// objects. Object deletion is best-effort.
func (g *Gallery) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	img, err := g.images.Get(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if err := g.images.Delete(ctx, workspaceID, id); err != nil {
		return err
	}

	if g.objects == nil {
		return nil
	}
	for _, key := range []*string{img.ArchiveKey, img.ThumbKey} {
		if key == nil || *key == "" {
			continue
		}
		if err := g.objects.Delete(ctx, *key); err != nil {
			slog.Warn("archived object delete failed", "key", *key, "error", err)
		}
	}
	return nil
}

func urlHash(u string) string {
	sum := sha256.Sum256([]byte(u))
	return hex.EncodeToString(sum[:12])
}
