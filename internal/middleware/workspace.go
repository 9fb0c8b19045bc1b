// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"promptdeck/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	workspaceKey contextKey = iota
	holderKey
)

// workspaceHolder lets LoadWorkspace report the workspace back to Logger,
// which wraps it and never sees the inner request context.
type workspaceHolder struct {
	id string
}

func withHolder(ctx context.Context, h *workspaceHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// WorkspaceSessions resolves the request's workspace, issuing a new one to
// first-time visitors.
type WorkspaceSessions interface {
	Workspace(ctx context.Context, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool, error)
}

// WorkspaceToucher records a workspace visit, creating its row if needed.
// It reports whether the row was created.
type WorkspaceToucher interface {
	Touch(ctx context.Context, id uuid.UUID) (bool, error)
}

// SettingsCleaner deletes workspace settings by key.
type SettingsCleaner interface {
	Delete(ctx context.Context, workspaceID uuid.UUID, keys ...string) error
}

// LoadWorkspace resolves the workspace from the session cookie and stores
// it in the request context. Downstream handlers read it with
// WorkspaceFromCtx. The obsolete login flag is dropped when a session or a
// workspace row is new.
func LoadWorkspace(sessions WorkspaceSessions, workspaces WorkspaceToucher, settings SettingsCleaner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, created, err := sessions.Workspace(ctx, w, r)
			if err != nil {
				slog.Error("load workspace session", "error", err)
				writeError(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}

			inserted, err := workspaces.Touch(ctx, id)
			if err != nil {
				slog.Error("touch workspace", "workspace", id, "error", err)
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if created {
				slog.Info("workspace created", "workspace", id)
			}

			if created || inserted {
				if err := settings.Delete(ctx, id, models.SettingLegacyLoggedIn); err != nil {
					slog.Warn("delete legacy login flag", "workspace", id, "error", err)
				}
			}

			if h, ok := ctx.Value(holderKey).(*workspaceHolder); ok {
				h.id = id.String()
			}

			next.ServeHTTP(w, r.WithContext(WithWorkspace(ctx, id)))
		})
	}
}

// WithWorkspace returns a copy of ctx carrying the workspace ID.
func WithWorkspace(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, workspaceKey, id)
}

// WorkspaceFromCtx extracts the workspace ID from the request context.
// Returns uuid.Nil if no workspace was loaded.
func WorkspaceFromCtx(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(workspaceKey).(uuid.UUID)
	return id
}
