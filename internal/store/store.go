// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL persistence for workspaces,
// prompt history, saved images and workspace settings. Every query is
// scoped by workspace ID.
package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
)

// ErrNotFound is returned when a row addressed by ID does not exist in the
// caller's workspace.
var ErrNotFound = errors.New("not found")

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface{ Scan(...any) error }
