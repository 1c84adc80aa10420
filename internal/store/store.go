/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package store persists scripts. Two drivers share one contract: an
// embedded SQLite database for local single-user work and Postgres for a
// shared setup. The store owns script identity and timestamps; ids are
// assigned on create and matched exactly.
package store

import (
	"context"
	"errors"

	"goscreenwriter/internal/domain"
)

// ErrNotFound reports that no script with the requested id exists.
var ErrNotFound = errors.New("script not found")

// SearchResult is a single search match. Snippet is a highlighted excerpt
// using [ ] markers when full-text search produced one, empty otherwise.
type SearchResult struct {
	ID      int64
	Title   string
	Snippet string
}

// Store is the persistence contract consumed by the CLI and the editor.
type Store interface {
	// List returns all scripts, most recently updated first.
	List(ctx context.Context) ([]domain.Script, error)
	// Get fetches a script by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (domain.Script, error)
	// Create assigns an id and timestamps and stores the script.
	Create(ctx context.Context, s domain.Script) (domain.Script, error)
	// Update replaces the stored content for id, refreshing UpdatedAt.
	// CreatedAt and id are preserved. Fails with ErrNotFound.
	Update(ctx context.Context, id int64, s domain.Script) (domain.Script, error)
	// Delete removes the script, or fails with ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// Search matches query text against title, topic, and synopsis.
	// An empty query lists everything up to limit.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Close() error
}

var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Postgres)(nil)
)
