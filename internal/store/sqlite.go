/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"goscreenwriter/internal/domain"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DataDirName holds the library database under the workspace root.
	DataDirName  = ".gsw"
	DataFileName = "library.sqlite"

	// schemaVersion tracks the local SQLite schema for the script library.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// LibraryPath returns the full path to the workspace's script database file.
func LibraryPath(root string) string {
	return filepath.Join(root, DataDirName, DataFileName)
}

// SQLite is the embedded single-user store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite ensures the database exists at .gsw/library.sqlite under root,
// opens it, enables WAL mode, and brings the schema up to date.
func OpenSQLite(root string) (*SQLite, error) {
	l := applog.WithOperation(applog.WithComponent("store"), "sqlite_open").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("workspace root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, DataDirName), 0o755); err != nil {
		l.Error("create .gsw dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .gsw dir: %w", err)
	}

	path := LibraryPath(root)
	// URI with shared cache and a busy timeout. Forward slashes for the URI.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage: keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureLibrarySchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure library schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("library ready", slog.String("path", path))
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	// Seed or update single-row version info
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// ensureLibrarySchema creates the scripts table and FTS structures if they do
// not exist.
func ensureLibrarySchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS scripts (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			title          TEXT NOT NULL,
			topic          TEXT NOT NULL,
			style          TEXT NOT NULL,
			story          TEXT NOT NULL DEFAULT '',
			scenes_json    TEXT NOT NULL,
			target_runtime INTEGER NOT NULL DEFAULT 0,
			writer         TEXT NOT NULL DEFAULT '',
			draft          TEXT NOT NULL DEFAULT '',
			notes          TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		);`,

		// Contentless FTS5 index fed from scripts via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_scripts USING fts5(
			title,
			topic,
			story,
			content='',
			tokenize = 'unicode61'
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure library schema: %w", err)
		}
	}
	// Triggers for contentless FTS synchronization with scripts.
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS scripts_ai AFTER INSERT ON scripts BEGIN
			INSERT INTO fts_scripts(rowid, title, topic, story) VALUES (new.id, new.title, new.topic, new.story);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS scripts_ad AFTER DELETE ON scripts BEGIN
			INSERT INTO fts_scripts(fts_scripts, rowid, title, topic, story) VALUES ('delete', old.id, old.title, old.topic, old.story);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS scripts_au AFTER UPDATE OF title, topic, story ON scripts BEGIN
			INSERT INTO fts_scripts(fts_scripts, rowid, title, topic, story) VALUES ('delete', old.id, old.title, old.topic, old.story);
			INSERT INTO fts_scripts(rowid, title, topic, story) VALUES (new.id, new.title, new.topic, new.story);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Do not downgrade; just continue
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			// Add an index for the list ordering and optimize FTS
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_scripts_updated ON scripts(updated_at);`,
				`CREATE INDEX IF NOT EXISTS idx_scripts_style ON scripts(style);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
			// Best-effort FTS optimize (outside the tx)
			if _, err := db.ExecContext(ctx, `INSERT INTO fts_scripts(fts_scripts) VALUES('optimize')`); err != nil {
				// best-effort optimize; ignore errors
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

const scriptColumns = `id, title, topic, style, story, scenes_json, target_runtime, writer, draft, notes, created_at, updated_at`

func (s *SQLite) List(ctx context.Context) ([]domain.Script, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scriptColumns+` FROM scripts ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()
	var out []domain.Script
	for rows.Next() {
		sc, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLite) Get(ctx context.Context, id int64) (domain.Script, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+scriptColumns+` FROM scripts WHERE id=?`, id)
	sc, err := scanScript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Script{}, fmt.Errorf("get script %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Script{}, err
	}
	return sc, nil
}

func (s *SQLite) Create(ctx context.Context, sc domain.Script) (domain.Script, error) {
	scenes, err := json.Marshal(sc.Scenes)
	if err != nil {
		return domain.Script{}, fmt.Errorf("marshal scenes: %w", err)
	}
	// Truncate so the returned value matches what a later Get parses back.
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scripts (title, topic, style, story, scenes_json, target_runtime, writer, draft, notes, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		sc.Title, sc.Topic, string(sc.Style), sc.Story, string(scenes), sc.TargetRuntime,
		sc.Writer, sc.Draft, sc.Notes, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return domain.Script{}, fmt.Errorf("insert script: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Script{}, fmt.Errorf("script id: %w", err)
	}
	sc.ID = id
	sc.CreatedAt = now
	sc.UpdatedAt = now
	return sc, nil
}

func (s *SQLite) Update(ctx context.Context, id int64, sc domain.Script) (domain.Script, error) {
	scenes, err := json.Marshal(sc.Scenes)
	if err != nil {
		return domain.Script{}, fmt.Errorf("marshal scenes: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`UPDATE scripts SET title=?, topic=?, style=?, story=?, scenes_json=?, target_runtime=?, writer=?, draft=?, notes=?, updated_at=?
		 WHERE id=?`,
		sc.Title, sc.Topic, string(sc.Style), sc.Story, string(scenes), sc.TargetRuntime,
		sc.Writer, sc.Draft, sc.Notes, now.Format(time.RFC3339), id)
	if err != nil {
		return domain.Script{}, fmt.Errorf("update script %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Script{}, fmt.Errorf("update script %d: %w", id, err)
	}
	if n == 0 {
		return domain.Script{}, fmt.Errorf("update script %d: %w", id, ErrNotFound)
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scripts WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete script %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete script %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete script %d: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScript(r rowScanner) (domain.Script, error) {
	var (
		sc                   domain.Script
		style                string
		scenesJSON           string
		createdAt, updatedAt string
	)
	if err := r.Scan(&sc.ID, &sc.Title, &sc.Topic, &style, &sc.Story, &scenesJSON, &sc.TargetRuntime,
		&sc.Writer, &sc.Draft, &sc.Notes, &createdAt, &updatedAt); err != nil {
		return domain.Script{}, err
	}
	sc.Style = domain.Style(style)
	if err := json.Unmarshal([]byte(scenesJSON), &sc.Scenes); err != nil {
		return domain.Script{}, fmt.Errorf("decode scenes for script %d: %w", sc.ID, err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		sc.UpdatedAt = t
	}
	return sc, nil
}
