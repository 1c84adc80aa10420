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
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"goscreenwriter/internal/domain"
	applog "goscreenwriter/internal/log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres is the shared-library store for multi-writer setups.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the given DSN, verifies the connection, and
// applies pending migrations.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	l := applog.WithOperation(applog.WithComponent("store"), "postgres_open")
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		l.Error("postgres ping failed", slog.Any("err", err))
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("postgres migrations failed", slog.Any("err", err))
		return nil, fmt.Errorf("migrate: %w", err)
	}
	l.Info("shared library ready")
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error { return p.db.Close() }

// applyMigrations applies embedded SQL migrations in filename order,
// tracking applied versions in schema_migrations.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied := map[int64]bool{}
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("select schema_migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return err
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, fname := range files {
		version, err := parseMigrationVersion(fname)
		if err != nil {
			return err
		}
		if applied[version] {
			continue
		}
		b, err := migrationsFS.ReadFile(path.Join("migrations", fname))
		if err != nil {
			return err
		}
		sqlText := string(b)
		if strings.TrimSpace(sqlText) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			return fmt.Errorf("apply %s: %w", fname, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations(version, name) VALUES($1,$2) ON CONFLICT DO NOTHING`, version, fname); err != nil {
			return fmt.Errorf("record %s: %w", fname, err)
		}
	}
	return nil
}

func parseMigrationVersion(name string) (int64, error) {
	base := path.Base(name)
	parts := strings.SplitN(base, "_", 2)
	if len(parts) == 0 {
		return 0, errors.New("invalid migration filename: " + name)
	}
	v, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse version from %s: %w", name, err)
	}
	return v, nil
}

const pgScriptColumns = `id, title, topic, style, story, scenes, target_runtime, writer, draft, notes, created_at, updated_at`

func (p *Postgres) List(ctx context.Context) ([]domain.Script, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+pgScriptColumns+` FROM scripts ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()
	var out []domain.Script
	for rows.Next() {
		sc, err := scanPGScript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (p *Postgres) Get(ctx context.Context, id int64) (domain.Script, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+pgScriptColumns+` FROM scripts WHERE id=$1`, id)
	sc, err := scanPGScript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Script{}, fmt.Errorf("get script %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Script{}, err
	}
	return sc, nil
}

func (p *Postgres) Create(ctx context.Context, sc domain.Script) (domain.Script, error) {
	scenes, err := marshalScenes(sc.Scenes)
	if err != nil {
		return domain.Script{}, err
	}
	row := p.db.QueryRowContext(ctx,
		`INSERT INTO scripts (title, topic, style, story, scenes, target_runtime, writer, draft, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id, created_at, updated_at`,
		sc.Title, sc.Topic, string(sc.Style), sc.Story, scenes, sc.TargetRuntime,
		sc.Writer, sc.Draft, sc.Notes)
	if err := row.Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return domain.Script{}, fmt.Errorf("insert script: %w", err)
	}
	return sc, nil
}

func (p *Postgres) Update(ctx context.Context, id int64, sc domain.Script) (domain.Script, error) {
	scenes, err := marshalScenes(sc.Scenes)
	if err != nil {
		return domain.Script{}, err
	}
	res, err := p.db.ExecContext(ctx,
		`UPDATE scripts SET title=$1, topic=$2, style=$3, story=$4, scenes=$5, target_runtime=$6, writer=$7, draft=$8, notes=$9, updated_at=now()
		 WHERE id=$10`,
		sc.Title, sc.Topic, string(sc.Style), sc.Story, scenes, sc.TargetRuntime,
		sc.Writer, sc.Draft, sc.Notes, id)
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
	return p.Get(ctx, id)
}

func (p *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM scripts WHERE id=$1`, id)
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

// Search matches against the generated tsvector over title/topic/story, with
// a headline snippet mirroring the SQLite store's [ ] markers.
func (p *Postgres) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		q    string
		args []any
	)
	if strings.TrimSpace(query) != "" {
		q = `SELECT id, title,
			COALESCE(ts_headline('simple', title || ' ' || topic || ' ' || story, plainto_tsquery('simple', $1),
				'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '')
			FROM scripts
			WHERE search_vector @@ plainto_tsquery('simple', $1)
			ORDER BY updated_at DESC, id DESC
			LIMIT $2`
		args = append(args, query, limit)
	} else {
		q = `SELECT id, title, '' FROM scripts ORDER BY updated_at DESC, id DESC LIMIT $1`
		args = append(args, limit)
	}
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search pg query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func marshalScenes(scenes []domain.Scene) ([]byte, error) {
	if scenes == nil {
		scenes = []domain.Scene{}
	}
	b, err := json.Marshal(scenes)
	if err != nil {
		return nil, fmt.Errorf("marshal scenes: %w", err)
	}
	return b, nil
}

func scanPGScript(r rowScanner) (domain.Script, error) {
	var (
		sc         domain.Script
		style      string
		scenesJSON []byte
	)
	if err := r.Scan(&sc.ID, &sc.Title, &sc.Topic, &style, &sc.Story, &scenesJSON, &sc.TargetRuntime,
		&sc.Writer, &sc.Draft, &sc.Notes, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return domain.Script{}, err
	}
	sc.Style = domain.Style(style)
	if len(scenesJSON) > 0 {
		if err := json.Unmarshal(scenesJSON, &sc.Scenes); err != nil {
			return domain.Script{}, fmt.Errorf("decode scenes for script %d: %w", sc.ID, err)
		}
	}
	return sc, nil
}
