/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package store

import (
	"context"
	"fmt"
	"strings"
)

// Search performs full-text search over title, topic, and synopsis using the
// contentless FTS index. Query text uses SQLite FTS5 syntax (simple terms,
// phrases in quotes, AND/OR/NOT). When the query is empty it falls back to a
// plain listing capped at limit.
func (s *SQLite) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		sb   strings.Builder
		args []any
	)
	if strings.TrimSpace(query) != "" {
		sb.WriteString("SELECT sc.id, sc.title, snippet(fts_scripts, -1, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_scripts JOIN scripts sc ON fts_scripts.rowid = sc.id\n")
		sb.WriteString("WHERE fts_scripts MATCH ?\n")
		args = append(args, query)
	} else {
		sb.WriteString("SELECT sc.id, sc.title, ''\nFROM scripts sc\n")
	}
	sb.WriteString("ORDER BY sc.updated_at DESC, sc.id DESC\nLIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
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
