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
	"errors"
	"os"
	"testing"
	"time"
)

func openPGForTest(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("GSW_PG_DSN")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("GSW_PG_DSN not set; skipping postgres store tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPostgresCRUD(t *testing.T) {
	p := openPGForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := p.Create(ctx, sampleScript("PG Robot Barista"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = p.Delete(ctx, created.ID) }()
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", created)
	}

	got, err := p.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title || len(got.Scenes) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Title = "PG Robot Barista v2"
	updated, err := p.Update(ctx, created.ID, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "PG Robot Barista v2" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := p.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgresSearch(t *testing.T) {
	p := openPGForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := p.Create(ctx, sampleScript("PG Search Fixture"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = p.Delete(ctx, created.ID) }()

	res, err := p.Search(ctx, "barista", 50)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	found := false
	for _, r := range res {
		if r.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fixture in search results, got %+v", res)
	}
}
